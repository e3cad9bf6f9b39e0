package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server is the API server configuration, read from the environment.
type Server struct {
	Port        string `env:"API_PORT" envDefault:"8080"`
	Env         string `env:"API_ENV" envDefault:"development"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"./web/dist"`
	ScenarioDir string `env:"SCENARIO_DIR" envDefault:"./examples/scenarios"`

	// RedisAddr selects the Redis projection cache; empty keeps projections in memory.
	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// MaxSimulations caps num_simulations per API request.
	MaxSimulations int `env:"MAX_SIMULATIONS" envDefault:"10000"`

	// CORSOrigins lists allowed browser origins, comma separated.
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

func (s Server) Production() bool { return s.Env == "production" }

// ParseEnv loads server configuration from environment variables.
func ParseEnv() (Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if s.MaxSimulations <= 0 {
		return Server{}, fmt.Errorf("MAX_SIMULATIONS must be > 0")
	}
	return s, nil
}
