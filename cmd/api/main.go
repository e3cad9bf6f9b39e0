package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retirement-sim/internal/api"
	"retirement-sim/internal/cache"
	"retirement-sim/internal/config"
	"retirement-sim/internal/platform/otel"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Get configuration from environment
	cfg, err := config.ParseEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Setup(ctx, "retirement-sim-api", otel.Options{
		Endpoint: cfg.OTelEndpoint,
		Enabled:  cfg.OTelEnabled,
	})
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Error flushing traces: %v", err)
		}
	}()

	store := newStore(ctx, cfg)
	defer store.Close()

	router := api.NewRouter(api.Options{
		Store:          store,
		ScenarioDir:    cfg.ScenarioDir,
		StaticDir:      cfg.StaticDir,
		MaxSimulations: cfg.MaxSimulations,
		CORSOrigins:    cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newStore uses Redis when REDIS_ADDR is set and reachable, else an in-memory cache.
func newStore(ctx context.Context, cfg config.Server) cache.Store {
	if cfg.RedisAddr == "" {
		log.Printf("Projection cache: in-memory (ttl=%s)", cfg.CacheTTL)
		return cache.NewMemory(cfg.CacheTTL)
	}

	rc := cache.NewRedis(&redis.Options{Addr: cfg.RedisAddr}, cfg.CacheTTL)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		log.Printf("Projection cache: redis %s unreachable (%v), falling back to in-memory", cfg.RedisAddr, err)
		_ = rc.Close()
		return cache.NewMemory(cfg.CacheTTL)
	}
	log.Printf("Projection cache: redis %s (ttl=%s)", cfg.RedisAddr, cfg.CacheTTL)
	return rc
}
