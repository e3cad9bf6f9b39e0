package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"retirement-sim/internal/model"
	"retirement-sim/internal/montecarlo"
)

// Store keeps completed projections for replay by ID or by seeded params.
type Store interface {
	Get(ctx context.Context, key string) (*montecarlo.Projection, bool, error)
	Set(ctx context.Context, key string, p *montecarlo.Projection) error
	Close() error
}

// IDKey is the key a projection is stored under for GET by ID.
func IDKey(id string) string {
	return "projection:" + id
}

// Key creates a deterministic key from params and seed. Only seeded runs
// reproduce, so callers should not look up unseeded runs by params.
func Key(p model.SimulationParams, seed int64) string {
	p = p.WithDefaults()
	keyStr := fmt.Sprintf("%d:%d:%g:%g:%g:%g:%d:%g:%d",
		p.InitialAge,
		p.RetirementAge,
		p.InitialPortfolioValue,
		p.MonthlyContribution,
		p.MeanReturn,
		p.StdDev,
		p.NumSimulations,
		p.Inflation(),
		seed,
	)

	hash := sha256.Sum256([]byte(keyStr))
	return "params:" + hex.EncodeToString(hash[:])
}
