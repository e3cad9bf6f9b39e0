package montecarlo

import (
	"time"

	"retirement-sim/internal/analysis"
	"retirement-sim/internal/model"
	"retirement-sim/internal/random"

	"github.com/google/uuid"
)

// Projection is one completed run: its inputs, the seed that reproduces it and the bands.
type Projection struct {
	ID        string                   `json:"id"`
	Seed      int64                    `json:"seed"`
	Params    model.SimulationParams   `json:"params"`
	Results   []model.SimulationResult `json:"results"`
	Summary   analysis.Summary         `json:"summary"`
	CreatedAt time.Time                `json:"created_at"`
}

// Project runs params with a source seeded by seed (0 draws a fresh seed).
// Params are stored with defaults resolved so the projection can be replayed.
func Project(p model.SimulationParams, seed int64) (*Projection, error) {
	src, err := random.NewSeeded(seed)
	if err != nil {
		return nil, err
	}
	p = p.WithDefaults()
	results := New(src).Run(p)
	return &Projection{
		ID:        uuid.NewString(),
		Seed:      src.Seed(),
		Params:    p,
		Results:   results,
		Summary:   analysis.Summarize(p, results),
		CreatedAt: time.Now().UTC(),
	}, nil
}
