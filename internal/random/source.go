// Package random provides the uniform and normal draws behind a projection run.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source produces uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// Rand is a seeded Source. It is not safe for concurrent use; give each run its own.
type Rand struct {
	seed int64
	r    *rand.Rand
}

// New returns a Source seeded with seed. The same seed yields the same draws.
func New(seed int64) *Rand {
	return &Rand{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Seed reports the seed the source was created with.
func (s *Rand) Seed() int64 { return s.seed }

func (s *Rand) Float64() float64 { return s.r.Float64() }

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// NewSeeded returns a source for seed, drawing a fresh seed when seed is 0.
func NewSeeded(seed int64) (*Rand, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	return New(seed), nil
}
