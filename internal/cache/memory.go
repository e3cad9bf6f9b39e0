package cache

import (
	"context"
	"sync"
	"time"

	"retirement-sim/internal/montecarlo"
)

const cleanupInterval = 5 * time.Minute

type entry struct {
	projection *montecarlo.Projection
	expiresAt  time.Time
}

// Memory is an in-process Store with a fixed TTL per entry.
// Expired entries are hidden immediately and swept by a background goroutine until Close.
type Memory struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewMemory(ttl time.Duration) *Memory {
	m := &Memory{
		store: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go m.cleanup()
	return m
}

func (m *Memory) Get(_ context.Context, key string) (*montecarlo.Projection, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.store[key]
	if !ok || m.now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.projection, true, nil
}

func (m *Memory) Set(_ context.Context, key string, p *montecarlo.Projection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = &entry{
		projection: p,
		expiresAt:  m.now().Add(m.ttl),
	}
	return nil
}

// Len reports the number of entries, including expired ones not yet swept.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *Memory) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
		}
	}
}
