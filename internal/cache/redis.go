package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"retirement-sim/internal/montecarlo"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "retirement-sim:"

// Redis is a Store backed by a Redis server; projections are stored as JSON.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(opts *redis.Options, ttl time.Duration) *Redis {
	return &Redis{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}
}

// Ping checks the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) (*montecarlo.Projection, bool, error) {
	raw, err := r.client.Get(ctx, redisPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	p, err := decodeProjection(raw)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, p *montecarlo.Projection) error {
	raw, err := encodeProjection(p)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisPrefix+key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func encodeProjection(p *montecarlo.Projection) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil projection")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode projection: %w", err)
	}
	return raw, nil
}

func decodeProjection(raw []byte) (*montecarlo.Projection, error) {
	var p montecarlo.Projection
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode projection: %w", err)
	}
	return &p, nil
}
