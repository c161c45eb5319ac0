package cached

import (
	"context"
	"fmt"
	"time"

	ristretto "github.com/dgraph-io/ristretto/v2"
)

// RistrettoConfig sizes a ristretto backed store.
type RistrettoConfig struct {
	NumCounters int64
	MaxCost     int64
	BufferItems int64
	DefaultTTL  time.Duration
}

func DefaultRistrettoConfig() RistrettoConfig {
	return RistrettoConfig{
		NumCounters: 1e7,     // number of keys to track frequency of (10M).
		MaxCost:     1 << 30, // maximum cost of cache (1GB).
		BufferItems: 64,      // number of keys per Get buffer.
	}
}

// RistrettoStore is a Store over a ristretto cache. The cost of a value is its size in bytes.
type RistrettoStore struct {
	cache      *ristretto.Cache[string, []byte]
	defaultTTL time.Duration
}

func NewRistrettoStore(cfg RistrettoConfig) (*RistrettoStore, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("ristretto store: %w", err)
	}
	return &RistrettoStore{cache: cache, defaultTTL: cfg.DefaultTTL}, nil
}

func (r *RistrettoStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set waits for the write to be applied so that a following Get observes it.
// Ristretto may still reject the value under its admission policy.
func (r *RistrettoStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	value = append([]byte(nil), value...)
	r.cache.SetWithTTL(key, value, int64(len(value))+1, ttl)
	r.cache.Wait()
	return nil
}

func (r *RistrettoStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.cache.Del(key)
	return nil
}

func (r *RistrettoStore) Close() error {
	r.cache.Close()
	return nil
}
