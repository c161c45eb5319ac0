package cached

import (
	"context"
	"errors"
	"fmt"

	mlog "github.com/on-the-ground/modelhelpers/internal/log"
	"github.com/on-the-ground/modelhelpers/settings"
	"go.uber.org/zap"
)

// Backend names accepted under cache.backend.
const (
	BackendMemory    = "memory"
	BackendRistretto = "ristretto"
	BackendRedis     = "redis"
)

// OpenStore builds the store described by the cache section of s. Without a
// cache.backend key it returns a memory store.
func OpenStore(ctx context.Context, s *settings.Settings) (Store, error) {
	backend := settings.GetOr(s, settings.CacheBackend, BackendMemory)
	defaultTTL, ttlErr := settings.GetDuration(s, settings.CacheDefaultTimeout)
	if ttlErr != nil && !errors.Is(ttlErr, settings.ErrNoSuchKey) {
		return nil, ttlErr
	}

	var (
		store Store
		err   error
	)
	switch backend {
	case BackendMemory:
		store = NewMemoryStore(settings.GetOr(s, settings.CacheMaxEntries, DefaultMaxEntries), defaultTTL)
	case BackendRistretto:
		config := DefaultRistrettoConfig()
		config.DefaultTTL = defaultTTL
		store, err = NewRistrettoStore(config)
	case BackendRedis:
		options := DefaultRedisOptions()
		if err := s.Decode(settings.CacheRedisSection, &options); err != nil && !errors.Is(err, settings.ErrNoSuchKey) {
			return nil, err
		}
		options.DefaultTTL = defaultTTL
		store, err = OpenRedisStore(ctx, options)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	mlog.Default().Info("cache store opened", zap.String("backend", backend), zap.Duration("default_timeout", defaultTTL))
	return store, nil
}
