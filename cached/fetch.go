package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// fetch returns the cached value under key, computing and storing it on a
// miss. Concurrent misses for one key share a single compute.
func fetch[R any](ctx context.Context, c *config, group *singleflight.Group, key string, compute func(context.Context) (R, error)) (R, error) {
	var zero R
	store := c.storeOrDefault()
	logger := c.log()

	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return zero, fmt.Errorf("cache get %s: %w", key, err)
	}
	if ok {
		var r R
		err := c.codec.Unmarshal(raw, &r)
		if err == nil {
			logger.Debug("cache hit", zap.String("key", key))
			return r, nil
		}
		logger.Warn("recomputing undecodable cache entry", zap.String("key", key), zap.Error(err))
	}
	logger.Debug("cache miss", zap.String("key", key))

	// The shared compute outlives any one caller's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		r, err := compute(shared)
		if err != nil {
			return nil, err
		}
		return storeValue(shared, c, store, key, r)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return zero, res.Err
	}
	var r R
	if err := c.codec.Unmarshal(res.Val.([]byte), &r); err != nil {
		return zero, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return r, nil
}

func storeValue(ctx context.Context, c *config, store Store, key string, value any) ([]byte, error) {
	raw, err := c.codec.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw, c.timeout); err != nil {
		return nil, fmt.Errorf("cache set %s: %w", key, err)
	}
	return raw, nil
}

func forget(ctx context.Context, c *config, key string) error {
	if err := c.storeOrDefault().Delete(ctx, key); err != nil {
		return fmt.Errorf("cache delete %s: %w", key, err)
	}
	c.log().Debug("cache forget", zap.String("key", key))
	return nil
}
