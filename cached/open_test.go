package cached_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/on-the-ground/modelhelpers/cached"
	"github.com/on-the-ground/modelhelpers/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory by default", func(t *testing.T) {
		store, err := cached.OpenStore(ctx, settings.New(nil))
		require.NoError(t, err)
		assert.IsType(t, &cached.MemoryStore{}, store)
	})

	t.Run("memory without timeout", func(t *testing.T) {
		s := settings.New(map[string]any{"cache": map[string]any{"backend": "memory", "max_entries": 2}})
		store, err := cached.OpenStore(ctx, s)
		require.NoError(t, err)
		require.IsType(t, &cached.MemoryStore{}, store)
		require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
		got, ok, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("ristretto", func(t *testing.T) {
		s, err := settings.Parse([]byte("cache:\n  backend: ristretto\n  default_timeout: 5m\n"))
		require.NoError(t, err)
		store, err := cached.OpenStore(ctx, s)
		require.NoError(t, err)
		require.IsType(t, &cached.RistrettoStore{}, store)
		_ = store.(*cached.RistrettoStore).Close()
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		s := settings.New(map[string]any{
			"cache": map[string]any{
				"backend":         "redis",
				"default_timeout": 30,
				"redis": map[string]any{
					"address":    mr.Addr(),
					"key_prefix": "app:",
				},
			},
		})
		store, err := cached.OpenStore(ctx, s)
		require.NoError(t, err)
		require.IsType(t, &cached.RedisStore{}, store)
		t.Cleanup(func() { _ = store.(*cached.RedisStore).Close() })

		require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
		assert.True(t, mr.Exists("app:k"))
		assert.Equal(t, 30*time.Second, mr.TTL("app:k"))
	})

	t.Run("unknown backend", func(t *testing.T) {
		s := settings.New(map[string]any{"cache": map[string]any{"backend": "memcached"}})
		_, err := cached.OpenStore(ctx, s)
		assert.ErrorIs(t, err, cached.ErrUnknownBackend)
	})

	t.Run("bad timeout", func(t *testing.T) {
		s := settings.New(map[string]any{"cache": map[string]any{"default_timeout": "soon"}})
		_, err := cached.OpenStore(ctx, s)
		assert.Error(t, err)
	})
}
