package settings_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/on-the-ground/modelhelpers/internal/log"
	"github.com/on-the-ground/modelhelpers/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sample = `
upload_to:
  max_filename_length: 12
  file_name_template: "{model_name}/%Y/{filename}.{extension}"
cache:
  backend: memory
  default_timeout: 3
  redis:
    address: "localhost:6379"
log:
  level: debug
`

func TestParseAndLookup(t *testing.T) {
	s, err := settings.Parse([]byte(sample))
	require.NoError(t, err)

	v, err := s.Lookup(settings.UploadToMaxFilenameLength)
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	addr, err := settings.Get[string](s, settings.CacheRedisAddress)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", addr)

	_, err = s.Lookup("cache.redis.missing")
	assert.ErrorIs(t, err, settings.ErrNoSuchKey)

	_, err = settings.Get[string](s, settings.UploadToMaxFilenameLength)
	assert.Error(t, err)
	assert.Equal(t, "fallback", settings.GetOr(s, settings.UploadToMaxFilenameLength, "fallback"))
	assert.Equal(t, "debug", settings.GetOr(s, settings.LogLevel, "info"))
}

func TestChildDelegatesToParent(t *testing.T) {
	parent := settings.New(map[string]any{
		"cache": map[string]any{"backend": "redis", "default_timeout": "1m"},
	})
	child := parent.Child(map[string]any{
		"cache": map[string]any{"backend": "memory"},
	})

	backend, err := settings.Get[string](child, settings.CacheBackend)
	require.NoError(t, err)
	assert.Equal(t, "memory", backend)

	d, err := settings.GetDuration(child, settings.CacheDefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)

	assert.True(t, child.Has(settings.CacheDefaultTimeout))
	assert.False(t, child.Has(settings.CacheRedisAddress))
}

func TestNewCopiesValues(t *testing.T) {
	nested := map[any]any{"backend": "redis"}
	values := map[string]any{"cache": nested}

	s := settings.New(values)
	_ = s.Child(values)

	assert.IsType(t, map[any]any{}, values["cache"])
	assert.Equal(t, map[any]any{"backend": "redis"}, values["cache"])

	values["cache"] = map[string]any{"backend": "memory"}
	nested["backend"] = "memory"
	backend, err := settings.Get[string](s, settings.CacheBackend)
	require.NoError(t, err)
	assert.Equal(t, "redis", backend)
}

func TestGetDuration(t *testing.T) {
	s := settings.New(map[string]any{
		"seconds": 3,
		"text":    "1500ms",
		"bad":     "soon",
		"list":    []any{1},
	})

	d, err := settings.GetDuration(s, "seconds")
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, d)

	d, err = settings.GetDuration(s, "text")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	_, err = settings.GetDuration(s, "bad")
	assert.Error(t, err)
	_, err = settings.GetDuration(s, "list")
	assert.Error(t, err)
}

func TestDecodeLayersOntoDefaults(t *testing.T) {
	type options struct {
		MaxLen   int      `yaml:"max_filename_length"`
		Template string   `yaml:"file_name_template"`
		Banned   []string `yaml:"black_listed_extensions"`
	}

	parent := settings.New(map[string]any{
		"upload_to": map[string]any{"max_filename_length": 20},
	})
	child := parent.Child(map[string]any{
		"upload_to": map[string]any{"file_name_template": "{filename}.{extension}"},
	})

	out := options{MaxLen: 40, Template: "default", Banned: []string{"php"}}
	require.NoError(t, child.Decode(settings.UploadToPrefix, &out))
	assert.Equal(t, options{MaxLen: 20, Template: "{filename}.{extension}", Banned: []string{"php"}}, out)

	err := child.Decode("nothing", &out)
	assert.ErrorIs(t, err, settings.ErrNoSuchKey)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	s, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source)
	assert.Equal(t, "memory", settings.GetOr(s, settings.CacheBackend, ""))

	_, err = settings.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a: [1, 2"), 0o600))
	_, err = settings.Load(path)
	assert.Error(t, err)
}

func TestApplyLogging(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	s, err := settings.Parse([]byte(sample))
	require.NoError(t, err)
	logger, err := settings.ApplyLogging(s)
	require.NoError(t, err)
	assert.Same(t, logger, log.Default())
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))

	logger, err = settings.ApplyLogging(settings.New(nil))
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))

	_, err = settings.ApplyLogging(settings.New(map[string]any{"log": map[string]any{"level": "loud"}}))
	assert.Error(t, err)
}

func TestMustGet(t *testing.T) {
	s, err := settings.Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "memory", settings.MustGet[string](s, settings.CacheBackend))
	assert.Panics(t, func() { settings.MustGet[int](s, settings.CacheBackend) })
	assert.Panics(t, func() { settings.MustGet[string](s, "missing") })
}
