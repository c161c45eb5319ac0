package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/on-the-ground/modelhelpers/internal/helper"
	"github.com/on-the-ground/modelhelpers/internal/log"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrNoSuchKey is returned when neither a layer nor any of its parents holds the key.
var ErrNoSuchKey = errors.New("key not found")

// Settings is one layer of configuration values.
// Lookups that miss locally are delegated to the parent layer.
type Settings struct {
	Source string

	parent *Settings
	values map[string]any
}

// New returns a root layer holding values.
func New(values map[string]any) *Settings {
	return &Settings{values: normalizeValues(values)}
}

// Child returns a layer on top of s. Values in the child shadow the parent.
func (s *Settings) Child(values map[string]any) *Settings {
	return &Settings{parent: s, values: normalizeValues(values)}
}

// Parse decodes a YAML document into a root layer.
func Parse(data []byte) (*Settings, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return New(values), nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Settings, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	log.Default().Debug("loaded settings", zap.String("source", path))
	return s, nil
}

// Lookup traverses the layers using a dotted key path.
func (s *Settings) Lookup(key string) (any, error) {
	for layer := s; layer != nil; layer = layer.parent {
		if v, ok := layer.get(key); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSuchKey, key)
}

// Has reports whether any layer holds key.
func (s *Settings) Has(key string) bool {
	_, err := s.Lookup(key)
	return err == nil
}

func (s *Settings) get(key string) (any, bool) {
	var current any = s.values
	for _, part := range strings.Split(key, delimiter) {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = m[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// Decode applies the value found under key in every layer, root first, onto out.
// Fields missing from a layer keep whatever out already held, so out can be
// pre-filled with defaults.
func (s *Settings) Decode(key string, out any) error {
	var layers []*Settings
	for layer := s; layer != nil; layer = layer.parent {
		layers = append(layers, layer)
	}
	found := false
	for i := len(layers) - 1; i >= 0; i-- {
		v, ok := layers[i].get(key)
		if !ok {
			continue
		}
		found = true
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		if err := yaml.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNoSuchKey, key)
	}
	return nil
}

// Get fetches a typed value for key.
func Get[T any](s *Settings, key string) (T, error) {
	return helper.GetTypedValueOf[T](func() (any, error) {
		return s.Lookup(key)
	})
}

// MustGet is like Get but panics when the key is missing or mistyped.
func MustGet[T any](s *Settings, key string) T {
	return helper.MustGetTypedValue[T](func() (any, error) {
		return s.Lookup(key)
	})
}

// GetOr is like Get but falls back to def when the key is missing or mistyped.
func GetOr[T any](s *Settings, key string, def T) T {
	if s == nil {
		return def
	}
	v, err := Get[T](s, key)
	if err != nil {
		return def
	}
	return v
}

// GetDuration reads key as a duration string ("90s", "5m") or a number of seconds.
func GetDuration(s *Settings, key string) (time.Duration, error) {
	v, err := s.Lookup(key)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return d, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("%s: %w: %T", key, helper.ErrUnexpectedType, v)
	}
}

// normalizeValues copies values, turning nested map[any]any and nil maps into
// map[string]any. The caller's maps are never written.
func normalizeValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return normalizeValues(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, inner := range v {
			m[fmt.Sprint(k)] = normalizeValue(inner)
		}
		return m
	default:
		return v
	}
}

// ApplyLogging builds a logger at the log.level found in s (info when unset)
// and installs it as the module wide logger used by every package.
func ApplyLogging(s *Settings) (*zap.Logger, error) {
	level := GetOr(s, LogLevel, string(log.LogInfo))
	logger, err := log.New(log.LogLevel(level))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogLevel, err)
	}
	log.SetDefault(logger)
	return logger, nil
}
