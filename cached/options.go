package cached

import (
	"slices"
	"time"

	mlog "github.com/on-the-ground/modelhelpers/internal/log"
	"go.uber.org/zap"
)

type config struct {
	store         Store
	timeout       time.Duration
	codec         Codec
	logger        *zap.Logger
	keyParameters []string
	keyAttributes []string
	writable      bool
}

// Option configures a Function, Method or Property.
type Option func(*config)

// WithStore uses s instead of the package default store.
func WithStore(s Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithTimeout sets how long results stay cached. Zero leaves it to the store.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func WithCodec(codec Codec) Option {
	return func(c *config) {
		c.codec = codec
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// KeyParameters restricts the argument parameters that make up the cache key.
// Parameters left out do not distinguish cached results.
func KeyParameters(names ...string) Option {
	return func(c *config) {
		c.keyParameters = append(c.keyParameters, names...)
	}
}

// KeyAttributes names the receiver attributes that make up a method's cache key.
func KeyAttributes(names ...string) Option {
	return func(c *config) {
		c.keyAttributes = append(slices.Clip(c.keyAttributes), names...)
		if c.keyAttributes == nil {
			c.keyAttributes = []string{}
		}
	}
}

// Writable allows Property.Set.
func Writable() Option {
	return func(c *config) {
		c.writable = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{codec: JSONCodec{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) storeOrDefault() Store {
	if c.store != nil {
		return c.store
	}
	return DefaultStore()
}

func (c *config) log() *zap.Logger {
	return mlog.Or(c.logger)
}
