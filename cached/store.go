package cached

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// Store is the cache backend every helper in this package delegates to.
// A ttl of zero or less means the store's own default.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var (
	// ErrReadOnly is returned when setting a property that was not declared writable.
	ErrReadOnly = errors.New("cached property is read only")
	// ErrUnknownAttribute means a key attribute is neither a field nor a method of the receiver.
	ErrUnknownAttribute = errors.New("unknown key attribute")
	// ErrUnknownBackend is returned by OpenStore for an unsupported cache.backend value.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

var defaultStore atomic.Pointer[Store]

func init() {
	var s Store = NewMemoryStore(DefaultMaxEntries, 0)
	defaultStore.Store(&s)
}

// DefaultStore returns the store used by helpers created without WithStore.
func DefaultStore() Store {
	return *defaultStore.Load()
}

// SetDefaultStore replaces the package default store and returns the previous one.
// Helpers pick the default up at call time.
func SetDefaultStore(s Store) Store {
	return *defaultStore.Swap(&s)
}
