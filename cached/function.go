package cached

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/sync/singleflight"
)

// Function caches the results of fn. Calls whose key parameters render the
// same share one cached result.
type Function[A, R any] struct {
	name     string
	fn       func(ctx context.Context, args A) (R, error)
	cfg      *config
	argsType reflect.Type
	group    singleflight.Group
}

// NewFunction wraps fn. The name must be unique among cached functions
// sharing a store. It panics when KeyParameters names a parameter A does not have.
func NewFunction[A, R any](name string, fn func(ctx context.Context, args A) (R, error), opts ...Option) *Function[A, R] {
	cfg := newConfig(opts)
	t := reflect.TypeFor[A]()
	mustKnowParameters(name, t, cfg.keyParameters)
	return &Function[A, R]{name: name, fn: fn, cfg: cfg, argsType: structType(t)}
}

// Call returns the cached result for args, calling the wrapped function on a miss.
// Errors are returned as is and never cached.
func (f *Function[A, R]) Call(ctx context.Context, args A) (R, error) {
	key, err := f.Key(args)
	if err != nil {
		var zero R
		return zero, err
	}
	return fetch(ctx, f.cfg, &f.group, key, func(ctx context.Context) (R, error) {
		return f.fn(ctx, args)
	})
}

// Key returns the cache key Call uses for args.
func (f *Function[A, R]) Key(args A) (string, error) {
	return Key(f.name, argsOf(args, f.argsType, f.cfg.keyParameters)...)
}

// Forget drops the cached result for args.
func (f *Function[A, R]) Forget(ctx context.Context, args A) error {
	key, err := f.Key(args)
	if err != nil {
		return err
	}
	return forget(ctx, f.cfg, key)
}

func mustKnowParameters(name string, t reflect.Type, keep []string) {
	known := parameterNames(t)
	for _, p := range keep {
		if !slices.Contains(known, p) {
			panic(fmt.Sprintf("cached %s: unknown key parameter %q, have %v", name, p, known))
		}
	}
}
