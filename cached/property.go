package cached

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/singleflight"
)

// Model is anything with a primary key. Two values with the same type and
// primary key share cached properties.
type Model interface {
	PK() any
}

// Property is a cached, argument-less value derived from a model.
type Property[O Model, R any] struct {
	name  string
	fn    func(ctx context.Context, obj O) (R, error)
	cfg   *config
	group singleflight.Group
}

// NewProperty wraps fn. Properties are read only unless Writable is given.
func NewProperty[O Model, R any](name string, fn func(ctx context.Context, obj O) (R, error), opts ...Option) *Property[O, R] {
	return &Property[O, R]{
		name: ownerName(reflect.TypeFor[O]()) + "." + name,
		fn:   fn,
		cfg:  newConfig(opts),
	}
}

func ownerName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// Get returns the cached value for obj, computing it on a miss.
func (p *Property[O, R]) Get(ctx context.Context, obj O) (R, error) {
	key, err := p.Key(obj)
	if err != nil {
		var zero R
		return zero, err
	}
	return fetch(ctx, p.cfg, &p.group, key, func(ctx context.Context) (R, error) {
		return p.fn(ctx, obj)
	})
}

// Set replaces the cached value for obj.
func (p *Property[O, R]) Set(ctx context.Context, obj O, value R) error {
	if !p.cfg.writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, p.name)
	}
	key, err := p.Key(obj)
	if err != nil {
		return err
	}
	_, err = storeValue(ctx, p.cfg, p.cfg.storeOrDefault(), key, value)
	return err
}

// Delete drops the cached value for obj so the next Get recomputes it.
func (p *Property[O, R]) Delete(ctx context.Context, obj O) error {
	key, err := p.Key(obj)
	if err != nil {
		return err
	}
	return forget(ctx, p.cfg, key)
}

func (p *Property[O, R]) Key(obj O) (string, error) {
	return Key(p.name, NamedArg{Name: attributePrefix + "pk", Value: obj.PK()})
}

// Writable reports whether Set is allowed.
func (p *Property[O, R]) Writable() bool {
	return p.cfg.writable
}
