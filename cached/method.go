package cached

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/singleflight"
)

const attributePrefix = "class."

// Method caches the results of a function of a receiver. The receiver
// contributes the attributes named with KeyAttributes to the key.
type Method[O, A, R any] struct {
	name     string
	fn       func(ctx context.Context, obj O, args A) (R, error)
	cfg      *config
	argsType reflect.Type
	group    singleflight.Group
}

// NewMethod wraps fn. KeyAttributes must be given, even with no names, to
// state which receiver attributes affect the result; NewMethod panics otherwise.
func NewMethod[O, A, R any](name string, fn func(ctx context.Context, obj O, args A) (R, error), opts ...Option) *Method[O, A, R] {
	cfg := newConfig(opts)
	if cfg.keyAttributes == nil {
		panic(fmt.Sprintf("cached %s: a method needs KeyAttributes naming the receiver attributes that affect its result", name))
	}
	t := reflect.TypeFor[A]()
	mustKnowParameters(name, t, cfg.keyParameters)
	return &Method[O, A, R]{name: name, fn: fn, cfg: cfg, argsType: structType(t)}
}

func (m *Method[O, A, R]) Call(ctx context.Context, obj O, args A) (R, error) {
	key, err := m.Key(obj, args)
	if err != nil {
		var zero R
		return zero, err
	}
	return fetch(ctx, m.cfg, &m.group, key, func(ctx context.Context) (R, error) {
		return m.fn(ctx, obj, args)
	})
}

func (m *Method[O, A, R]) Key(obj O, args A) (string, error) {
	named := argsOf(args, m.argsType, m.cfg.keyParameters)
	attrs, err := attributesOf(obj, m.cfg.keyAttributes)
	if err != nil {
		return "", fmt.Errorf("cached %s: %w", m.name, err)
	}
	for _, a := range attrs {
		named = append(named, NamedArg{Name: attributePrefix + a.Name, Value: a.Value})
	}
	return Key(m.name, named...)
}

func (m *Method[O, A, R]) Forget(ctx context.Context, obj O, args A) error {
	key, err := m.Key(obj, args)
	if err != nil {
		return err
	}
	return forget(ctx, m.cfg, key)
}
