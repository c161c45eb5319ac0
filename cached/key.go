package cached

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
)

const argParameter = "arg"

type signature struct {
	Name string      `json:"name"`
	Args [][2]string `json:"args"`
}

// Key derives a cache key from a name and named argument values. Arguments
// are rendered with %#v and hashed in the order given.
func Key(name string, args ...NamedArg) (string, error) {
	sig := signature{Name: name, Args: make([][2]string, 0, len(args))}
	for _, a := range args {
		sig.Args = append(sig.Args, [2]string{a.Name, fmt.Sprintf("%#v", deref(a.Value))})
	}
	raw, err := json.Marshal(sig)
	if err != nil {
		return "", fmt.Errorf("cache key %s: %w", name, err)
	}
	return name + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

// NamedArg is one value participating in a cache key.
type NamedArg struct {
	Name  string
	Value any
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

// parameterNames lists the key parameters a value of type t exposes: the
// exported fields of a struct, renamed by a `cache` tag and skipped with
// `cache:"-"`, or the single parameter "arg" for anything else.
func parameterNames(t reflect.Type) []string {
	st := structType(t)
	if st == nil {
		return []string{argParameter}
	}
	var names []string
	for f := range fieldsOf(st) {
		names = append(names, f.name)
	}
	return names
}

type field struct {
	name  string
	index []int
}

func fieldsOf(t reflect.Type) iter.Seq[field] {
	return func(yield func(field) bool) {
		for _, f := range reflect.VisibleFields(t) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			name := f.Name
			if tag, ok := f.Tag.Lookup("cache"); ok {
				if tag == "-" {
					continue
				}
				if tag != "" {
					name = tag
				}
			}
			if !yield(field{name: name, index: f.Index}) {
				return
			}
		}
	}
}

// argsOf extracts the named values of v, restricted to keep when it is
// non-empty. With a struct type st, v contributes its fields. Otherwise v
// is the single parameter "arg".
func argsOf(v any, st reflect.Type, keep []string) []NamedArg {
	if st == nil {
		if len(keep) > 0 && !slices.Contains(keep, argParameter) {
			return nil
		}
		return []NamedArg{{Name: argParameter, Value: v}}
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	var args []NamedArg
	for f := range fieldsOf(st) {
		if len(keep) > 0 && !slices.Contains(keep, f.name) {
			continue
		}
		if rv.Kind() != reflect.Struct {
			args = append(args, NamedArg{Name: f.name})
			continue
		}
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			args = append(args, NamedArg{Name: f.name})
			continue
		}
		args = append(args, NamedArg{Name: f.name, Value: fv.Interface()})
	}
	return args
}

// structType returns the struct type behind t, or nil.
func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}

// attributesOf reads the named attributes of a receiver. A zero-argument
// method with one result wins over an exported field of the same name.
func attributesOf(obj any, names []string) ([]NamedArg, error) {
	rv := reflect.ValueOf(obj)
	args := make([]NamedArg, 0, len(names))
	for _, name := range names {
		v, err := attribute(rv, name)
		if err != nil {
			return nil, err
		}
		args = append(args, NamedArg{Name: name, Value: v})
	}
	return args, nil
}

func attribute(rv reflect.Value, name string) (any, error) {
	if !rv.IsValid() {
		return nil, fmt.Errorf("%w: %s on nil receiver", ErrUnknownAttribute, name)
	}
	if m := rv.MethodByName(name); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
		return m.Call(nil)[0].Interface(), nil
	}
	s := rv
	for s.Kind() == reflect.Pointer || s.Kind() == reflect.Interface {
		if s.IsNil() {
			return nil, fmt.Errorf("%w: %s on nil receiver", ErrUnknownAttribute, name)
		}
		s = s.Elem()
	}
	if s.Kind() == reflect.Struct {
		if sf, ok := s.Type().FieldByName(name); ok && sf.IsExported() {
			return s.FieldByIndex(sf.Index).Interface(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrUnknownAttribute, name, rv.Type())
}
