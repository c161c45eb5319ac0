package choices

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// New builds a table from entries, keeping code names as given.
func New[ID comparable](entries []Entry[ID], opts ...Option) (*Choices[ID], error) {
	cfg, err := newConfig(OrderByDisplay, opts)
	if err != nil {
		return nil, err
	}
	return build(entries, cfg.orderBy, false)
}

// FromPairs builds a table from raw mapping form values, in the given order.
func FromPairs[ID comparable](pairs []Pair, opts ...Option) (*Choices[ID], error) {
	cfg, err := newConfig(OrderByDisplay, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry[ID], 0, len(pairs))
	for _, p := range pairs {
		e, err := entryFromRaw[ID](p.Name, p.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return build(entries, cfg.orderBy, false)
}

// FromMap builds a table from an unordered mapping of code name to raw value.
// A map carries no order, so it cannot be combined with OrderNone unless it
// holds at most one entry.
func FromMap[ID comparable](m map[string]any, opts ...Option) (*Choices[ID], error) {
	cfg, err := newConfig(OrderByDisplay, opts)
	if err != nil {
		return nil, err
	}
	if cfg.orderBy == OrderNone && len(m) > 1 {
		return nil, fmt.Errorf("%w: order_by none needs an ordered input, got a map", ErrConfiguration)
	}
	pairs := make([]Pair, 0, len(m))
	for _, name := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, Pair{Name: name, Value: m[name]})
	}
	return FromPairs[ID](pairs, opts...)
}

// Declare builds a declarative table: code names are upper-cased, so names
// that differ only in case collide.
func Declare[ID comparable](entries []Entry[ID], opts ...Option) (*Choices[ID], error) {
	cfg, err := newConfig(OrderByDisplay, opts)
	if err != nil {
		return nil, err
	}
	return build(entries, cfg.orderBy, true)
}

// Extend derives a declarative table from base. The base entries come first,
// in their declaration order and under their own names, followed by entries
// with upper-cased names. An entry whose upper-cased name matches an inherited
// one case-insensitively replaces it in place. The derived table keeps the
// base ordering policy unless an option says otherwise.
func Extend[ID comparable](base *Choices[ID], entries []Entry[ID], opts ...Option) (*Choices[ID], error) {
	cfg, err := newConfig(base.orderBy, opts)
	if err != nil {
		return nil, err
	}

	merged := make([]Entry[ID], len(base.declared), len(base.declared)+len(entries))
	copy(merged, base.declared)
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[strings.ToUpper(e.Name)] = i
	}

	own := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := strings.ToUpper(e.Name)
		e.Name = name
		if _, dup := own[name]; dup {
			return nil, fmt.Errorf("%w: code name %s", ErrDuplicateChoice, name)
		}
		own[name] = struct{}{}

		if i, inherited := index[name]; inherited {
			merged[i] = e
			continue
		}
		index[name] = len(merged)
		merged = append(merged, e)
	}
	c, err := build(merged, cfg.orderBy, false)
	if err != nil {
		return nil, err
	}
	c.upper = base.upper
	return c, nil
}

// Concat joins two tables. The result lists a's entries in a's order followed
// by b's in b's order and is not sorted again. Shared code names or ids fail
// with ErrDuplicateChoice.
func Concat[ID comparable](a, b *Choices[ID]) (*Choices[ID], error) {
	joined := make([]Entry[ID], 0, len(a.entries)+len(b.entries))
	joined = append(joined, a.entries...)
	joined = append(joined, b.entries...)
	return build(joined, OrderNone, a.upper && b.upper)
}

// Must panics if err is not nil. It is meant for package level tables.
func Must[ID comparable](c *Choices[ID], err error) *Choices[ID] {
	if err != nil {
		panic(err)
	}
	return c
}
