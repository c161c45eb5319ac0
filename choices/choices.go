package choices

import (
	"fmt"
	"iter"
	"strings"

	"github.com/on-the-ground/modelhelpers/internal/helper"
	"github.com/on-the-ground/modelhelpers/internal/ordered"
)

// Choices is an immutable, ordered table of entries.
type Choices[ID comparable] struct {
	// entries in resolved order
	entries []Entry[ID]
	// entries in declaration order, used when a table is extended
	declared []Entry[ID]
	byName   map[string]int
	byID     map[ID]int
	orderBy  OrderBy
	upper    bool
}

func build[ID comparable](entries []Entry[ID], orderBy OrderBy, upper bool) (*Choices[ID], error) {
	if !orderBy.valid() {
		return nil, fmt.Errorf("%w: unrecognized order_by %q", ErrConfiguration, orderBy)
	}

	declared := make([]Entry[ID], 0, len(entries))
	names := make(map[string]struct{}, len(entries))
	ids := make(map[ID]string, len(entries))
	for _, raw := range entries {
		e, err := normalizeEntry(raw, upper)
		if err != nil {
			return nil, err
		}
		if _, dup := names[e.Name]; dup {
			return nil, fmt.Errorf("%w: code name %s", ErrDuplicateChoice, e.Name)
		}
		if other, dup := ids[e.ID]; dup {
			return nil, fmt.Errorf("%w: id %v used by %s and %s", ErrDuplicateChoice, any(e.ID), other, e.Name)
		}
		names[e.Name] = struct{}{}
		ids[e.ID] = e.Name
		declared = append(declared, e)
	}

	var compare ordered.CompareFunc[Entry[ID]]
	switch orderBy {
	case OrderByDisplay:
		compare = func(a, b Entry[ID]) int {
			return strings.Compare(a.Display, b.Display)
		}
	case OrderByID:
		if err := checkOrderable(declared); err != nil {
			return nil, err
		}
		compare = func(a, b Entry[ID]) int {
			return compareIDs(a.ID, b.ID)
		}
	}
	buf := ordered.NewBuffer(len(declared), compare)
	for _, e := range declared {
		buf.Insert(e)
	}

	c := &Choices[ID]{
		entries:  buf.Drain(),
		declared: declared,
		byName:   make(map[string]int, len(declared)),
		byID:     make(map[ID]int, len(declared)),
		orderBy:  orderBy,
		upper:    upper,
	}
	for i, e := range c.entries {
		c.byName[e.Name] = i
		c.byID[e.ID] = i
	}
	return c, nil
}

// Choices returns the (id, label) pairs in resolved order.
// Every call returns a fresh slice with the same content.
func (c *Choices[ID]) Choices() []Choice[ID] {
	out := make([]Choice[ID], len(c.entries))
	for i, e := range c.entries {
		out[i] = Choice[ID]{Value: e.ID, Label: e.Display}
	}
	return out
}

// ID returns the id of the entry called name.
func (c *Choices[ID]) ID(name string) (ID, error) {
	i, ok := c.byName[name]
	if !ok {
		var zero ID
		return zero, fmt.Errorf("%w: %s", ErrUnknownChoice, name)
	}
	return c.entries[i].ID, nil
}

// MustID is like ID but panics when name is unknown.
func (c *Choices[ID]) MustID(name string) ID {
	id, err := c.ID(name)
	if err != nil {
		panic(err)
	}
	return id
}

// Lookup returns the entry called name.
func (c *Choices[ID]) Lookup(name string) (Entry[ID], bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry[ID]{}, false
	}
	return c.entries[i].clone(), true
}

// Choice returns the entry whose id is id.
func (c *Choices[ID]) Choice(id ID) (Entry[ID], error) {
	i, ok := c.byID[id]
	if !ok {
		return Entry[ID]{}, fmt.Errorf("%w: id %v", ErrChoiceNotFound, any(id))
	}
	return c.entries[i].clone(), nil
}

// DisplayName returns the label of the entry whose id is id.
func (c *Choices[ID]) DisplayName(id ID) (string, error) {
	e, err := c.Choice(id)
	return e.Display, err
}

// ChoiceName returns the code name of the entry whose id is id.
func (c *Choices[ID]) ChoiceName(id ID) (string, error) {
	e, err := c.Choice(id)
	return e.Name, err
}

// Value returns attribute key of the entry whose id is id.
// The built-in keys id, display and name are always present.
func (c *Choices[ID]) Value(id ID, key string) (any, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %v", ErrChoiceNotFound, any(id))
	}
	v, ok := c.entries[i].Value(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q of %s", ErrUnknownAttribute, key, c.entries[i].Name)
	}
	return v, nil
}

// ValueAs is Value with the result asserted to T.
func ValueAs[T any, ID comparable](c *Choices[ID], id ID, key string) (T, error) {
	return helper.GetTypedValueOf[T](func() (any, error) {
		return c.Value(id, key)
	})
}

// Contains reports whether an entry carries id.
func (c *Choices[ID]) Contains(id ID) bool {
	_, ok := c.byID[id]
	return ok
}

// Validate fails with ErrChoiceNotFound unless id belongs to the table.
// It is meant for checking a field value before it is stored.
func (c *Choices[ID]) Validate(id ID) error {
	if !c.Contains(id) {
		return fmt.Errorf("%w: %v is not a valid choice", ErrChoiceNotFound, any(id))
	}
	return nil
}

func (c *Choices[ID]) Len() int {
	return len(c.entries)
}

func (c *Choices[ID]) OrderBy() OrderBy {
	return c.orderBy
}

// Names yields the code names in resolved order.
func (c *Choices[ID]) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range c.entries {
			if !yield(e.Name) {
				return
			}
		}
	}
}

// IDs yields the ids in resolved order.
func (c *Choices[ID]) IDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, e := range c.entries {
			if !yield(e.ID) {
				return
			}
		}
	}
}

// All yields (code name, id) pairs in resolved order.
func (c *Choices[ID]) All() iter.Seq2[string, ID] {
	return func(yield func(string, ID) bool) {
		for _, e := range c.entries {
			if !yield(e.Name, e.ID) {
				return
			}
		}
	}
}

// Entries yields copies of the entries in resolved order.
func (c *Choices[ID]) Entries() iter.Seq[Entry[ID]] {
	return func(yield func(Entry[ID]) bool) {
		for _, e := range c.entries {
			if !yield(e.clone()) {
				return
			}
		}
	}
}
