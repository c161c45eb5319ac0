package keyvalue

import (
	"database/sql/driver"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

const DefaultSeparator = "="

// Container is an ordered string to string mapping. Keys keep the order they
// were first set in. The zero value is an empty container using DefaultSeparator.
type Container struct {
	sep    string
	keys   []string
	values map[string]string
}

// New returns an empty container. An empty separator means DefaultSeparator.
func New(sep string) *Container {
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Container{sep: sep, values: make(map[string]string)}
}

// FromMap builds a container from values, keys sorted.
func FromMap[V any](values map[string]V, sep string) *Container {
	c := New(sep)
	for _, k := range slices.Sorted(maps.Keys(values)) {
		c.Set(k, values[k])
	}
	return c
}

// Parse reads one pair per line. Lines are trimmed and blank ones skipped;
// a line splits on the first separator and both halves are trimmed.
func Parse(text, sep string) (*Container, error) {
	c := New(sep)
	if err := c.parse(text); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) parse(text string) error {
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, c.Separator())
		if !ok {
			return &SyntaxError{Line: i + 1, Text: line, Separator: c.Separator()}
		}
		c.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return nil
}

func (c *Container) Separator() string {
	if c.sep == "" {
		return DefaultSeparator
	}
	return c.sep
}

// Set stores value as text. nil is stored as "".
func (c *Container) Set(key string, value any) {
	var s string
	if value != nil {
		s = fmt.Sprint(value)
	}
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = s
}

func (c *Container) Get(key string) (string, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Delete removes key and reports whether it was present.
func (c *Container) Delete(key string) bool {
	if _, ok := c.values[key]; !ok {
		return false
	}
	delete(c.values, key)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == key })
	return true
}

func (c *Container) Len() int {
	return len(c.keys)
}

func (c *Container) Keys() iter.Seq[string] {
	return slices.Values(c.keys)
}

func (c *Container) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Update sets every pair of values, in sorted key order for new keys.
func (c *Container) Update(values map[string]any) {
	for _, k := range slices.Sorted(maps.Keys(values)) {
		c.Set(k, values[k])
	}
}

// Merge sets every pair of other, in other's order.
func (c *Container) Merge(other *Container) {
	for k, v := range other.All() {
		c.Set(k, v)
	}
}

// Map returns a copy of the pairs.
func (c *Container) Map() map[string]string {
	return maps.Clone(c.values)
}

// String renders "key sep value" lines, each ending in a newline.
func (c *Container) String() string {
	var b strings.Builder
	for k, v := range c.All() {
		b.WriteString(k)
		b.WriteByte(' ')
		b.WriteString(c.Separator())
		b.WriteByte(' ')
		b.WriteString(v)
		b.WriteByte('\n')
	}
	return b.String()
}

// Scan implements sql.Scanner. Existing pairs are replaced; the separator is
// kept. A zero Container scans with DefaultSeparator. On error the container
// is left unchanged.
func (c *Container) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnsupportedValue, src)
	}
	fresh := &Container{sep: c.sep, values: make(map[string]string)}
	if err := fresh.parse(text); err != nil {
		return err
	}
	c.keys, c.values = fresh.keys, fresh.values
	return nil
}

// Value implements driver.Valuer.
func (c *Container) Value() (driver.Value, error) {
	if c == nil {
		return "", nil
	}
	return c.String(), nil
}
