package ordered

import (
	"sort"
)

type CompareFunc[T any] func(a, b T) int

// Buffer keeps its items sorted by compare as they are inserted.
// Items comparing equal keep their insertion order.
type Buffer[T any] struct {
	data    []T
	compare CompareFunc[T]
}

func NewBuffer[T any](capacity int, cmp CompareFunc[T]) *Buffer[T] {
	return &Buffer[T]{
		data:    make([]T, 0, capacity),
		compare: cmp,
	}
}

// Insert places val after every item that does not sort after it.
// A nil compare keeps plain insertion order.
func (b *Buffer[T]) Insert(val T) {
	if b.compare == nil {
		b.data = append(b.data, val)
		return
	}

	idx := sort.Search(len(b.data), func(i int) bool {
		return b.compare(val, b.data[i]) < 0
	})

	var zero T
	b.data = append(b.data, zero)
	copy(b.data[idx+1:], b.data[idx:])
	b.data[idx] = val
}

func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Drain returns the sorted items and resets the buffer.
func (b *Buffer[T]) Drain() []T {
	out := b.data
	b.data = nil
	return out
}
