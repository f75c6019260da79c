// Package container holds the generic collection primitives the rest of the
// application is built from: a dynamic sequence, an insertion-ordered
// association map, a unique set, FIFO/LIFO adapters, an ordered-key map and a
// binary min-heap. The types are not safe for concurrent use; owners are
// expected to serialize access.
package container

import (
	"iter"
	"slices"
)

// List is a dynamic sequence with amortized O(1) append via capacity doubling.
type List[T any] struct {
	items []T
}

func NewList[T any]() *List[T] {
	return &List[T]{}
}

func (l *List[T]) Len() int {
	return len(l.items)
}

// Append adds v to the end of the sequence, doubling capacity when full.
func (l *List[T]) Append(v T) {
	if len(l.items) == cap(l.items) {
		grown := make([]T, len(l.items), max(4, 2*cap(l.items)))
		copy(grown, l.items)
		l.items = grown
	}

	l.items = append(l.items, v)
}

// Get returns the element at index i, or false if i is out of range.
func (l *List[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}

	return l.items[i], true
}

// Set overwrites the element at index i. Reports whether i was in range.
func (l *List[T]) Set(i int, v T) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}

	l.items[i] = v

	return true
}

// Insert places v at index i, shifting later elements right. i == Len appends.
func (l *List[T]) Insert(i int, v T) bool {
	if i < 0 || i > len(l.items) {
		return false
	}

	l.items = slices.Insert(l.items, i, v)

	return true
}

// Remove deletes and returns the element at index i.
func (l *List[T]) Remove(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}

	v := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)

	return v, true
}

// All returns a restartable iterator over a snapshot of the current contents.
// Mutations made after the call do not affect the returned sequence.
func (l *List[T]) All() iter.Seq[T] {
	snap := slices.Clone(l.items)

	return func(yield func(T) bool) {
		for _, v := range snap {
			if !yield(v) {
				return
			}
		}
	}
}

// Slice returns a copy of the current contents.
func (l *List[T]) Slice() []T {
	return slices.Clone(l.items)
}
