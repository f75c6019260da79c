package container

import "iter"

// Set is a unique collection backed by a List. Membership and insert are O(n)
// scans using the set's equality function.
type Set[T any] struct {
	items *List[T]
	eq    func(a, b T) bool
}

// NewSet builds a Set keyed by ==.
func NewSet[T comparable]() *Set[T] {
	return NewSetFunc(func(a, b T) bool { return a == b })
}

// NewSetFunc builds a Set keyed by the supplied equality function.
func NewSetFunc[T any](eq func(a, b T) bool) *Set[T] {
	return &Set[T]{items: NewList[T](), eq: eq}
}

func (s *Set[T]) Len() int {
	return s.items.Len()
}

func (s *Set[T]) Contains(v T) bool {
	for existing := range s.items.All() {
		if s.eq(existing, v) {
			return true
		}
	}

	return false
}

// Add inserts v. Reports whether the set changed; duplicates are rejected.
func (s *Set[T]) Add(v T) bool {
	if s.Contains(v) {
		return false
	}

	s.items.Append(v)

	return true
}

// All iterates members in insertion order over a snapshot.
func (s *Set[T]) All() iter.Seq[T] {
	return s.items.All()
}
