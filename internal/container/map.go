package container

import "iter"

type entry[K, V any] struct {
	key   K
	value V
}

// Map is an insertion-ordered association map backed by a List. Lookup and
// insert are O(n) linear scans using the map's equality function, which lets
// callers key by domain equality (e.g. case-insensitive ids) rather than
// structural equality.
type Map[K, V any] struct {
	entries *List[entry[K, V]]
	eq      func(a, b K) bool
}

// NewMap builds a Map keyed by ==.
func NewMap[K comparable, V any]() *Map[K, V] {
	return NewMapFunc[K, V](func(a, b K) bool { return a == b })
}

// NewMapFunc builds a Map keyed by the supplied equality function.
func NewMapFunc[K, V any](eq func(a, b K) bool) *Map[K, V] {
	return &Map[K, V]{entries: NewList[entry[K, V]](), eq: eq}
}

func (m *Map[K, V]) Len() int {
	return m.entries.Len()
}

func (m *Map[K, V]) index(k K) int {
	for i := range m.entries.Len() {
		e, _ := m.entries.Get(i)
		if m.eq(e.key, k) {
			return i
		}
	}

	return -1
}

// Put associates k with v. An existing key keeps its position in insertion
// order; only the value is replaced.
func (m *Map[K, V]) Put(k K, v V) {
	if i := m.index(k); i >= 0 {
		m.entries.Set(i, entry[K, V]{key: k, value: v})
		return
	}

	m.entries.Append(entry[K, V]{key: k, value: v})
}

func (m *Map[K, V]) Get(k K) (V, bool) {
	if i := m.index(k); i >= 0 {
		e, _ := m.entries.Get(i)
		return e.value, true
	}

	var zero V

	return zero, false
}

func (m *Map[K, V]) Contains(k K) bool {
	return m.index(k) >= 0
}

// Delete removes the entry for k. Reports whether it was present.
func (m *Map[K, V]) Delete(k K) bool {
	if i := m.index(k); i >= 0 {
		m.entries.Remove(i)
		return true
	}

	return false
}

// All iterates entries in insertion order over a snapshot.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	snap := m.entries.Slice()

	return func(yield func(K, V) bool) {
		for _, e := range snap {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Values iterates values in insertion order over a snapshot.
func (m *Map[K, V]) Values() iter.Seq[V] {
	snap := m.entries.Slice()

	return func(yield func(V) bool) {
		for _, e := range snap {
			if !yield(e.value) {
				return
			}
		}
	}
}
