package container

import (
	"cmp"
	"iter"
	"slices"
)

// TreeMap is a map over a totally ordered key type with ordered iteration and
// O(log n) point lookup. It is backed by a sorted slice with binary search, so
// sorted-order insertion does not degenerate the way an unbalanced tree does.
type TreeMap[K cmp.Ordered, V any] struct {
	keys   []K
	values []V
}

func NewTreeMap[K cmp.Ordered, V any]() *TreeMap[K, V] {
	return &TreeMap[K, V]{}
}

func (t *TreeMap[K, V]) Len() int {
	return len(t.keys)
}

// Put associates k with v, replacing any existing value.
func (t *TreeMap[K, V]) Put(k K, v V) {
	i, found := slices.BinarySearch(t.keys, k)
	if found {
		t.values[i] = v
		return
	}

	t.keys = slices.Insert(t.keys, i, k)
	t.values = slices.Insert(t.values, i, v)
}

func (t *TreeMap[K, V]) Get(k K) (V, bool) {
	i, found := slices.BinarySearch(t.keys, k)
	if !found {
		var zero V
		return zero, false
	}

	return t.values[i], true
}

func (t *TreeMap[K, V]) Contains(k K) bool {
	_, found := slices.BinarySearch(t.keys, k)
	return found
}

// Delete removes the entry for k. Reports whether it was present.
func (t *TreeMap[K, V]) Delete(k K) bool {
	i, found := slices.BinarySearch(t.keys, k)
	if !found {
		return false
	}

	t.keys = slices.Delete(t.keys, i, i+1)
	t.values = slices.Delete(t.values, i, i+1)

	return true
}

// Max returns the largest key, or false if the map is empty.
func (t *TreeMap[K, V]) Max() (K, bool) {
	if len(t.keys) == 0 {
		var zero K
		return zero, false
	}

	return t.keys[len(t.keys)-1], true
}

// All iterates entries in ascending key order over a snapshot.
func (t *TreeMap[K, V]) All() iter.Seq2[K, V] {
	keys := slices.Clone(t.keys)
	values := slices.Clone(t.values)

	return func(yield func(K, V) bool) {
		for i, k := range keys {
			if !yield(k, values[i]) {
				return
			}
		}
	}
}
