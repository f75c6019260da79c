package container

// Heap is a binary min-heap over a 1-indexed backing slice with a
// caller-supplied comparator. Ties between equal elements resolve according to
// heap shape, not insertion order.
type Heap[T any] struct {
	// items[0] is unused; children of i live at 2i and 2i+1.
	items []T
	less  func(a, b T) bool
}

func NewHeap[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{items: make([]T, 1), less: less}
}

func (h *Heap[T]) Len() int {
	return len(h.items) - 1
}

// Push inserts v, restoring heap order by sifting up.
func (h *Heap[T]) Push(v T) {
	h.items = append(h.items, v)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum element.
func (h *Heap[T]) Pop() (T, bool) {
	if h.Len() == 0 {
		var zero T
		return zero, false
	}

	min := h.items[1]
	last := len(h.items) - 1
	h.items[1] = h.items[last]
	h.items = h.items[:last]
	h.siftDown(1)

	return min, true
}

// Peek returns the minimum element without removing it.
func (h *Heap[T]) Peek() (T, bool) {
	if h.Len() == 0 {
		var zero T
		return zero, false
	}

	return h.items[1], true
}

func (h *Heap[T]) siftUp(i int) {
	for i > 1 {
		parent := i / 2
		if !h.less(h.items[i], h.items[parent]) {
			return
		}

		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *Heap[T]) siftDown(i int) {
	n := len(h.items)

	for {
		smallest := i

		if left := 2 * i; left < n && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}

		if right := 2*i + 1; right < n && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}

		if smallest == i {
			return
		}

		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
