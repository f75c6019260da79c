package container

// Queue is a FIFO adapter over a List. Empty-state reads return (zero, false)
// rather than panicking.
type Queue[T any] struct {
	items *List[T]
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: NewList[T]()}
}

func (q *Queue[T]) Len() int {
	return q.items.Len()
}

// Offer appends v to the back of the queue.
func (q *Queue[T]) Offer(v T) {
	q.items.Append(v)
}

// Poll removes and returns the front element.
func (q *Queue[T]) Poll() (T, bool) {
	return q.items.Remove(0)
}

// Peek returns the front element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	return q.items.Get(0)
}
