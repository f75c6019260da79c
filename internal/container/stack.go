package container

// Stack is a LIFO adapter over a List. Empty-state reads return (zero, false)
// rather than panicking.
type Stack[T any] struct {
	items *List[T]
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{items: NewList[T]()}
}

func (s *Stack[T]) Len() int {
	return s.items.Len()
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items.Append(v)
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, bool) {
	return s.items.Remove(s.items.Len() - 1)
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.items.Get(s.items.Len() - 1)
}
