package container_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/container"
)

func TestHeap_PopsInNonDecreasingOrder(t *testing.T) {
	h := container.NewHeap(func(a, b int) bool { return a < b })

	r := rand.New(rand.NewSource(1))
	for range 500 {
		h.Push(r.Intn(100))
	}

	require.Equal(t, 500, h.Len())

	prev, ok := h.Pop()
	require.True(t, ok)

	for h.Len() > 0 {
		v, ok := h.Pop()
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}

	_, ok = h.Pop()
	assert.False(t, ok)
}

func TestHeap_Peek(t *testing.T) {
	h := container.NewHeap(func(a, b int) bool { return a < b })

	_, ok := h.Peek()
	assert.False(t, ok)

	h.Push(5)
	h.Push(1)
	h.Push(3)

	v, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 3, h.Len())
}

func TestQueue_FIFOAndEmptySentinel(t *testing.T) {
	q := container.NewQueue[string]()

	_, ok := q.Poll()
	assert.False(t, ok)

	q.Offer("a")
	q.Offer("b")

	front, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "a", front)

	v, _ := q.Poll()
	assert.Equal(t, "a", v)
	v, _ = q.Poll()
	assert.Equal(t, "b", v)

	_, ok = q.Poll()
	assert.False(t, ok)
}

func TestStack_LIFOAndEmptySentinel(t *testing.T) {
	s := container.NewStack[string]()

	_, ok := s.Pop()
	assert.False(t, ok)

	s.Push("a")
	s.Push("b")

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "b", top)

	v, _ := s.Pop()
	assert.Equal(t, "b", v)
	v, _ = s.Pop()
	assert.Equal(t, "a", v)

	_, ok = s.Pop()
	assert.False(t, ok)
}
