package container_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/container"
)

func TestMap_LastWriteWinsAndDistinctKeySize(t *testing.T) {
	m := container.NewMap[string, int]()

	pairs := []struct {
		key   string
		value int
	}{
		{"a", 1},
		{"b", 2},
		{"a", 3},
		{"c", 4},
		{"b", 5},
	}

	for _, p := range pairs {
		m.Put(p.key, p.value)
	}

	assert.Equal(t, 3, m.Len())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = m.Get("c")
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestMap_PutKeepsInsertionOrder(t *testing.T) {
	m := container.NewMap[string, int]()
	m.Put("first", 1)
	m.Put("second", 2)
	m.Put("third", 3)

	// Replacing an existing key must not move it.
	m.Put("first", 10)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}

	assert.Equal(t, []string{"first", "second", "third"}, keys)
}

func TestMap_DomainEquality(t *testing.T) {
	m := container.NewMapFunc[string, int](strings.EqualFold)

	m.Put("Food", 1)
	m.Put("FOOD", 2)

	assert.Equal(t, 1, m.Len())

	v, ok := m.Get("food")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestMap_Delete(t *testing.T) {
	m := container.NewMap[string, int]()
	m.Put("a", 1)

	assert.True(t, m.Delete("a"))
	assert.False(t, m.Delete("a"))
	assert.Equal(t, 0, m.Len())

	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestSet_RejectsDuplicates(t *testing.T) {
	s := container.NewSetFunc(strings.EqualFold)

	assert.True(t, s.Add("Food"))
	assert.False(t, s.Add("FOOD"))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("food"))
	assert.False(t, s.Contains("travel"))
}
