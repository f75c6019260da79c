package alert_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blip-cmd/xpense/internal/alert"
)

func threshold(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func TestCenter_NextReturnsMostUrgentFirst(t *testing.T) {
	c := alert.NewCenter(threshold(t, "100.00"))

	c.Add("info", alert.PriorityInfo)
	c.Add("critical", alert.PriorityCritical)
	c.Add("warning", alert.PriorityWarning)

	require.True(t, c.HasAlerts())

	a, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, "critical", a.Message)

	a, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "warning", a.Message)

	a, ok = c.Next()
	require.True(t, ok)
	assert.Equal(t, "info", a.Message)

	_, ok = c.Next()
	assert.False(t, ok)
	assert.False(t, c.HasAlerts())
}

func TestCenter_DrainAllIsDestructiveAndOrdered(t *testing.T) {
	c := alert.NewCenter(threshold(t, "100.00"))

	priorities := []int{5, 1, 3, 2, 4, 1}
	for _, p := range priorities {
		c.Add("msg", p)
	}

	drained := c.DrainAll()
	require.Len(t, drained, len(priorities))

	for i := 1; i < len(drained); i++ {
		assert.GreaterOrEqual(t, drained[i].Priority, drained[i-1].Priority)
	}

	assert.False(t, c.HasAlerts())
}

func TestCenter_CheckLowFunds(t *testing.T) {
	c := alert.NewCenter(threshold(t, "100.00"))

	assert.False(t, c.CheckLowFunds("A001", threshold(t, "150.00")))
	assert.False(t, c.HasAlerts())

	// Exactly at the threshold is not low.
	assert.False(t, c.CheckLowFunds("A001", threshold(t, "100.00")))

	assert.True(t, c.CheckLowFunds("A001", threshold(t, "70.00")))

	a, ok := c.Next()
	require.True(t, ok)
	assert.Equal(t, alert.PriorityCritical, a.Priority)
	assert.Contains(t, a.Message, "A001")
}

func TestCenter_CheckLowFundsNoDeduplication(t *testing.T) {
	c := alert.NewCenter(threshold(t, "100.00"))

	balance := threshold(t, "70.00")

	assert.True(t, c.CheckLowFunds("A001", balance))
	assert.True(t, c.CheckLowFunds("A001", balance))
	assert.Equal(t, 2, c.Pending())
}
