// Package alert implements the process-wide, priority-ordered alert mailbox.
package alert

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/blip-cmd/xpense/internal/container"
)

// Priorities; lower is more urgent.
const (
	PriorityCritical = 1
	PriorityWarning  = 2
	PriorityInfo     = 3
)

// Alert is an ephemeral prioritized notification. It is created on demand and
// consumed when displayed.
type Alert struct {
	Message   string
	Priority  int
	CreatedAt time.Time
}

// Center is a priority-ordered mailbox built on a binary min-heap. There is
// one Center per process, owned by main; every component reports through it.
type Center struct {
	mu        sync.Mutex
	heap      *container.Heap[Alert]
	threshold decimal.Decimal
}

// NewCenter builds a Center with the given low-balance threshold.
func NewCenter(lowBalanceThreshold decimal.Decimal) *Center {
	return &Center{
		heap: container.NewHeap(func(a, b Alert) bool {
			return a.Priority < b.Priority
		}),
		threshold: lowBalanceThreshold,
	}
}

// Add enqueues an alert. It has no failure mode.
func (c *Center) Add(message string, priority int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.heap.Push(Alert{Message: message, Priority: priority, CreatedAt: time.Now()})
}

// Next removes and returns the most urgent pending alert.
func (c *Center) Next() (Alert, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.heap.Pop()
}

// HasAlerts reports whether any alert is pending.
func (c *Center) HasAlerts() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.heap.Len() > 0
}

// Pending returns the number of queued alerts.
func (c *Center) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.heap.Len()
}

// CheckLowFunds raises a critical alert when balance is below the configured
// threshold and reports whether it did. There is no deduplication: each check
// below the threshold queues a fresh alert.
func (c *Center) CheckLowFunds(accountID string, balance decimal.Decimal) bool {
	if balance.GreaterThanOrEqual(c.threshold) {
		return false
	}

	c.Add(fmt.Sprintf("low funds in account %s: balance %s below threshold %s",
		accountID, balance.StringFixed(2), c.threshold.StringFixed(2)), PriorityCritical)

	return true
}

// DrainAll removes and returns every pending alert in priority order.
func (c *Center) DrainAll() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()

	var drained []Alert

	for {
		a, ok := c.heap.Pop()
		if !ok {
			return drained
		}

		drained = append(drained, a)
	}
}
