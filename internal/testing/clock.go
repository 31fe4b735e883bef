package testing

import (
	"sync"
	"time"
)

// ManualClock is a controllable clock that stamps journal records.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock returns a clock set to January 1, 2020, 00:00:00 UTC.
func NewManualClock() *ManualClock {
	return &ManualClock{current: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
