package datekey

import (
	"sync"
	"time"
)

// Clock supplies "today". Engines never read the wall clock directly.
type Clock interface {
	Today() DateKey
}

// SystemClock reads the wall clock in Location (UTC when nil).
type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{Location: loc}
}

func (c SystemClock) Today() DateKey {
	now := time.Now()
	if c.Location != nil {
		now = now.In(c.Location)
	} else {
		now = now.UTC()
	}
	return FromTime(now)
}

// FixedClock is a settable clock for tests and batch jobs.
type FixedClock struct {
	mu    sync.RWMutex
	today DateKey
}

func NewFixedClock(today DateKey) *FixedClock {
	return &FixedClock{today: today}
}

func (c *FixedClock) Today() DateKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.today
}

func (c *FixedClock) Set(today DateKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = today
}

func (c *FixedClock) Advance(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.today = c.today.AddDays(days)
}
