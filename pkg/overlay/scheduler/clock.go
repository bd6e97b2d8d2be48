package scheduler

import "time"

// Clock is the only source of time the scheduler reads.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FakeClock only moves when told to. Tests drive timelines with it.
type FakeClock struct {
	now time.Time
}

// NewFakeClock starts at t. A zero t starts at a fixed epoch so test
// output is stable.
func NewFakeClock(t time.Time) *FakeClock {
	if t.IsZero() {
		t = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &FakeClock{now: t}
}

func (c *FakeClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps to t.
func (c *FakeClock) Set(t time.Time) {
	c.now = t
}
