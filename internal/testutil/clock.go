package testutil

import (
	"sync"
	"time"
)

// DeterministicClock provides a thread-safe wall clock for tests. Every
// reading advances the clock by a fixed step, so repeated runs of the same
// scenario produce identical event timestamps.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu       sync.Mutex
	base     time.Time
	step     time.Duration
	readings int64
}

// NewDeterministicClock creates a clock starting at base that advances by
// step on each Now() call. The first call to Now() returns base.
func NewDeterministicClock(base time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{base: base, step: step}
}

// Now returns the next timestamp and advances the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.base.Add(time.Duration(c.readings) * c.step)
	c.readings++
	return t
}

// Readings returns how many timestamps have been handed out.
func (c *DeterministicClock) Readings() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readings
}

// Reset rewinds the clock to its base time.
//
// Used for test reuse. After Reset(), the next call to Now() returns base.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readings = 0
}
