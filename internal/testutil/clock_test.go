package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var clockBase = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDeterministicClock_FirstReadingIsBase(t *testing.T) {
	clock := NewDeterministicClock(clockBase, time.Second)
	assert.Equal(t, clockBase, clock.Now())
}

func TestDeterministicClock_AdvancesByStep(t *testing.T) {
	clock := NewDeterministicClock(clockBase, time.Second)

	assert.Equal(t, clockBase, clock.Now())
	assert.Equal(t, clockBase.Add(time.Second), clock.Now())
	assert.Equal(t, clockBase.Add(2*time.Second), clock.Now())
	assert.Equal(t, int64(3), clock.Readings())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock(clockBase, time.Second)

	clock.Now()
	clock.Now()
	clock.Reset()

	assert.Equal(t, int64(0), clock.Readings())
	assert.Equal(t, clockBase, clock.Now())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock(clockBase, time.Millisecond)
	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)

	seen := make([]map[time.Time]bool, goroutines)
	for i := 0; i < goroutines; i++ {
		seen[i] = make(map[time.Time]bool)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				seen[idx][clock.Now()] = true
			}
		}(i)
	}
	wg.Wait()

	// Every reading must be unique across all goroutines.
	all := make(map[time.Time]bool)
	for _, m := range seen {
		for ts := range m {
			assert.False(t, all[ts], "timestamp %v handed out twice", ts)
			all[ts] = true
		}
	}
	assert.Len(t, all, goroutines*perGoroutine)
}
