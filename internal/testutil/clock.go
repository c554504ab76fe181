package testutil

import (
	"sync"
	"time"
)

// Steps returns a clock that starts at start and advances by step on every
// call after the first, so stage durations come out as exact multiples.
func Steps(start time.Time, step time.Duration) func() time.Time {
	var (
		mu   sync.Mutex
		next = start
	)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}
