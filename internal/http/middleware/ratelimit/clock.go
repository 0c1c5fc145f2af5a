package ratelimit

import "time"

// Clock supplies the token buckets with time. Tests swap in a fake to step
// refills deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock is the wall clock used outside tests.
type RealClock struct{}

// Now returns the current wall-clock time.
func (RealClock) Now() time.Time { return time.Now() }
