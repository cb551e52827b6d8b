// Package clock abstracts time for deadline and expiry checks.
package clock

import "time"

// Clock supplies the current time. Injected so that deadline, conflict
// and invite-expiry logic is testable with a fixed time.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation.
type System struct{}

// Now returns the current wall-clock time.
func (System) Now() time.Time { return time.Now() }

// Fixed is a clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the frozen instant.
func (f Fixed) Now() time.Time { return f.T }
