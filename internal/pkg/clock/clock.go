package clock

import "time"

// Clocker is the time source used by code that needs "now". Passcode expiry
// math goes through this interface so tests can pin the clock.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// New returns the production clock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current wall-clock time.
func (*SystemClock) Now() time.Time {
	return time.Now()
}
