// Package clock abstracts the timer facility so the engine's scheduling can
// be driven deterministically in tests.
package clock

import "time"

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the timer. It reports whether the callback was prevented
	// from running.
	Stop() bool
}

// Clock provides the current time and deferred callback scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// System is the wall-clock implementation backed by the time package.
type System struct{}

// NewSystem returns the real clock.
func NewSystem() *System {
	return &System{}
}

var _ Clock = (*System)(nil)

func (*System) Now() time.Time {
	return time.Now()
}

func (*System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
