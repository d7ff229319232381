// Package reach times a single reach attempt.
package reach

import "time"

// QuickReachThreshold is the upper bound (exclusive) of a quick reach.
const QuickReachThreshold = time.Second

// Clock supplies the current time.
type Clock interface {
	Now() time.Duration
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Duration

func (f ClockFunc) Now() time.Duration { return f() }

// Timer records the start and end of one attempt.
type Timer struct {
	clock Clock
	start time.Duration
	end   time.Duration
}

// NewTimer returns a Timer reading from clock.
func NewTimer(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Start clears both instants and records the start time.
func (t *Timer) Start() {
	t.start, t.end = 0, 0
	t.start = t.clock.Now()
}

// Stop records the end time.
func (t *Timer) Stop() {
	t.end = t.clock.Now()
}

// Elapsed is the end minus the start. It is only meaningful after Stop in
// the current attempt.
func (t *Timer) Elapsed() time.Duration {
	return t.end - t.start
}

// StartedAt returns the recorded start instant.
func (t *Timer) StartedAt() time.Duration { return t.start }

// StoppedAt returns the recorded end instant.
func (t *Timer) StoppedAt() time.Duration { return t.end }

// IsQuick reports whether d counts as a quick reach.
func IsQuick(d time.Duration) bool {
	return d < QuickReachThreshold
}
