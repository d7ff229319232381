// Package schedule runs fixed-period and delayed work on virtual time.
//
// The Scheduler is cooperative: nothing fires until the host calls Advance,
// and callbacks run on the caller's goroutine. This keeps fixed-period work
// (pause sampling, delayed actuator stops) serialised with the per-frame
// work that shares its state.
package schedule

import (
	"time"
)

// Func is a scheduled callback. now is the instant the callback was due.
type Func func(now time.Duration)

type entry struct {
	due    time.Duration
	period time.Duration // zero for one-shot entries
	seq    uint64
	fn     Func
	handle *Handle
}

// Scheduler holds pending callbacks ordered by due time.
// It is not safe for concurrent use.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	entries []*entry
}

// New returns a Scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending reports how many callbacks are still scheduled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, e := range s.entries {
		if !e.handle.stopped {
			n++
		}
	}
	return n
}

// After schedules fn to run once, delay after the current time.
func (s *Scheduler) After(delay time.Duration, fn Func) *Handle {
	return s.add(delay, 0, fn)
}

// Every schedules fn to run first after delay and then once per period.
// An Advance spanning several periods runs every occurrence, each at its
// own due time.
func (s *Scheduler) Every(delay, period time.Duration, fn Func) *Handle {
	if period <= 0 {
		panic("schedule: non-positive period")
	}
	return s.add(delay, period, fn)
}

func (s *Scheduler) add(delay, period time.Duration, fn Func) *Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	h := &Handle{}
	e := &entry{
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
		handle: h,
	}
	h.entry = e
	s.entries = append(s.entries, e)
	return h
}

// Advance moves the clock to t and runs every callback due at or before t,
// in due order with registration order breaking ties. Moving backwards is
// ignored. It returns the number of callbacks run.
func (s *Scheduler) Advance(t time.Duration) int {
	if t < s.now {
		return 0
	}
	fired := 0
	for {
		next := s.nextDue(t)
		if next == nil {
			break
		}
		s.now = next.due
		next.fn(next.due)
		fired++

		if next.period > 0 && !next.handle.stopped {
			next.due += next.period
		} else {
			next.handle.stopped = true
		}
	}
	s.now = t
	s.compact()
	return fired
}

func (s *Scheduler) nextDue(t time.Duration) *entry {
	var best *entry
	for _, e := range s.entries {
		if e.handle.stopped || e.due > t {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.seq < best.seq) {
			best = e
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.handle.stopped {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(s.entries); i++ {
		s.entries[i] = nil
	}
	s.entries = live
}

// Handle cancels a scheduled callback.
type Handle struct {
	entry   *entry
	stopped bool
}

// Stop cancels the callback. Stopping an already stopped or fired handle
// is a no-op. It reports whether the callback was still pending.
func (h *Handle) Stop() bool {
	if h == nil || h.stopped {
		return false
	}
	h.stopped = true
	return true
}

// Active reports whether the callback is still pending.
func (h *Handle) Active() bool {
	return h != nil && !h.stopped
}
