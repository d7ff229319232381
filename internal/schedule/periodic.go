package schedule

import "time"

// Periodic is a restartable repeating job with idempotent Start and Stop.
type Periodic struct {
	sched  *Scheduler
	period time.Duration
	fn     Func
	handle *Handle
}

// NewPeriodic binds fn to s with the given period. The job starts stopped.
func NewPeriodic(s *Scheduler, period time.Duration, fn Func) *Periodic {
	return &Periodic{sched: s, period: period, fn: fn}
}

// Start begins firing, first at the current instant and then every period.
// Starting a running job does nothing and keeps its phase. It reports
// whether the job was started by this call.
func (p *Periodic) Start() bool {
	if p.handle.Active() {
		return false
	}
	p.handle = p.sched.Every(0, p.period, p.fn)
	return true
}

// Stop cancels any pending firing. Stopping a stopped job does nothing.
// It reports whether the job was running.
func (p *Periodic) Stop() bool {
	return p.handle.Stop()
}

// Running reports whether the job is scheduled.
func (p *Periodic) Running() bool {
	return p.handle.Active()
}

// Period returns the firing period.
func (p *Periodic) Period() time.Duration {
	return p.period
}
