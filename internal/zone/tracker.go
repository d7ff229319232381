package zone

import "go.uber.org/zap"

// Sampler is the pause sampler toggled by HomeArea transitions.
// Start and Stop must be idempotent.
type Sampler interface {
	Start() bool
	Stop() bool
}

// Tracker applies enter/exit events to a set of occupancy flags.
type Tracker struct {
	flags         *Flags
	taskCompleted func() bool
	sampler       Sampler
	pulse         func(Zone)
	logger        *zap.Logger
}

// NewTracker wires a Tracker. taskCompleted reads the current task phase;
// pulse is invoked on Target and Home entry.
func NewTracker(flags *Flags, taskCompleted func() bool, sampler Sampler, pulse func(Zone), logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pulse == nil {
		pulse = func(Zone) {}
	}
	return &Tracker{
		flags:         flags,
		taskCompleted: taskCompleted,
		sampler:       sampler,
		pulse:         pulse,
		logger:        logger.Named("zone"),
	}
}

// OnEnter handles the cursor entering z.
//
// Entering HomeArea starts sampling when the last attempt is complete (the
// hand is coming home to start the next one) and stops it otherwise.
func (t *Tracker) OnEnter(z Zone) {
	t.flags.set(z, true)
	t.logger.Debug("Zone entered", zap.Stringer("zone", z))

	switch z {
	case Target, Home:
		t.pulse(z)
	case HomeArea:
		if t.taskCompleted() {
			t.startSampling()
		} else {
			t.stopSampling()
		}
	}
}

// OnExit handles the cursor leaving z.
//
// Leaving HomeArea starts sampling while an attempt is in progress (the hand
// is reaching out) and stops it otherwise.
func (t *Tracker) OnExit(z Zone) {
	t.flags.set(z, false)
	t.logger.Debug("Zone exited", zap.Stringer("zone", z))

	if z != HomeArea {
		return
	}
	if !t.taskCompleted() {
		t.startSampling()
	} else {
		t.stopSampling()
	}
}

func (t *Tracker) startSampling() {
	if t.sampler.Start() {
		t.logger.Debug("Pause sampling started")
	}
}

func (t *Tracker) stopSampling() {
	if t.sampler.Stop() {
		t.logger.Debug("Pause sampling stopped")
	}
}
