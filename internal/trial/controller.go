package trial

import (
	"errors"
	"fmt"
	"time"

	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/haptics"
	"github.com/xkilldash9x/reachctl/internal/pause"
	"github.com/xkilldash9x/reachctl/internal/reach"
	"github.com/xkilldash9x/reachctl/internal/schedule"
	"github.com/xkilldash9x/reachctl/internal/zone"
	"go.uber.org/zap"
)

// ErrMissingCollaborator is returned when a required collaborator is nil.
var ErrMissingCollaborator = errors.New("trial: missing collaborator")

// Collaborators are the external parties the controller notifies.
type Collaborators struct {
	Orchestrator Orchestrator
	Feedback     Feedback
	Actuator     haptics.Actuator
}

// Options tunes a Controller. Zero values take the package defaults.
type Options struct {
	// Center is the workspace centre, the origin of the cursor's parent frame.
	Center       geometry.Vector3D
	SamplePeriod time.Duration
	Pause        pause.Config
	Pulse        haptics.PulseConfig
	QuickReach   time.Duration
}

func (o Options) withDefaults() Options {
	if o.SamplePeriod <= 0 {
		o.SamplePeriod = pause.DefaultPeriod
	}
	if o.Pause == (pause.Config{}) {
		o.Pause = pause.DefaultConfig()
	}
	if o.Pulse == (haptics.PulseConfig{}) {
		o.Pulse = haptics.DefaultPulseConfig()
	}
	if o.QuickReach <= 0 {
		o.QuickReach = reach.QuickReachThreshold
	}
	return o
}

// Controller owns the CursorState and drives one reaching task.
//
// It is not safe for concurrent use. The host calls, once per frame and in
// this order: Advance with the frame time, OnEnter/OnExit for any collider
// changes, then Tick with the raw hand position.
type Controller struct {
	sched     *schedule.Scheduler
	state     CursorState
	frame     geometry.Frame
	selection cursor.Selection
	local     geometry.Vector3D
	world     geometry.Vector3D

	detector *pause.Detector
	sampler  *schedule.Periodic
	zones    *zone.Tracker
	pulser   *haptics.Pulser
	timer    *reach.Timer
	engine   *Engine

	logger *zap.Logger
}

// NewController wires a Controller on its own scheduler.
func NewController(c Collaborators, opts Options, logger *zap.Logger) (*Controller, error) {
	if c.Orchestrator == nil {
		return nil, fmt.Errorf("%w: orchestrator", ErrMissingCollaborator)
	}
	if c.Feedback == nil {
		return nil, fmt.Errorf("%w: feedback", ErrMissingCollaborator)
	}
	if c.Actuator == nil {
		return nil, fmt.Errorf("%w: actuator", ErrMissingCollaborator)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = opts.withDefaults()

	ctl := &Controller{
		sched:     schedule.New(),
		state:     InitialState(),
		frame:     geometry.Frame{Origin: opts.Center},
		selection: cursor.Default(),
		detector:  pause.NewDetector(opts.Pause),
		logger:    logger.Named("trial"),
	}
	ctl.world = ctl.frame.ToWorld(ctl.local)
	ctl.sampler = schedule.NewPeriodic(ctl.sched, opts.SamplePeriod, ctl.samplePause)
	ctl.pulser = haptics.NewPulser(c.Actuator, ctl.sched, opts.Pulse)
	ctl.zones = zone.NewTracker(&ctl.state.Flags,
		func() bool { return ctl.state.TaskCompleted },
		ctl.sampler,
		func(zone.Zone) { ctl.pulser.Pulse() },
		logger)
	ctl.timer = reach.NewTimer(ctl.sched)
	ctl.engine = NewEngine(ctl.timer, c.Orchestrator, c.Feedback, opts.QuickReach, ctl.logger)
	return ctl, nil
}

// Setup applies a trial's cursor configuration: mapping strategy, parent
// yaw and visibility.
func (c *Controller) Setup(cfg cursor.TrialConfig) {
	c.selection = cursor.Select(cfg)
	c.frame.YawDegrees = c.selection.YawDegrees
	c.state.Visible = c.selection.Visible
	c.logger.Info("Trial set up",
		zap.String("type", cfg.Type),
		zap.String("mapping", string(c.selection.Kind())),
		zap.Float64("yaw", c.selection.YawDegrees),
		zap.Bool("visible", c.selection.Visible))
}

// Advance runs fixed-period work due up to now.
func (c *Controller) Advance(now time.Duration) {
	c.sched.Advance(now)
}

// OnEnter handles the cursor entering z.
func (c *Controller) OnEnter(z zone.Zone) { c.zones.OnEnter(z) }

// OnExit handles the cursor leaving z.
func (c *Controller) OnExit(z zone.Zone) { c.zones.OnExit(z) }

// Tick maps the raw hand position onto the cursor and then evaluates the
// decision engine against the freshly mapped position.
func (c *Controller) Tick(raw geometry.Vector3D) Transition {
	c.local = c.selection.Strategy.Map(raw, c.frame.Origin)
	c.world = c.frame.ToWorld(c.local)
	return c.engine.Step(&c.state)
}

func (c *Controller) samplePause(time.Duration) {
	c.state.Paused = c.detector.Sample(c.world)
}

// State returns a copy of the cursor state.
func (c *Controller) State() CursorState { return c.state }

// CursorLocal is the cursor position in its parent frame.
func (c *Controller) CursorLocal() geometry.Vector3D { return c.local }

// CursorWorld is the cursor position in the workspace.
func (c *Controller) CursorWorld() geometry.Vector3D { return c.world }

// Selection is the cursor selection of the current trial.
func (c *Controller) Selection() cursor.Selection { return c.selection }

// Sampling reports whether the pause sampler is running.
func (c *Controller) Sampling() bool { return c.sampler.Running() }

// Now is the controller's current time.
func (c *Controller) Now() time.Duration { return c.sched.Now() }

// LastReachTime is the elapsed time of the most recently ended attempt.
func (c *Controller) LastReachTime() time.Duration { return c.engine.LastReach() }

// Timer exposes the reach timer's recorded instants.
func (c *Controller) Timer() *reach.Timer { return c.timer }

// Attempts returns how many attempts have started.
func (c *Controller) Attempts() int { return c.engine.Attempts() }
