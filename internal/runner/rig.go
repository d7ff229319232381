package runner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/reachctl/internal/config"
	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/handsim"
	"github.com/xkilldash9x/reachctl/internal/haptics"
	"github.com/xkilldash9x/reachctl/internal/orchestrator"
	"github.com/xkilldash9x/reachctl/internal/pause"
	"github.com/xkilldash9x/reachctl/internal/reach"
	"github.com/xkilldash9x/reachctl/internal/trial"
	"github.com/xkilldash9x/reachctl/internal/workspace"
)

// Rig is a fully wired task: the controller, its workspace, the session
// sequencing trials and, for simulations, the participant.
type Rig struct {
	Controller  *trial.Controller
	Layout      *workspace.Layout
	Session     *orchestrator.Session
	Participant *handsim.Participant
	Runner      *Runner
}

// RigOptions selects the optional parts of a rig.
type RigOptions struct {
	// Simulated adds a participant driven by cfg.Participant.
	Simulated bool
	// Actuator overrides the logging actuator.
	Actuator haptics.Actuator
	// OnFrame is passed through to the runner.
	OnFrame FrameFunc
}

// NewRig wires every component from cfg. The first trial is armed before
// it returns.
func NewRig(cfg *config.Config, opts RigOptions, logger *zap.Logger) (*Rig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := workspace.NewLayout(workspaceSpec(cfg.Workspace))
	if err != nil {
		return nil, fmt.Errorf("failed to build workspace: %w", err)
	}

	rig := &Rig{Layout: layout}
	if opts.Simulated {
		rig.Participant = handsim.New(participantConfig(cfg), layout.Center(), logger)
	}

	// The controller is created after the session, so the session's clock
	// and arm callback reach it through rig.
	clock := reach.ClockFunc(func() time.Duration { return rig.Controller.Now() })
	session, err := orchestrator.NewSession(cfg.Trials, clock, rig.arm, logger)
	if err != nil {
		return nil, err
	}
	rig.Session = session

	// The target stays hidden between attempts, so re-arming a trial under
	// a resting cursor cannot end an attempt that has not started.
	layout.HideTarget()
	listeners := orchestrator.Fanout{targetGate{layout}, session}
	if rig.Participant != nil {
		listeners = append(listeners, rig.Participant)
	}
	actuator := opts.Actuator
	if actuator == nil {
		actuator = haptics.NewLogActuator(logger)
	}

	ctl, err := trial.NewController(trial.Collaborators{
		Orchestrator: listeners,
		Feedback:     session,
		Actuator:     actuator,
	}, controllerOptions(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build controller: %w", err)
	}
	rig.Controller = ctl
	rig.Runner = New(ctl, layout, Options{
		FrameRate:   cfg.Runner.FrameRate,
		Realtime:    cfg.Runner.Realtime,
		MaxDuration: cfg.Runner.MaxDuration,
		OnFrame:     opts.OnFrame,
	}, logger)

	session.Begin()
	return rig, nil
}

// targetGate shows the target while an attempt is open.
type targetGate struct{ layout *workspace.Layout }

func (g targetGate) AttemptStarted() { g.layout.ShowTarget() }
func (g targetGate) AttemptEnded()   { g.layout.HideTarget() }

// arm applies a trial to the controller, the target and the participant.
func (rig *Rig) arm(t orchestrator.Trial) {
	rig.Controller.Setup(t.Config)
	rig.Layout.PlaceTarget(t.Config.TargetAngle)
	if rig.Participant != nil {
		center := rig.Layout.Center()
		rig.Participant.SetGoal(rig.Layout.Target(), func(goal geometry.Vector3D) geometry.Vector3D {
			return cursor.Aim(rig.Controller.Selection(), goal, center)
		})
	}
}

func workspaceSpec(w config.WorkspaceConfig) workspace.Spec {
	return workspace.Spec{
		Center:         w.Center.Vector(),
		HomeRadius:     w.HomeRadius,
		HomeAreaRadius: w.HomeAreaRadius,
		TargetRadius:   w.TargetRadius,
		TargetDistance: w.TargetDistance,
		CursorRadius:   w.CursorRadius,
	}
}

func controllerOptions(cfg *config.Config) trial.Options {
	return trial.Options{
		Center:       cfg.Workspace.Center.Vector(),
		SamplePeriod: cfg.Pause.Period,
		Pause: pause.Config{
			Window:    cfg.Pause.Window,
			Threshold: cfg.Pause.Threshold,
			Sentinel:  cfg.Pause.Sentinel,
		},
		Pulse: haptics.PulseConfig{
			Frequency: cfg.Haptics.Frequency,
			Amplitude: cfg.Haptics.Amplitude,
			Duration:  cfg.Haptics.Duration,
		},
		QuickReach: cfg.Feedback.QuickReach,
	}
}

func participantConfig(cfg *config.Config) handsim.Config {
	p := cfg.Participant
	return handsim.Config{
		Seed:           p.Seed,
		FittsA:         p.FittsA,
		FittsB:         p.FittsB,
		Settle:         p.Settle,
		Hold:           p.Hold,
		Tremor:         p.Tremor,
		DriftAmplitude: p.DriftAmplitude,
		TargetWidth:    2 * cfg.Workspace.TargetRadius,
	}
}
