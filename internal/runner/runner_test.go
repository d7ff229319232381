package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/reachctl/internal/config"
	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/orchestrator"
	"github.com/xkilldash9x/reachctl/internal/trace"
	"github.com/xkilldash9x/reachctl/internal/trial"
	"github.com/xkilldash9x/reachctl/internal/workspace"
)

type staticHand geometry.Vector3D

func (h staticHand) Position(time.Duration) geometry.Vector3D { return geometry.Vector3D(h) }

func testConfig() *config.Config {
	cfg := config.NewDefaultConfig()
	cfg.Participant.Seed = 42
	cfg.Runner.MaxDuration = time.Minute
	return cfg
}

type countingActuator struct{ pulses int }

func (a *countingActuator) SetVibration(frequency, _ float64) {
	if frequency > 0 {
		a.pulses++
	}
}

func newTestRunner(t *testing.T, act *countingActuator) (*Runner, *trial.Controller, *workspace.Layout) {
	t.Helper()
	cfg := testConfig()
	layout, err := workspace.NewLayout(workspaceSpec(cfg.Workspace))
	require.NoError(t, err)
	rec := &orchestrator.Recorder{}
	ctl, err := trial.NewController(trial.Collaborators{
		Orchestrator: rec, Feedback: rec, Actuator: act,
	}, controllerOptions(cfg), zaptest.NewLogger(t))
	require.NoError(t, err)
	return New(ctl, layout, Options{FrameRate: 100}, zaptest.NewLogger(t)), ctl, layout
}

func TestFrameUsesPreviousCursorPosition(t *testing.T) {
	r, ctl, layout := newTestRunner(t, &countingActuator{})
	center := layout.Center()
	far := center.Add(geometry.Vector3D{X: 0.5})

	r.Frame(0, center)
	assert.False(t, ctl.State().InHome, "no collisions before the first tick")

	r.Frame(10*time.Millisecond, center)
	assert.True(t, ctl.State().InHome)
	assert.True(t, ctl.Sampling())

	r.Frame(20*time.Millisecond, far)
	assert.True(t, ctl.State().InHome, "collisions lag the cursor by one frame")
	assert.Equal(t, far, ctl.CursorWorld())

	r.Frame(30*time.Millisecond, far)
	assert.False(t, ctl.State().InHome)
	assert.False(t, ctl.State().InHomeArea)

	res := r.Result()
	assert.Equal(t, 4, res.Frames)
	assert.Equal(t, 30*time.Millisecond, res.Duration)
	assert.Equal(t, 10*time.Millisecond, r.FrameInterval())
}

func TestFirstFrameFarFromHomeTouchesNoZone(t *testing.T) {
	act := &countingActuator{}
	r, ctl, layout := newTestRunner(t, act)
	far := layout.Center().Add(geometry.Vector3D{X: 0.5})

	r.Frame(0, far)
	r.Frame(10*time.Millisecond, far)

	st := ctl.State()
	assert.False(t, st.InHome)
	assert.False(t, st.InHomeArea)
	assert.False(t, ctl.Sampling())
	assert.Zero(t, act.pulses)
}

func TestSimulateRunsEveryTrial(t *testing.T) {
	cfg := testConfig()
	open := false
	var rig *Rig
	rig, err := NewRig(cfg, RigOptions{
		Simulated: true,
		OnFrame: func(now time.Duration, _ geometry.Vector3D, tr trial.Transition) {
			switch tr {
			case trial.TransitionStart:
				require.False(t, open, "start at %v while an attempt is open", now)
				open = true
				assert.True(t, rig.Layout.TargetVisible())
			case trial.TransitionEnd:
				require.True(t, open, "end at %v without a start", now)
				open = false
				assert.False(t, rig.Layout.TargetVisible())
			}
		},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, rig.Layout.TargetVisible(), "target hidden until the first start")

	res, err := rig.Runner.Simulate(context.Background(), rig.Participant, rig.Session.Done)
	require.NoError(t, err)

	assert.True(t, rig.Session.Done())
	assert.False(t, open)
	assert.Equal(t, len(cfg.Trials), res.Starts)
	assert.Equal(t, len(cfg.Trials), res.Ends)

	attempts := rig.Session.Attempts()
	require.Len(t, attempts, len(cfg.Trials))
	for i, a := range attempts {
		assert.Equal(t, i, a.Trial.Index)
		assert.Equal(t, cfg.Trials[i], a.Trial.Config)
		assert.Greater(t, a.ReachTime(), 300*time.Millisecond)
		assert.Less(t, a.ReachTime(), 5*time.Second)
	}
	last := attempts[len(attempts)-1]
	assert.Equal(t, last.ReachTime(), rig.Controller.LastReachTime())
}

func TestRearmUnderRestingCursorDoesNotEnd(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = []cursor.TrialConfig{
		{Type: "aligned", CursorRotation: 0, TargetAngle: 45},
		{Type: "clamped", CursorRotation: 30, TargetAngle: 30},
	}
	rig, err := NewRig(cfg, RigOptions{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	center := rig.Layout.Center()
	out := center.Add(geometry.Forward(45).Mul(cfg.Workspace.TargetDistance))
	const dt = 10 * time.Millisecond
	now := time.Duration(0)
	run := func(frames int, hand func(i int) geometry.Vector3D) {
		for i := 1; i <= frames; i++ {
			rig.Runner.Frame(now, hand(i))
			now += dt
		}
	}
	at := func(p geometry.Vector3D) func(int) geometry.Vector3D {
		return func(int) geometry.Vector3D { return p }
	}

	run(100, at(center))
	require.Equal(t, 1, rig.Runner.Result().Starts)

	run(30, func(i int) geometry.Vector3D { return center.Lerp(out, float64(i)/30) })
	run(200, at(out))
	require.Equal(t, 1, rig.Runner.Result().Ends)
	next, ok := rig.Session.Current()
	require.True(t, ok)
	require.Equal(t, 1, next.Index)

	// The hand rests where the clamped cursor now lands on the new target.
	run(200, at(out))
	res := rig.Runner.Result()
	assert.Equal(t, 1, res.Starts)
	assert.Equal(t, 1, res.Ends)
	assert.False(t, rig.Controller.State().InTarget)
	assert.Len(t, rig.Session.Attempts(), 1)
}

func TestSimulateTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Runner.MaxDuration = time.Second
	rig, err := NewRig(cfg, RigOptions{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	far := staticHand(rig.Layout.Center().Add(geometry.Vector3D{X: 1}))
	res, err := rig.Runner.Simulate(context.Background(), far, rig.Session.Done)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Zero(t, res.Starts)
}

func TestSimulateCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Runner.Realtime = true
	rig, err := NewRig(cfg, RigOptions{Simulated: true}, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	res, err := rig.Runner.Simulate(ctx, rig.Participant, rig.Session.Done)
	assert.Error(t, err)
	assert.Less(t, res.Frames, 90, "realtime pacing keeps the frame count near wall time")
}

func TestReplayReproducesSimulation(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	var buf bytes.Buffer
	w := trace.NewWriter(&buf)
	sim, err := NewRig(cfg, RigOptions{
		Simulated: true,
		OnFrame: func(now time.Duration, hand geometry.Vector3D, _ trial.Transition) {
			require.NoError(t, w.Write(trace.NewSample(now, hand)))
		},
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	simRes, err := sim.Runner.Simulate(context.Background(), sim.Participant, sim.Session.Done)
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	replay, err := NewRig(cfg, RigOptions{}, zaptest.NewLogger(t))
	require.NoError(t, err)
	res, err := replay.Runner.Replay(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, simRes.Frames, res.Frames)
	assert.Equal(t, simRes.Ends, res.Ends)
	want, got := sim.Session.Attempts(), replay.Session.Attempts()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].StartedAt, got[i].StartedAt)
		assert.Equal(t, want[i].ReachTime(), got[i].ReachTime())
	}
}

func TestReplayMalformedTrace(t *testing.T) {
	defer goleak.VerifyNone(t)

	rig, err := NewRig(testConfig(), RigOptions{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	in := strings.NewReader("{\"t\":0,\"x\":0,\"y\":1,\"z\":0.3}\n{oops\n")
	res, err := rig.Runner.Replay(context.Background(), in)
	assert.ErrorIs(t, err, trace.ErrMalformed)
	assert.Equal(t, 1, res.Frames)
}

func TestReplayCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg := testConfig()
	cfg.Runner.Realtime = true
	cfg.Runner.FrameRate = 10
	rig, err := NewRig(cfg, RigOptions{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := trace.NewWriter(&buf)
	for i := 0; i < 500; i++ {
		require.NoError(t, w.Write(trace.NewSample(time.Duration(i)*10*time.Millisecond, rig.Layout.Center())))
	}
	require.NoError(t, w.Flush())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	res, err := rig.Runner.Replay(ctx, &buf)
	assert.Error(t, err)
	assert.Less(t, res.Frames, 500)
}

func TestNewRigRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Trials = nil
	_, err := NewRig(cfg, RigOptions{}, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}
