// Package runner is the host loop: it owns the controller and feeds it one
// frame at a time, from a simulated participant or a recorded trace.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/trace"
	"github.com/xkilldash9x/reachctl/internal/trial"
	"github.com/xkilldash9x/reachctl/internal/workspace"
)

// ErrTimeout is returned when a simulation runs past its maximum duration.
var ErrTimeout = errors.New("runner: maximum duration exceeded")

// HandSource produces the hand position for a frame.
type HandSource interface {
	Position(now time.Duration) geometry.Vector3D
}

// FrameFunc observes every frame after the controller has ticked.
type FrameFunc func(now time.Duration, hand geometry.Vector3D, tr trial.Transition)

// Options configures the frame loop.
type Options struct {
	FrameRate   float64
	Realtime    bool
	MaxDuration time.Duration
	// OnFrame, if set, is called after every frame.
	OnFrame FrameFunc
}

// Result summarises a run.
type Result struct {
	Frames   int
	Duration time.Duration
	Starts   int
	Ends     int
}

// Runner drives a Controller. A single goroutine touches the controller:
// the caller of Simulate, or the frame goroutine of Replay.
type Runner struct {
	ctl      *trial.Controller
	detector *workspace.Detector
	opts     Options
	logger   *zap.Logger
	result   Result
	ticked   bool
}

// New binds a runner to a controller and the workspace it moves in.
func New(ctl *trial.Controller, layout *workspace.Layout, opts Options, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 90
	}
	return &Runner{
		ctl:      ctl,
		detector: workspace.NewDetector(layout),
		opts:     opts,
		logger:   logger.Named("runner"),
	}
}

// Frame runs one frame at now: fixed-period work first, then collision
// events for where the cursor was drawn last frame, then the tick. The
// first frame has no previous cursor, so it dispatches no collisions.
func (r *Runner) Frame(now time.Duration, hand geometry.Vector3D) trial.Transition {
	r.ctl.Advance(now)
	if r.ticked {
		r.detector.Dispatch(r.ctl.CursorWorld(), r.ctl)
	}
	tr := r.ctl.Tick(hand)
	r.ticked = true

	r.result.Frames++
	r.result.Duration = now
	switch tr {
	case trial.TransitionStart:
		r.result.Starts++
	case trial.TransitionEnd:
		r.result.Ends++
	}
	if r.opts.OnFrame != nil {
		r.opts.OnFrame(now, hand, tr)
	}
	return tr
}

// Result returns the counters so far.
func (r *Runner) Result() Result { return r.result }

// FrameInterval is the virtual time between frames.
func (r *Runner) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / r.opts.FrameRate)
}

func (r *Runner) limiter() *rate.Limiter {
	if !r.opts.Realtime {
		return nil
	}
	return rate.NewLimiter(rate.Limit(r.opts.FrameRate), 1)
}

// Simulate steps frames at the configured rate until done reports true,
// the context is cancelled or MaxDuration passes.
func (r *Runner) Simulate(ctx context.Context, hand HandSource, done func() bool) (Result, error) {
	dt := r.FrameInterval()
	limiter := r.limiter()
	r.logger.Info("Simulation started",
		zap.Float64("frame_rate", r.opts.FrameRate),
		zap.Bool("realtime", r.opts.Realtime))

	for frame := 0; ; frame++ {
		if done() {
			break
		}
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		now := time.Duration(frame) * dt
		if r.opts.MaxDuration > 0 && now > r.opts.MaxDuration {
			return r.result, fmt.Errorf("%w: %v", ErrTimeout, r.opts.MaxDuration)
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return r.result, err
			}
		}
		r.Frame(now, hand.Position(now))
	}

	r.logger.Info("Simulation finished",
		zap.Int("frames", r.result.Frames),
		zap.Duration("duration", r.result.Duration),
		zap.Int("attempts", r.result.Ends))
	return r.result, nil
}

// Replay feeds every sample of a JSON-lines trace to the controller, one
// frame per sample. Decoding runs on its own goroutine.
func (r *Runner) Replay(ctx context.Context, in io.Reader) (Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	samples := make(chan trace.Sample, 64)

	g.Go(func() error {
		defer close(samples)
		reader := trace.NewReader(in)
		for {
			s, err := reader.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case samples <- s:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	g.Go(func() error {
		limiter := r.limiter()
		for s := range samples {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return err
				}
			}
			r.Frame(s.At(), s.Position())
		}
		return nil
	})

	err := g.Wait()
	r.logger.Info("Replay finished",
		zap.Int("frames", r.result.Frames),
		zap.Int("attempts", r.result.Ends),
		zap.Error(err))
	return r.result, err
}
