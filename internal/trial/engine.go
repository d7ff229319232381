package trial

import (
	"time"

	"github.com/xkilldash9x/reachctl/internal/reach"
	"go.uber.org/zap"
)

// Orchestrator is notified of attempt boundaries. Calls are fire-and-forget.
type Orchestrator interface {
	// AttemptStarted is called when the hand has settled at home.
	AttemptStarted()
	// AttemptEnded is called when the reach completes; the orchestrator
	// should arm the next trial.
	AttemptEnded()
}

// Feedback receives the quick-reach verdict of each completed attempt.
type Feedback interface {
	SetQuickReach(quick bool)
}

// Engine applies transitions to a CursorState.
type Engine struct {
	timer          *reach.Timer
	orchestrator   Orchestrator
	feedback       Feedback
	quickThreshold time.Duration
	lastReach      time.Duration
	attempts       int
	logger         *zap.Logger
}

// NewEngine wires an Engine. A non-positive quickThreshold falls back to
// reach.QuickReachThreshold.
func NewEngine(timer *reach.Timer, orch Orchestrator, fb Feedback, quickThreshold time.Duration, logger *zap.Logger) *Engine {
	if quickThreshold <= 0 {
		quickThreshold = reach.QuickReachThreshold
	}
	return &Engine{
		timer:          timer,
		orchestrator:   orch,
		feedback:       fb,
		quickThreshold: quickThreshold,
		logger:         logger,
	}
}

// Step evaluates s and applies at most one transition to it.
func (e *Engine) Step(s *CursorState) Transition {
	tr := Evaluate(*s)
	switch tr {
	case TransitionEnd:
		e.end(s)
	case TransitionStart:
		e.start(s)
	}
	return tr
}

func (e *Engine) end(s *CursorState) {
	e.timer.Stop()
	e.lastReach = e.timer.Elapsed()
	quick := e.lastReach < e.quickThreshold
	e.feedback.SetQuickReach(quick)

	e.logger.Info("Attempt ended",
		zap.Duration("reach_time", e.lastReach),
		zap.Bool("quick", quick),
		zap.Bool("visible", s.Visible))

	e.orchestrator.AttemptEnded()

	s.TaskCompleted = true
	s.InTarget = false
}

func (e *Engine) start(s *CursorState) {
	s.TaskCompleted = false
	e.timer.Start()
	e.attempts++
	e.logger.Info("Attempt started", zap.Int("attempt", e.attempts), zap.Duration("at", e.timer.StartedAt()))
	e.orchestrator.AttemptStarted()
}

// LastReach returns the elapsed time of the most recently ended attempt.
func (e *Engine) LastReach() time.Duration { return e.lastReach }

// Attempts returns how many attempts have started.
func (e *Engine) Attempts() int { return e.attempts }
