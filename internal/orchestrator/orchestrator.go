// File: internal/orchestrator/orchestrator.go
// Description: In-process trial orchestrator. Walks the configured trial list,
// arms each trial on the controller and records every attempt.

package orchestrator

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/reachctl/internal/cursor"
	"github.com/xkilldash9x/reachctl/internal/reach"
	"github.com/xkilldash9x/reachctl/internal/trial"
)

// ErrNoTrials is returned when a session is created with an empty trial list.
var ErrNoTrials = errors.New("orchestrator: no trials configured")

// Trial is one entry of the session's trial list.
type Trial struct {
	Index  int
	Config cursor.TrialConfig
}

// Attempt is the record of one start/end pair.
type Attempt struct {
	ID        string
	Trial     Trial
	StartedAt time.Duration
	EndedAt   time.Duration
	Quick     bool
	Completed bool
}

// ReachTime is the elapsed time between start and end.
func (a Attempt) ReachTime() time.Duration {
	return a.EndedAt - a.StartedAt
}

// ArmFunc applies a trial to the controller and any other party that must
// know what comes next.
type ArmFunc func(Trial)

// Session sequences trials in list order. A trial is finished by the first
// attempt that ends; the next trial is armed immediately after.
//
// Session implements trial.Orchestrator and trial.Feedback. Like the
// controller that calls it, it is not safe for concurrent use.
type Session struct {
	trials  []cursor.TrialConfig
	next    int
	clock   reach.Clock
	arm     ArmFunc
	logger  *zap.Logger
	current *Attempt
	quick   bool

	attempts []Attempt
}

var (
	_ trial.Orchestrator = (*Session)(nil)
	_ trial.Feedback     = (*Session)(nil)
)

// NewSession creates a session over trials. clock stamps attempts and should
// be the controller's clock so recorded reach times match the reach timer.
func NewSession(trials []cursor.TrialConfig, clock reach.Clock, arm ArmFunc, logger *zap.Logger) (*Session, error) {
	if len(trials) == 0 {
		return nil, ErrNoTrials
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if arm == nil {
		arm = func(Trial) {}
	}
	return &Session{
		trials: append([]cursor.TrialConfig(nil), trials...),
		clock:  clock,
		arm:    arm,
		logger: logger.Named("session"),
	}, nil
}

// Begin arms the first trial. Calling it again has no effect.
func (s *Session) Begin() {
	if s.next > 0 {
		return
	}
	s.armNext()
}

func (s *Session) armNext() {
	t := Trial{Index: s.next, Config: s.trials[s.next]}
	s.next++
	s.logger.Info("Trial armed",
		zap.Int("trial", t.Index),
		zap.String("type", t.Config.Type),
		zap.Float64("cursor_rotation", t.Config.CursorRotation),
		zap.Float64("target_angle", t.Config.TargetAngle))
	s.arm(t)
}

// Current is the trial most recently armed.
func (s *Session) Current() (Trial, bool) {
	if s.next == 0 {
		return Trial{}, false
	}
	i := s.next - 1
	return Trial{Index: i, Config: s.trials[i]}, true
}

// AttemptStarted opens a new attempt on the current trial.
func (s *Session) AttemptStarted() {
	t, _ := s.Current()
	s.current = &Attempt{
		ID:        uuid.New().String(),
		Trial:     t,
		StartedAt: s.clock.Now(),
	}
	s.quick = false
	s.logger.Debug("Attempt started",
		zap.String("attempt_id", s.current.ID),
		zap.Int("trial", t.Index),
		zap.Duration("at", s.current.StartedAt))
}

// SetQuickReach records the feedback colour chosen for the attempt ending.
func (s *Session) SetQuickReach(quick bool) {
	s.quick = quick
}

// AttemptEnded closes the open attempt and arms the next trial, if any.
func (s *Session) AttemptEnded() {
	if s.current == nil {
		s.logger.Warn("Attempt ended without a start")
		return
	}
	a := *s.current
	a.EndedAt = s.clock.Now()
	a.Quick = s.quick
	a.Completed = true
	s.attempts = append(s.attempts, a)
	s.current = nil

	s.logger.Info("Attempt completed",
		zap.String("attempt_id", a.ID),
		zap.Int("trial", a.Trial.Index),
		zap.Duration("reach_time", a.ReachTime()),
		zap.Bool("quick", a.Quick))

	if s.next < len(s.trials) {
		s.armNext()
		return
	}
	s.logger.Info("Session finished", zap.Int("attempts", len(s.attempts)))
}

// Done reports whether every trial has a completed attempt.
func (s *Session) Done() bool {
	return s.next == len(s.trials) && s.current == nil && len(s.attempts) >= len(s.trials)
}

// InProgress reports whether an attempt is open.
func (s *Session) InProgress() bool {
	return s.current != nil
}

// Attempts returns the completed attempts in order.
func (s *Session) Attempts() []Attempt {
	return append([]Attempt(nil), s.attempts...)
}

// Trials returns the number of configured trials.
func (s *Session) Trials() int {
	return len(s.trials)
}
