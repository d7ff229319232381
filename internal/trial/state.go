// Package trial decides, once per frame, whether a reach attempt starts or ends.
//
// The Engine is a small state machine over CursorState. The Controller wires
// it to the cursor mapping, zone tracking, pause sampling, the reach timer
// and the haptic pulser, and exposes the entry points the host loop calls.
package trial

import (
	"github.com/xkilldash9x/reachctl/internal/zone"
)

// CursorState is everything the engine decides on.
type CursorState struct {
	zone.Flags
	Paused        bool
	Visible       bool
	TaskCompleted bool
}

// InitialState is the state before the first trial: visible cursor and no
// attempt in progress.
func InitialState() CursorState {
	return CursorState{Visible: true, TaskCompleted: true}
}

// Transition is the outcome of one evaluation.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionStart
	TransitionEnd
)

func (t Transition) String() string {
	switch t {
	case TransitionStart:
		return "start"
	case TransitionEnd:
		return "end"
	default:
		return "none"
	}
}

// noCursorComplete holds when a hidden cursor has stopped outside the home
// area during an attempt.
func noCursorComplete(s CursorState) bool {
	return !s.Visible && s.Paused && !s.InHomeArea && !s.TaskCompleted
}

// visibleComplete holds when a visible cursor has stopped in the target.
func visibleComplete(s CursorState) bool {
	return s.Visible && s.Paused && s.InTarget
}

// readyToStart holds when the hand rests at home after a completed attempt.
func readyToStart(s CursorState) bool {
	return s.InHome && s.Paused && s.TaskCompleted
}

// Evaluate returns the transition s calls for. The two completion
// conditions are combined with exclusive or, and completion takes
// precedence over starting.
func Evaluate(s CursorState) Transition {
	if noCursorComplete(s) != visibleComplete(s) {
		return TransitionEnd
	}
	if readyToStart(s) {
		return TransitionStart
	}
	return TransitionNone
}
