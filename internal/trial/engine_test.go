package trial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/reachctl/internal/reach"
	"github.com/xkilldash9x/reachctl/internal/zone"
	"go.uber.org/zap/zaptest"
)

type stepClock struct{ now time.Duration }

func (c *stepClock) Now() time.Duration { return c.now }

func newTestEngine(t *testing.T) (*Engine, *stepClock, *fakeOrchestrator, *fakeFeedback) {
	clock := &stepClock{}
	orch := &fakeOrchestrator{}
	fb := &fakeFeedback{}
	e := NewEngine(reach.NewTimer(clock), orch, fb, 0, zaptest.NewLogger(t))
	return e, clock, orch, fb
}

func TestEngineQuickReachBoundary(t *testing.T) {
	tests := []struct {
		name      string
		reachTime time.Duration
		wantQuick bool
	}{
		{"just under a second", 999 * time.Millisecond, true},
		{"exactly a second", time.Second, false},
		{"slow", 2500 * time.Millisecond, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, clock, orch, fb := newTestEngine(t)
			clock.now = 3 * time.Second

			s := CursorState{Flags: zone.Flags{InHome: true, InHomeArea: true}, Paused: true, Visible: true, TaskCompleted: true}
			require.Equal(t, TransitionStart, e.Step(&s))
			assert.False(t, s.TaskCompleted)

			clock.now += tc.reachTime
			s.Flags = zone.Flags{InTarget: true}
			require.Equal(t, TransitionEnd, e.Step(&s))

			assert.Equal(t, tc.reachTime, e.LastReach())
			assert.Equal(t, tc.wantQuick, fb.last())
			assert.Equal(t, []string{"started", "ended"}, orch.events)
			assert.True(t, s.TaskCompleted)
			assert.False(t, s.InTarget)
		})
	}
}

func TestEngineNoOpLeavesStateAlone(t *testing.T) {
	e, _, orch, fb := newTestEngine(t)
	s := CursorState{Flags: zone.Flags{InTarget: true}, Visible: true}
	before := s

	assert.Equal(t, TransitionNone, e.Step(&s))
	assert.Equal(t, before, s)
	assert.Empty(t, orch.events)
	assert.Empty(t, fb.calls)
}

func TestEngineEndFiresOnceThenIdles(t *testing.T) {
	e, _, orch, _ := newTestEngine(t)
	s := CursorState{Flags: zone.Flags{InTarget: true}, Paused: true, Visible: true}

	assert.Equal(t, TransitionEnd, e.Step(&s))
	// InTarget was cleared and the hand is not home: nothing more happens.
	assert.Equal(t, TransitionNone, e.Step(&s))
	assert.Equal(t, 1, orch.ended)
}

func TestEngineCustomQuickThreshold(t *testing.T) {
	clock := &stepClock{}
	fb := &fakeFeedback{}
	e := NewEngine(reach.NewTimer(clock), &fakeOrchestrator{}, fb, 500*time.Millisecond, zaptest.NewLogger(t))

	s := CursorState{Flags: zone.Flags{InHome: true}, Paused: true, Visible: true, TaskCompleted: true}
	e.Step(&s)
	clock.now = 600 * time.Millisecond
	s.Flags = zone.Flags{InTarget: true}
	e.Step(&s)
	assert.False(t, fb.last())
	assert.Equal(t, 1, e.Attempts())
}
