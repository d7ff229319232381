package orchestrator

import (
	"time"

	"github.com/xkilldash9x/reachctl/internal/reach"
	"github.com/xkilldash9x/reachctl/internal/trial"
)

// Event kinds recorded by Recorder.
const (
	EventStarted = "started"
	EventEnded   = "ended"
	EventQuick   = "quick"
	EventSlow    = "slow"
)

// Event is one notification received by a Recorder.
type Event struct {
	Kind string
	At   time.Duration
}

// Recorder keeps every orchestrator and feedback notification it receives.
type Recorder struct {
	Clock  reach.Clock
	Events []Event
}

var (
	_ trial.Orchestrator = (*Recorder)(nil)
	_ trial.Feedback     = (*Recorder)(nil)
)

func (r *Recorder) record(kind string) {
	var at time.Duration
	if r.Clock != nil {
		at = r.Clock.Now()
	}
	r.Events = append(r.Events, Event{Kind: kind, At: at})
}

func (r *Recorder) AttemptStarted() { r.record(EventStarted) }

func (r *Recorder) AttemptEnded() { r.record(EventEnded) }

func (r *Recorder) SetQuickReach(quick bool) {
	if quick {
		r.record(EventQuick)
		return
	}
	r.record(EventSlow)
}

// Kinds lists the recorded event kinds in order.
func (r *Recorder) Kinds() []string {
	kinds := make([]string, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}

// Count returns how many events of kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, e := range r.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Fanout forwards orchestrator notifications to several listeners in order.
type Fanout []trial.Orchestrator

func (f Fanout) AttemptStarted() {
	for _, o := range f {
		o.AttemptStarted()
	}
}

func (f Fanout) AttemptEnded() {
	for _, o := range f {
		o.AttemptEnded()
	}
}
