package workspace

import (
	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/zone"
)

// Sink receives zone events.
type Sink interface {
	OnEnter(z zone.Zone)
	OnExit(z zone.Zone)
}

// Event is a single overlap edge.
type Event struct {
	Zone    zone.Zone
	Entered bool
}

// Detector compares the cursor's overlaps frame to frame and reports the
// edges. Exits are reported before enters; within each group zones come in
// zone.All order (Target, Home, HomeArea).
type Detector struct {
	layout  *Layout
	inside  [3]bool
	scratch []Event
}

// NewDetector starts with the cursor outside every zone.
func NewDetector(layout *Layout) *Detector {
	return &Detector{layout: layout}
}

// Detect returns the edges produced by the cursor moving to p. The returned
// slice is reused by the next call.
func (d *Detector) Detect(p geometry.Vector3D) []Event {
	d.scratch = d.scratch[:0]
	var now [3]bool
	for _, z := range zone.All {
		now[z] = d.layout.Contains(z, p)
	}
	for _, z := range zone.All {
		if d.inside[z] && !now[z] {
			d.scratch = append(d.scratch, Event{Zone: z})
		}
	}
	for _, z := range zone.All {
		if !d.inside[z] && now[z] {
			d.scratch = append(d.scratch, Event{Zone: z, Entered: true})
		}
	}
	d.inside = now
	return d.scratch
}

// Dispatch detects the edges at p and delivers them to sink.
func (d *Detector) Dispatch(p geometry.Vector3D, sink Sink) int {
	events := d.Detect(p)
	for _, e := range events {
		if e.Entered {
			sink.OnEnter(e.Zone)
		} else {
			sink.OnExit(e.Zone)
		}
	}
	return len(events)
}

// Inside reports whether the cursor was inside z at the last Detect.
func (d *Detector) Inside(z zone.Zone) bool {
	return d.inside[z]
}
