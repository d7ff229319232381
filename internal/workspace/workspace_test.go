package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/zone"
)

func testSpec() Spec {
	return Spec{
		Center:         geometry.Vector3D{Y: 1},
		HomeRadius:     0.02,
		HomeAreaRadius: 0.08,
		TargetRadius:   0.025,
		TargetDistance: 0.2,
		CursorRadius:   0.01,
	}
}

type recordingSink struct{ calls []string }

func (s *recordingSink) OnEnter(z zone.Zone) { s.calls = append(s.calls, "+"+z.String()) }
func (s *recordingSink) OnExit(z zone.Zone)  { s.calls = append(s.calls, "-"+z.String()) }

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
		ok     bool
	}{
		{"Valid", func(*Spec) {}, true},
		{"ZeroHomeRadius", func(s *Spec) { s.HomeRadius = 0 }, false},
		{"NegativeCursor", func(s *Spec) { s.CursorRadius = -1 }, false},
		{"HomeLargerThanArea", func(s *Spec) { s.HomeRadius = 0.1 }, false},
		{"TargetInsideArea", func(s *Spec) { s.TargetDistance = 0.05 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSpec()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidLayout)
			}
		})
	}

	_, err := NewLayout(Spec{})
	assert.ErrorIs(t, err, ErrInvalidLayout)
}

func TestPlaceTarget(t *testing.T) {
	l, err := NewLayout(testSpec())
	require.NoError(t, err)

	ahead := l.Target()
	assert.InDelta(t, 0.0, ahead.X, 1e-9)
	assert.InDelta(t, 1.0, ahead.Y, 1e-9)
	assert.InDelta(t, 0.2, ahead.Z, 1e-9)

	l.PlaceTarget(90)
	right := l.Target()
	assert.InDelta(t, 0.2, right.X, 1e-9)
	assert.InDelta(t, 0.0, right.Z, 1e-9)
	assert.Equal(t, 90.0, l.TargetAngle())
	assert.Equal(t, 0.025, l.Sphere(zone.Target).Radius)
}

func TestContains(t *testing.T) {
	l, err := NewLayout(testSpec())
	require.NoError(t, err)
	c := l.Center()

	assert.True(t, l.Contains(zone.Home, c))
	assert.True(t, l.Contains(zone.HomeArea, c))
	assert.False(t, l.Contains(zone.Target, c))

	// Cursor radius counts toward overlap.
	edge := c.Add(geometry.Vector3D{X: 0.025})
	assert.True(t, l.Contains(zone.Home, edge))
	assert.False(t, l.Contains(zone.Home, c.Add(geometry.Vector3D{X: 0.031})))
	assert.True(t, l.Contains(zone.Target, l.Target()))
}

func TestDetectorEdges(t *testing.T) {
	l, err := NewLayout(testSpec())
	require.NoError(t, err)
	d := NewDetector(l)
	sink := &recordingSink{}
	c := l.Center()

	n := d.Dispatch(c, sink)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"+Home", "+HomeArea"}, sink.calls)
	assert.True(t, d.Inside(zone.Home))

	sink.calls = nil
	assert.Zero(t, d.Dispatch(c, sink), "no edges without movement")

	// Jump straight to the target: exits before enters.
	d.Dispatch(l.Target(), sink)
	assert.Equal(t, []string{"-Home", "-HomeArea", "+Target"}, sink.calls)

	sink.calls = nil
	d.Dispatch(c, sink)
	assert.Equal(t, []string{"-Target", "+Home", "+HomeArea"}, sink.calls)
}

func TestDetectorFollowsMovedTarget(t *testing.T) {
	l, err := NewLayout(testSpec())
	require.NoError(t, err)
	d := NewDetector(l)

	d.Detect(l.Target())
	require.True(t, d.Inside(zone.Target))

	old := l.Target()
	l.PlaceTarget(180)
	events := d.Detect(old)
	require.Len(t, events, 1)
	assert.Equal(t, Event{Zone: zone.Target}, events[0])
}

func TestHiddenTargetContainsNothing(t *testing.T) {
	l, err := NewLayout(testSpec())
	require.NoError(t, err)
	d := NewDetector(l)
	sink := &recordingSink{}
	require.True(t, l.TargetVisible())

	d.Dispatch(l.Target(), sink)
	require.Equal(t, []string{"+Target"}, sink.calls)

	l.HideTarget()
	assert.False(t, l.TargetVisible())
	assert.False(t, l.Contains(zone.Target, l.Target()))
	assert.True(t, l.Contains(zone.Home, l.Center()), "only the target is hidden")

	sink.calls = nil
	d.Dispatch(l.Target(), sink)
	assert.Equal(t, []string{"-Target"}, sink.calls)

	// Moving the hidden target under the cursor does not trigger it.
	l.PlaceTarget(90)
	sink.calls = nil
	assert.Zero(t, d.Dispatch(l.Target(), sink))

	l.ShowTarget()
	d.Dispatch(l.Target(), sink)
	assert.Equal(t, []string{"+Target"}, sink.calls)
}
