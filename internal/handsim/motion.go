// internal/handsim/motion.go
package handsim

import (
	"math"
	"math/rand"
	"time"

	"github.com/xkilldash9x/reachctl/internal/geometry"
)

// computeEaseInOutCubic provides a smooth acceleration and deceleration profile for movement.
func computeEaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// fittsDuration is the movement time for a reach of distance to a target
// of the given width, both in metres. a and b are in milliseconds.
func fittsDuration(a, b, distance, width float64, rng *rand.Rand) time.Duration {
	if width <= 0 {
		width = 0.01
	}
	id := math.Log2(1.0 + distance/width)
	mt := a + b*id

	// +/- 15%
	mt += mt * (rng.Float64()*0.3 - 0.15)
	if mt < 1 {
		mt = 1
	}
	return time.Duration(mt * float64(time.Millisecond))
}

// movement is one planned reach along a cubic Bezier curve.
type movement struct {
	p0, p1, p2, p3 geometry.Vector3D
	start          time.Duration
	duration       time.Duration
}

// planMovement bows the path sideways in the horizontal plane; curvature
// is the sideways offset as a fraction of the distance.
func planMovement(from, to geometry.Vector3D, start, duration time.Duration, curvature float64) *movement {
	main := to.Sub(from)
	dist := main.Mag()
	dir := main.Normalize()
	side := geometry.Vector3D{X: dir.Z, Z: -dir.X}.Normalize().Mul(dist * curvature)

	return &movement{
		p0:       from,
		p1:       from.Add(dir.Mul(dist / 3.0)).Add(side),
		p2:       from.Add(dir.Mul(dist * 2.0 / 3.0)).Add(side.Mul(0.5)),
		p3:       to,
		start:    start,
		duration: duration,
	}
}

func (m *movement) done(now time.Duration) bool {
	return now >= m.start+m.duration
}

// at returns the eased position along the path at now.
func (m *movement) at(now time.Duration) geometry.Vector3D {
	if m.duration <= 0 || m.done(now) {
		return m.p3
	}
	t := float64(now-m.start) / float64(m.duration)
	if t < 0 {
		t = 0
	}
	return bezier(m.p0, m.p1, m.p2, m.p3, computeEaseInOutCubic(t))
}

func bezier(p0, p1, p2, p3 geometry.Vector3D, t float64) geometry.Vector3D {
	omt := 1.0 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t
	return p0.Mul(omt3).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t3))
}
