// Package workspace places the task's colliders and turns cursor movement
// into zone enter/exit events.
package workspace

import (
	"errors"
	"fmt"

	"github.com/xkilldash9x/reachctl/internal/geometry"
	"github.com/xkilldash9x/reachctl/internal/zone"
)

// ErrInvalidLayout is returned for geometry that cannot host the task.
var ErrInvalidLayout = errors.New("workspace: invalid layout")

// Sphere is a spherical trigger volume.
type Sphere struct {
	Center geometry.Vector3D
	Radius float64
}

// Overlaps reports whether a sphere of radius r at p intersects s.
func (s Sphere) Overlaps(p geometry.Vector3D, r float64) bool {
	return s.Center.Dist(p) < s.Radius+r
}

// Spec describes the workspace in metres.
type Spec struct {
	Center         geometry.Vector3D
	HomeRadius     float64
	HomeAreaRadius float64
	TargetRadius   float64
	TargetDistance float64
	CursorRadius   float64
}

// Validate checks that the zones nest the way the task expects: Home inside
// HomeArea, and the target far enough out that reaching it leaves HomeArea.
func (s Spec) Validate() error {
	switch {
	case s.HomeRadius <= 0 || s.HomeAreaRadius <= 0 || s.TargetRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidLayout)
	case s.CursorRadius < 0:
		return fmt.Errorf("%w: negative cursor radius", ErrInvalidLayout)
	case s.HomeRadius > s.HomeAreaRadius:
		return fmt.Errorf("%w: home radius %.3f exceeds home area radius %.3f",
			ErrInvalidLayout, s.HomeRadius, s.HomeAreaRadius)
	case s.TargetDistance <= s.HomeAreaRadius+s.CursorRadius:
		return fmt.Errorf("%w: target distance %.3f inside home area",
			ErrInvalidLayout, s.TargetDistance)
	}
	return nil
}

// Layout is the placed set of colliders.
type Layout struct {
	spec        Spec
	home        Sphere
	homeArea    Sphere
	target      Sphere
	targetAngle float64
	hidden      bool
}

// NewLayout builds a layout with the target straight ahead.
func NewLayout(spec Spec) (*Layout, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	l := &Layout{
		spec:     spec,
		home:     Sphere{Center: spec.Center, Radius: spec.HomeRadius},
		homeArea: Sphere{Center: spec.Center, Radius: spec.HomeAreaRadius},
	}
	l.PlaceTarget(0)
	return l, nil
}

// PlaceTarget moves the target to angle degrees (yaw about the vertical)
// at the configured distance from the centre.
func (l *Layout) PlaceTarget(angle float64) {
	l.targetAngle = angle
	l.target = Sphere{
		Center: l.spec.Center.Add(geometry.Forward(angle).Mul(l.spec.TargetDistance)),
		Radius: l.spec.TargetRadius,
	}
}

// Sphere returns the collider of z.
func (l *Layout) Sphere(z zone.Zone) Sphere {
	switch z {
	case zone.Target:
		return l.target
	case zone.Home:
		return l.home
	default:
		return l.homeArea
	}
}

// Contains reports whether a cursor at p overlaps z. A hidden target
// contains nothing.
func (l *Layout) Contains(z zone.Zone, p geometry.Vector3D) bool {
	if z == zone.Target && l.hidden {
		return false
	}
	return l.Sphere(z).Overlaps(p, l.spec.CursorRadius)
}

// ShowTarget makes the target collider live.
func (l *Layout) ShowTarget() { l.hidden = false }

// HideTarget disables the target collider. A cursor resting on it is
// reported as leaving at the next Detect.
func (l *Layout) HideTarget() { l.hidden = true }

// TargetVisible reports whether the target collider is live.
func (l *Layout) TargetVisible() bool { return !l.hidden }

// Center is the workspace centre.
func (l *Layout) Center() geometry.Vector3D { return l.spec.Center }

// Target is the current target centre.
func (l *Layout) Target() geometry.Vector3D { return l.target.Center }

// TargetAngle is the angle the target was last placed at.
func (l *Layout) TargetAngle() float64 { return l.targetAngle }

// Spec returns the layout's dimensions.
func (l *Layout) Spec() Spec { return l.spec }
