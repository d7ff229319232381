// Package cursor maps the tracked hand position onto the displayed cursor.
//
// A Strategy converts a raw hand position and the workspace centre into a
// cursor position expressed in the cursor parent's local frame. The parent
// frame carries the per-trial yaw rotation, so rotated-feedback trials only
// need to change the Selection, never the Strategy.
package cursor

import (
	"math"

	"github.com/xkilldash9x/reachctl/internal/geometry"
)

// Kind names a mapping strategy.
type Kind string

const (
	KindAligned Kind = "aligned"
	KindClamped Kind = "clamped"
)

// Trial types with special meaning.
const (
	TypeClamped  = "clamped"
	TypeNoCursor = "nocursor"
)

// Strategy produces the local cursor position for a raw hand position.
type Strategy interface {
	Map(raw, center geometry.Vector3D) geometry.Vector3D
	Kind() Kind
}

// Aligned is a direct correspondence between hand and cursor.
type Aligned struct{}

// Map returns the hand's offset from the centre.
func (Aligned) Map(raw, center geometry.Vector3D) geometry.Vector3D {
	return raw.Sub(center)
}

func (Aligned) Kind() Kind { return KindAligned }

// Clamped constrains the cursor to the local forward axis. The horizontal
// distance of the hand from the centre becomes the distance along +Z and the
// vertical offset is kept, so the cursor travels straight at the target at
// the same distance from home as the hand.
type Clamped struct{}

// Map projects the hand's horizontal displacement onto the forward axis.
func (Clamped) Map(raw, center geometry.Vector3D) geometry.Vector3D {
	d := raw.Sub(center)
	return geometry.Vector3D{Y: d.Y, Z: math.Hypot(d.X, d.Z)}
}

func (Clamped) Kind() Kind { return KindClamped }
