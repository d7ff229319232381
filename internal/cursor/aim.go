package cursor

import (
	"math"

	"github.com/xkilldash9x/reachctl/internal/geometry"
)

// Aim returns a hand position that puts the cursor at goal under sel, for a
// workspace centred on center. It inverts the strategy and the parent yaw.
// Clamped cursors only move along the rotated forward axis, so a goal off
// that axis is reached only in distance and height.
func Aim(sel Selection, goal, center geometry.Vector3D) geometry.Vector3D {
	local := geometry.Frame{Origin: center, YawDegrees: sel.YawDegrees}.ToLocal(goal)
	if sel.Kind() == KindClamped {
		return center.Add(geometry.Vector3D{Y: local.Y, Z: math.Hypot(local.X, local.Z)})
	}
	return center.Add(local)
}
