package geometry

// Frame is a parent transform with a position and a yaw-only rotation.
// Cursor positions are expressed in a Frame's local coordinates.
type Frame struct {
	Origin     Vector3D
	YawDegrees float64
}

// ToWorld converts a local position into world coordinates.
func (f Frame) ToWorld(local Vector3D) Vector3D {
	return f.Origin.Add(local.Yaw(f.YawDegrees))
}

// ToLocal converts a world position into the frame's local coordinates.
func (f Frame) ToLocal(world Vector3D) Vector3D {
	return world.Sub(f.Origin).Yaw(-f.YawDegrees)
}
