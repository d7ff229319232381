// internal/geometry/vector.go
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3D represents a point or vector in the tracked workspace.
// Y is the vertical axis; the horizontal plane is X/Z.
type Vector3D struct {
	X, Y, Z float64
}

// Zero is the origin.
var Zero = Vector3D{}

func (v Vector3D) vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func fromVec(p r3.Vec) Vector3D { return Vector3D{X: p.X, Y: p.Y, Z: p.Z} }

// Add returns the vector sum of v and other.
func (v Vector3D) Add(other Vector3D) Vector3D {
	return fromVec(r3.Add(v.vec(), other.vec()))
}

// Sub returns the vector difference of v and other.
func (v Vector3D) Sub(other Vector3D) Vector3D {
	return fromVec(r3.Sub(v.vec(), other.vec()))
}

// Mul returns the vector v scaled by the scalar factor.
func (v Vector3D) Mul(scalar float64) Vector3D {
	return fromVec(r3.Scale(scalar, v.vec()))
}

// Mag calculates the magnitude (length) of the vector.
func (v Vector3D) Mag() float64 {
	return r3.Norm(v.vec())
}

// Dist calculates the Euclidean distance between v and other (treated as points).
func (v Vector3D) Dist(other Vector3D) float64 {
	return r3.Norm(r3.Sub(v.vec(), other.vec()))
}

// Normalize returns a unit vector in the same direction as v.
func (v Vector3D) Normalize() Vector3D {
	if v.Mag() < 1e-9 {
		return Vector3D{}
	}
	return fromVec(r3.Unit(v.vec()))
}

// Horizontal drops the vertical component.
func (v Vector3D) Horizontal() Vector3D {
	return Vector3D{X: v.X, Z: v.Z}
}

// Lerp interpolates between v and other; t is not clamped.
func (v Vector3D) Lerp(other Vector3D, t float64) Vector3D {
	return v.Add(other.Sub(v).Mul(t))
}

// Yaw returns v rotated about the vertical axis by the given angle in degrees.
// A positive angle turns the forward axis (+Z) toward +X.
func (v Vector3D) Yaw(degrees float64) Vector3D {
	if degrees == 0 {
		return v
	}
	rot := r3.NewRotation(degrees*math.Pi/180, r3.Vec{Y: 1})
	return fromVec(rot.Rotate(v.vec()))
}

// Forward returns the unit horizontal direction at the given yaw in degrees.
func Forward(degrees float64) Vector3D {
	return Vector3D{Z: 1}.Yaw(degrees)
}
