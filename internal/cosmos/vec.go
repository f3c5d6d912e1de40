// Package cosmos models the stylized solar system behind the navigation:
// the read-only body table, per-body simulation state, the camera and the
// top-down projection used to draw it in a terminal.
package cosmos

import (
	"math"
)

// Vec3 is a point or offset in scene units. Y is up; orbits lie in the
// X/Z plane.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Lerp returns the point a fraction t of the way from v to u.
func (v Vec3) Lerp(u Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (u.X-v.X)*t,
		Y: v.Y + (u.Y-v.Y)*t,
		Z: v.Z + (u.Z-v.Z)*t,
	}
}

// PlanarDistance is the distance from the origin in the orbital plane.
func (v Vec3) PlanarDistance() float64 {
	return math.Hypot(v.X, v.Z)
}
