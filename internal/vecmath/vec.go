// Package vecmath provides the 3D vector helpers shared by the simulation core.
// Vectors are mgl64.Vec3 values; this package adds the game-specific pieces
// (yaw-based directions, lerp, finiteness checks) on top.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the position/velocity/direction type used throughout the core.
type Vec3 = mgl64.Vec3

// V3 builds a vector from components.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Forward returns the unit direction the player faces for a given yaw.
// Yaw 0 faces -Z, matching a camera offset that sits behind the player on +Z.
func Forward(yaw float64) Vec3 {
	return Vec3{math.Sin(yaw), 0, -math.Cos(yaw)}
}

// Right returns the unit strafe direction for a given yaw.
func Right(yaw float64) Vec3 {
	return Vec3{math.Cos(yaw), 0, math.Sin(yaw)}
}

// Horizontal drops the vertical component.
func Horizontal(v Vec3) Vec3 {
	return Vec3{v.X(), 0, v.Z()}
}

// Lerp interpolates between a and b by t (unclamped).
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// FiniteF reports whether f is neither NaN nor infinite.
func FiniteF(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Finite reports whether every component of v is finite.
func Finite(v Vec3) bool {
	return FiniteF(v[0]) && FiniteF(v[1]) && FiniteF(v[2])
}

// WrapAngle maps an angle in radians into (-Pi, Pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return mgl64.Clamp(v, lo, hi)
}
