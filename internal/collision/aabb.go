// Package collision implements axis-aligned bounding box construction and
// overlap testing for the simulation core.
package collision

import "github.com/vovakirdan/raanman3d/internal/vecmath"

// Player half-extents. The box origin sits at the feet, not the centre.
const (
	PlayerHalfWidth = 0.4
	PlayerHalfDepth = 0.25
	PlayerHeight    = 2.8
)

// AABB is an axis-aligned box. Min must not exceed Max on any axis.
type AABB struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// Overlap reports whether a and b penetrate on all three axes.
// Touching faces (a.MaxX == b.MinX) are not an overlap, so resting contact on
// a platform top is never reported as a collision.
func Overlap(a, b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinY < b.MaxY && a.MaxY > b.MinY &&
		a.MinZ < b.MaxZ && a.MaxZ > b.MinZ
}

// PlayerAABB returns the player box for a feet position.
func PlayerAABB(pos vecmath.Vec3) AABB {
	return AABB{
		MinX: pos.X() - PlayerHalfWidth,
		MaxX: pos.X() + PlayerHalfWidth,
		MinY: pos.Y(),
		MaxY: pos.Y() + PlayerHeight,
		MinZ: pos.Z() - PlayerHalfDepth,
		MaxZ: pos.Z() + PlayerHalfDepth,
	}
}

// BoxAround returns a box centred on center with full extents size.
func BoxAround(center, size vecmath.Vec3) AABB {
	hx, hy, hz := size.X()/2, size.Y()/2, size.Z()/2
	return AABB{
		MinX: center.X() - hx,
		MaxX: center.X() + hx,
		MinY: center.Y() - hy,
		MaxY: center.Y() + hy,
		MinZ: center.Z() - hz,
		MaxZ: center.Z() + hz,
	}
}

// OverlapXZ reports strict overlap of the horizontal footprints only.
func OverlapXZ(a, b AABB) bool {
	return a.MinX < b.MaxX && a.MaxX > b.MinX &&
		a.MinZ < b.MaxZ && a.MaxZ > b.MinZ
}

// Valid reports whether every bound is finite and min <= max on each axis.
// A box with NaN bounds would silently fail every comparison.
func (a AABB) Valid() bool {
	for _, f := range []float64{a.MinX, a.MaxX, a.MinY, a.MaxY, a.MinZ, a.MaxZ} {
		if !vecmath.FiniteF(f) {
			return false
		}
	}
	return a.MinX <= a.MaxX && a.MinY <= a.MaxY && a.MinZ <= a.MaxZ
}

// Center returns the box centre.
func (a AABB) Center() vecmath.Vec3 {
	return vecmath.V3((a.MinX+a.MaxX)/2, (a.MinY+a.MaxY)/2, (a.MinZ+a.MaxZ)/2)
}

// Size returns the full extents.
func (a AABB) Size() vecmath.Vec3 {
	return vecmath.V3(a.MaxX-a.MinX, a.MaxY-a.MinY, a.MaxZ-a.MinZ)
}
