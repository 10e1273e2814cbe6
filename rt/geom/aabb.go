// Package geom provides the leaf-level geometry primitives the BVH core is
// built from: axis-aligned bounding boxes, rays, and triangles.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FarAway is the sentinel distance returned by AABB.Intersect when a ray
// misses a box, or when a traversal child is known to be unreachable.
const FarAway = 1e30

// Epsilon bounds the Möller–Trumbore parallel-ray rejection in Triangle.Intersect.
const Epsilon = 1e-5

// AABB is an axis-aligned bounding box. The zero value is not the empty box;
// use Empty() to get one that Grow can be called on safely.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Empty returns an AABB initialized to (+inf, -inf), representing the empty
// set. It must be grown before it bounds anything meaningfully.
func Empty() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func vmin(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{min32(a[0], b[0]), min32(a[1], b[1]), min32(a[2], b[2])}
}

func vmax(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{max32(a[0], b[0]), max32(a[1], b[1]), max32(a[2], b[2])}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Grow expands the box to contain point.
func (b *AABB) Grow(point mgl32.Vec3) {
	b.Min = vmin(b.Min, point)
	b.Max = vmax(b.Max, point)
}

// GrowBox expands the box to contain other.
func (b *AABB) GrowBox(other AABB) {
	b.Min = vmin(b.Min, other.Min)
	b.Max = vmax(b.Max, other.Max)
}

// Area returns the surface-area heuristic cost term for this box (twice the
// true surface area cancels out in every SAH comparison, so this is left
// unnormalized like the teacher's bvh builder).
func (b AABB) Area() float32 {
	e := b.Max.Sub(b.Min)
	return e[0]*e[1] + e[1]*e[2] + e[2]*e[0]
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Corners returns the 8 corners of the box, in a fixed order, for transform
// round-tripping (Instance world-bounds computation).
func (b AABB) Corners() [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{b.Min.X(), b.Min.Y(), b.Min.Z()},
		{b.Max.X(), b.Min.Y(), b.Min.Z()},
		{b.Min.X(), b.Max.Y(), b.Min.Z()},
		{b.Max.X(), b.Max.Y(), b.Min.Z()},
		{b.Min.X(), b.Min.Y(), b.Max.Z()},
		{b.Max.X(), b.Min.Y(), b.Max.Z()},
		{b.Min.X(), b.Max.Y(), b.Max.Z()},
		{b.Max.X(), b.Max.Y(), b.Max.Z()},
	}
}

// Intersect returns the near entry distance of ray against the box, within
// (0, ray.Depth), or FarAway if the ray misses. Division by a zero
// direction component is permitted to produce ±Inf; IEEE-754 min/max folding
// handles it correctly without a branch.
func (b AABB) Intersect(ray *Ray) float32 {
	rDirX := 1.0 / ray.Direction.X()
	rDirY := 1.0 / ray.Direction.Y()
	rDirZ := 1.0 / ray.Direction.Z()

	txNear := (b.Min.X() - ray.Origin.X()) * rDirX
	txFar := (b.Max.X() - ray.Origin.X()) * rDirX
	tmin := min32(txNear, txFar)
	tmax := max32(txNear, txFar)

	tyNear := (b.Min.Y() - ray.Origin.Y()) * rDirY
	tyFar := (b.Max.Y() - ray.Origin.Y()) * rDirY
	tmin = max32(tmin, min32(tyNear, tyFar))
	tmax = min32(tmax, max32(tyNear, tyFar))

	tzNear := (b.Min.Z() - ray.Origin.Z()) * rDirZ
	tzFar := (b.Max.Z() - ray.Origin.Z()) * rDirZ
	tmin = max32(tmin, min32(tzNear, tzFar))
	tmax = min32(tmax, max32(tzNear, tzFar))

	if tmax >= tmin && tmin < ray.Depth && tmax > 0.0 {
		return tmin
	}

	return FarAway
}
