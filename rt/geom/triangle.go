package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is an immutable leaf primitive: three vertices and a precomputed
// centroid. Front- and back-face hits both accept; there is no culling.
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
	centroid   mgl32.Vec3
}

// NewTriangle builds a Triangle and precomputes its centroid.
func NewTriangle(v0, v1, v2 mgl32.Vec3) Triangle {
	return Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		centroid: v0.Add(v1).Add(v2).Mul(1.0 / 3.0),
	}
}

// Centroid returns the precomputed centroid, satisfying bvh.Primitive.
func (t Triangle) Centroid() mgl32.Vec3 {
	return t.centroid
}

// Bounds returns the AABB of the three vertices, satisfying bvh.Primitive.
func (t Triangle) Bounds() AABB {
	box := Empty()
	box.Grow(t.V0)
	box.Grow(t.V1)
	box.Grow(t.V2)
	return box
}

// Normal returns the geometric face normal in the triangle's local space.
func (t Triangle) Normal() mgl32.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0)).Normalize()
}

// Intersect implements Möller–Trumbore. On acceptance it replaces ray.Depth
// with the new hit distance and sets ray.Hit.U/V to the barycentrics; it
// does not touch ray.Hit.PrimitiveIndex — BLAS.Intersect does that, since
// only the BVH knows this triangle's index in the mesh.
func (t Triangle) Intersect(ray *Ray) bool {
	e1 := t.V1.Sub(t.V0)
	e2 := t.V2.Sub(t.V0)

	h := ray.Direction.Cross(e2)
	a := e1.Dot(h)

	if float32(math.Abs(float64(a))) < Epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Sub(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(e1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	depth := f * e2.Dot(q)
	if depth <= Epsilon || depth >= ray.Depth {
		return false
	}

	ray.Depth = depth
	ray.Hit.U = u
	ray.Hit.V = v
	return true
}
