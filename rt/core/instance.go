package core

import (
	"github.com/gekko3d/surf/rt/bvh"
	"github.com/gekko3d/surf/rt/geom"
	"github.com/gekko3d/surf/rt/logx"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance places a BLAS in the world: a non-owning BLAS reference, a
// material reference, an object-to-world transform and its inverse, and the
// world-space AABB of the BLAS root bounds under that transform. Instance
// implements bvh.Primitive so a TLAS can be built directly over a slice of
// Instances.
type Instance struct {
	BLAS     *bvh.BLAS
	Material *Material

	transform    Transform
	invTransform mgl32.Mat4
	bounds       geom.AABB
}

// NewInstance builds an Instance and computes its initial world bounds.
// blas and material must be non-nil; a nil reference here is a programmer
// error and is not defended against further down the call chain.
func NewInstance(blas *bvh.BLAS, material *Material, transform Transform) *Instance {
	if blas == nil || material == nil {
		panic("core: Instance requires a non-nil BLAS and Material")
	}
	inst := &Instance{BLAS: blas, Material: material}
	inst.SetTransform(transform, logx.Nop())
	return inst
}

// SetTransform recomputes the inverse transform and the world bounds
// atomically — both are derived from transform, so there's no window where
// one reflects an old transform and the other a new one. Non-uniform scale
// is accepted (per the spec, flagged rather than rejected) but logged,
// since Normal then returns approximate world-space normals.
func (inst *Instance) SetTransform(transform Transform, logger logx.Logger) {
	if !transform.IsUniformScale() {
		logger.Warnf("core: instance transform has non-uniform scale %v; world-space normals will be approximate", transform.Scale)
	}

	inst.transform = transform
	inst.invTransform = transform.WorldToObject()

	local := inst.BLAS.Bounds()
	box := geom.Empty()
	o2w := transform.ObjectToWorld()
	for _, c := range local.Corners() {
		wc := o2w.Mul4x1(c.Vec4(1.0))
		box.Grow(wc.Vec3().Mul(1.0 / wc.W()))
	}
	inst.bounds = box
}

// Transform returns the instance's current object-to-world transform.
func (inst *Instance) Transform() Transform { return inst.transform }

// Bounds returns the cached world-space AABB, satisfying bvh.Primitive.
func (inst *Instance) Bounds() geom.AABB { return inst.bounds }

// Centroid returns the world bounds' center, satisfying bvh.Primitive (the
// TLAS bins instances by AABB center, not by a BLAS-style precomputed
// centroid — there is no natural "centroid" for an instance beyond that).
func (inst *Instance) Centroid() mgl32.Vec3 { return inst.bounds.Center() }

// Intersect transforms ray into the instance's local space, traverses the
// BLAS, and applies any resulting depth/metadata update back onto ray.
// Origin and direction are restored afterward (ray.Depth and ray.Hit are
// not — those are the caller's business). direction is not renormalized,
// so the local-space t of a hit is the same distance along the original
// world-space ray and stays comparable with ray.Depth across instances.
func (inst *Instance) Intersect(ray *geom.Ray) bool {
	savedOrigin, savedDirection := ray.Origin, ray.Direction

	tPos := inst.invTransform.Mul4x1(ray.Origin.Vec4(1.0))
	tDir := inst.invTransform.Mul4x1(ray.Direction.Vec4(0.0))
	ray.Origin = tPos.Vec3().Mul(1.0 / tPos.W())
	ray.Direction = tDir.Vec3()

	hit := inst.BLAS.Intersect(ray)

	ray.Origin = savedOrigin
	ray.Direction = savedDirection
	return hit
}

// Normal returns the world-space (renormalized) geometric normal of the
// given primitive on this instance. Per the spec's uniform-scale
// assumption, the object-to-world matrix itself (not its inverse
// transpose) is sufficient to transform normals correctly.
func (inst *Instance) Normal(primitiveIndex int32) mgl32.Vec3 {
	local := inst.BLAS.Triangles()[primitiveIndex].Normal()
	o2w := inst.transform.ObjectToWorld()
	world := o2w.Mul4x1(local.Vec4(0.0)).Vec3()
	return world.Normalize()
}
