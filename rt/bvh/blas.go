package bvh

import "github.com/gekko3d/surf/rt/geom"

// BLAS is the bottom-level acceleration structure: a binned-SAH BVH built
// once over a single mesh's triangles, in mesh-local space. It is immutable
// after construction (refit is reserved for future dynamic scenes).
type BLAS struct {
	tree *Tree[geom.Triangle]
}

// NewBLAS builds a BLAS over tris immediately.
func NewBLAS(tris []geom.Triangle) *BLAS {
	return &BLAS{tree: Build(tris)}
}

// Bounds returns the BLAS root AABB, in mesh-local space.
func (b *BLAS) Bounds() geom.AABB {
	return b.tree.Bounds()
}

// NodesUsed reports how many pool slots are live (<= max(2*triangleCount, 2)).
func (b *BLAS) NodesUsed() uint32 { return b.tree.NodesUsed() }

// Nodes exposes the node pool read-only, for GPU export and tests.
func (b *BLAS) Nodes() []Node { return b.tree.Nodes() }

// Indices exposes the triangle index permutation read-only, for GPU export.
func (b *BLAS) Indices() []uint32 { return b.tree.Indices() }

// Triangles exposes the mesh triangles this BLAS was built over.
func (b *BLAS) Triangles() []geom.Triangle { return b.tree.Prims }

// Intersect finds the closest-hit triangle in mesh-local space. On a hit,
// ray.Depth, ray.Hit.U/V, and ray.Hit.PrimitiveIndex are updated in place.
func (b *BLAS) Intersect(ray *geom.Ray) bool {
	return b.tree.Intersect(ray, func(primIndex int) {
		ray.Hit.PrimitiveIndex = int32(primIndex)
	})
}

// IntersectAny is the any-hit variant used for occlusion/shadow queries.
func (b *BLAS) IntersectAny(ray *geom.Ray) bool {
	return b.tree.IntersectAny(ray)
}

// Refit is reserved for future dynamic meshes. Not implemented.
func (b *BLAS) Refit() {
	b.tree.Refit()
}
