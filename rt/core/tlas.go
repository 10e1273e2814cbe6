package core

import (
	"github.com/gekko3d/surf/rt/bvh"
	"github.com/gekko3d/surf/rt/geom"
)

// TLAS is the top-level acceleration structure: a binned-SAH BVH over
// instance world-AABBs, built with the same generic bvh.Tree the BLAS uses
// (spec §4.3 frames binned-SAH construction as shared between the two).
// Traversal dispatches into each candidate instance's BLAS.
type TLAS struct {
	tree *bvh.Tree[*Instance]
}

// NewTLAS builds a TLAS over instances immediately. Instance world bounds
// must already be settled (via SetTransform) before calling this.
func NewTLAS(instances []*Instance) *TLAS {
	return &TLAS{tree: bvh.Build(instances)}
}

// Instances exposes the instance table read-only.
func (t *TLAS) Instances() []*Instance { return t.tree.Prims }

// Instance returns the i-th instance in TLAS build order.
func (t *TLAS) Instance(i int) *Instance { return t.tree.Prims[i] }

// Bounds returns the TLAS root AABB, in world space.
func (t *TLAS) Bounds() geom.AABB { return t.tree.Bounds() }

// NodesUsed reports how many pool slots are live.
func (t *TLAS) NodesUsed() uint32 { return t.tree.NodesUsed() }

// Nodes exposes the node pool read-only, for GPU export and tests.
func (t *TLAS) Nodes() []bvh.Node { return t.tree.Nodes() }

// Indices exposes the instance index permutation read-only, for GPU export.
func (t *TLAS) Indices() []uint32 { return t.tree.Indices() }

// Intersect finds the closest-hit instance/triangle pair over the whole
// scene. On a hit, ray.Depth, ray.Hit.U/V, ray.Hit.PrimitiveIndex, and
// ray.Hit.InstanceIndex are all updated in place.
func (t *TLAS) Intersect(ray *geom.Ray) bool {
	return t.tree.Intersect(ray, func(instanceIndex int) {
		ray.Hit.InstanceIndex = int32(instanceIndex)
	})
}

// IntersectAny is the any-hit variant used for occlusion/shadow queries.
func (t *TLAS) IntersectAny(ray *geom.Ray) bool {
	return t.tree.IntersectAny(ray)
}

// Refit is reserved for future dynamic scenes. Not implemented.
func (t *TLAS) Refit() {
	t.tree.Refit()
}
