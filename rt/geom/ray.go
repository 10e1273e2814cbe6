package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hit carries the metadata a successful traversal writes onto a Ray.
type Hit struct {
	PrimitiveIndex int32
	InstanceIndex  int32
	U, V           float32
}

// NoHit is the sentinel index used when a ray has not registered a hit.
const NoHit int32 = -1

// Ray is mutable traversal state: origin, direction, current nearest-hit
// depth, and hit metadata. Callers must normalize Direction; traversal math
// assumes Depth is a world-space distance along a unit vector.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	Depth     float32
	Hit       Hit
}

// New builds a ray with Depth initialized to +Inf and no recorded hit.
func New(origin, direction mgl32.Vec3) *Ray {
	return &Ray{
		Origin:    origin,
		Direction: direction,
		Depth:     float32(math.Inf(1)),
		Hit:       Hit{PrimitiveIndex: NoHit, InstanceIndex: NoHit},
	}
}

// HitPosition returns the world-space point the ray reached at its current
// Depth, valid only when a hit was registered.
func (r *Ray) HitPosition() mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(r.Depth))
}
