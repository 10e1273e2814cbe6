package core

import (
	"math/rand"

	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene ties a TLAS of instances to a Background and the subset of those
// instances that emit light, mirroring Scene::sampleLights in the original
// source.
type Scene struct {
	tlas         *TLAS
	background   Background
	lightIndices []int
}

// NewScene builds a TLAS over instances and indexes every instance whose
// material emits light.
func NewScene(instances []*Instance, background Background) *Scene {
	s := &Scene{
		tlas:       NewTLAS(instances),
		background: background,
	}
	for i, inst := range s.tlas.Instances() {
		if inst.Material.IsLight() {
			s.lightIndices = append(s.lightIndices, i)
		}
	}
	return s
}

// TLAS exposes the underlying acceleration structure read-only.
func (s *Scene) TLAS() *TLAS { return s.tlas }

// Background returns the scene's miss background.
func (s *Scene) Background() Background { return s.background }

// Instance returns the i-th instance in TLAS build order.
func (s *Scene) Instance(i int) *Instance { return s.tlas.Instance(i) }

// LightCount reports how many instances emit light.
func (s *Scene) LightCount() int { return len(s.lightIndices) }

// SampleLights uniformly picks one light-emitting instance, or nil if the
// scene has none.
func (s *Scene) SampleLights(rng *rand.Rand) *Instance {
	if len(s.lightIndices) == 0 {
		return nil
	}
	pick := s.lightIndices[rng.Intn(len(s.lightIndices))]
	return s.tlas.Instance(pick)
}

// Intersect finds the closest-hit instance/triangle pair over the scene.
func (s *Scene) Intersect(ray *geom.Ray) bool {
	return s.tlas.Intersect(ray)
}

// IntersectAny is the any-hit variant used for occlusion/shadow queries.
func (s *Scene) IntersectAny(ray *geom.Ray) bool {
	return s.tlas.IntersectAny(ray)
}

// SampleBackground resolves the color a ray that missed every instance
// should return.
func (s *Scene) SampleBackground(ray *geom.Ray) mgl32.Vec3 {
	return s.background.Sample(ray.Direction)
}

// Bounds returns the scene's world-space TLAS root AABB.
func (s *Scene) Bounds() geom.AABB { return s.tlas.Bounds() }
