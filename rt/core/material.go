package core

import "github.com/go-gl/mathgl/mgl32"

// Material is the surface/volume description an Instance references.
// Shading itself (BSDF evaluation) is out of scope for the acceleration
// core; what matters here is IsLight, which the scene uses to build its
// light index list.
type Material struct {
	Emittance  mgl32.Vec3
	Albedo     mgl32.Vec3
	Absorption mgl32.Vec3

	Reflectivity      float32
	Refractivity      float32
	IndexOfRefraction float32
}

// DefaultMaterial returns a plain diffuse white, non-emissive material.
func DefaultMaterial() Material {
	return Material{
		Albedo:            mgl32.Vec3{1, 1, 1},
		IndexOfRefraction: 1.0,
	}
}

// IsLight reports whether any emittance channel is non-zero.
func (m Material) IsLight() bool {
	return m.Emittance.X() != 0 || m.Emittance.Y() != 0 || m.Emittance.Z() != 0
}
