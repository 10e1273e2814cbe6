package core

import "github.com/go-gl/mathgl/mgl32"

// Transform is a TRS object-to-world transform: translate * rotate * scale.
// Instance traversal (§4.6) assumes rigid rotation plus uniform scale — a
// non-uniform Scale would need normals transformed by the inverse-transpose,
// which Instance.Normal does not do, so it's flagged rather than silently
// accepted; see Transform.IsUniformScale.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// Identity returns a Transform with no translation, no rotation, and unit
// scale.
func Identity() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// ObjectToWorld returns M = T * R * S.
func (t Transform) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// WorldToObject returns inv(M) = inv(S) * inv(R) * inv(T), computed cheaply
// from the known component matrices rather than a general 4x4 inverse.
func (t Transform) WorldToObject() mgl32.Mat4 {
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	invRotate := t.Rotation.Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// IsUniformScale reports whether Scale's three components agree within an
// absolute tolerance of 1e-4, which is what Instance.Normal needs for its
// object-to-world normal transform to be correct.
func (t Transform) IsUniformScale() bool {
	const tol = 1e-4
	sx, sy, sz := t.Scale.X(), t.Scale.Y(), t.Scale.Z()
	return approxEqual(sx, sy, tol) && approxEqual(sy, sz, tol)
}

func approxEqual(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
