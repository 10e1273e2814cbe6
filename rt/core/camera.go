package core

import (
	"math"

	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// ViewPlane is the precomputed image plane a Camera casts primary rays
// through: topLeft plus per-axis sweep vectors, so GetPrimaryRay only needs
// two lerp-like multiply-adds per call.
type ViewPlane struct {
	TopLeft mgl32.Vec3
	UVector mgl32.Vec3
	VVector mgl32.Vec3
}

// Camera is a pinhole camera: a position, an orthonormal forward/right/up
// basis, and a ViewPlane derived from vertical FOV and the screen's aspect
// ratio.
type Camera struct {
	Position     mgl32.Vec3
	Forward      mgl32.Vec3
	Right        mgl32.Vec3
	Up           mgl32.Vec3
	ScreenWidth  float32
	ScreenHeight float32
	FovYDegrees  float32
	ViewPlane    ViewPlane
}

// NewCamera builds a Camera looking from position toward target, derives its
// basis from WORLD_UP, and generates the view plane immediately.
func NewCamera(position, target mgl32.Vec3, screenWidth, screenHeight uint32, fovYDegrees float32) *Camera {
	worldUp := mgl32.Vec3{0, 1, 0}
	forward := target.Sub(position).Normalize()
	right := worldUp.Cross(forward).Normalize()
	up := forward.Cross(right).Normalize()

	c := &Camera{
		Position:     position,
		Forward:      forward,
		Right:        right,
		Up:           up,
		ScreenWidth:  float32(screenWidth),
		ScreenHeight: float32(screenHeight),
		FovYDegrees:  fovYDegrees,
	}
	c.generateViewPlane()
	return c
}

func (c *Camera) generateViewPlane() {
	heightScale := float32(math.Tan(float64(mgl32.DegToRad(c.FovYDegrees)) / 2.0))
	aspectRatio := c.ScreenWidth / c.ScreenHeight

	viewportHeight := 2.0 * heightScale
	viewportWidth := aspectRatio * viewportHeight

	uVector := c.Right.Mul(viewportWidth)
	vVector := c.Up.Mul(-viewportHeight)

	topLeft := c.Position.Add(c.Forward).Sub(uVector.Mul(0.5)).Sub(vVector.Mul(0.5))

	c.ViewPlane = ViewPlane{TopLeft: topLeft, UVector: uVector, VVector: vVector}
}

// GetPrimaryRay returns the ray from the camera through pixel (x, y), with
// x in [0, ScreenWidth) and y in [0, ScreenHeight).
func (c *Camera) GetPrimaryRay(x, y float32) *geom.Ray {
	u := x / c.ScreenWidth
	v := y / c.ScreenHeight

	planePosition := c.ViewPlane.TopLeft.Add(c.ViewPlane.UVector.Mul(u)).Add(c.ViewPlane.VVector.Mul(v))
	direction := planePosition.Sub(c.Position).Normalize()

	return geom.New(c.Position, direction)
}
