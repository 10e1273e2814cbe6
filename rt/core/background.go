package core

import "github.com/go-gl/mathgl/mgl32"

// BackgroundKind selects how Background.Sample resolves a miss ray's color.
type BackgroundKind int

const (
	// BackgroundSolidColor always returns Color.
	BackgroundSolidColor BackgroundKind = iota
	// BackgroundGradient blends GradientBottom..GradientTop along the ray
	// direction's Y component.
	BackgroundGradient
)

// Background describes what a ray that misses the whole scene should
// return, following the SceneBackground variant in the original source.
type Background struct {
	Kind           BackgroundKind
	Color          mgl32.Vec3
	GradientBottom mgl32.Vec3
	GradientTop    mgl32.Vec3
}

// SolidBackground returns a Background that always resolves to color.
func SolidBackground(color mgl32.Vec3) Background {
	return Background{Kind: BackgroundSolidColor, Color: color}
}

// GradientBackground returns a vertical two-color gradient background.
func GradientBackground(bottom, top mgl32.Vec3) Background {
	return Background{Kind: BackgroundGradient, GradientBottom: bottom, GradientTop: top}
}

// Sample resolves the background color for a ray that missed every
// instance in the scene.
func (b Background) Sample(direction mgl32.Vec3) mgl32.Vec3 {
	switch b.Kind {
	case BackgroundGradient:
		t := 0.5 * (direction.Y() + 1.0)
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		return b.GradientBottom.Mul(1 - t).Add(b.GradientTop.Mul(t))
	default:
		return b.Color
	}
}
