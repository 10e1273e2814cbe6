package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAABBGrowAndArea(t *testing.T) {
	box := Empty()
	box.Grow(mgl32.Vec3{-1, -2, -3})
	box.Grow(mgl32.Vec3{4, 5, 6})

	if box.Min != (mgl32.Vec3{-1, -2, -3}) || box.Max != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("unexpected bounds: %+v", box)
	}

	// extent (5,7,9): area = 5*7 + 7*9 + 9*5 = 35+63+45 = 143
	if !closeEnough(box.Area(), 143.0, 1e-3) {
		t.Errorf("area = %v, want 143", box.Area())
	}
}

func TestAABBIntersectHitAndMiss(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	hit := New(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1})
	if d := box.Intersect(hit); d == FarAway {
		t.Fatal("expected a hit on a ray pointed at the box")
	}

	miss := New(mgl32.Vec3{5, 5, -5}, mgl32.Vec3{0, 0, 1})
	if d := box.Intersect(miss); d != FarAway {
		t.Errorf("expected FarAway, got %v", d)
	}
}

func TestAABBIntersectRespectsRayDepth(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{-1, -1, 9}, Max: mgl32.Vec3{1, 1, 11}}
	ray := New(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1})
	ray.Depth = 5.0 // box entry is at t=9, beyond the current best hit

	if d := box.Intersect(ray); d != FarAway {
		t.Errorf("box entry beyond ray.Depth should not count as a hit, got %v", d)
	}
}

func TestAABBCorners(t *testing.T) {
	box := AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1, 1, 1}}
	corners := box.Corners()
	if len(corners) != 8 {
		t.Fatalf("expected 8 corners, got %d", len(corners))
	}
	seen := map[mgl32.Vec3]bool{}
	for _, c := range corners {
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct corners, got %d", len(seen))
	}
}
