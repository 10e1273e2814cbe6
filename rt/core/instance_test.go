package core

import (
	"math/rand"
	"testing"

	"github.com/gekko3d/surf/rt/bvh"
	"github.com/gekko3d/surf/rt/geom"
	"github.com/gekko3d/surf/rt/logx"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func unitQuadTriangles() []geom.Triangle {
	return []geom.Triangle{
		geom.NewTriangle(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}, mgl32.Vec3{1, 1, 0}),
		geom.NewTriangle(mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{-1, 1, 0}),
	}
}

func TestInstanceRequiresNonNilBLASAndMaterial(t *testing.T) {
	mat := DefaultMaterial()
	blas := bvh.NewBLAS(unitQuadTriangles())

	require.Panics(t, func() { NewInstance(nil, &mat, Identity()) })
	require.Panics(t, func() { NewInstance(blas, nil, Identity()) })
}

func TestInstanceIntersectTransformsRayIntoLocalSpace(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()

	transform := Identity()
	transform.Position = mgl32.Vec3{5, 0, 0}
	inst := NewInstance(blas, &mat, transform)

	ray := geom.New(mgl32.Vec3{5, 0, -5}, mgl32.Vec3{0, 0, 1})
	hit := inst.Intersect(ray)

	require.True(t, hit)
	require.InDelta(t, 5.0, ray.Depth, 1e-4)
	// Origin/Direction must be restored to world space after Intersect.
	require.Equal(t, mgl32.Vec3{5, 0, -5}, ray.Origin)
	require.Equal(t, mgl32.Vec3{0, 0, 1}, ray.Direction)
}

func TestInstanceMissDoesNotTouchRay(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	inst := NewInstance(blas, &mat, Identity())

	ray := geom.New(mgl32.Vec3{10, 10, -5}, mgl32.Vec3{0, 0, 1})
	hit := inst.Intersect(ray)

	require.False(t, hit)
	require.Equal(t, geom.NoHit, ray.Hit.PrimitiveIndex)
}

func TestInstanceSetTransformWarnsOnNonUniformScale(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	inst := NewInstance(blas, &mat, Identity())

	var warned bool
	logger := &recordingLogger{onWarn: func() { warned = true }}

	skewed := Identity()
	skewed.Scale = mgl32.Vec3{1, 2, 1}
	inst.SetTransform(skewed, logger)

	require.True(t, warned)
}

func TestInstanceBoundsTrackTransform(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	inst := NewInstance(blas, &mat, Identity())

	originalBounds := inst.Bounds()

	moved := Identity()
	moved.Position = mgl32.Vec3{10, 0, 0}
	inst.SetTransform(moved, logx.Nop())

	require.NotEqual(t, originalBounds.Center(), inst.Bounds().Center())
	require.InDelta(t, 10.0, inst.Bounds().Center().X(), 1e-4)
}

func randomRotatedInstance(seed int64) *Instance {
	rng := rand.New(rand.NewSource(seed))
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	transform := Identity()
	transform.Rotation = mgl32.QuatRotate(rng.Float32(), mgl32.Vec3{0, 1, 0})
	return NewInstance(blas, &mat, transform)
}

func TestInstanceNormalStaysUnitLengthUnderRotation(t *testing.T) {
	inst := randomRotatedInstance(42)
	n := inst.Normal(0)
	require.InDelta(t, 1.0, n.Len(), 1e-4)
}

type recordingLogger struct {
	onWarn func()
}

func (r *recordingLogger) Debugf(string, ...any) {}
func (r *recordingLogger) Infof(string, ...any)  {}
func (r *recordingLogger) Warnf(string, ...any) {
	if r.onWarn != nil {
		r.onWarn()
	}
}
func (r *recordingLogger) Errorf(string, ...any) {}
