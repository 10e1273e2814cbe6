package core

import (
	"math/rand"
	"testing"

	"github.com/gekko3d/surf/rt/bvh"
	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestSceneIndexesOnlyEmissiveInstances(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())

	dark := DefaultMaterial()
	emissive := DefaultMaterial()
	emissive.Emittance = mgl32.Vec3{2, 2, 2}

	instances := []*Instance{
		NewInstance(blas, &dark, Identity()),
		NewInstance(blas, &emissive, Identity()),
		NewInstance(blas, &dark, Identity()),
	}
	scene := NewScene(instances, SolidBackground(mgl32.Vec3{0, 0, 0}))

	require.Equal(t, 1, scene.LightCount())

	rng := rand.New(rand.NewSource(1))
	light := scene.SampleLights(rng)
	require.Same(t, instances[1], light)
}

func TestSceneSampleLightsReturnsNilWithoutLights(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	scene := NewScene([]*Instance{NewInstance(blas, &mat, Identity())}, SolidBackground(mgl32.Vec3{0, 0, 0}))

	require.Equal(t, 0, scene.LightCount())
	require.Nil(t, scene.SampleLights(rand.New(rand.NewSource(1))))
}

func TestSceneBackgroundUsedOnMiss(t *testing.T) {
	blas := bvh.NewBLAS(unitQuadTriangles())
	mat := DefaultMaterial()
	scene := NewScene([]*Instance{NewInstance(blas, &mat, Identity())}, SolidBackground(mgl32.Vec3{0.2, 0.3, 0.4}))

	ray := geom.New(mgl32.Vec3{100, 100, -5}, mgl32.Vec3{0, 0, 1})
	hit := scene.Intersect(ray)
	require.False(t, hit)
	require.Equal(t, mgl32.Vec3{0.2, 0.3, 0.4}, scene.SampleBackground(ray))
}

func TestSceneGradientBackgroundVariesWithDirection(t *testing.T) {
	background := GradientBackground(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 0, 0})

	up := background.Sample(mgl32.Vec3{0, 1, 0})
	down := background.Sample(mgl32.Vec3{0, -1, 0})

	require.NotEqual(t, up, down)
}
