// Command surftrace is a headless demo of the acceleration structure core:
// it assembles a small procedural scene, fires a grid of primary rays
// through it, and reports build/traversal statistics. It intentionally
// does not open a window or touch a GPU device — those are out of scope
// for this module.
package main

import (
	"flag"
	"math/rand"

	"github.com/gekko3d/surf/rt/bvh"
	"github.com/gekko3d/surf/rt/core"
	"github.com/gekko3d/surf/rt/gpu"
	"github.com/gekko3d/surf/rt/logx"
	"github.com/gekko3d/surf/rt/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	instanceCount := flag.Int("instances", 4, "number of procedural instances to place")
	trianglesPerMesh := flag.Int("triangles", 64, "triangles per procedural mesh")
	screenWidth := flag.Int("width", 320, "primary-ray grid width")
	screenHeight := flag.Int("height", 180, "primary-ray grid height")
	seed := flag.Int64("seed", 1, "RNG seed for procedural geometry")
	flag.Parse()

	logger := logx.New("surftrace", *debug)

	rng := rand.New(rand.NewSource(*seed))

	instances := make([]*core.Instance, 0, *instanceCount)
	var hitCount int

	for i := 0; i < *instanceCount; i++ {
		tris := mesh.RandomSoup(*trianglesPerMesh, rng)
		blas := bvh.NewBLAS(tris)

		mat := core.DefaultMaterial()
		if i == 0 {
			mat.Emittance = mgl32.Vec3{1, 1, 1}
		}

		transform := core.Identity()
		transform.Position = mgl32.Vec3{float32(i) * 4, 0, 0}

		inst := core.NewInstance(blas, &mat, transform)
		instances = append(instances, inst)

		logger.Debugf("instance %d: %d triangles, %d BVH nodes", i, len(tris), blas.NodesUsed())
	}

	background := core.GradientBackground(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0.5, 0.7, 1.0})
	scene := core.NewScene(instances, background)

	logger.Infof("scene assembled: %d instances, %d lights", *instanceCount, scene.LightCount())

	cameraTarget := scene.Bounds().Center()
	cameraPos := cameraTarget.Add(mgl32.Vec3{0, 2, 12})
	camera := core.NewCamera(cameraPos, cameraTarget, uint32(*screenWidth), uint32(*screenHeight), 60.0)

	for y := 0; y < *screenHeight; y++ {
		for x := 0; x < *screenWidth; x++ {
			ray := camera.GetPrimaryRay(float32(x)+0.5, float32(y)+0.5)
			if scene.Intersect(ray) {
				hitCount++
			} else {
				_ = scene.SampleBackground(ray)
			}
		}
	}

	totalRays := *screenWidth * *screenHeight
	logger.Infof("traced %d primary rays: %d hits, %d misses", totalRays, hitCount, totalRays-hitCount)

	batch := gpu.CreateBatchInfo(instances)
	logger.Infof("gpu batch: %d triangles, %d BLAS nodes, %d materials, %d lights",
		len(batch.TriBuffer), len(batch.BLASNodes), len(batch.Materials), len(batch.Lights))

	if scene.LightCount() > 0 {
		light := scene.SampleLights(rng)
		logger.Debugf("sampled light instance at %v", light.Transform().Position)
	}
}
