package mesh

import (
	"math/rand"

	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// RandomSoup generates n small triangles scattered through a 10x10x10 cube
// centered on the origin, the way the original path tracer's Mesh
// constructor seeds a test mesh (one vertex picked at random, the other two
// offset from it by a random unit-ish step per axis).
func RandomSoup(n int, rng *rand.Rand) []geom.Triangle {
	tris := make([]geom.Triangle, n)
	for i := range tris {
		v0 := mgl32.Vec3{
			rng.Float32()*10 - 5,
			rng.Float32()*10 - 5,
			rng.Float32()*10 - 5,
		}
		v1 := v0.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()})
		v2 := v0.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()})
		tris[i] = geom.NewTriangle(v0, v1, v2)
	}
	return tris
}
