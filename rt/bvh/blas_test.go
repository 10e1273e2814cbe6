package bvh

import (
	"math/rand"
	"testing"

	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

func randomTriangleSoup(n int, seed int64) []geom.Triangle {
	rng := rand.New(rand.NewSource(seed))
	tris := make([]geom.Triangle, n)
	for i := range tris {
		v0 := mgl32.Vec3{rng.Float32()*10 - 5, rng.Float32()*10 - 5, rng.Float32()*10 - 5}
		v1 := v0.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()})
		v2 := v0.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()})
		tris[i] = geom.NewTriangle(v0, v1, v2)
	}
	return tris
}

// assertStructuralInvariants checks the BLAS/TLAS invariants from spec §8:
// interior children in range, leaf ranges in [0,N), nodesUsed <= 2N, and
// every primitive index covered by exactly one leaf.
func assertStructuralInvariants(t *testing.T, nodes []Node, indices []uint32, n int) {
	t.Helper()
	if len(nodes) > 2*n {
		t.Errorf("nodesUsed = %d, want <= %d", len(nodes), 2*n)
	}

	covered := make([]int, n)
	var walk func(idx uint32)
	walk = func(idx uint32) {
		node := &nodes[idx]
		if node.IsLeaf() {
			first, count := node.First(), node.Count
			if int(first+count) > len(indices) {
				t.Fatalf("leaf range [%d,%d) out of bounds for %d indices", first, first+count, len(indices))
			}
			for i := uint32(0); i < count; i++ {
				p := indices[first+i]
				if int(p) >= n {
					t.Fatalf("primitive index %d out of range [0,%d)", p, n)
				}
				covered[p]++
			}
			return
		}
		left := node.Left()
		if left < 2 || int(left)+1 >= len(nodes) {
			t.Fatalf("interior node %d has out-of-range children starting at %d", idx, left)
		}
		walk(left)
		walk(left + 1)
	}
	walk(rootIndex)

	for i, c := range covered {
		if c != 1 {
			t.Errorf("primitive %d covered %d times, want exactly 1", i, c)
		}
	}
}

func TestBLASStructuralInvariants(t *testing.T) {
	tris := randomTriangleSoup(100, 42)
	blas := NewBLAS(tris)

	if blas.NodesUsed() > 200 {
		t.Errorf("nodesUsed = %d, want <= 200", blas.NodesUsed())
	}
	assertStructuralInvariants(t, blas.Nodes(), blas.Indices(), len(tris))
}

func TestBLASBoundingBoxContainment(t *testing.T) {
	tris := randomTriangleSoup(50, 7)
	blas := NewBLAS(tris)

	var checkContains func(idx uint32)
	checkContains = func(idx uint32) {
		node := &blas.Nodes()[idx]
		box := node.Box
		if node.IsLeaf() {
			for i := uint32(0); i < node.Count; i++ {
				tri := tris[blas.Indices()[node.First()+i]]
				tb := tri.Bounds()
				if tb.Min[0] < box.Min[0] || tb.Min[1] < box.Min[1] || tb.Min[2] < box.Min[2] ||
					tb.Max[0] > box.Max[0] || tb.Max[1] > box.Max[1] || tb.Max[2] > box.Max[2] {
					t.Errorf("triangle bounds %+v not contained in leaf box %+v", tb, box)
				}
			}
			return
		}
		checkContains(node.Left())
		checkContains(node.Left() + 1)
	}
	checkContains(rootIndex)
}

func TestBLASDeterministicBuild(t *testing.T) {
	tris := randomTriangleSoup(64, 99)
	a := NewBLAS(tris)
	b := NewBLAS(tris)

	if a.NodesUsed() != b.NodesUsed() {
		t.Fatalf("nodesUsed differ: %d vs %d", a.NodesUsed(), b.NodesUsed())
	}
	for i := range a.Nodes() {
		if a.Nodes()[i] != b.Nodes()[i] {
			t.Fatalf("node %d differs between identical builds", i)
		}
	}
	for i := range a.Indices() {
		if a.Indices()[i] != b.Indices()[i] {
			t.Fatalf("index %d differs between identical builds", i)
		}
	}
}

func TestBLASEmptyMeshIsSingleLeaf(t *testing.T) {
	blas := NewBLAS(nil)
	if blas.NodesUsed() != 2 {
		t.Fatalf("empty BLAS nodesUsed = %d, want 2 (root + reserved slot)", blas.NodesUsed())
	}
	if !blas.Nodes()[rootIndex].IsLeaf() || blas.Nodes()[rootIndex].Count != 0 {
		t.Fatal("empty BLAS root should be a count-0 leaf")
	}

	ray := geom.New(mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 0, 1})
	if blas.Intersect(ray) {
		t.Fatal("empty BLAS should never report a hit")
	}
}

func TestBLASTwoTriangleOcclusion(t *testing.T) {
	near := geom.NewTriangle(mgl32.Vec3{-10, -10, 1}, mgl32.Vec3{10, -10, 1}, mgl32.Vec3{0, 10, 1})
	far := geom.NewTriangle(mgl32.Vec3{-10, -10, 2}, mgl32.Vec3{10, -10, 2}, mgl32.Vec3{0, 10, 2})
	blas := NewBLAS([]geom.Triangle{near, far})

	ray := geom.New(mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec3{0, 0, 1})
	if !blas.Intersect(ray) {
		t.Fatal("expected a closest-hit on the near triangle")
	}
	if !closeEnough32(ray.Depth, 1.0, 1e-3) {
		t.Errorf("depth = %v, want ~1.0 (nearer triangle)", ray.Depth)
	}
	if ray.Hit.PrimitiveIndex != 0 {
		t.Errorf("primitiveIndex = %d, want 0 (near triangle)", ray.Hit.PrimitiveIndex)
	}

	anyRay := geom.New(mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec3{0, 0, 1})
	if !blas.IntersectAny(anyRay) {
		t.Fatal("expected any-hit true")
	}
}

func closeEnough32(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}
