package bvh

import (
	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive is what the binned-SAH builder and traversal need from whatever
// it is building a tree over: a triangle (for a BLAS) or an instance (for a
// TLAS). The spec frames binned-SAH construction as shared between the two;
// here that sharing is literal — one generic Tree serves both.
type Primitive interface {
	Bounds() geom.AABB
	Centroid() mgl32.Vec3
	Intersect(ray *geom.Ray) bool
}

// Tree is a binned-SAH BVH over a slice of primitives. It owns its node
// pool (capacity 2*len(prims)) and an index permutation over the
// primitives; both are allocated once at build time and never reallocated.
type Tree[T Primitive] struct {
	Prims     []T
	indices   []uint32
	nodes     []Node
	nodesUsed uint32
}

// Build constructs a Tree over prims using binned SAH (BIN_COUNT=8 bins,
// PLANE_COUNT=7 candidate planes per axis). Construction is deterministic:
// the same prims slice always yields byte-identical nodes and indices.
func Build[T Primitive](prims []T) *Tree[T] {
	n := len(prims)
	t := &Tree[T]{
		Prims:     prims,
		indices:   make([]uint32, n),
		nodes:     make([]Node, max(2*n, 2)),
		nodesUsed: 2,
	}
	for i := range t.indices {
		t.indices[i] = uint32(i)
	}

	root := &t.nodes[rootIndex]
	root.LeftFirst = 0
	root.Count = uint32(n)

	t.updateNodeBounds(rootIndex)
	t.subdivide(rootIndex)
	return t
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Bounds returns the root node's bounding box.
func (t *Tree[T]) Bounds() geom.AABB {
	return t.nodes[rootIndex].Box
}

// NodesUsed reports how many nodes of the pool are live, for invariant
// checks (nodesUsed <= max(2*len(Prims), 2)).
func (t *Tree[T]) NodesUsed() uint32 { return t.nodesUsed }

// Nodes exposes the node pool read-only, for GPU export and invariant
// tests.
func (t *Tree[T]) Nodes() []Node { return t.nodes[:t.nodesUsed] }

// Indices exposes the index permutation read-only, for GPU export.
func (t *Tree[T]) Indices() []uint32 { return t.indices }

func (t *Tree[T]) updateNodeBounds(nodeIndex uint32) {
	node := &t.nodes[nodeIndex]
	box := geom.Empty()
	for i := uint32(0); i < node.Count; i++ {
		box.GrowBox(t.Prims[t.indices[node.First()+i]].Bounds())
	}
	node.Box = box
}

type bin struct {
	count int
	box   geom.AABB
}

// findSplitPlane scans all three axes and BIN_COUNT bins per axis, returning
// the globally cheapest SAH split (cost, axis, split position along that
// axis). A degenerate axis (all centroids coincide) is skipped.
func (t *Tree[T]) findSplitPlane(node *Node) (bestCost float32, bestAxis int, bestSplit float32) {
	bestCost = geom.FarAway

	for axis := 0; axis < 3; axis++ {
		boundsMin := float32(geom.FarAway)
		boundsMax := float32(-geom.FarAway)
		for i := uint32(0); i < node.Count; i++ {
			c := t.Prims[t.indices[node.First()+i]].Centroid()[axis]
			if c < boundsMin {
				boundsMin = c
			}
			if c > boundsMax {
				boundsMax = c
			}
		}
		if boundsMin == boundsMax {
			continue
		}

		var bins [binCount]bin
		for i := range bins {
			bins[i].box = geom.Empty()
		}
		binScale := float32(binCount) / (boundsMax - boundsMin)
		for i := uint32(0); i < node.Count; i++ {
			prim := t.Prims[t.indices[node.First()+i]]
			section := int((prim.Centroid()[axis] - boundsMin) * binScale)
			if section > binCount-1 {
				section = binCount - 1
			}
			if section < 0 {
				section = 0
			}
			bins[section].count++
			bins[section].box.GrowBox(prim.Bounds())
		}

		var leftArea, rightArea [planeCount]float32
		var leftCount, rightCount [planeCount]int
		leftBox, rightBox := geom.Empty(), geom.Empty()
		leftSum, rightSum := 0, 0

		for p := 0; p < planeCount; p++ {
			leftSum += bins[p].count
			leftCount[p] = leftSum
			leftBox.GrowBox(bins[p].box)
			leftArea[p] = leftBox.Area()

			rightBin := binCount - 1 - p
			rightPlane := rightBin - 1
			rightSum += bins[rightBin].count
			rightCount[rightPlane] = rightSum
			rightBox.GrowBox(bins[rightBin].box)
			rightArea[rightPlane] = rightBox.Area()
		}

		binExtent := (boundsMax - boundsMin) / float32(binCount)
		for p := 0; p < planeCount; p++ {
			cost := float32(leftCount[p])*leftArea[p] + float32(rightCount[p])*rightArea[p]
			if cost < bestCost {
				bestCost = cost
				bestSplit = boundsMin + binExtent*float32(p+1)
				bestAxis = axis
			}
		}
	}

	return bestCost, bestAxis, bestSplit
}

// partitionNode performs a Dutch-flag-style in-place partition of the index
// range [first, first+count) around splitPosition along axis, swapping from
// both ends. It returns the boundary index: everything before it has
// centroid[axis] < splitPosition.
func (t *Tree[T]) partitionNode(node *Node, splitPosition float32, axis int) uint32 {
	first := int(node.First())
	last := first + int(node.Count) - 1
	pivot := first

	for pivot <= last {
		c := t.Prims[t.indices[pivot]].Centroid()[axis]
		if c < splitPosition {
			pivot++
		} else {
			t.indices[pivot], t.indices[last] = t.indices[last], t.indices[pivot]
			last--
		}
	}

	return uint32(pivot)
}

func (t *Tree[T]) subdivide(nodeIndex uint32) {
	node := &t.nodes[nodeIndex]
	if node.Count < 2 {
		// nothing to split: empty or singleton leaf
		return
	}

	cost, axis, splitPosition := t.findSplitPlane(node)
	parentCost := float32(node.Count) * node.Box.Area()
	if cost >= parentCost {
		return
	}

	pivot := t.partitionNode(node, splitPosition, axis)
	leftCount := pivot - node.First()
	if leftCount == 0 || leftCount == node.Count {
		return
	}

	leftIndex := t.nodesUsed
	rightIndex := t.nodesUsed + 1
	t.nodesUsed += 2

	t.nodes[leftIndex] = Node{LeftFirst: node.First(), Count: leftCount}
	t.nodes[rightIndex] = Node{LeftFirst: pivot, Count: node.Count - leftCount}

	node.LeftFirst = leftIndex
	node.Count = 0

	t.updateNodeBounds(leftIndex)
	t.updateNodeBounds(rightIndex)
	t.subdivide(leftIndex)
	t.subdivide(rightIndex)
}

// Intersect walks the tree for the closest-hit primitive. onHit is called
// with the index (into Prims) of every primitive that replaces the current
// best depth; callers use it to stamp their own index metadata (primitive
// index for a BLAS, instance index for a TLAS) onto the ray, since the Tree
// itself doesn't know which field that is. Returns whether any hit was
// registered.
func (t *Tree[T]) Intersect(ray *geom.Ray, onHit func(index int)) bool {
	node := &t.nodes[rootIndex]
	var stack [traversalStackSize]*Node
	stackPtr := 0
	hit := false

	for {
		if node.IsLeaf() {
			for i := uint32(0); i < node.Count; i++ {
				primIndex := t.indices[node.First()+i]
				if t.Prims[primIndex].Intersect(ray) {
					hit = true
					onHit(int(primIndex))
				}
			}
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
			continue
		}

		childNear := &t.nodes[node.Left()]
		childFar := &t.nodes[node.Left()+1]

		distNear := childNear.Box.Intersect(ray)
		distFar := childFar.Box.Intersect(ray)

		if distNear > distFar {
			distNear, distFar = distFar, distNear
			childNear, childFar = childFar, childNear
		}

		if distNear == geom.FarAway {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
		} else {
			node = childNear
			if distFar != geom.FarAway {
				stack[stackPtr] = childFar
				stackPtr++
			}
		}
	}

	return hit
}

// IntersectAny walks the tree and returns true as soon as any primitive is
// hit within (epsilon, ray.Depth). Used for occlusion/shadow queries where
// only visibility matters.
func (t *Tree[T]) IntersectAny(ray *geom.Ray) bool {
	node := &t.nodes[rootIndex]
	var stack [traversalStackSize]*Node
	stackPtr := 0

	for {
		if node.IsLeaf() {
			for i := uint32(0); i < node.Count; i++ {
				primIndex := t.indices[node.First()+i]
				if t.Prims[primIndex].Intersect(ray) {
					return true
				}
			}
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
			continue
		}

		childNear := &t.nodes[node.Left()]
		childFar := &t.nodes[node.Left()+1]

		distNear := childNear.Box.Intersect(ray)
		distFar := childFar.Box.Intersect(ray)

		if distNear > distFar {
			distNear, distFar = distFar, distNear
			childNear, childFar = childFar, childNear
		}

		if distNear == geom.FarAway {
			if stackPtr == 0 {
				break
			}
			stackPtr--
			node = stack[stackPtr]
		} else {
			node = childNear
			if distFar != geom.FarAway {
				stack[stackPtr] = childFar
				stackPtr++
			}
		}
	}

	return false
}

// Refit is reserved for future dynamic-scene support: rebuilding bounding
// boxes bottom-up without changing topology. Not implemented.
func (t *Tree[T]) Refit() {
	panic("bvh: Refit not implemented")
}
