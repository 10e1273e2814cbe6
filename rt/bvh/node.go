// Package bvh implements the binned-SAH bounding volume hierarchy shared by
// the bottom-level (triangle) and top-level (instance) acceleration
// structures: arena-allocated nodes addressed by index, not pointer.
package bvh

import "github.com/gekko3d/surf/rt/geom"

// rootIndex is the fixed root node slot. Index 1 is reserved (unused) so
// that child pairs land at 2k,2k+1 for k>=1, keeping sibling nodes
// cache-adjacent.
const rootIndex = 0

const (
	binCount           = 8
	planeCount         = binCount - 1
	traversalStackSize = 64
)

// Node is a packed BVH node: a bounding box plus one field that means
// "left child index" when the node is interior, or "first primitive index"
// when it is a leaf. Count is 0 for interior nodes and >0 for leaves, with
// one exception: the root of a tree built over no primitives is a leaf with
// Count 0 (and LeftFirst 0). IsLeaf decides which meaning LeftFirst has;
// never read it the wrong way.
type Node struct {
	Box       geom.AABB
	LeftFirst uint32
	Count     uint32
}

// IsLeaf reports whether this node stores primitives directly. Interior
// nodes always have LeftFirst >= 2 (child pairs start at index 2), so a
// Count-0 node with a smaller LeftFirst is the empty leaf.
func (n *Node) IsLeaf() bool { return n.Count > 0 || n.LeftFirst < 2 }

// Left returns the left child's node index. Only valid on interior nodes;
// the right child is always Left()+1.
func (n *Node) Left() uint32 { return n.LeftFirst }

// First returns the index of this leaf's first primitive in the index
// permutation. Only valid on leaves.
func (n *Node) First() uint32 { return n.LeftFirst }
