package bvh

import "github.com/yassineboubaker/blazert/types"

// A single BVH node. Nodes are stored as a contiguous list with the root at
// index zero. The two payload fields encode either child node indices (inner
// node) or a primitive range (leaf): leafs store the negated index of their
// first primitive in LData and the primitive count in RData, so LData <= 0
// marks a leaf. Child indices are always positive because children are
// appended after the root.
type Node[T types.Float] struct {
	Min   types.Vec3[T]
	LData int32

	Max   types.Vec3[T]
	RData int32

	// Axis the node was split along; drives near/far child ordering
	// during traversal. Unused for leafs.
	Axis uint8
}

// Set bounding box.
func (n *Node[T]) SetBBox(bbox types.AABB[T]) {
	n.Min = bbox.Min
	n.Max = bbox.Max
}

// BBox returns the node bounding box.
func (n *Node[T]) BBox() types.AABB[T] {
	return types.AABB[T]{Min: n.Min, Max: n.Max}
}

// Set left and right child node indices.
func (n *Node[T]) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// ChildNodes returns the left and right child indices of an inner node.
func (n *Node[T]) ChildNodes() (left, right uint32) {
	return uint32(n.LData), uint32(n.RData)
}

// Set primitive range for a leaf.
func (n *Node[T]) SetPrimitives(firstPrimIndex, count uint32) {
	n.LData = -int32(firstPrimIndex)
	n.RData = int32(count)
}

// Primitives returns the primitive range of a leaf.
func (n *Node[T]) Primitives() (firstPrimIndex, count uint32) {
	return uint32(-n.LData), uint32(n.RData)
}

// Leaf reports whether the node is a leaf.
func (n *Node[T]) Leaf() bool {
	return n.LData <= 0
}

// Add offset to indices of child nodes. Used when splicing a subtree node
// list built by a parallel worker into the parent list.
func (n *Node[T]) OffsetChildNodes(offset int32) {
	// Ignore leafs
	if n.Leaf() {
		return
	}

	n.LData += offset
	n.RData += offset
}

// Statistics collected while building a tree.
type BuildStats struct {
	Nodes      int
	Leafs      int
	MaxDepth   int
	Primitives int
}

// A built bounding volume hierarchy over one primitive collection. The tree
// owns its node list and the primitive index permutation; leafs reference
// contiguous [first, first+count) windows of Prims. A tree is immutable once
// built and safe for concurrent queries.
type Tree[T types.Float] struct {
	Nodes []Node[T]
	Prims []uint32
	Stats BuildStats
}

// BBox returns the bounding box of the whole tree.
func (t *Tree[T]) BBox() types.AABB[T] {
	if len(t.Nodes) == 0 {
		return types.NewAABB[T]()
	}
	return t.Nodes[0].BBox()
}
