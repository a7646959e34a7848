package bvh

import "github.com/yassineboubaker/blazert/types"

// The Collection interface is implemented by all primitive sets that can be
// indexed by a BVH. Implementations borrow the primitive data, must be cheap
// and free of side effects, and must be safe for concurrent reads: the
// builder calls them from fork-join workers and queries call them from
// arbitrary goroutines.
type Collection[T types.Float] interface {
	// Number of primitives in the collection.
	Count() uint32

	// Tight world-space bounding box of the prim-th primitive.
	BBox(prim uint32) types.AABB[T]

	// Partitioning point of the prim-th primitive. Always inside or on the
	// primitive's bounding box.
	Center(prim uint32) types.Vec3[T]
}
