package bvh

import "github.com/yassineboubaker/blazert/types"

const (
	// The default number of SAH bins per axis.
	DefaultBinSize = 16

	// The default leaf size: ranges with at most this many primitives are
	// not split further.
	DefaultMinLeafPrimitives = 4

	// The default and maximum supported tree depth. The traversal stack is
	// statically sized by MaxSupportedTreeDepth so queries never allocate.
	DefaultMaxTreeDepth   = 32
	MaxSupportedTreeDepth = 64
)

// Build-time options for the BVH builder.
type BuildOptions[T types.Float] struct {
	// Number of SAH bins per axis. Must be >= 2.
	BinSize uint32

	// Ranges with at most this many primitives become leafs. Must be >= 1.
	MinLeafPrimitives uint32

	// Hard recursion limit. Must be in [1, MaxSupportedTreeDepth].
	MaxTreeDepth uint32

	// Relative cost of visiting an inner node and of intersecting a
	// primitive. Both scale the SAH cost uniformly and therefore do not
	// affect which split minimises it; the builder does not read them.
	TraversalCost    T
	IntersectionCost T

	// When set, subtree builds above an internal size threshold are handed
	// to the scheduler as fork-join pairs.
	EnableParallel bool
}

// Create a BuildOptions value holding the default configuration.
func NewBuildOptions[T types.Float]() BuildOptions[T] {
	return BuildOptions[T]{
		BinSize:           DefaultBinSize,
		MinLeafPrimitives: DefaultMinLeafPrimitives,
		MaxTreeDepth:      DefaultMaxTreeDepth,
		TraversalCost:     1,
		IntersectionCost:  1,
	}
}

// Validate the option set.
func (o BuildOptions[T]) Validate() error {
	if o.BinSize < 2 {
		return ErrInvalidOption
	}
	if o.MinLeafPrimitives < 1 {
		return ErrInvalidOption
	}
	if o.MaxTreeDepth < 1 || o.MaxTreeDepth > MaxSupportedTreeDepth {
		return ErrInvalidOption
	}
	return nil
}

// Per-query options restricting which primitives may be hit.
type TraceOptions struct {
	// Reject hits on triangle back faces.
	CullBackFace bool

	// Primitive id excluded from intersection, typically the primitive a
	// secondary ray originates from. NoHit disables the check.
	SkipPrimID uint32

	// Half-open primitive id window [PrimIDsRange[0], PrimIDsRange[1]).
	PrimIDsRange [2]uint32
}

// Create a TraceOptions value that accepts hits on every primitive.
func NewTraceOptions() TraceOptions {
	return TraceOptions{
		SkipPrimID:   NoHit,
		PrimIDsRange: [2]uint32{0, NoHit},
	}
}
