package bvh

import (
	"time"

	"github.com/yassineboubaker/blazert/log"
	"github.com/yassineboubaker/blazert/types"
)

// Subtrees smaller than this always recurse serially even when parallel
// builds are enabled; forking tiny ranges costs more than partitioning them.
const parallelThreshold = 4096

type builder[T types.Float] struct {
	logger log.Logger

	collection Collection[T]
	opts       BuildOptions[T]
	sched      Scheduler

	// Bvh nodes stored as a contiguous list.
	nodes []Node[T]

	// Permutation of primitive indices. Leafs reference contiguous windows
	// of this slice. Shared with sub-builders, which only touch the
	// disjoint range handed to them.
	prims []uint32

	// Bin storage reused across the splits performed by this builder.
	bins *binBuffer[T]

	stats BuildStats
}

// Build constructs a BVH over the collection. The scheduler collaborator is
// consulted for fork-join pairs when opts.EnableParallel is set and the
// subtree is large enough; passing a nil scheduler forces a serial build.
// Serial builds are deterministic: identical inputs produce identical node
// lists. Parallel builds produce a geometrically equivalent tree.
func Build[T types.Float](c Collection[T], opts BuildOptions[T], sched Scheduler) (*Tree[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	count := c.Count()
	if count == 0 {
		return nil, ErrEmptyInput
	}

	prims := make([]uint32, count)
	for i := range prims {
		prims[i] = uint32(i)
	}

	b := &builder[T]{
		logger:     log.New("bvh"),
		collection: c,
		opts:       opts,
		sched:      sched,
		nodes:      make([]Node[T], 0),
		prims:      prims,
		bins:       newBinBuffer[T](opts.BinSize),
	}

	start := time.Now()
	b.partition(0, count, 0)
	b.stats.Primitives = int(count)
	b.logger.Debugf(
		"BVH build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d, primitives: %d",
		time.Since(start).Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs, b.stats.Primitives,
	)

	return &Tree[T]{Nodes: b.nodes, Prims: b.prims, Stats: b.stats}, nil
}

// splitLeft is the partition predicate: it reports whether the primitive's
// center falls on the left side of the cut position along the split axis.
func splitLeft[T types.Float](c Collection[T], axis int, cutPos T, prim uint32) bool {
	return c.Center(prim)[axis] < cutPos
}

// Partition the primitive range [begin, end) and return the index of the
// subtree root within b.nodes.
func (b *builder[T]) partition(begin, end uint32, depth int) uint32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	// Calculate the enclosing bounding box for the range.
	bounds := types.NewAABB[T]()
	for i := begin; i < end; i++ {
		bounds = bounds.Expand(b.collection.BBox(b.prims[i]))
	}

	count := end - begin
	if count <= b.opts.MinLeafPrimitives || depth >= int(b.opts.MaxTreeDepth) {
		return b.createLeaf(bounds, begin, count)
	}

	axis, cutPos, found := findBestSplit(b.collection, b.bins, b.prims[begin:end], bounds)

	mid := begin
	if found {
		mid = b.partitionPrims(begin, end, axis, cutPos)
	}
	if mid == begin || mid == end {
		// All centers landed on one side of the cut (or every axis was
		// degenerate). Retry with a median index split.
		mid = begin + count/2
	}
	if mid == begin || mid == end {
		return b.createLeaf(bounds, begin, count)
	}

	nodeIndex := uint32(len(b.nodes))
	node := Node[T]{Axis: uint8(axis)}
	node.SetBBox(bounds)
	b.nodes = append(b.nodes, node)
	b.stats.Nodes++

	var leftIndex, rightIndex uint32
	if b.sched != nil && b.opts.EnableParallel && count >= parallelThreshold {
		// Hand the right subtree to a sub-builder with private node
		// storage; both sides share the permutation but own disjoint
		// ranges of it.
		rb := b.fork()
		var rightRoot uint32
		b.sched.ForkJoin(
			func() { leftIndex = b.partition(begin, mid, depth+1) },
			func() { rightRoot = rb.partition(mid, end, depth+1) },
		)

		offset := int32(len(b.nodes))
		for i := range rb.nodes {
			rb.nodes[i].OffsetChildNodes(offset)
		}
		b.nodes = append(b.nodes, rb.nodes...)
		rightIndex = uint32(offset) + rightRoot

		b.stats.Nodes += rb.stats.Nodes
		b.stats.Leafs += rb.stats.Leafs
		if rb.stats.MaxDepth > b.stats.MaxDepth {
			b.stats.MaxDepth = rb.stats.MaxDepth
		}
	} else {
		leftIndex = b.partition(begin, mid, depth+1)
		rightIndex = b.partition(mid, end, depth+1)
	}

	b.nodes[nodeIndex].SetChildNodes(leftIndex, rightIndex)
	return nodeIndex
}

// Create a sub-builder for a parallel subtree task.
func (b *builder[T]) fork() *builder[T] {
	return &builder[T]{
		logger:     b.logger,
		collection: b.collection,
		opts:       b.opts,
		sched:      b.sched,
		nodes:      make([]Node[T], 0),
		prims:      b.prims,
		bins:       newBinBuffer[T](b.opts.BinSize),
	}
}

// Move all primitives of [begin, end) whose center is left of cutPos to the
// front of the range, in place. Returns the partition point.
func (b *builder[T]) partitionPrims(begin, end uint32, axis int, cutPos T) uint32 {
	mid := begin
	for i := begin; i < end; i++ {
		if splitLeft(b.collection, axis, cutPos, b.prims[i]) {
			b.prims[i], b.prims[mid] = b.prims[mid], b.prims[i]
			mid++
		}
	}
	return mid
}

// Set up a leaf node over the primitive window [first, first+count) and
// return its index in the node list.
func (b *builder[T]) createLeaf(bounds types.AABB[T], first, count uint32) uint32 {
	var node Node[T]
	node.SetBBox(bounds)
	node.SetPrimitives(first, count)

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node)
	b.stats.Leafs++

	return nodeIndex
}
