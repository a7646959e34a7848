package bvh

import (
	"math"

	"github.com/yassineboubaker/blazert/types"
)

// A single SAH bin accumulating the primitives whose centers fall into one
// slice of a node's bounding box along one axis.
type bin[T types.Float] struct {
	bounds types.AABB[T]
	count  uint32

	// Cost of the partition [bin, lastBin] filled in by the right-to-left
	// sweep in findBestSplit.
	cost T
}

// Per-axis bin storage for one split search. The buffer is reused across
// splits of the same build; clear fully reinitializes every bin before
// reuse.
type binBuffer[T types.Float] struct {
	bins []bin[T]
	size uint32
}

func newBinBuffer[T types.Float](size uint32) *binBuffer[T] {
	buf := &binBuffer[T]{
		bins: make([]bin[T], 3*size),
		size: size,
	}
	buf.clear()
	return buf
}

func (buf *binBuffer[T]) clear() {
	for i := range buf.bins {
		buf.bins[i] = bin[T]{bounds: types.NewAABB[T]()}
	}
}

func (buf *binBuffer[T]) at(axis int, idx uint32) *bin[T] {
	return &buf.bins[uint32(axis)*buf.size+idx]
}

// Bin the primitives prims into buf along each axis of the enclosing box
// bounds. Axes with zero extent are skipped; invSize reports which.
func (buf *binBuffer[T]) sortInto(c Collection[T], prims []uint32, bounds types.AABB[T]) (invSize types.Vec3[T]) {
	size := bounds.Size()
	for i := 0; i < 3; i++ {
		if size[i] > 0 {
			invSize[i] = 1 / size[i]
		}
	}

	scale := T(buf.size - 1)
	for _, prim := range prims {
		center := c.Center(prim)
		primBounds := c.BBox(prim)

		for axis := 0; axis < 3; axis++ {
			if invSize[axis] == 0 {
				continue
			}

			normalized := (center[axis] - bounds.Min[axis]) * invSize[axis] * scale
			idx := int(math.Floor(float64(normalized)))
			if idx < 0 {
				idx = 0
			} else if idx > int(buf.size-1) {
				idx = int(buf.size - 1)
			}

			b := buf.at(axis, uint32(idx))
			b.count++
			b.bounds = b.bounds.Expand(primBounds)
		}
	}

	return invSize
}

// Search for the binned SAH split of the primitive range prims with
// enclosing box bounds. Returns the axis with the cheapest split and the cut
// position along it. ok is false when every axis is degenerate (all box
// extents zero), in which case the builder falls back to a median split.
func findBestSplit[T types.Float](c Collection[T], buf *binBuffer[T], prims []uint32, bounds types.AABB[T]) (axis int, cutPos T, ok bool) {
	buf.clear()
	invSize := buf.sortInto(c, prims, bounds)

	size := bounds.Size()
	inf := types.Inf[T]()
	minCost := types.Vec3[T]{inf, inf, inf}
	var cut types.Vec3[T]

	for a := 0; a < 3; a++ {
		if invSize[a] == 0 {
			// Degenerate axis: never selected unless all three are.
			continue
		}

		// Sweep right-to-left accumulating the cost of keeping
		// [i, size) on the right-hand side of the split.
		count := uint32(0)
		accum := types.NewAABB[T]()
		for i := buf.size - 1; i > 0; i-- {
			b := buf.at(a, i)
			accum = accum.Expand(b.bounds)
			count += b.count
			b.cost = T(count) * accum.SurfaceArea()
		}

		// Sweep left-to-right and combine with the stored right-hand
		// costs to evaluate every split position.
		count = 0
		accum = types.NewAABB[T]()
		minBin := uint32(1)
		for i := uint32(0); i < buf.size-1; i++ {
			b := buf.at(a, i)
			accum = accum.Expand(b.bounds)
			count += b.count

			cost := T(count)*accum.SurfaceArea() + buf.at(a, i+1).cost
			if cost < minCost[a] {
				minCost[a] = cost
				// The split position is the first bin of the right partition.
				minBin = i + 1
			}
		}

		cut[a] = bounds.Min[a] + T(minBin)*size[a]/T(buf.size)
	}

	axis = 0
	if minCost[0] > minCost[1] {
		axis = 1
	}
	if minCost[axis] > minCost[2] {
		axis = 2
	}

	if minCost[axis] == inf {
		return 0, 0, false
	}
	return axis, cut[axis], true
}
