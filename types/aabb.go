package types

// An axis-aligned bounding box. A box is empty when Min exceeds Max on any
// axis; NewAABB returns the empty box with infinite sentinel corners so that
// expanding it with the first primitive snaps it to that primitive's bounds.
type AABB[T Float] struct {
	Min Vec3[T]
	Max Vec3[T]
}

// Create a new empty bounding box.
func NewAABB[T Float]() AABB[T] {
	inf := Inf[T]()
	return AABB[T]{
		Min: Vec3[T]{inf, inf, inf},
		Max: Vec3[T]{-inf, -inf, -inf},
	}
}

// Create a bounding box spanning two corner points.
func AABBFromPoints[T Float](a, b Vec3[T]) AABB[T] {
	return AABB[T]{Min: MinVec3(a, b), Max: MaxVec3(a, b)}
}

// Empty reports whether the box contains no volume and no points.
func (b AABB[T]) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Expand the box to also enclose b2.
func (b AABB[T]) Expand(b2 AABB[T]) AABB[T] {
	return AABB[T]{
		Min: MinVec3(b.Min, b2.Min),
		Max: MaxVec3(b.Max, b2.Max),
	}
}

// Expand the box to also enclose point p.
func (b AABB[T]) ExpandPoint(p Vec3[T]) AABB[T] {
	return AABB[T]{
		Min: MinVec3(b.Min, p),
		Max: MaxVec3(b.Max, p),
	}
}

// Center returns the midpoint of the box.
func (b AABB[T]) Center() Vec3[T] {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b AABB[T]) Size() Vec3[T] {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns 2*(dx*dy + dy*dz + dz*dx) for the box extent. The
// empty box has zero surface area, which keeps SAH cost sums finite when a
// bin receives no primitives.
func (b AABB[T]) SurfaceArea() T {
	if b.Empty() {
		return 0
	}
	side := b.Max.Sub(b.Min).Abs()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[2]*side[0])
}

// Contains reports whether p lies inside or on the boundary of the box.
func (b AABB[T]) Contains(p Vec3[T]) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}
