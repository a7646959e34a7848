package bvh

import "github.com/yassineboubaker/blazert/types"

// NoHit is the primitive id reported when a query misses.
const NoHit = ^uint32(0)

// A ray segment [MinT, MaxT] with precomputed traversal state.
type Ray[T types.Float] struct {
	Origin types.Vec3[T]
	Dir    types.Vec3[T]

	// Reciprocal direction. Zero direction components become infinities of
	// the matching sign, which the slab test relies on.
	InvDir types.Vec3[T]

	// Per-axis direction sign: 1 where InvDir is negative, that is where the
	// ray points towards -axis or the component is -0.
	Sign [3]uint32

	MinT T
	MaxT T

	// Return the first discovered hit instead of the nearest one.
	AnyHit bool
}

// Create a closest-hit ray for the segment [minT, maxT]. The direction does
// not need to be normalized but must be non-zero.
func NewRay[T types.Float](origin, dir types.Vec3[T], minT, maxT T) (Ray[T], error) {
	if dir[0] == 0 && dir[1] == 0 && dir[2] == 0 {
		return Ray[T]{}, ErrInvalidRay
	}
	if minT < 0 || maxT <= minT || minT != minT || maxT != maxT {
		return Ray[T]{}, ErrInvalidRay
	}

	r := Ray[T]{
		Origin: origin,
		Dir:    dir,
		InvDir: types.Vec3[T]{1 / dir[0], 1 / dir[1], 1 / dir[2]},
		MinT:   minT,
		MaxT:   maxT,
	}
	for i := 0; i < 3; i++ {
		if r.InvDir[i] < 0 {
			r.Sign[i] = 1
		}
	}
	return r, nil
}

// The result of a successful intersection query.
type Hit[T types.Float] struct {
	// Parametric hit distance along the ray.
	Distance T

	// Index of the primitive that was hit. NoHit when the query missed.
	PrimID uint32

	// Id of the geometry class the primitive belongs to, assigned at
	// registration time by the scene.
	GeomID uint32

	// Surface coordinates at the hit point. For triangles these are the
	// Moeller-Trumbore barycentrics (u, v); for spheres the spherical
	// parameterization of the hit point.
	UV types.Vec2[T]
}

// Create a Hit representing a miss.
func NewHit[T types.Float]() Hit[T] {
	return Hit[T]{
		Distance: types.Inf[T](),
		PrimID:   NoHit,
		GeomID:   NoHit,
	}
}
