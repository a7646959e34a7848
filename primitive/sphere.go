package primitive

import (
	"math"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/types"
)

// SphereSet is a borrowed view over sphere centers and radii. Both slices
// must have the same length and outlive any BVH built over the set.
type SphereSet[T types.Float] struct {
	Centers []types.Vec3[T]
	Radii   []T
}

// Create a sphere set view.
func NewSphereSet[T types.Float](centers []types.Vec3[T], radii []T) *SphereSet[T] {
	return &SphereSet[T]{Centers: centers, Radii: radii}
}

// Number of spheres.
func (s *SphereSet[T]) Count() uint32 {
	return uint32(len(s.Centers))
}

// Compute the bounding box of the prim-th sphere.
func (s *SphereSet[T]) BBox(prim uint32) types.AABB[T] {
	center := s.Centers[prim]
	r := s.Radii[prim]
	extent := types.Vec3[T]{r, r, r}

	return types.AABB[T]{
		Min: center.Sub(extent),
		Max: center.Add(extent),
	}
}

// Center returns the center of the prim-th sphere.
func (s *SphereSet[T]) Center(prim uint32) types.Vec3[T] {
	return s.Centers[prim]
}

// An analytic ray-sphere intersector. One intersector serves one query at a
// time; create a fresh one per concurrent query.
type SphereIntersector[T types.Float] struct {
	set *SphereSet[T]

	org  types.Vec3[T]
	dir  types.Vec3[T]
	minT T
	opts bvh.TraceOptions
}

// Create an intersector for the given sphere set.
func NewSphereIntersector[T types.Float](set *SphereSet[T]) *SphereIntersector[T] {
	return &SphereIntersector[T]{set: set}
}

// Capture the per-ray state. Called once per query by the traversal driver.
func (si *SphereIntersector[T]) PrepareTraversal(ray *bvh.Ray[T], opts bvh.TraceOptions) {
	si.org = ray.Origin
	si.dir = ray.Dir
	si.minT = ray.MinT
	si.opts = opts
}

// Test the prim-th sphere against the prepared ray by solving the quadratic
// |org + t*dir - center|^2 = r^2 in its numerically stable form. The nearer
// root inside [minT, tMax] wins; the farther root is tried when the nearer
// one is out of range (ray origin inside the sphere).
func (si *SphereIntersector[T]) IntersectPrim(prim uint32, tMax T) (T, types.Vec2[T], bool) {
	var uv types.Vec2[T]

	if prim < si.opts.PrimIDsRange[0] || prim >= si.opts.PrimIDsRange[1] {
		return 0, uv, false
	}
	if prim == si.opts.SkipPrimID {
		return 0, uv, false
	}

	center := si.set.Centers[prim]
	r := si.set.Radii[prim]

	oc := si.org.Sub(center)
	a := si.dir.Dot(si.dir)
	hb := si.dir.Dot(oc)
	c := oc.Dot(oc) - r*r

	disc := hb*hb - a*c
	if disc < 0 {
		return 0, uv, false
	}

	// Compute the roots via the q form, avoiding the cancellation of the
	// textbook formula when hb*hb dominates a*c.
	sqrtDisc := T(math.Sqrt(float64(disc)))
	q := -(hb + T(math.Copysign(float64(sqrtDisc), float64(hb))))

	var t0, t1 T
	if q == 0 {
		// Tangential grazing with hb == 0: both roots collapse to zero.
		t0, t1 = 0, 0
	} else {
		t0 = q / a
		t1 = c / q
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	t := t0
	if t < si.minT || t > tMax {
		t = t1
		if t < si.minT || t > tMax {
			return 0, uv, false
		}
	}

	// Spherical parameterization of the hit point.
	n := oc.Add(si.dir.Mul(t)).Mul(1 / r)
	cosTheta := float64(n[2])
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	phi := math.Atan2(float64(n[1]), float64(n[0]))
	uv[0] = T((phi + math.Pi) / (2 * math.Pi))
	uv[1] = T(math.Acos(cosTheta) / math.Pi)

	return t, uv, true
}
