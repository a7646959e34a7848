package primitive

import (
	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/types"
)

// TriMesh is a borrowed view over a triangle soup: a vertex list plus face
// index triples. The mesh data must outlive any BVH built over it; the view
// never copies or mutates it.
type TriMesh[T types.Float] struct {
	Vertices []types.Vec3[T]
	Faces    []types.Vec3i
}

// Create a triangle mesh view.
func NewTriMesh[T types.Float](vertices []types.Vec3[T], faces []types.Vec3i) *TriMesh[T] {
	return &TriMesh[T]{Vertices: vertices, Faces: faces}
}

// Number of triangles.
func (m *TriMesh[T]) Count() uint32 {
	return uint32(len(m.Faces))
}

// Compute the bounding box of the prim-th triangle.
func (m *TriMesh[T]) BBox(prim uint32) types.AABB[T] {
	face := m.Faces[prim]
	p0 := m.Vertices[face[0]]
	p1 := m.Vertices[face[1]]
	p2 := m.Vertices[face[2]]

	return types.AABB[T]{
		Min: types.MinVec3(types.MinVec3(p0, p1), p2),
		Max: types.MaxVec3(types.MaxVec3(p0, p1), p2),
	}
}

// Center returns the centroid of the prim-th triangle.
func (m *TriMesh[T]) Center(prim uint32) types.Vec3[T] {
	face := m.Faces[prim]
	sum := m.Vertices[face[0]].Add(m.Vertices[face[1]]).Add(m.Vertices[face[2]])
	return sum.Mul(1.0 / 3.0)
}

// A watertight ray-triangle intersector. PrepareTraversal shears the ray
// into a coordinate frame where it travels along +z; triangles tested in
// that frame cannot leak hits across shared edges or vertices. One
// intersector serves one query at a time; create a fresh one per concurrent
// query.
type TriangleIntersector[T types.Float] struct {
	mesh *TriMesh[T]

	org types.Vec3[T]

	// Shear coefficients: s[0], s[1] flatten the two minor axes, s[2] is
	// the reciprocal of the major direction component.
	s types.Vec3[T]

	// Axis permutation with the dominant direction axis last. The two
	// minor axes swap when the dominant component is negative, keeping
	// the sheared frame right-handed.
	k [3]int

	minT T
	opts bvh.TraceOptions
}

// Create an intersector for the given mesh.
func NewTriangleIntersector[T types.Float](mesh *TriMesh[T]) *TriangleIntersector[T] {
	return &TriangleIntersector[T]{mesh: mesh}
}

// Derive the per-ray shear transform. Called once per query by the
// traversal driver.
func (ti *TriangleIntersector[T]) PrepareTraversal(ray *bvh.Ray[T], opts bvh.TraceOptions) {
	ti.org = ray.Origin

	k2 := ray.Dir.Abs().ArgMax()
	k0 := (k2 + 1) % 3
	k1 := (k2 + 2) % 3
	if ray.Dir[k2] < 0 {
		k0, k1 = k1, k0
	}
	ti.k = [3]int{k0, k1, k2}

	ti.s = types.Vec3[T]{
		ray.Dir[k0] / ray.Dir[k2],
		ray.Dir[k1] / ray.Dir[k2],
		1 / ray.Dir[k2],
	}

	ti.minT = ray.MinT
	ti.opts = opts
}

// Test the prim-th triangle against the prepared ray. Reports the hit
// distance and the (u, v) barycentrics when the triangle is hit within
// [minT, tMax].
func (ti *TriangleIntersector[T]) IntersectPrim(prim uint32, tMax T) (T, types.Vec2[T], bool) {
	var uv types.Vec2[T]

	if prim < ti.opts.PrimIDsRange[0] || prim >= ti.opts.PrimIDsRange[1] {
		return 0, uv, false
	}

	// Self-intersection test.
	if prim == ti.opts.SkipPrimID {
		return 0, uv, false
	}

	face := ti.mesh.Faces[prim]
	pa := ti.mesh.Vertices[face[0]].Sub(ti.org)
	pb := ti.mesh.Vertices[face[1]].Sub(ti.org)
	pc := ti.mesh.Vertices[face[2]].Sub(ti.org)

	k0, k1, k2 := ti.k[0], ti.k[1], ti.k[2]
	ax := pa[k0] - ti.s[0]*pa[k2]
	ay := pa[k1] - ti.s[1]*pa[k2]
	bx := pb[k0] - ti.s[0]*pb[k2]
	by := pb[k1] - ti.s[1]*pb[k2]
	cx := pc[k0] - ti.s[0]*pc[k2]
	cy := pc[k1] - ti.s[1]*pc[k2]

	u := cx*by - cy*bx
	v := ax*cy - ay*cx
	w := bx*ay - by*ax

	// An exactly-zero edge function means the ray passes through an edge
	// or vertex in the sheared frame. Recompute all three in double
	// precision so the inside test decides the same way for both
	// triangles sharing that edge, whatever T is.
	if u == 0 || v == 0 || w == 0 {
		u = T(float64(cx)*float64(by) - float64(cy)*float64(bx))
		v = T(float64(ax)*float64(cy) - float64(ay)*float64(cx))
		w = T(float64(bx)*float64(ay) - float64(by)*float64(ax))
	}

	// Mixed signs always miss; all-negative is a back face hit, accepted
	// only when back faces are not culled.
	if u < 0 || v < 0 || w < 0 {
		if ti.opts.CullBackFace || u > 0 || v > 0 || w > 0 {
			return 0, uv, false
		}
	}

	det := u + v + w
	if det == 0 {
		return 0, uv, false
	}

	az := ti.s[2] * pa[k2]
	bz := ti.s[2] * pb[k2]
	cz := ti.s[2] * pc[k2]

	rcpDet := 1 / det
	t := (u*az + v*bz + w*cz) * rcpDet

	if t > tMax || t < ti.minT {
		return 0, uv, false
	}

	// interp(p) = (U*p0 + V*p1 + W*p2)/det and the reported coordinates
	// follow the (1-u-v, u, v) convention, so u = V/det and v = W/det.
	uv[0] = v * rcpDet
	uv[1] = w * rcpDet
	return t, uv, true
}
