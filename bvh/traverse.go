package bvh

import "github.com/yassineboubaker/blazert/types"

// Fixed traversal stack capacity: the deferred far child of each level on the
// current path plus the near child about to be popped, with one slot to
// spare. Sized by the deepest tree the builder can produce so queries never
// allocate.
const stackSize = MaxSupportedTreeDepth + 2

// The Intersector interface is implemented by the per-class primitive
// intersectors. PrepareTraversal is called exactly once per query before any
// primitive test and lets the intersector derive per-ray state (such as the
// watertight shear transform for triangles). IntersectPrim tests a single
// primitive against the prepared ray and reports the hit distance and
// surface coordinates when it finds an intersection within [ray.MinT, tMax].
// The trace option pre-checks (skip id, id window) are the intersector's
// responsibility.
type Intersector[T types.Float] interface {
	PrepareTraversal(ray *Ray[T], opts TraceOptions)
	IntersectPrim(prim uint32, tMax T) (dist T, uv types.Vec2[T], ok bool)
}

// Robust slab test of the ray against the node box over the running
// interval [tMin, tMax]. The far planes are pushed out by a factor 1+4eps so
// a ray grazing the shared boundary of two adjacent nodes cannot slip
// through either.
func intersectNode[T types.Float](node *Node[T], ray *Ray[T], tMin, tMax T) bool {
	pad := 1 + 4*types.Epsilon[T]()

	for i := 0; i < 3; i++ {
		near := node.Min[i]
		far := node.Max[i]
		if ray.Sign[i] != 0 {
			near, far = far, near
		}

		tNear := (near - ray.Origin[i]) * ray.InvDir[i]
		tFar := (far - ray.Origin[i]) * ray.InvDir[i] * pad

		if tNear > tMin {
			tMin = tNear
		}
		if tFar < tMax {
			tMax = tFar
		}
	}

	return tMin <= tMax
}

// Traverse runs a depth-first query of the tree. Inner nodes are descended
// near child first according to the ray direction sign along the node's
// split axis; leaf primitives are tested through the intersector. Closest
// hits tighten the ray interval as they are found. For any-hit rays the
// query returns as soon as a primitive is hit. The reported hit carries no
// geometry id; the scene assigns it when merging classes.
func (t *Tree[T]) Traverse(ray *Ray[T], isect Intersector[T], opts TraceOptions) (Hit[T], bool) {
	best := NewHit[T]()
	if len(t.Nodes) == 0 {
		return best, false
	}

	isect.PrepareTraversal(ray, opts)

	tMax := ray.MaxT
	var stack [stackSize]uint32
	stack[0] = 0
	sp := 1

	for sp > 0 {
		sp--
		node := &t.Nodes[stack[sp]]

		if !intersectNode(node, ray, ray.MinT, tMax) {
			continue
		}

		if node.Leaf() {
			first, count := node.Primitives()
			for i := uint32(0); i < count; i++ {
				prim := t.Prims[first+i]
				dist, uv, ok := isect.IntersectPrim(prim, tMax)
				if !ok {
					continue
				}
				// Ties resolve to the smaller primitive id so results are
				// stable across runs for identical input.
				if dist < best.Distance || (dist == best.Distance && prim < best.PrimID) {
					best.Distance = dist
					best.PrimID = prim
					best.UV = uv
					tMax = dist
					if ray.AnyHit {
						return best, true
					}
				}
			}
			continue
		}

		left, right := node.ChildNodes()
		near, far := left, right
		if ray.Sign[node.Axis] != 0 {
			near, far = right, left
		}

		// Push far first so near is popped and tested first.
		stack[sp] = far
		sp++
		stack[sp] = near
		sp++
	}

	return best, best.PrimID != NoHit
}
