package bvh

import (
	"testing"

	"github.com/yassineboubaker/blazert/types"
)

// boxIntersector intersects the primitive boxes of a boxCollection
// directly, reporting the entry distance. It exists to exercise the
// traversal driver without pulling in a concrete primitive class.
type boxIntersector struct {
	c    *boxCollection
	ray  *Ray[float32]
	opts TraceOptions
}

func (bi *boxIntersector) PrepareTraversal(ray *Ray[float32], opts TraceOptions) {
	bi.ray = ray
	bi.opts = opts
}

func (bi *boxIntersector) IntersectPrim(prim uint32, tMax float32) (float32, types.Vec2[float32], bool) {
	var uv types.Vec2[float32]

	if prim < bi.opts.PrimIDsRange[0] || prim >= bi.opts.PrimIDsRange[1] {
		return 0, uv, false
	}
	if prim == bi.opts.SkipPrimID {
		return 0, uv, false
	}

	box := bi.c.boxes[prim]
	tMin := bi.ray.MinT
	for i := 0; i < 3; i++ {
		near := box.Min[i]
		far := box.Max[i]
		if bi.ray.Sign[i] != 0 {
			near, far = far, near
		}

		tNear := (near - bi.ray.Origin[i]) * bi.ray.InvDir[i]
		tFar := (far - bi.ray.Origin[i]) * bi.ray.InvDir[i]
		if tNear > tMin {
			tMin = tNear
		}
		if tFar < tMax {
			tMax = tFar
		}
	}
	if tMin > tMax {
		return 0, uv, false
	}
	return tMin, uv, true
}

func twoBoxFixture(t *testing.T) (*Tree[float32], *boxCollection) {
	t.Helper()

	c := &boxCollection{boxes: []types.AABB[float32]{
		{Min: types.XYZ[float32](0, 0, 0), Max: types.XYZ[float32](1, 1, 1)},
		{Min: types.XYZ[float32](4, 0, 0), Max: types.XYZ[float32](5, 1, 1)},
	}}

	opts := NewBuildOptions[float32]()
	opts.MinLeafPrimitives = 1

	tree, err := Build[float32](c, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tree, c
}

func TestTraverseClosestHit(t *testing.T) {
	tree, c := twoBoxFixture(t)

	ray, err := NewRay(types.XYZ[float32](-1, 0.5, 0.5), types.XYZ[float32](1, 0, 0), 0, 100)
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := tree.Traverse(&ray, &boxIntersector{c: c}, NewTraceOptions())
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.PrimID != 0 {
		t.Fatalf("expected primitive 0; got %d", hit.PrimID)
	}
	if hit.Distance != 1 {
		t.Fatalf("expected hit distance 1; got %v", hit.Distance)
	}
}

func TestTraverseAnyHitVisitsNearChildFirst(t *testing.T) {
	tree, c := twoBoxFixture(t)

	// An any-hit query returns the first discovered hit, which must come
	// from the near child for either ray direction.
	ray, err := NewRay(types.XYZ[float32](-1, 0.5, 0.5), types.XYZ[float32](1, 0, 0), 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	ray.AnyHit = true

	hit, ok := tree.Traverse(&ray, &boxIntersector{c: c}, NewTraceOptions())
	if !ok || hit.PrimID != 0 {
		t.Fatalf("expected any-hit to report near primitive 0; got %d (ok=%v)", hit.PrimID, ok)
	}

	ray, err = NewRay(types.XYZ[float32](7, 0.5, 0.5), types.XYZ[float32](-1, 0, 0), 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	ray.AnyHit = true

	hit, ok = tree.Traverse(&ray, &boxIntersector{c: c}, NewTraceOptions())
	if !ok || hit.PrimID != 1 {
		t.Fatalf("expected any-hit to report near primitive 1; got %d (ok=%v)", hit.PrimID, ok)
	}
}

func TestTraverseWindow(t *testing.T) {
	tree, c := twoBoxFixture(t)

	// MaxT in front of the first box.
	ray, err := NewRay(types.XYZ[float32](-1, 0.5, 0.5), types.XYZ[float32](1, 0, 0), 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tree.Traverse(&ray, &boxIntersector{c: c}, NewTraceOptions()); ok {
		t.Fatal("expected a miss for a ray segment ending before the geometry")
	}

	// MinT behind the first box: the second one wins.
	ray, err = NewRay(types.XYZ[float32](-1, 0.5, 0.5), types.XYZ[float32](1, 0, 0), 3, 100)
	if err != nil {
		t.Fatal(err)
	}
	hit, ok := tree.Traverse(&ray, &boxIntersector{c: c}, NewTraceOptions())
	if !ok || hit.PrimID != 1 {
		t.Fatalf("expected primitive 1 for a clipped segment; got %d (ok=%v)", hit.PrimID, ok)
	}
}

func TestTraverseTraceOptionFilters(t *testing.T) {
	tree, c := twoBoxFixture(t)

	ray, err := NewRay(types.XYZ[float32](-1, 0.5, 0.5), types.XYZ[float32](1, 0, 0), 0, 100)
	if err != nil {
		t.Fatal(err)
	}

	opts := NewTraceOptions()
	opts.SkipPrimID = 0
	hit, ok := tree.Traverse(&ray, &boxIntersector{c: c}, opts)
	if !ok || hit.PrimID != 1 {
		t.Fatalf("expected skip of primitive 0 to report primitive 1; got %d (ok=%v)", hit.PrimID, ok)
	}
	if hit.Distance != 5 {
		t.Fatalf("expected hit distance 5; got %v", hit.Distance)
	}

	opts = NewTraceOptions()
	opts.PrimIDsRange = [2]uint32{1, 2}
	hit, ok = tree.Traverse(&ray, &boxIntersector{c: c}, opts)
	if !ok || hit.PrimID != 1 {
		t.Fatalf("expected id window [1, 2) to report primitive 1; got %d (ok=%v)", hit.PrimID, ok)
	}

	opts = NewTraceOptions()
	opts.PrimIDsRange = [2]uint32{2, 4}
	if _, ok = tree.Traverse(&ray, &boxIntersector{c: c}, opts); ok {
		t.Fatal("expected a miss when the id window excludes all primitives")
	}
}

func TestNewRayValidation(t *testing.T) {
	if _, err := NewRay(types.XYZ[float32](0, 0, 0), types.XYZ[float32](0, 0, 0), 0, 1); err != ErrInvalidRay {
		t.Fatalf("expected ErrInvalidRay for zero direction; got %v", err)
	}
	if _, err := NewRay(types.XYZ[float32](0, 0, 0), types.XYZ[float32](1, 0, 0), 1, 1); err != ErrInvalidRay {
		t.Fatalf("expected ErrInvalidRay for empty segment; got %v", err)
	}
	if _, err := NewRay(types.XYZ[float32](0, 0, 0), types.XYZ[float32](1, 0, 0), -1, 1); err != ErrInvalidRay {
		t.Fatalf("expected ErrInvalidRay for negative min distance; got %v", err)
	}

	ray, err := NewRay(types.XYZ[float32](0, 0, 0), types.XYZ[float32](-2, 0, 4), 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if ray.Sign != [3]uint32{1, 0, 0} {
		t.Fatalf("expected direction signs {1 0 0}; got %v", ray.Sign)
	}
	if ray.InvDir[0] != -0.5 || ray.InvDir[2] != 0.25 {
		t.Fatalf("unexpected reciprocal direction %v", ray.InvDir)
	}
}
