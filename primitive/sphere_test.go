package primitive

import (
	"testing"

	"github.com/yassineboubaker/blazert/bvh"
	"github.com/yassineboubaker/blazert/types"
)

func singleSphere() *SphereSet[float64] {
	return NewSphereSet(
		[]types.Vec3[float64]{{0, 0, 5}},
		[]float64{1},
	)
}

func preparedSphere(t *testing.T, set *SphereSet[float64], origin, dir types.Vec3[float64]) (*SphereIntersector[float64], bvh.Ray[float64]) {
	t.Helper()

	ray, err := bvh.NewRay(origin, dir, 0, 100)
	if err != nil {
		t.Fatal(err)
	}

	isect := NewSphereIntersector(set)
	isect.PrepareTraversal(&ray, bvh.NewTraceOptions())
	return isect, ray
}

func TestSphereSetCollection(t *testing.T) {
	set := singleSphere()

	if got := set.Count(); got != 1 {
		t.Fatalf("expected 1 primitive; got %d", got)
	}

	box := set.BBox(0)
	if box.Min != (types.Vec3[float64]{-1, -1, 4}) || box.Max != (types.Vec3[float64]{1, 1, 6}) {
		t.Fatalf("unexpected bounding box %v %v", box.Min, box.Max)
	}
	if got := set.Center(0); got != (types.Vec3[float64]{0, 0, 5}) {
		t.Fatalf("expected center {0 0 5}; got %v", got)
	}
}

func TestSphereHit(t *testing.T) {
	set := singleSphere()
	isect, ray := preparedSphere(t, set, types.XYZ[float64](0, 0, 0), types.XYZ[float64](0, 0, 1))

	dist, uv, ok := isect.IntersectPrim(0, ray.MaxT)
	if !ok {
		t.Fatal("expected a hit")
	}
	if dist != 4 {
		t.Fatalf("expected hit distance 4; got %v", dist)
	}

	// The hit point (0, 0, 4) sits at the -z pole of the sphere.
	if uv[1] != 1 {
		t.Fatalf("expected polar coordinate 1; got %v", uv[1])
	}
}

func TestSphereMiss(t *testing.T) {
	set := singleSphere()
	isect, ray := preparedSphere(t, set, types.XYZ[float64](2, 0, 0), types.XYZ[float64](0, 0, 1))

	if _, _, ok := isect.IntersectPrim(0, ray.MaxT); ok {
		t.Fatal("expected a miss for a ray passing beside the sphere")
	}
}

func TestSphereFromInside(t *testing.T) {
	set := singleSphere()

	// Origin at the sphere center: the near root is negative, so the far
	// root at one radius must be reported.
	isect, ray := preparedSphere(t, set, types.XYZ[float64](0, 0, 5), types.XYZ[float64](0, 0, 1))
	dist, _, ok := isect.IntersectPrim(0, ray.MaxT)
	if !ok || dist != 1 {
		t.Fatalf("expected exit hit at distance 1; got %v (ok=%v)", dist, ok)
	}
}

func TestSphereSegmentWindow(t *testing.T) {
	set := singleSphere()

	ray, err := bvh.NewRay(types.XYZ[float64](0, 0, 0), types.XYZ[float64](0, 0, 1), 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	isect := NewSphereIntersector(set)
	isect.PrepareTraversal(&ray, bvh.NewTraceOptions())

	// tMax in front of the sphere: neither root is in range.
	if _, _, ok := isect.IntersectPrim(0, 3); ok {
		t.Fatal("expected a miss for a segment ending before the sphere")
	}

	// A segment starting inside the sphere picks up the far root.
	ray, err = bvh.NewRay(types.XYZ[float64](0, 0, 0), types.XYZ[float64](0, 0, 1), 5, 100)
	if err != nil {
		t.Fatal(err)
	}
	isect = NewSphereIntersector(set)
	isect.PrepareTraversal(&ray, bvh.NewTraceOptions())

	dist, _, ok := isect.IntersectPrim(0, ray.MaxT)
	if !ok || dist != 6 {
		t.Fatalf("expected far hit at distance 6; got %v (ok=%v)", dist, ok)
	}
}

func TestSphereUnnormalizedDirection(t *testing.T) {
	set := singleSphere()
	isect, ray := preparedSphere(t, set, types.XYZ[float64](0, 0, 0), types.XYZ[float64](0, 0, 2))

	// Direction length 2 halves the parametric hit distance.
	dist, _, ok := isect.IntersectPrim(0, ray.MaxT)
	if !ok || dist != 2 {
		t.Fatalf("expected hit at parametric distance 2; got %v (ok=%v)", dist, ok)
	}
}
