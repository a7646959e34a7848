package types

import (
	"math"
	"testing"
)

func TestVec3Ops(t *testing.T) {
	a := XYZ[float32](1, 2, 3)
	b := XYZ[float32](4, -5, 6)

	if got := a.Add(b); got != (Vec3[float32]{5, -3, 9}) {
		t.Fatalf("expected sum {5 -3 9}; got %v", got)
	}
	if got := a.Sub(b); got != (Vec3[float32]{-3, 7, -3}) {
		t.Fatalf("expected difference {-3 7 -3}; got %v", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Fatalf("expected dot product 12; got %v", got)
	}
	if got := a.Cross(b); got != (Vec3[float32]{27, 6, -13}) {
		t.Fatalf("expected cross product {27 6 -13}; got %v", got)
	}
	if got := b.Abs(); got != (Vec3[float32]{4, 5, 6}) {
		t.Fatalf("expected abs {4 5 6}; got %v", got)
	}
}

func TestVec3ArgMax(t *testing.T) {
	specs := []struct {
		v   Vec3[float64]
		exp int
	}{
		{Vec3[float64]{3, 2, 1}, 0},
		{Vec3[float64]{1, 3, 2}, 1},
		{Vec3[float64]{1, 2, 3}, 2},
		{Vec3[float64]{2, 2, 2}, 0},
		{Vec3[float64]{1, 2, 2}, 1},
	}

	for idx, spec := range specs {
		if got := spec.v.ArgMax(); got != spec.exp {
			t.Fatalf("[spec %d] expected argmax %d; got %d", idx, spec.exp, got)
		}
	}
}

func TestVec3MinMax(t *testing.T) {
	a := XYZ[float32](1, 5, 3)
	b := XYZ[float32](2, 4, 3)

	if got := MinVec3(a, b); got != (Vec3[float32]{1, 4, 3}) {
		t.Fatalf("expected min {1 4 3}; got %v", got)
	}
	if got := MaxVec3(a, b); got != (Vec3[float32]{2, 5, 3}) {
		t.Fatalf("expected max {2 5 3}; got %v", got)
	}
}

func TestVec3DivByZero(t *testing.T) {
	v := XYZ[float64](1, -1, 1)
	got := v.Div(Vec3[float64]{0, 0, 2})

	if !math.IsInf(got[0], 1) {
		t.Fatalf("expected +inf; got %v", got[0])
	}
	if !math.IsInf(got[1], -1) {
		t.Fatalf("expected -inf; got %v", got[1])
	}
	if got[2] != 0.5 {
		t.Fatalf("expected 0.5; got %v", got[2])
	}
}

func TestEpsilon(t *testing.T) {
	if got := Epsilon[float32](); got != epsilon32 {
		t.Fatalf("expected float32 epsilon %v; got %v", epsilon32, got)
	}
	if got := Epsilon[float64](); got != epsilon64 {
		t.Fatalf("expected float64 epsilon %v; got %v", epsilon64, got)
	}
}

func TestAABBExpand(t *testing.T) {
	box := NewAABB[float32]()
	if !box.Empty() {
		t.Fatal("expected new box to be empty")
	}
	if got := box.SurfaceArea(); got != 0 {
		t.Fatalf("expected empty box surface area 0; got %v", got)
	}

	box = box.ExpandPoint(XYZ[float32](1, 2, 3))
	box = box.ExpandPoint(XYZ[float32](-1, 0, 1))
	if box.Empty() {
		t.Fatal("expected box to be non-empty after expanding")
	}
	if box.Min != (Vec3[float32]{-1, 0, 1}) || box.Max != (Vec3[float32]{1, 2, 3}) {
		t.Fatalf("unexpected box corners %v %v", box.Min, box.Max)
	}

	box = box.Expand(AABBFromPoints(XYZ[float32](0, -4, 0), XYZ[float32](0, 5, 0)))
	if box.Min[1] != -4 || box.Max[1] != 5 {
		t.Fatalf("expected y extent [-4, 5]; got [%v, %v]", box.Min[1], box.Max[1])
	}
}

func TestAABBSurfaceArea(t *testing.T) {
	box := AABBFromPoints(XYZ[float64](0, 0, 0), XYZ[float64](2, 3, 4))

	// 2*(2*3 + 3*4 + 4*2) = 52
	if got := box.SurfaceArea(); got != 52 {
		t.Fatalf("expected surface area 52; got %v", got)
	}
}

func TestAABBCenterContains(t *testing.T) {
	box := AABBFromPoints(XYZ[float32](-1, -1, -1), XYZ[float32](3, 3, 3))

	if got := box.Center(); got != (Vec3[float32]{1, 1, 1}) {
		t.Fatalf("expected center {1 1 1}; got %v", got)
	}
	if !box.Contains(XYZ[float32](3, 0, 0)) {
		t.Fatal("expected boundary point to be contained")
	}
	if box.Contains(XYZ[float32](3.1, 0, 0)) {
		t.Fatal("expected outside point to not be contained")
	}
}
