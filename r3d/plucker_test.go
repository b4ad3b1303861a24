package r3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPluckerMatAntisymmetric(t *testing.T) {
	a := mgl32.Vec4{1, 2, 3, 1}
	b := mgl32.Vec4{-4, 0, 7, 1}
	l := PluckerMat(a, b)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if l.At(i, j) != -l.At(j, i) {
				t.Fatalf("L[%d][%d]=%v not antisymmetric with L[%d][%d]=%v",
					i, j, l.At(i, j), j, i, l.At(j, i))
			}
		}
	}
}

var intersectTests = []struct {
	name  string
	a, b  mgl32.Vec4
	plane mgl32.Vec4
	want  mgl32.Vec3
}{
	{
		name:  "axis line through origin plane",
		a:     mgl32.Vec4{0, 0, 5, 1},
		b:     mgl32.Vec4{0, 0, -5, 1},
		plane: mgl32.Vec4{0, 0, 1, 0},
		want:  mgl32.Vec3{0, 0, 0},
	},
	{
		name:  "offset plane",
		a:     mgl32.Vec4{0, 0, 5, 1},
		b:     mgl32.Vec4{0, 0, -5, 1},
		plane: mgl32.Vec4{0, 0, 1, -2},
		want:  mgl32.Vec3{0, 0, 2},
	},
	{
		name:  "oblique line",
		a:     mgl32.Vec4{0, 0, 4, 1},
		b:     mgl32.Vec4{2, 2, 0, 1},
		plane: mgl32.Vec4{0, 0, 1, -2},
		want:  mgl32.Vec3{1, 1, 2},
	},
}

func TestIntersectPlane(t *testing.T) {
	for _, test := range intersectTests {
		got := IntersectPlane(PluckerMat(test.a, test.b), test.plane)
		if !vecNear(got, test.want) {
			t.Errorf("%s: intersection=%v; expected %v", test.name, got, test.want)
		}
	}
}

func TestIntersectPlaneParallel(t *testing.T) {
	// line lies parallel to the plane, above it
	a := mgl32.Vec4{0, 0, 5, 1}
	b := mgl32.Vec4{1, 0, 5, 1}
	plane := mgl32.Vec4{0, 0, 1, 0}

	got := IntersectPlane(PluckerMat(a, b), plane)
	if IsFiniteVec3(got) {
		t.Errorf("parallel intersection=%v; expected NaN sentinel", got)
	}
}

func TestTransformPlaneTranslation(t *testing.T) {
	m := mgl32.Translate3D(0, 0, 3)
	got := TransformPlane(m, mgl32.Vec4{0, 0, 1, 0})
	want := mgl32.Vec4{0, 0, 1, -3}
	for i := 0; i < 4; i++ {
		if !floatNear(got[i], want[i]) {
			t.Errorf("TransformPlane=%v; expected %v", got, want)
			break
		}
	}
}

// Points on the local plane must land on the transformed plane for an
// arbitrary affine carry.
func TestTransformPlaneConsistency(t *testing.T) {
	m := mgl32.Translate3D(2, -1, 4).
		Mul4(mgl32.HomogRotate3DY(0.7)).
		Mul4(mgl32.Scale3D(2, 2, 2))
	plane := mgl32.Vec4{0, 1.0 / 15.0, -1.0 / 9.0, 5.0 / 9.0}

	locals := []mgl32.Vec4{
		{0, 0, 5, 1},
		{3, 15, 14, 1},
		{-7, 30, 23, 1},
	}
	worldPlane := TransformPlane(m, plane)
	for _, p := range locals {
		if d := plane.Dot(p); !floatNear(d, 0) {
			t.Fatalf("test point %v not on local plane, dot=%v", p, d)
		}
		world := m.Mul4x1(p)
		if d := worldPlane.Dot(world); !floatNear(d, 0) {
			t.Errorf("transformed point %v off carried plane, dot=%v", world, d)
		}
	}
}
