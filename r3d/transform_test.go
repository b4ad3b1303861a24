package r3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

// floatNear compares with an absolute tolerance. mgl32.FloatEqualThreshold
// switches to a much tighter epsilon-squared bound when either operand is
// exactly zero, which rejects ordinary float32 cross/dot noise around 1e-8.
func floatNear(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func vecNear(a, b mgl32.Vec3) bool {
	return floatNear(a.X(), b.X()) && floatNear(a.Y(), b.Y()) && floatNear(a.Z(), b.Z())
}

var composeTests = []struct {
	name         string
	inner, outer Transform
	points       []mgl32.Vec3
}{
	{
		name:   "identity",
		inner:  NewTransform(),
		outer:  NewTransform(),
		points: []mgl32.Vec3{{0, 0, 0}, {1, 2, 3}},
	},
	{
		name:   "translate chain",
		inner:  NewTransformTRS(mgl32.Vec3{1, 0, 0}, mgl32.Ident3(), 1),
		outer:  NewTransformTRS(mgl32.Vec3{0, 0, 10}, mgl32.Ident3(), 1),
		points: []mgl32.Vec3{{0, 0, 0}, {-3, 7, 2}},
	},
	{
		name:   "scaled parent",
		inner:  NewTransformTRS(mgl32.Vec3{1, 0, 0}, mgl32.Ident3(), 3),
		outer:  NewTransformTRS(mgl32.Vec3{0, 5, 0}, mgl32.Ident3(), 2),
		points: []mgl32.Vec3{{1, 1, 1}, {0, -2, 4}},
	},
	{
		name:   "rotated parent",
		inner:  NewTransformTRS(mgl32.Vec3{2, 0, 0}, mgl32.Rotate3DZ(mgl32.DegToRad(30)), 1),
		outer:  NewTransformTRS(mgl32.Vec3{0, 0, -9}, mgl32.Rotate3DY(mgl32.DegToRad(90)), 2),
		points: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {5, -5, 5}},
	},
}

// Composition must agree with sequential application for every point.
func TestTransformMul(t *testing.T) {
	for _, test := range composeTests {
		composed := test.inner.Mul(test.outer)
		for _, p := range test.points {
			want := test.outer.Apply(test.inner.Apply(p))
			got := composed.Apply(p)
			if !vecNear(got, want) {
				t.Errorf("%s: composed.Apply(%v)=%v; expected %v", test.name, p, got, want)
			}
		}
	}
}

func TestTransformMat4MatchesApply(t *testing.T) {
	for _, test := range composeTests {
		m := test.inner.Mat4()
		for _, p := range test.points {
			want := test.inner.Apply(p)
			got := m.Mul4x1(p.Vec4(1)).Vec3()
			if !vecNear(got, want) {
				t.Errorf("%s: Mat4*%v=%v; expected %v", test.name, p, got, want)
			}
		}
	}
}

func TestTransformChainAssociativity(t *testing.T) {
	a := NewTransformTRS(mgl32.Vec3{1, 2, 3}, mgl32.Rotate3DX(0.3), 2)
	b := NewTransformTRS(mgl32.Vec3{-4, 0, 1}, mgl32.Rotate3DZ(-1.1), 0.5)
	c := NewTransformTRS(mgl32.Vec3{0, 10, 0}, mgl32.Rotate3DY(2.0), 3)

	p := mgl32.Vec3{0.5, -1, 2}
	left := a.Mul(b).Mul(c).Apply(p)
	right := a.Mul(b.Mul(c)).Apply(p)
	if !vecNear(left, right) {
		t.Errorf("chain grouping disagrees: %v vs %v", left, right)
	}

	want := c.Apply(b.Apply(a.Apply(p)))
	if !vecNear(left, want) {
		t.Errorf("chain result %v; expected sequential %v", left, want)
	}
}

func TestRotateVecIgnoresScaleAndTranslation(t *testing.T) {
	tr := NewTransformTRS(mgl32.Vec3{100, 100, 100}, mgl32.Rotate3DZ(mgl32.DegToRad(90)), 50)
	got := tr.RotateVec(mgl32.Vec3{1, 0, 0})
	if !vecNear(got, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("RotateVec={%v}; expected {0 1 0}", got)
	}
}
