package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a scale-rotation-translation composite as stored in the
// imported scene blocks. A point p maps to Rotation*(p*Scale) + Translation.
// Rotation is orthonormal in practice but not enforced: billboard code
// overrides it with anisotropic bases after composition.
type Transform struct {
	Rotation    mgl32.Mat3
	Translation mgl32.Vec3
	Scale       float32
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.Ident3(),
		Scale:    1.0,
	}
}

func NewTransformTRS(translation mgl32.Vec3, rotation mgl32.Mat3, scale float32) Transform {
	return Transform{
		Rotation:    rotation,
		Translation: translation,
		Scale:       scale,
	}
}

// Mul composes t (inner, applied first) with outer (the parent).
// outer(t(p)) == t.Mul(outer).Apply(p) for every point p.
func (t Transform) Mul(outer Transform) Transform {
	return Transform{
		Rotation:    outer.Rotation.Mul3(t.Rotation),
		Translation: outer.Rotation.Mul3x1(t.Translation.Mul(outer.Scale)).Add(outer.Translation),
		Scale:       t.Scale * outer.Scale,
	}
}

// Apply maps a point from local space to the transform's parent space.
func (t Transform) Apply(p mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Mul3x1(p.Mul(t.Scale)).Add(t.Translation)
}

// RotateVec rotates a direction, ignoring scale and translation.
func (t Transform) RotateVec(v mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Mul3x1(v)
}

// Mat4 expands the composite into a 4x4 matrix under the same column-vector
// convention the camera matrices use: scale first, rotation, translation last.
func (t Transform) Mat4() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translation.X(), t.Translation.Y(), t.Translation.Z())
	m = m.Mul4(t.Rotation.Mat4())
	m = m.Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
	return m
}

// Mat3Columns builds a rotation basis from three axis columns.
func Mat3Columns(x, y, z mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromCols(x, y, z)
}
