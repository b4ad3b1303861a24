package r3d

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PointBillboard builds a rotation basis that turns flat glyph geometry
// toward the camera: local Z looks back along the view direction, local X
// stays horizontal relative to up.
func PointBillboard(viewDir, up mgl32.Vec3) mgl32.Mat3 {
	z := viewDir.Mul(-1).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat3Columns(x, y, z)
}

// EdgeBasis builds the per-edge rotation for a connector between two node
// positions. Local Y is stretched to span the gap while X and Z are divided
// by the same factor so the connector thickness does not depend on the gap
// length. The caller is expected to pair this basis with a uniform Transform
// scale of length*edgeScale. Returns ok=false for coincident positions;
// such edges must be skipped, not drawn.
func EdgeBasis(a, b, up mgl32.Vec3, edgeScale float32) (basis mgl32.Mat3, length float32, ok bool) {
	v := b.Sub(a)
	length = v.Len()
	if length == 0 {
		return mgl32.Ident3(), 0, false
	}
	y := v.Mul(1 / length)
	z := up.Cross(y)
	x := y.Cross(z)

	div := 1 / (length * edgeScale)
	return Mat3Columns(x.Mul(div), y, z.Mul(div)), length, true
}

// EdgeFlatten computes the second-stage correction that keeps thin edge
// geometry facing the camera. viewDir is the normalized world view direction;
// edgeWorld is the edge's already-composed world transform. The returned
// rotation lives in the edge's local space and must be applied before the
// edge basis (composed onto the local side of the edge rotation).
func EdgeFlatten(edgeWorld Transform, viewDir mgl32.Vec3) (mgl32.Mat3, bool) {
	inv := edgeWorld.Rotation.Inv()
	if inv.Trace() == 0 && inv.Det() == 0 {
		// mgl32 returns the zero matrix for singular input
		return mgl32.Ident3(), false
	}

	localView := inv.Mul3x1(viewDir)
	if localView.Len() == 0 {
		return mgl32.Ident3(), false
	}

	z := localView.Normalize()
	y := mgl32.Vec3{0, 1, 0}
	x := z.Cross(y)
	return Mat3Columns(x, y, z), true
}

// ApplyEdgeFlatten folds the flattening correction into an edge world
// transform, leaving translation and scale untouched.
func ApplyEdgeFlatten(edgeWorld Transform, viewDir mgl32.Vec3) Transform {
	if corr, ok := EdgeFlatten(edgeWorld, viewDir); ok {
		edgeWorld.Rotation = edgeWorld.Rotation.Mul3(corr)
	}
	return edgeWorld
}
