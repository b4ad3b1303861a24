package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// PluckerMat encodes the line through homogeneous points a and b as the
// antisymmetric matrix L[i][j] = a[i]*b[j] - b[i]*a[j]. The encoding is
// independent of which two points on the line were picked, which lets the
// pick code intersect a camera ray with a plane expressed in anchor-local
// coordinates without an explicit change of basis for the ray itself.
func PluckerMat(a, b mgl32.Vec4) (l mgl32.Mat4) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			l.Set(i, j, a[i]*b[j]-b[i]*a[j])
		}
	}
	return l
}

// TransformPlane moves plane coefficients from the space of m into its
// parent space. Planes transform by the inverse-transpose, not the forward
// matrix.
func TransformPlane(m mgl32.Mat4, plane mgl32.Vec4) mgl32.Vec4 {
	return m.Inv().Transpose().Mul4x1(plane)
}

// IntersectPlane intersects the line with plane coefficients e and performs
// the homogeneous divide. When the line is parallel to the plane the fourth
// component vanishes and the result is all-NaN; callers must check with
// mgl32.Vec3.IsFinite-style tests before using it.
func IntersectPlane(l mgl32.Mat4, e mgl32.Vec4) mgl32.Vec3 {
	p := l.Mul4x1(e)
	if mgl32.FloatEqualThreshold(p.W(), 0, 1e-9) {
		nan := float32(math.NaN())
		return mgl32.Vec3{nan, nan, nan}
	}
	return mgl32.Vec3{p.X() / p.W(), p.Y() / p.W(), p.Z() / p.W()}
}

// IsFiniteVec3 reports whether every component is a usable number.
func IsFiniteVec3(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
