package r3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayPointsCenterPixel(t *testing.T) {
	c := NewLookCamera(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	a, b := c.RayPoints(400, 300, 800, 600)

	if got := a.Vec3(); !vecNear(got, c.Position) {
		t.Errorf("ray origin %v; expected camera position %v", got, c.Position)
	}
	if !mgl32.FloatEqualThreshold(a.W(), 1, eps) || !mgl32.FloatEqualThreshold(b.W(), 1, eps) {
		t.Errorf("ray points not affine: w=%v,%v", a.W(), b.W())
	}

	dir := b.Vec3().Sub(a.Vec3()).Normalize()
	if !vecNear(dir, c.ViewDir()) {
		t.Errorf("center ray direction %v; expected view direction %v", dir, c.ViewDir())
	}
}

// Pixels right of center must produce rays bending toward camera-right, and
// pixels below center toward camera-down (screen y grows downward).
func TestRayPointsOffCenter(t *testing.T) {
	c := NewLookCamera(mgl32.Vec3{0, 0, 100}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})

	a, b := c.RayPoints(600, 300, 800, 600)
	dir := b.Vec3().Sub(a.Vec3()).Normalize()
	if dir.X() <= 0 {
		t.Errorf("right-half ray direction %v; expected positive x", dir)
	}

	a, b = c.RayPoints(400, 450, 800, 600)
	dir = b.Vec3().Sub(a.Vec3()).Normalize()
	if dir.Y() >= 0 {
		t.Errorf("lower-half ray direction %v; expected negative y", dir)
	}
}
