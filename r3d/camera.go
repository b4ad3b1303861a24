package r3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera interface {
	GetViewMatrix() mgl32.Mat4
}

// LookCamera is the fixed-position look-at camera the constellation view
// uses: position and up come from scene anchors, the target follows the
// selected anchor point plus a user offset.
type LookCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	FovDegrees float32
	Near, Far  float32
}

func NewLookCamera(position, target, up mgl32.Vec3) *LookCamera {
	return &LookCamera{
		Position:   position,
		Target:     target,
		Up:         up,
		FovDegrees: 45.0,
		Near:       1.0,
		Far:        10000.0,
	}
}

func (c *LookCamera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c *LookCamera) GetProjectionMatrix(width, height float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovDegrees), width/height, c.Near, c.Far)
}

// ViewDir is the normalized direction from the camera to its target.
func (c *LookCamera) ViewDir() mgl32.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// RayPoints returns two homogeneous world points spanning the pick ray
// through the given viewport pixel: the camera position and a point
// reconstructed on the view-space z=-1 plane pushed through the inverse view
// matrix. Screen y grows downward, NDC y upward.
func (c *LookCamera) RayPoints(px, py, width, height float32) (a, b mgl32.Vec4) {
	ndcX := 2*px/width - 1
	ndcY := 1 - 2*py/height

	halfH := float32(math.Tan(float64(mgl32.DegToRad(c.FovDegrees)) / 2))
	halfW := halfH * width / height

	viewPoint := mgl32.Vec4{ndcX * halfW, ndcY * halfH, -1, 1}
	b = c.GetViewMatrix().Inv().Mul4x1(viewPoint)

	a = c.Position.Vec4(1)
	return a, b
}
