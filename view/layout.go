package view

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/perks"
)

// The layout projector maps a node's 2D grid coordinate onto the anchor's
// local plane. This is a sheared mapping, not an orthogonal projection: x is
// negated, and z slides along the plane tilt as y grows. The pick code in
// pick.go inverts this algebraically, so the signs here are load-bearing.

func projectGrid(x, y float32) mgl32.Vec3 {
	cfg := config.Get()
	return mgl32.Vec3{
		-x * cfg.Layout.XIncrement,
		y * cfg.Layout.YIncrement,
		cfg.Layout.ZOffset - y*cfg.Layout.ZIncrement,
	}
}

// ProjectNode returns the node's position in anchor-local space.
func ProjectNode(n *perks.Node) mgl32.Vec3 {
	return projectGrid(n.X, n.Y)
}

// planeCoefficients encodes the layout surface z = ZOffset - y*ZIncrement as
// homogeneous plane coefficients in anchor-local space.
func planeCoefficients() mgl32.Vec4 {
	cfg := config.Get()
	return mgl32.Vec4{
		0,
		1 / cfg.Layout.YIncrement,
		1 / cfg.Layout.ZIncrement,
		-cfg.Layout.ZOffset / cfg.Layout.ZIncrement,
	}
}

// gridFromLocal inverts projectGrid for a point already on the plane.
func gridFromLocal(local mgl32.Vec3) (x, y float32) {
	cfg := config.Get()
	return -local.X() / cfg.Layout.XIncrement, local.Y() / cfg.Layout.YIncrement
}
