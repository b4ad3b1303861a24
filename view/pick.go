package view

import (
	"math"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/r3d"
)

// Pointer unprojection: recover the grid coordinate on the selected anchor's
// plane that a viewport pixel looks at. The ray is encoded as a Plucker line
// matrix from two homogeneous points, and intersected with the layout plane
// carried into world space by the inverse-transpose of the anchor matrix.
// That keeps the plane in its natural (anchor-local) terms without an extra
// change of basis for the ray.

// Unproject returns grid coordinates for the pixel. ok is false when the ray
// is parallel to the plane, a matrix is singular, or the recovered grid y
// falls outside the draggable range; x and y are still returned for the
// range case so callers can clamp if they want to.
func (v *View) Unproject(px, py, width, height float32) (x, y float32, ok bool) {
	nan := float32(math.NaN())

	a, b := v.camera.RayPoints(px, py, width, height)
	line := r3d.PluckerMat(a, b)

	anchorMat := v.anchorWorld.Mat4()
	if anchorMat.Det() == 0 {
		return nan, nan, false
	}

	planeWorld := r3d.TransformPlane(anchorMat, planeCoefficients())

	world := r3d.IntersectPlane(line, planeWorld)
	if !r3d.IsFiniteVec3(world) {
		return nan, nan, false
	}

	local := anchorMat.Inv().Mul4x1(world.Vec4(1)).Vec3()
	x, y = gridFromLocal(local)

	cfg := config.Get()
	return x, y, y >= cfg.Pick.YMin && y <= cfg.Pick.YMax
}

// pickTolerance is the accepted grid-distance radius around a node. It
// widens with the node's own y so rows deep in the perspective stay as easy
// to grab as near ones.
func pickTolerance(nodeY float32) float32 {
	cfg := config.Get()
	return cfg.Pick.Tolerance * (1 + nodeY*cfg.Pick.ToleranceYScale)
}

// NearestNode scans the active tree for the node closest to the grid
// position. The root sentinel is never pickable. ok reports whether the
// nearest node actually lies inside its own tolerance radius.
func (v *View) NearestNode(x, y float32) (id uint32, ok bool) {
	if v.tree == nil {
		return 0, false
	}

	bestDist := float32(math.Inf(1))
	for _, nodeID := range v.tree.SortedIDs() {
		if nodeID == 0 {
			continue
		}
		n := v.tree.Nodes[nodeID]
		dist := float32(math.Hypot(float64(n.X-x), float64(n.Y-y)))
		if dist < bestDist {
			bestDist = dist
			id = nodeID
		}
	}
	if id == 0 {
		return 0, false
	}
	return id, bestDist <= pickTolerance(v.tree.Nodes[id].Y)
}
