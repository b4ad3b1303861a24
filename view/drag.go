package view

// Drag editing. All pointer handling runs on the frame thread; the drag
// state is a single optional node id, so no synchronization is needed.

// PointerDown starts a drag when the pointer lands within pick tolerance of
// a node of the active tree.
func (v *View) PointerDown(px, py, width, height float32) bool {
	if v.tree == nil {
		return false
	}

	x, y, ok := v.Unproject(px, py, width, height)
	if !ok {
		return false
	}

	id, ok := v.NearestNode(x, y)
	if !ok {
		return false
	}

	v.dragID = id
	v.dragging = true
	return true
}

// PointerMove updates the dragged node's grid coordinate. A no-op without an
// active drag or when the pointer leaves the valid plane region.
func (v *View) PointerMove(px, py, width, height float32) {
	if !v.dragging {
		return
	}

	x, y, ok := v.Unproject(px, py, width, height)
	if !ok {
		return
	}

	node, exists := v.tree.Nodes[v.dragID]
	if !exists {
		v.dragging = false
		return
	}
	node.X = x
	node.Y = y
	v.dirty = true
}

// PointerUp ends any active drag unconditionally.
func (v *View) PointerUp() {
	v.dragging = false
	v.dragID = 0
}

// DraggedNode reports the node id currently being dragged.
func (v *View) DraggedNode() (uint32, bool) {
	return v.dragID, v.dragging
}
