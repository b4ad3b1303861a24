package perks

import "sort"

// Skill tree model for one constellation. Node 0 is a reserved root
// sentinel: it is never drawn or pickable, but edges coming out of it are
// still valid. X and Y are the only mutable state in the whole model; the
// drag controller writes them, the layout projector reads them.

// PerkRef points back at the game plugin record a node unlocks.
type PerkRef struct {
	FormID uint32
	EDID   string
	Name   string
}

type Node struct {
	Perk     PerkRef
	X, Y     float32
	Children []uint32
}

type Tree struct {
	Skill string
	Nodes map[uint32]*Node
}

// Record is one perk entry as the domain source delivers it: raw grid slot
// plus fractional offsets. Layout x centers the grid around zero.
type Record struct {
	ID       uint32
	Perk     PerkRef
	GridX    float32
	GridY    float32
	OffsetX  float32
	OffsetY  float32
	Children []uint32
}

// NewTree converts source records into the editable tree. x = gridX +
// offsetX - maxGridX/2, y = gridY + offsetY.
func NewTree(skill string, records []Record) *Tree {
	var maxGridX float32
	for _, r := range records {
		if r.GridX > maxGridX {
			maxGridX = r.GridX
		}
	}

	t := &Tree{
		Skill: skill,
		Nodes: make(map[uint32]*Node, len(records)),
	}
	for _, r := range records {
		children := make([]uint32, len(r.Children))
		copy(children, r.Children)

		t.Nodes[r.ID] = &Node{
			Perk:     r.Perk,
			X:        r.GridX + r.OffsetX - maxGridX/2,
			Y:        r.GridY + r.OffsetY,
			Children: children,
		}
	}
	return t
}

type Edge struct {
	FromID, ToID uint32
	From, To     *Node
}

// Edges enumerates parent-to-child connections in node id order, silently
// skipping children that do not resolve in this tree.
func (t *Tree) Edges() []Edge {
	var edges []Edge
	for _, id := range t.SortedIDs() {
		n := t.Nodes[id]
		for _, childID := range n.Children {
			child, ok := t.Nodes[childID]
			if !ok {
				continue
			}
			edges = append(edges, Edge{FromID: id, ToID: childID, From: n, To: child})
		}
	}
	return edges
}

// SortedIDs returns node ids in ascending order for deterministic draw and
// iteration order.
func (t *Tree) SortedIDs() []uint32 {
	ids := make([]uint32, 0, len(t.Nodes))
	for id := range t.Nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
