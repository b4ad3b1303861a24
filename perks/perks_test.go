package perks

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

var treeRecords = []Record{
	{ID: 0, GridX: 0, GridY: 0, Children: []uint32{1}},
	{ID: 1, Perk: PerkRef{FormID: 0xBE126, EDID: "AlchemistPerk"}, GridX: 1, GridY: 1, OffsetX: 0.25, OffsetY: -0.1, Children: []uint32{2, 99}},
	{ID: 2, Perk: PerkRef{FormID: 0xC07CA, EDID: "PhysicianPerk"}, GridX: 4, GridY: 2},
}

func TestNewTreeCoordinates(t *testing.T) {
	tree := NewTree("Alchemy", treeRecords)

	if tree.Skill != "Alchemy" {
		t.Errorf("skill=%q", tree.Skill)
	}
	if len(tree.Nodes) != 3 {
		t.Fatalf("node count=%d; expected 3", len(tree.Nodes))
	}

	// grid x centers around half the widest column (4 here)
	n1 := tree.Nodes[1]
	if !near(n1.X, 1+0.25-2) || !near(n1.Y, 1-0.1) {
		t.Errorf("node 1 at (%v,%v); expected (-0.75,0.9)", n1.X, n1.Y)
	}
	n2 := tree.Nodes[2]
	if !near(n2.X, 2) || !near(n2.Y, 2) {
		t.Errorf("node 2 at (%v,%v); expected (2,2)", n2.X, n2.Y)
	}
}

func TestEdgesSkipDangling(t *testing.T) {
	tree := NewTree("Alchemy", treeRecords)
	edges := tree.Edges()

	if len(edges) != 2 {
		t.Fatalf("edge count=%d; expected 2 (dangling child 99 skipped)", len(edges))
	}
	if edges[0].FromID != 0 || edges[0].ToID != 1 {
		t.Errorf("edge 0 is %d->%d; expected 0->1", edges[0].FromID, edges[0].ToID)
	}
	if edges[1].FromID != 1 || edges[1].ToID != 2 {
		t.Errorf("edge 1 is %d->%d; expected 1->2", edges[1].FromID, edges[1].ToID)
	}
}

func TestSortedIDs(t *testing.T) {
	tree := NewTree("Alchemy", []Record{{ID: 7}, {ID: 2}, {ID: 0}, {ID: 5}})
	ids := tree.SortedIDs()
	want := []uint32{0, 2, 5, 7}
	for i, id := range ids {
		if id != want[i] {
			t.Fatalf("SortedIDs=%v; expected %v", ids, want)
		}
	}
}

func TestTreeRebuiltPerSelection(t *testing.T) {
	src := &Source{Skills: []Skill{{Name: "Alchemy", Anchor: "AnchorAlchemy", Records: treeRecords}}}

	first := src.Tree("Alchemy")
	first.Nodes[1].X = 99

	second := src.Tree("Alchemy")
	if near(second.Nodes[1].X, 99) {
		t.Error("second selection inherited edited coordinates; trees must be rebuilt fresh")
	}
	if src.Tree("Destruction") != nil {
		t.Error("unknown skill produced a tree")
	}
}

func TestParseDump(t *testing.T) {
	const dump = `
skills:
  - name: Alchemy
    anchor: AnchorAlchemy
    perks:
      - id: 1
        form_id: 778534
        edid: AlchemistPerk
        name: Alchemist
        grid_x: 1
        grid_y: 0
        offset_x: 0.5
        children: [2]
      - id: 2
        form_id: 788426
        edid: PhysicianPerk
        name: Physician
        grid_x: 1
        grid_y: 1
`
	src, err := ParseDump([]byte(dump))
	if err != nil {
		t.Fatal(err)
	}

	skill := src.SkillByName("Alchemy")
	if skill == nil {
		t.Fatal("skill missing after parse")
	}
	if skill.Anchor != "AnchorAlchemy" {
		t.Errorf("anchor=%q", skill.Anchor)
	}
	if len(skill.Records) != 2 {
		t.Fatalf("record count=%d", len(skill.Records))
	}

	r := skill.Records[0]
	if r.ID != 1 || r.Perk.FormID != 778534 || r.Perk.EDID != "AlchemistPerk" {
		t.Errorf("record 0 parsed as %+v", r)
	}
	if !near(r.OffsetX, 0.5) || len(r.Children) != 1 || r.Children[0] != 2 {
		t.Errorf("record 0 layout fields parsed as %+v", r)
	}
}

func TestParseDumpInvalid(t *testing.T) {
	if _, err := ParseDump([]byte("skills: {")); err == nil {
		t.Error("malformed yaml accepted")
	}
}
