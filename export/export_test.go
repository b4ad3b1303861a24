package export

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/r3d"
	"github.com/dovahkit/perktree_editor/view"
)

func exportView(t *testing.T) *view.View {
	t.Helper()

	glyph := &nif.Shape{
		Name:     "PerkStarShape",
		Vertices: []mgl32.Vec3{{-1, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:  []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Indices:  []uint32{0, 1, 2},
	}
	scene := &nif.Scene{Nodes: []*nif.Node{
		{Name: "CameraPosition", Local: r3d.NewTransformTRS(mgl32.Vec3{0, 0, 200}, mgl32.Ident3(), 1)},
		{Name: "AnchorAlchemy", Local: r3d.NewTransform()},
		{Name: "PerkStar", Local: r3d.NewTransform(), Shapes: []*nif.Shape{glyph}},
		{Name: "PerkLine", Local: r3d.NewTransform(), Shapes: []*nif.Shape{glyph}},
	}}
	source := &perks.Source{Skills: []perks.Skill{{
		Name:   "Alchemy",
		Anchor: "AnchorAlchemy",
		Records: []perks.Record{
			{ID: 0, Children: []uint32{1}},
			{ID: 1, Perk: perks.PerkRef{EDID: "AlchemistPerk"}, GridX: 1, GridY: 1, Children: []uint32{2}},
			{ID: 2, Perk: perks.PerkRef{EDID: "PhysicianPerk"}, GridX: 2, GridY: 2},
		},
	}}}

	return view.New(scene, source)
}

func TestGLTFExport(t *testing.T) {
	v := exportView(t)
	v.SelectSkill("Alchemy")

	var buf bytes.Buffer
	if err := GLTF(&buf, v, v.GlyphMesh()); err != nil {
		t.Fatal(err)
	}

	if buf.Len() == 0 {
		t.Fatal("empty glb output")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Errorf("output starts with % x; expected binary glTF magic", buf.Bytes()[:4])
	}
}

func TestGLTFExportWithoutTree(t *testing.T) {
	v := exportView(t)

	var buf bytes.Buffer
	if err := GLTF(&buf, v, v.GlyphMesh()); err != nil {
		t.Fatal(err)
	}
}

func TestFBXExport(t *testing.T) {
	v := exportView(t)
	v.SelectSkill("Alchemy")

	var buf bytes.Buffer
	if err := FBX(&buf, v, v.GlyphMesh(), "alchemy.fbx"); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("Kaydara FBX Binary")) {
		t.Error("output missing binary FBX magic")
	}
}
