package web

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/r3d"
	"github.com/dovahkit/perktree_editor/view"
)

func testServer() *Server {
	scene := &nif.Scene{Nodes: []*nif.Node{
		{Name: "CameraPosition", Local: r3d.NewTransformTRS(mgl32.Vec3{0, 0, 200}, mgl32.Ident3(), 1)},
		{Name: "AnchorAlchemy", Local: r3d.NewTransform()},
		{Name: "PerkStar", Local: r3d.NewTransform()},
		{Name: "PerkLine", Local: r3d.NewTransform()},
	}}
	source := &perks.Source{Skills: []perks.Skill{{
		Name:   "Alchemy",
		Anchor: "AnchorAlchemy",
		Records: []perks.Record{
			{ID: 0, Children: []uint32{1}},
			{ID: 1, Perk: perks.PerkRef{EDID: "AlchemistPerk", Name: "Alchemist"}, GridX: 1, GridY: 1},
		},
	}}}

	v := view.New(scene, source)
	srv := &Server{view: v, source: source, loop: newEditLoop(v)}
	go srv.loop.run()
	return srv
}

func TestHandlerSkills(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/json/skills", nil))

	var skills []jSkill
	if err := json.Unmarshal(rec.Body.Bytes(), &skills); err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "Alchemy" || skills[0].Perks != 2 {
		t.Errorf("skills=%+v", skills)
	}
}

func TestHandlerTree(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/json/tree/Alchemy", nil))

	var tree jTree
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatal(err)
	}
	if tree.Skill != "Alchemy" || len(tree.Nodes) != 2 {
		t.Fatalf("tree=%+v", tree)
	}
	if tree.Nodes[1].EDID != "AlchemistPerk" {
		t.Errorf("node 1 = %+v", tree.Nodes[1])
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/json/tree/Enchanting", nil))
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("unknown skill response %q; expected an error document", rec.Body.String())
	}
}

func TestHandlerActiveTreeWithoutSelection(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/json/tree", nil))
	if !strings.Contains(rec.Body.String(), "error") {
		t.Errorf("no-selection response %q; expected an error document", rec.Body.String())
	}
}

func TestHandlerConfigRoundTrip(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/json/config", nil))
	if !strings.Contains(rec.Body.String(), "x_increment") {
		t.Errorf("config document %q missing layout keys", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/json/config",
		strings.NewReader("layout:\n  edge_scale: 0.1\n")))
	if !strings.Contains(rec.Body.String(), "edge_scale") {
		t.Errorf("config update response %q; expected the merged document", rec.Body.String())
	}
}

func TestHandlerExportUnknown(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/export/Enchanting/glb", nil))
	if !strings.Contains(rec.Body.String(), "error") {
		t.Error("unknown skill export accepted")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/export/Alchemy/dae", nil))
	if !strings.Contains(rec.Body.String(), "error") {
		t.Error("unknown format export accepted")
	}
}

func TestHandlerExportGLB(t *testing.T) {
	srv := testServer()
	router := srv.router("testdata")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/export/Alchemy/glb", nil))

	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "Alchemy.glb") {
		t.Errorf("disposition %q; expected attachment Alchemy.glb", got)
	}
	if !strings.HasPrefix(rec.Body.String(), "glTF") {
		t.Error("export body missing binary glTF magic")
	}
}
