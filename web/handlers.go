package web

import (
	"bytes"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/export"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/status"
	"github.com/dovahkit/perktree_editor/utils"
	"github.com/dovahkit/perktree_editor/view"
)

type jSkill struct {
	Name   string `json:"name"`
	Anchor string `json:"anchor"`
	Perks  int    `json:"perks"`
}

func (srv *Server) HandlerSkills(w http.ResponseWriter, r *http.Request) {
	skills := make([]jSkill, 0, len(srv.source.Skills))
	for _, s := range srv.source.Skills {
		skills = append(skills, jSkill{Name: s.Name, Anchor: s.Anchor, Perks: len(s.Records)})
	}
	WriteJson(w, skills)
}

type jNode struct {
	ID       uint32   `json:"id"`
	EDID     string   `json:"edid"`
	Name     string   `json:"name"`
	X        float32  `json:"x"`
	Y        float32  `json:"y"`
	Children []uint32 `json:"children"`
}

type jTree struct {
	Skill string  `json:"skill"`
	Nodes []jNode `json:"nodes"`
}

func (srv *Server) HandlerTree(w http.ResponseWriter, r *http.Request) {
	skill := mux.Vars(r)["skill"]
	tree := srv.source.Tree(skill)
	if tree == nil {
		WriteError(w, errors.Errorf("unknown skill %q", skill))
		return
	}
	WriteJson(w, treeToJson(tree))
}

// HandlerActiveTree reports the live tree with any in-progress drag edits.
func (srv *Server) HandlerActiveTree(w http.ResponseWriter, r *http.Request) {
	var out *jTree
	srv.loop.do(func(v *view.View) {
		if v.Tree() != nil {
			t := treeToJson(v.Tree())
			out = &t
		}
	})
	if out == nil {
		WriteError(w, errors.New("no skill selected"))
		return
	}
	WriteJson(w, *out)
}

// HandlerConfig serves and accepts the yaml configuration document.
func (srv *Server) HandlerConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		data, err := ioutil.ReadAll(r.Body)
		if err != nil {
			WriteError(w, errors.Wrap(err, "failed to read body"))
			return
		}
		c := config.Get()
		if err := yaml.Unmarshal(data, &c); err != nil {
			WriteError(w, errors.Wrap(err, "failed to parse config"))
			return
		}
		config.Set(c)
		srv.loop.do(func(v *view.View) { v.RequestRedraw() })
		status.Info("config updated")
		fallthrough
	default:
		data, err := yaml.Marshal(config.Get())
		if err != nil {
			WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		WriteResult(w, data)
	}
}

// HandlerExport selects the skill on the edit loop and streams the layout
// in the requested format.
func (srv *Server) HandlerExport(w http.ResponseWriter, r *http.Request) {
	skill := mux.Vars(r)["skill"]
	format := mux.Vars(r)["format"]

	if srv.source.SkillByName(skill) == nil {
		WriteError(w, errors.Errorf("unknown skill %q", skill))
		return
	}

	var buf bytes.Buffer
	var err error
	srv.loop.do(func(v *view.View) {
		if v.Skill() != skill {
			v.SelectSkill(skill)
		}
		switch format {
		case "glb", "gltf":
			err = export.GLTF(&buf, v, v.GlyphMesh())
		case "fbx":
			err = export.FBX(&buf, v, v.GlyphMesh(), skill+".fbx")
		default:
			err = errors.Errorf("unknown format %q", format)
		}
	})
	if err != nil {
		status.Error("export of %q failed: %v", skill, err)
		WriteError(w, err)
		return
	}

	status.Info("exported %q as %s", skill, format)
	WriteFile(w, &buf, skill+"."+format)
}

// HandlerDebugView dumps the live view state as text for troubleshooting
// drag and layout issues.
func (srv *Server) HandlerDebugView(w http.ResponseWriter, r *http.Request) {
	var dump string
	srv.loop.do(func(v *view.View) {
		dump = utils.SDump(v.Skill(), v.AnchorWorld(), v.Camera(), v.Tree())
	})
	w.Header().Set("Content-Type", "text/plain")
	WriteResult(w, []byte(dump))
}

func treeToJson(t *perks.Tree) jTree {
	out := jTree{Skill: t.Skill, Nodes: make([]jNode, 0, len(t.Nodes))}
	for _, id := range t.SortedIDs() {
		n := t.Nodes[id]
		out.Nodes = append(out.Nodes, jNode{
			ID:       id,
			EDID:     n.Perk.EDID,
			Name:     n.Perk.Name,
			X:        n.X,
			Y:        n.Y,
			Children: n.Children,
		})
	}
	return out
}
