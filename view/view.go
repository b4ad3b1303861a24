package view

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/config"
	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/perks"
	"github.com/dovahkit/perktree_editor/r3d"
	"github.com/dovahkit/perktree_editor/render"
)

// View is the constellation editor core: it owns the camera, the cached
// anchor transform, the three mesh slots and the active tree, and sequences
// every frame as dome, then node glyphs, then edge connectors.
type View struct {
	scene  *nif.Scene
	source *perks.Source

	camera       *r3d.LookCamera
	lookAtOffset mgl32.Vec3

	skill       string
	tree        *perks.Tree
	anchorWorld r3d.Transform

	dome  meshSlot
	glyph meshSlot
	edge  meshSlot

	dragID   uint32
	dragging bool

	introTrack  r3d.KeyTrack
	introStart  time.Time
	introActive bool

	dirty bool
}

func New(scene *nif.Scene, source *perks.Source) *View {
	v := &View{
		scene:       scene,
		source:      source,
		anchorWorld: r3d.NewTransform(),
	}
	v.dome.name = "dome"
	v.glyph.name = "glyph"
	v.edge.name = "edge"
	v.setupCamera()
	v.loadSlotsFromScene()
	return v
}

// loadSlotsFromScene splits the scene into the three mesh slots: the glyph
// and connector nodes feed their own slots, everything else is dome.
func (v *View) loadSlotsFromScene() {
	cfg := config.Get()

	glyphNode := v.scene.NodeByName(cfg.Meshes.Glyph)
	edgeNode := v.scene.NodeByName(cfg.Meshes.Edge)
	if glyphNode == nil || edgeNode == nil {
		log.Printf("[view] glyph/edge mesh nodes %q/%q incomplete in scene",
			cfg.Meshes.Glyph, cfg.Meshes.Edge)
	}

	special := make(map[*nif.Shape]bool)

	var dome []render.MeshData
	if glyphNode != nil {
		var data []render.MeshData
		for _, s := range glyphNode.Shapes {
			special[s] = true
			data = append(data, render.MeshDataFromShape(s))
		}
		v.glyph.setAsset(data)
	}
	if edgeNode != nil {
		var data []render.MeshData
		for _, s := range edgeNode.Shapes {
			special[s] = true
			data = append(data, render.MeshDataFromShape(s))
		}
		v.edge.setAsset(data)
	}
	for _, s := range v.scene.Shapes() {
		if !special[s] {
			dome = append(dome, render.MeshDataFromShape(s))
		}
	}
	v.dome.setAsset(dome)
	v.dirty = true
}

// SetScene swaps the dome asset. Slot handles from the previous scene are
// disposed before the new upload on the next frame.
func (v *View) SetScene(scene *nif.Scene) {
	v.scene = scene
	v.setupCamera()
	v.loadSlotsFromScene()
	if v.skill != "" {
		v.SelectSkill(v.skill)
	}
}

// SelectSkill builds a fresh editable tree for the skill and re-resolves its
// anchor point. The previous tree is discarded, never persisted.
func (v *View) SelectSkill(name string) {
	skill := v.source.SkillByName(name)
	if skill == nil {
		log.Printf("[view] unknown skill %q", name)
		return
	}

	v.skill = name
	v.tree = v.source.Tree(name)
	v.dragging = false
	v.dragID = 0

	v.anchorWorld = r3d.NewTransform()
	if anchor := v.scene.NodeByName(skill.Anchor); anchor != nil {
		v.anchorWorld = anchor.WorldTransform()
	} else {
		log.Printf("[view] anchor %q missing for skill %q, tree placed at scene origin",
			skill.Anchor, name)
	}

	v.retarget()
	v.startIntro(config.Get().Camera.LookAtOffset[2])
}

func (v *View) Skill() string { return v.skill }

func (v *View) Tree() *perks.Tree { return v.tree }

func (v *View) Scene() *nif.Scene { return v.scene }

func (v *View) AnchorWorld() r3d.Transform { return v.anchorWorld }

// Dirty reports whether a redraw is pending. Redraw requests coalesce into
// this flag; there is no queue.
func (v *View) Dirty() bool { return v.dirty || v.introActive }

func (v *View) RequestRedraw() { v.dirty = true }

// Frame renders one frame: slot upload/disposal, clear, camera upload, dome,
// glyphs, edges. Must be called from the same goroutine as all mutation.
func (v *View) Frame(r render.Renderer, width, height float32) {
	v.advanceIntro()

	v.dome.process(r)
	v.glyph.process(r)
	v.edge.process(r)

	r.Clear()

	proj := v.camera.GetProjectionMatrix(width, height)
	r.SetCamera(proj.Mul4(v.camera.GetViewMatrix()))

	v.dome.draw(r, mgl32.Ident4())

	if v.tree != nil {
		v.drawTree(r)
	}

	v.dirty = false
}

func (v *View) drawTree(r render.Renderer) {
	cfg := config.Get()
	viewDir := v.camera.ViewDir()

	for _, id := range v.tree.SortedIDs() {
		if id == 0 {
			// root sentinel is never drawn
			continue
		}
		node := v.tree.Nodes[id]

		// layout transform is the inner operand, the anchor the outer
		world := r3d.NewTransformTRS(ProjectNode(node), mgl32.Ident3(), 1).Mul(v.anchorWorld)
		world.Rotation = r3d.PointBillboard(viewDir, v.camera.Up)
		v.glyph.draw(r, world.Mat4())
	}

	for _, e := range v.tree.Edges() {
		a := v.anchorWorld.Apply(ProjectNode(e.From))
		b := v.anchorWorld.Apply(ProjectNode(e.To))

		basis, length, ok := r3d.EdgeBasis(a, b, v.camera.Up, cfg.Layout.EdgeScale)
		if !ok {
			// coincident nodes, drawing would propagate NaN
			continue
		}

		world := r3d.NewTransformTRS(a, basis, length*cfg.Layout.EdgeScale)
		world = r3d.ApplyEdgeFlatten(world, viewDir)
		v.edge.draw(r, world.Mat4())
	}
}

// GlyphMesh returns the glyph mesh buffers for layout export, empty when the
// scene carries no glyph node.
func (v *View) GlyphMesh() render.MeshData {
	n := v.scene.NodeByName(config.Get().Meshes.Glyph)
	if n == nil || len(n.Shapes) == 0 {
		return render.MeshData{}
	}
	return render.MeshDataFromShape(n.Shapes[0])
}

// meshSlot is one GPU asset slot. Asset swaps dispose the previous
// generation's handles before the new upload; upload failures leave the slot
// empty for the frame and retry on the next asset swap.
type meshSlot struct {
	name    string
	state   slotState
	pending []render.MeshData
	stale   []render.MeshHandle
	handles []render.MeshHandle
	data    []render.MeshData
}

type slotState int

const (
	slotUnloaded slotState = iota
	slotPendingUpload
	slotUploaded
)

func (s *meshSlot) setAsset(data []render.MeshData) {
	if s.state == slotUploaded {
		s.stale = append(s.stale, s.handles...)
		s.handles = nil
	}
	s.pending = data
	s.state = slotPendingUpload
}

func (s *meshSlot) process(r render.Renderer) {
	for _, h := range s.stale {
		r.Dispose(h)
	}
	s.stale = nil

	if s.state != slotPendingUpload {
		return
	}

	s.handles = s.handles[:0]
	s.data = s.data[:0]
	for _, d := range s.pending {
		h, err := r.UploadMesh(d)
		if err != nil {
			log.Printf("[view] slot %s upload of %q failed: %v", s.name, d.Name, err)
			continue
		}
		s.handles = append(s.handles, h)
		s.data = append(s.data, d)
	}
	s.pending = nil
	s.state = slotUploaded
}

func (s *meshSlot) draw(r render.Renderer, world mgl32.Mat4) {
	for i, h := range s.handles {
		r.Draw(h, world, s.data[i].Material)
	}
}
