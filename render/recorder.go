package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/nif"
)

// Recorder is the Renderer used by the web shell and the tests: instead of
// rasterizing it captures the frame as an ordered draw-call list that the
// browser-side client (or an assertion) replays.

type RecordedMesh struct {
	ID   int
	Data MeshData
}

type DrawCall struct {
	Mesh     int          `json:"mesh"`
	World    mgl32.Mat4   `json:"world"`
	Material nif.Material `json:"material"`
}

type Frame struct {
	ViewProj mgl32.Mat4 `json:"view_proj"`
	Calls    []DrawCall `json:"calls"`
}

type Recorder struct {
	nextID int

	// Meshes still alive, keyed by handle id.
	Meshes map[int]MeshData

	// Uploads and disposals since the last frame, in call order. The web
	// client uses these to mirror GPU resource lifetime.
	Uploaded []RecordedMesh
	Disposed []int

	Current Frame
}

func NewRecorder() *Recorder {
	return &Recorder{Meshes: make(map[int]MeshData)}
}

func (r *Recorder) UploadMesh(data MeshData) (MeshHandle, error) {
	r.nextID++
	id := r.nextID
	r.Meshes[id] = data
	r.Uploaded = append(r.Uploaded, RecordedMesh{ID: id, Data: data})
	return id, nil
}

func (r *Recorder) Dispose(h MeshHandle) {
	id, ok := h.(int)
	if !ok {
		return
	}
	delete(r.Meshes, id)
	r.Disposed = append(r.Disposed, id)
}

func (r *Recorder) SetCamera(viewProj mgl32.Mat4) {
	r.Current.ViewProj = viewProj
}

func (r *Recorder) Clear() {
	r.Current.Calls = r.Current.Calls[:0]
}

func (r *Recorder) Draw(h MeshHandle, world mgl32.Mat4, mat nif.Material) {
	id, ok := h.(int)
	if !ok {
		return
	}
	r.Current.Calls = append(r.Current.Calls, DrawCall{Mesh: id, World: world, Material: mat})
}

// TakeFrame returns the recorded frame and resets the per-frame bookkeeping
// so the next frame starts clean.
func (r *Recorder) TakeFrame() Frame {
	frame := Frame{ViewProj: r.Current.ViewProj, Calls: r.Current.Calls}
	r.Current.Calls = nil
	r.Uploaded = nil
	r.Disposed = nil
	return frame
}
