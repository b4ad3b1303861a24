package glrender

import (
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/dovahkit/perktree_editor/nif"
	"github.com/dovahkit/perktree_editor/render"
)

// GLRenderer rasterizes draw calls with the desktop GL 4.3 backend. Calls
// are queued on Draw and flushed sorted by blend state in Flush, so alpha
// glyphs composite over the opaque dome regardless of submit order.
type GLRenderer struct {
	viewProj mgl32.Mat4
	queue    []glCall
}

type glMesh struct {
	glVAO uint32
	glVBO uint32
	glEBO uint32

	indexesCount int32
}

type glVertex struct {
	pos    mgl32.Vec3
	normal mgl32.Vec3
	uv     mgl32.Vec2
}

type glCall struct {
	mesh     *glMesh
	world    mgl32.Mat4
	material nif.Material
}

func New() *GLRenderer {
	return &GLRenderer{}
}

func (r *GLRenderer) UploadMesh(data render.MeshData) (render.MeshHandle, error) {
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return nil, errors.Errorf("empty mesh %q", data.Name)
	}

	m := &glMesh{indexesCount: int32(len(data.Indices))}

	vertices := make([]glVertex, len(data.Vertices))
	for i, pos := range data.Vertices {
		vertices[i].pos = pos
	}
	for i, normal := range data.Normals {
		vertices[i].normal = normal
	}
	for i, uv := range data.UVs {
		vertices[i].uv = uv
	}

	var vertex glVertex
	stride := int(unsafe.Sizeof(vertex))
	dp := GetDefaultProgram()

	gl.GenVertexArrays(1, &m.glVAO)
	gl.BindVertexArray(m.glVAO)

	gl.GenBuffers(1, &m.glVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.glVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*stride, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(uint32(dp.APosition), 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.pos))
	gl.EnableVertexAttribArray(uint32(dp.APosition))

	gl.VertexAttribPointerWithOffset(uint32(dp.ANormal), 3, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.normal))
	gl.EnableVertexAttribArray(uint32(dp.ANormal))

	gl.VertexAttribPointerWithOffset(uint32(dp.AUV), 2, gl.FLOAT, false, int32(stride), unsafe.Offsetof(vertex.uv))
	gl.EnableVertexAttribArray(uint32(dp.AUV))

	gl.GenBuffers(1, &m.glEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.glEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(data.Indices), gl.Ptr(data.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	runtime.KeepAlive(vertices)

	return m, nil
}

func (r *GLRenderer) Dispose(h render.MeshHandle) {
	m, ok := h.(*glMesh)
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &m.glVAO)
	gl.DeleteBuffers(1, &m.glVBO)
	gl.DeleteBuffers(1, &m.glEBO)
}

func (r *GLRenderer) SetCamera(viewProj mgl32.Mat4) {
	r.viewProj = viewProj
}

func (r *GLRenderer) Clear() {
	r.queue = r.queue[:0]
}

func (r *GLRenderer) Draw(h render.MeshHandle, world mgl32.Mat4, mat nif.Material) {
	m, ok := h.(*glMesh)
	if !ok {
		return
	}
	r.queue = append(r.queue, glCall{mesh: m, world: world, material: mat})
}

// Flush issues the queued calls. Opaque geometry renders first with depth
// writes, then blended geometry with the depth mask off.
func (r *GLRenderer) Flush() {
	dp := GetDefaultProgram()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.DepthMask(true)
	gl.ClearColor(0.02, 0.02, 0.06, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(dp.Program.Id)
	gl.UniformMatrix4fv(dp.UProjectView, 1, false, &r.viewProj[0])
	gl.ActiveTexture(gl.TEXTURE0)

	gl.Disable(gl.BLEND)
	for i := range r.queue {
		if !r.queue[i].material.AlphaBlend {
			r.issue(dp, &r.queue[i])
		}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for i := range r.queue {
		if r.queue[i].material.AlphaBlend {
			r.issue(dp, &r.queue[i])
		}
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	r.queue = r.queue[:0]
}

func (r *GLRenderer) issue(dp *DefaultProgram, call *glCall) {
	gl.UniformMatrix4fv(dp.UModel, 1, false, &call.world[0])

	c := call.material.Color
	gl.Uniform4f(dp.UColor, c[0], c[1], c[2], c[3])

	// Textures are resolved by the web client; the desktop shell draws
	// untextured until a texture cache lands here.
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Uniform1i(dp.UUseTexture, 0)

	if call.material.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}

	gl.BindVertexArray(call.mesh.glVAO)
	gl.DrawElements(gl.TRIANGLES, call.mesh.indexesCount, gl.UNSIGNED_INT, unsafe.Pointer(nil))
}
