package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/nif"
)

// Renderer is the narrow rasterization contract the view drives. An
// implementation owns GPU-side resource lifetime behind opaque handles; the
// view guarantees Dispose is called before a slot re-uploads.
type Renderer interface {
	UploadMesh(data MeshData) (MeshHandle, error)
	Dispose(h MeshHandle)
	SetCamera(viewProj mgl32.Mat4)
	Clear()
	Draw(h MeshHandle, world mgl32.Mat4, mat nif.Material)
}

type MeshHandle interface{}

type MeshData struct {
	Name     string
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint32
	Material nif.Material
}

// MeshDataFromShape flattens a scene shape into uploadable buffers.
func MeshDataFromShape(s *nif.Shape) MeshData {
	return MeshData{
		Name:     s.Name,
		Vertices: s.Vertices,
		Normals:  s.Normals,
		UVs:      s.UVs,
		Indices:  s.Indices,
		Material: s.Material,
	}
}
