package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/dovahkit/perktree_editor/render"
	"github.com/dovahkit/perktree_editor/view"
)

// GLTF writes the current constellation layout as binary glTF. The glyph
// mesh is written once and instanced per perk node at its world position.
func GLTF(w io.Writer, v *view.View, glyph render.MeshData) error {
	doc := gltf.NewDocument()

	meshIndex := -1
	if len(glyph.Vertices) > 0 {
		meshIndex = writeGlyphMesh(doc, glyph)
	}

	tree := v.Tree()
	if tree != nil {
		anchor := v.AnchorWorld()

		for _, id := range tree.SortedIDs() {
			if id == 0 {
				continue
			}
			node := tree.Nodes[id]
			pos := anchor.Apply(view.ProjectNode(node))

			gn := &gltf.Node{
				Name:        node.Perk.EDID,
				Translation: [3]float32(pos),
			}
			if meshIndex >= 0 {
				gn.Mesh = gltf.Index(uint32(meshIndex))
			}
			doc.Nodes = append(doc.Nodes, gn)
		}
	}

	for iNode := range doc.Nodes {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(iNode))
	}

	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrap(encoder.Encode(doc), "failed to encode gltf")
}

func writeGlyphMesh(doc *gltf.Document, glyph render.MeshData) int {
	positions := make([][3]float32, len(glyph.Vertices))
	for i, v := range glyph.Vertices {
		positions[i] = v
	}

	attributes := map[string]uint32{
		"POSITION": modeler.WritePosition(doc, positions),
	}

	if len(glyph.Normals) == len(glyph.Vertices) && len(glyph.Normals) > 0 {
		normals := make([][3]float32, len(glyph.Normals))
		for i, n := range glyph.Normals {
			normals[i] = n
		}
		attributes["NORMAL"] = modeler.WriteNormal(doc, normals)
	}

	prim := &gltf.Primitive{Attributes: attributes}
	if len(glyph.Indices) > 0 {
		prim.Indices = gltf.Index(modeler.WriteIndices(doc, glyph.Indices))
	}

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       glyph.Name,
		Primitives: []*gltf.Primitive{prim},
	})
	return len(doc.Meshes) - 1
}
