package export

import (
	"fmt"
	"io"

	"github.com/mogaika/fbx"
	"github.com/mogaika/fbx/builders/bfbx73"

	"github.com/dovahkit/perktree_editor/render"
	"github.com/dovahkit/perktree_editor/view"
)

// FBX writes the current constellation layout as a binary FBX scene: one
// model per perk node carrying the glyph geometry at the node's world
// position, plus null models marking edge midpoints. A layout snapshot for
// DCC inspection, not a full render replica.
func FBX(w io.Writer, v *view.View, glyph render.MeshData, filename string) error {
	f := newFBXBuilder(filename)

	geometryId := int64(0)
	if len(glyph.Vertices) > 0 {
		geometryId = f.GenerateId()
		f.AddObjects(buildGlyphGeometry(geometryId, glyph))
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

			name := node.Perk.EDID
			if name == "" {
				name = fmt.Sprintf("perk_%d", id)
			}

			modelId := f.GenerateId()
			model := bfbx73.Model(modelId, name+"\x00\x01Model", "Mesh").AddNodes(
				bfbx73.Version(232),
				bfbx73.Properties70().AddNodes(
					bfbx73.P("InheritType", "enum", "", "", int32(1)),
					bfbx73.P("DefaultAttributeIndex", "int", "Integer", "", int32(0)),
					bfbx73.P("Lcl Translation", "Lcl Translation", "", "A",
						float64(pos.X()), float64(pos.Y()), float64(pos.Z())),
					bfbx73.P("Lcl Rotation", "Lcl Rotation", "", "A", float64(0), float64(0), float64(0)),
					bfbx73.P("Lcl Scaling", "Lcl Scaling", "", "A", float64(1), float64(1), float64(1)),
				),
				bfbx73.Shading(true),
				bfbx73.Culling("CullingOff"),
			)
			f.AddObjects(model)
			f.AddConnections(bfbx73.C("OO", modelId, 0))
			if geometryId != 0 {
				f.AddConnections(bfbx73.C("OO", geometryId, modelId))
			}
		}

		for _, e := range tree.Edges() {
			a := anchor.Apply(view.ProjectNode(e.From))
			b := anchor.Apply(view.ProjectNode(e.To))
			mid := a.Add(b).Mul(0.5)

			modelId := f.GenerateId()
			model := bfbx73.Model(modelId,
				fmt.Sprintf("edge_%d_%d\x00\x01Model", e.FromID, e.ToID), "Null").AddNodes(
				bfbx73.Version(232),
				bfbx73.Properties70().AddNodes(
					bfbx73.P("Lcl Translation", "Lcl Translation", "", "A",
						float64(mid.X()), float64(mid.Y()), float64(mid.Z())),
				),
				bfbx73.Shading(true),
				bfbx73.Culling("CullingOff"),
			)
			nodeAttribute := bfbx73.NodeAttribute(f.GenerateId(),
				fmt.Sprintf("edge_%d_%d\x00\x01NodeAttribute", e.FromID, e.ToID), "Null").AddNodes(
				bfbx73.TypeFlags("Null"),
			)
			f.AddObjects(model, nodeAttribute)
			f.AddConnections(
				bfbx73.C("OO", nodeAttribute.Properties[0].(int64), modelId),
				bfbx73.C("OO", modelId, 0),
			)
		}
	}

	return f.Write(w)
}

// buildGlyphGeometry flattens glyph mesh buffers into the FBX mesh layout.
// Every third polygon index is xor-inverted to mark triangle ends.
func buildGlyphGeometry(id int64, glyph render.MeshData) *fbx.Node {
	vertices := make([]float64, 0, len(glyph.Vertices)*3)
	for _, v := range glyph.Vertices {
		vertices = append(vertices, float64(v.X()), float64(v.Y()), float64(v.Z()))
	}

	indexes := make([]int32, len(glyph.Indices))
	for i, idx := range glyph.Indices {
		if i%3 == 2 {
			indexes[i] = ^int32(idx)
		} else {
			indexes[i] = int32(idx)
		}
	}

	geometryLayer := bfbx73.Layer(0).AddNodes(
		bfbx73.Version(100),
	)
	geometry := bfbx73.Geometry(id, "\x00\x01Geometry", "Mesh").AddNodes(
		bfbx73.Properties70().AddNodes(
			bfbx73.P("Color", "ColorRGB", "Color", "", float64(1), float64(1), float64(1)),
		),
		bfbx73.GeometryVersion(124),
		bfbx73.Vertices(vertices),
		bfbx73.PolygonVertexIndex(indexes),
		geometryLayer,
	)

	if len(glyph.Normals) == len(glyph.Vertices) && len(glyph.Normals) > 0 {
		normals := make([]float64, 0, len(glyph.Normals)*3)
		for _, n := range glyph.Normals {
			normals = append(normals, float64(n.X()), float64(n.Y()), float64(n.Z()))
		}
		geometry.AddNode(
			bfbx73.LayerElementNormal(0).AddNodes(
				bfbx73.Version(101),
				bfbx73.Name(""),
				bfbx73.MappingInformationType("ByVertice"),
				bfbx73.ReferenceInformationType("Direct"),
				bfbx73.Normals(normals),
			),
		)
		geometryLayer.AddNode(
			bfbx73.LayerElement().AddNodes(
				bfbx73.Type("LayerElementNormal"),
				bfbx73.TypedIndex(0),
			),
		)
	}

	return geometry
}
