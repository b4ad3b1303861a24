package nif

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/dovahkit/perktree_editor/r3d"
)

// LoadGLTF imports a scene graph from a glTF asset. Node TRS becomes the
// local scale/rotation/translation composite; per-axis scale collapses to
// its X component since the anchor pipeline only supports uniform scale.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open gltf %q", path)
	}
	return SceneFromDocument(doc)
}

func SceneFromDocument(doc *gltf.Document) (*Scene, error) {
	scene := &Scene{Nodes: make([]*Node, len(doc.Nodes))}

	for i, gn := range doc.Nodes {
		node := &Node{
			Name:  gn.Name,
			Local: nodeTransform(gn),
		}
		if gn.Mesh != nil {
			shapes, err := meshShapes(doc, *gn.Mesh)
			if err != nil {
				return nil, errors.Wrapf(err, "node %q", gn.Name)
			}
			node.Shapes = shapes
		}
		scene.Nodes[i] = node
	}

	for i, gn := range doc.Nodes {
		for _, child := range gn.Children {
			if int(child) >= len(scene.Nodes) {
				return nil, errors.Errorf("node %q child %d out of range", gn.Name, child)
			}
			scene.Nodes[child].Parent = scene.Nodes[i]
		}
	}

	return scene, nil
}

func nodeTransform(gn *gltf.Node) r3d.Transform {
	q := mgl32.Quat{
		W: gn.Rotation[3],
		V: mgl32.Vec3{gn.Rotation[0], gn.Rotation[1], gn.Rotation[2]},
	}
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}

	scale := gn.Scale[0]
	if scale == 0 {
		scale = 1
	}

	return r3d.NewTransformTRS(
		mgl32.Vec3(gn.Translation),
		q.Normalize().Mat4().Mat3(),
		scale,
	)
}

func meshShapes(doc *gltf.Document, meshIndex uint32) ([]*Shape, error) {
	if int(meshIndex) >= len(doc.Meshes) {
		return nil, errors.Errorf("mesh %d out of range", meshIndex)
	}
	mesh := doc.Meshes[meshIndex]

	shapes := make([]*Shape, 0, len(mesh.Primitives))
	for iPrim, prim := range mesh.Primitives {
		shape := &Shape{Name: mesh.Name}

		if accIndex, ok := prim.Attributes["POSITION"]; ok {
			positions, err := modeler.ReadPosition(doc, doc.Accessors[accIndex], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d positions", mesh.Name, iPrim)
			}
			shape.Vertices = make([]mgl32.Vec3, len(positions))
			for i, p := range positions {
				shape.Vertices[i] = mgl32.Vec3(p)
			}
		}

		if accIndex, ok := prim.Attributes["NORMAL"]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[accIndex], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d normals", mesh.Name, iPrim)
			}
			shape.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				shape.Normals[i] = mgl32.Vec3(n)
			}
		}

		if accIndex, ok := prim.Attributes["TEXCOORD_0"]; ok {
			uvs, err := modeler.ReadTextureCoord(doc, doc.Accessors[accIndex], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d uvs", mesh.Name, iPrim)
			}
			shape.UVs = make([]mgl32.Vec2, len(uvs))
			for i, uv := range uvs {
				shape.UVs[i] = mgl32.Vec2(uv)
			}
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %q primitive %d indices", mesh.Name, iPrim)
			}
			shape.Indices = indices
		}

		shape.Material = primitiveMaterial(doc, prim)
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

func primitiveMaterial(doc *gltf.Document, prim *gltf.Primitive) Material {
	mat := Material{Color: [4]float32{1, 1, 1, 1}}
	if prim.Material == nil || int(*prim.Material) >= len(doc.Materials) {
		return mat
	}
	gm := doc.Materials[*prim.Material]

	mat.AlphaBlend = gm.AlphaMode == gltf.AlphaBlend
	mat.DoubleSided = gm.DoubleSided

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			mat.Color = *pbr.BaseColorFactor
		}
		if pbr.BaseColorTexture != nil {
			mat.Texture = textureURI(doc, pbr.BaseColorTexture.Index)
		}
	}
	return mat
}

func textureURI(doc *gltf.Document, texIndex uint32) string {
	if int(texIndex) >= len(doc.Textures) {
		return ""
	}
	tex := doc.Textures[texIndex]
	if tex.Source == nil || int(*tex.Source) >= len(doc.Images) {
		return ""
	}
	uri := doc.Images[*tex.Source].URI
	if uri == "" {
		log.Printf("[nif] texture %d has no resolvable image uri, glyph will render untextured", texIndex)
	}
	return uri
}
