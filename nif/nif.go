package nif

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/dovahkit/perktree_editor/r3d"
)

// In-memory scene graph for the constellation dome asset. The editor core
// never parses files itself; it consumes this model through named-node
// lookup and the shape accessors.

// Material is the value object populated once at scene load. The core never
// reaches back into the import library for material state.
type Material struct {
	AlphaBlend  bool
	DoubleSided bool
	Texture     string
	Color       [4]float32
}

type Shape struct {
	Name     string
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint32
	Material Material
}

type Node struct {
	Name   string
	Parent *Node
	Local  r3d.Transform
	Shapes []*Shape
}

// WorldTransform accumulates the node's transform by walking the parent
// chain leaf to root. Every encountered ancestor is the outer operand of the
// composition.
func (n *Node) WorldTransform() r3d.Transform {
	acc := n.Local
	for p := n.Parent; p != nil; p = p.Parent {
		acc = acc.Mul(p.Local)
	}
	return acc
}

// WorldPosition is the node origin in scene root space.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldTransform().Translation
}

type Scene struct {
	Nodes []*Node
}

// NodeByName returns nil when the name is absent. Lookups happen once per
// scene load; linear search is fine for dome-sized graphs.
func (s *Scene) NodeByName(name string) *Node {
	for _, n := range s.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Shapes enumerates every shape in the scene in node order.
func (s *Scene) Shapes() []*Shape {
	var shapes []*Shape
	for _, n := range s.Nodes {
		shapes = append(shapes, n.Shapes...)
	}
	return shapes
}
