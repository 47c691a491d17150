// Package inmem implements the host interfaces with plain Go values.
//
// It backs the command-line exporter (scenes are read from YAML, see
// Load) and serves as the fixture host in tests:
//
//	mesh := inmem.Cube(1, 1, false)
//	root := inmem.NewNode("root").Add(
//	    inmem.NewNode("box").SetPosition(mgl32.Vec3{0, 1, 0}).WithMesh(mesh, mat),
//	)
package inmem

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
)

// Node is a host node. Build nodes with NewNode and the chaining setters.
type Node struct {
	name     string
	parent   *Node
	children []*Node

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	mesh     *Mesh
	renderer *Renderer
	light    *Light
	terrain  *Terrain
	lod      *LODGroup
}

var _ host.Node = (*Node)(nil)

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		name:     name,
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// SetPosition sets the local position and returns n.
func (n *Node) SetPosition(p mgl32.Vec3) *Node {
	n.position = p
	return n
}

// SetRotation sets the local rotation and returns n.
func (n *Node) SetRotation(q mgl32.Quat) *Node {
	n.rotation = q
	return n
}

// SetScale sets the local scale and returns n.
func (n *Node) SetScale(s mgl32.Vec3) *Node {
	n.scale = s
	return n
}

// WithMesh attaches a mesh drawn with materials (one per submesh) and
// returns n.
func (n *Node) WithMesh(m *Mesh, materials ...host.Material) *Node {
	n.mesh = m
	n.renderer = &Renderer{owner: n, materials: materials}
	return n
}

// WithLight attaches a light and returns n.
func (n *Node) WithLight(l *Light) *Node {
	n.light = l
	return n
}

// WithTerrain attaches a terrain and returns n.
func (n *Node) WithTerrain(t *Terrain) *Node {
	n.terrain = t
	return n
}

// WithLOD attaches an LOD group and returns n.
func (n *Node) WithLOD(levels ...host.LODLevel) *Node {
	n.lod = &LODGroup{levels: levels}
	return n
}

// Parent returns the parent node, or nil for roots.
func (n *Node) Parent() *Node { return n.parent }

// Name implements host.Node.
func (n *Node) Name() string { return n.name }

// Children implements host.Node.
func (n *Node) Children() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) LocalPosition() mgl32.Vec3 { return n.position }
func (n *Node) LocalRotation() mgl32.Quat { return n.rotation }
func (n *Node) LocalScale() mgl32.Vec3    { return n.scale }

// LocalMatrix returns T·R·S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.position.X(), n.position.Y(), n.position.Z())
	s := mgl32.Scale3D(n.scale.X(), n.scale.Y(), n.scale.Z())
	return t.Mul4(n.rotation.Normalize().Mat4()).Mul4(s)
}

// WorldMatrix returns the product of all local matrices from the root.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition implements host.Node.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

// Forward implements host.Node.
func (n *Node) Forward() mgl32.Vec3 {
	f := n.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if f.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return f.Normalize()
}

// The optional components return untyped nil when absent.

func (n *Node) Mesh() host.Mesh {
	if n.mesh == nil {
		return nil
	}
	return n.mesh
}

func (n *Node) Renderer() host.Renderer {
	if n.renderer == nil {
		return nil
	}
	return n.renderer
}

func (n *Node) Light() host.Light {
	if n.light == nil {
		return nil
	}
	return n.light
}

func (n *Node) Terrain() host.Terrain {
	if n.terrain == nil {
		return nil
	}
	return n.terrain
}

func (n *Node) LODGroup() host.LODGroup {
	if n.lod == nil {
		return nil
	}
	return n.lod
}

// Renderer draws its owner's mesh.
type Renderer struct {
	owner     *Node
	materials []host.Material
	bounds    *host.Bounds
}

// SetBounds overrides the computed bounds.
func (r *Renderer) SetBounds(b host.Bounds) {
	r.bounds = &b
}

func (r *Renderer) Node() host.Node { return r.owner }

func (r *Renderer) Materials() []host.Material { return r.materials }

// Bounds returns the world-space box around the owner's mesh vertices.
func (r *Renderer) Bounds() host.Bounds {
	if r.bounds != nil {
		return *r.bounds
	}
	if r.owner.mesh == nil || len(r.owner.mesh.Positions) == 0 {
		return host.Bounds{Center: r.owner.WorldPosition()}
	}
	world := r.owner.WorldMatrix()
	var b host.Bounds
	for i, p := range r.owner.mesh.Positions {
		w := world.Mul4x1(p.Vec4(1)).Vec3()
		pb := host.Bounds{Center: w}
		if i == 0 {
			b = pb
			continue
		}
		b = b.Encapsulate(pb)
	}
	return b
}

// LODGroup holds detail levels, highest detail first.
type LODGroup struct {
	levels []host.LODLevel
}

func (g *LODGroup) Levels() []host.LODLevel { return g.levels }

// Level builds an LOD level from nodes carrying meshes. Nodes without a
// renderer are ignored.
func Level(ratio float32, nodes ...*Node) host.LODLevel {
	l := host.LODLevel{ScreenRelativeTransitionHeight: ratio}
	for _, n := range nodes {
		if n.renderer != nil {
			l.Renderers = append(l.Renderers, n.renderer)
		}
	}
	return l
}
