package inmem

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
)

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

// Triangle returns a single-triangle mesh in the XY plane.
func Triangle(id host.InstanceID) *Mesh {
	return &Mesh{
		ID:        id,
		Label:     "Triangle",
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Norms:     []mgl32.Vec3{{0, 0, -1}, {0, 0, -1}, {0, 0, -1}},
		TexCoord0: []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Submeshes: [][]uint32{{0, 1, 2}},
	}
}

// Quad returns a unit quad in the XY plane centered on the origin.
func Quad(id host.InstanceID) *Mesh {
	return &Mesh{
		ID:        id,
		Label:     "Quad",
		Positions: []mgl32.Vec3{{-0.5, -0.5, 0}, {0.5, -0.5, 0}, {0.5, 0.5, 0}, {-0.5, 0.5, 0}},
		Norms:     []mgl32.Vec3{{0, 0, -1}, {0, 0, -1}, {0, 0, -1}, {0, 0, -1}},
		Tans:      []mgl32.Vec4{{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}},
		TexCoord0: []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Submeshes: [][]uint32{{0, 2, 1, 0, 3, 2}},
	}
}

var cubeFaces = [6]struct {
	normal, u, v mgl32.Vec3
}{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// Cube returns an axis-aligned cube of edge length size with one submesh
// per face when perFace is set, or a single submesh otherwise.
func Cube(id host.InstanceID, size float32, perFace bool) *Mesh {
	m := &Mesh{ID: id, Label: "Cube"}
	h := size / 2
	var all []uint32
	for _, f := range cubeFaces {
		base := uint32(len(m.Positions)) // #nosec G115 -- 24 vertices
		center := f.normal.Mul(h)
		corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		for _, c := range corners {
			p := center.Add(f.u.Mul(c[0] * h)).Add(f.v.Mul(c[1] * h))
			m.Positions = append(m.Positions, p)
			m.Norms = append(m.Norms, f.normal)
			m.Tans = append(m.Tans, f.u.Vec4(1))
			m.TexCoord0 = append(m.TexCoord0, mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
		}
		face := []uint32{base, base + 2, base + 1, base, base + 3, base + 2}
		if perFace {
			m.Submeshes = append(m.Submeshes, face)
		} else {
			all = append(all, face...)
		}
	}
	if !perFace {
		m.Submeshes = [][]uint32{all}
	}
	return m
}
