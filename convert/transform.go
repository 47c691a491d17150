package convert

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/coord"
)

// IsIdentity reports whether the local transform of n is the identity.
func IsIdentity(n host.Node) bool {
	return n.LocalPosition() == (mgl32.Vec3{}) &&
		n.LocalRotation().Normalize().ApproxEqual(mgl32.QuatIdent()) &&
		n.LocalScale() == (mgl32.Vec3{1, 1, 1})
}

// LocalMatrix returns T·R·S of n in the host coordinate system.
func LocalMatrix(n host.Node) mgl32.Mat4 {
	p, s := n.LocalPosition(), n.LocalScale()
	t := mgl32.Translate3D(p.X(), p.Y(), p.Z())
	r := n.LocalRotation().Normalize().Mat4()
	return t.Mul4(r).Mul4(mgl32.Scale3D(s.X(), s.Y(), s.Z()))
}

// Transform converts the local transform of n to the exported coordinate
// system, stored row-major.
func Transform(n host.Node) *graph.TransformData {
	m := coord.Mat4(LocalMatrix(n))
	d := &graph.TransformData{}
	for r := range 4 {
		for col := range 4 {
			d.Matrix[r*4+col] = m.At(r, col)
		}
	}
	return d
}

// Cull returns the bounding sphere of b relative to the origin of n.
func Cull(n host.Node, b host.Bounds) *graph.CullData {
	return &graph.CullData{
		Center: coord.Vec3(b.Center.Sub(n.WorldPosition())),
		Radius: b.Size.Len() * 0.5,
	}
}
