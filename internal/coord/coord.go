// Package coord converts between the host's left-handed, Y-up coordinate
// system and the right-handed system of exported documents.
//
// The conversion mirrors the X axis. Points and directions negate x,
// rotations keep their angle but mirror their axis, and matrices are
// conjugated by the mirror. Mirroring reverses triangle winding, so
// index lists are flipped as well.
package coord

import "github.com/go-gl/mathgl/mgl32"

// mirror is the scale applied to every vector component.
var mirror = mgl32.Vec3{-1, 1, 1}

// Vec3 converts a point or direction.
func Vec3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0] * mirror[0], v[1] * mirror[1], v[2] * mirror[2]}
}

// Vec4 converts the xyz part of v and keeps w, which for tangents holds
// the bitangent sign.
func Vec4(v mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{v[0] * mirror[0], v[1] * mirror[1], v[2] * mirror[2], v[3]}
}

// Vec3s converts a slice in place.
func Vec3s(vs []mgl32.Vec3) {
	for i := range vs {
		vs[i] = Vec3(vs[i])
	}
}

// Vec4s converts a slice in place.
func Vec4s(vs []mgl32.Vec4) {
	for i := range vs {
		vs[i] = Vec4(vs[i])
	}
}

// Quat converts a rotation. The axis is mirrored and then negated, which
// reverses the rotation sense to match the flipped handedness.
func Quat(q mgl32.Quat) mgl32.Quat {
	axis := mgl32.Vec3{q.V[0] * mirror[0], q.V[1] * mirror[1], q.V[2] * mirror[2]}
	return mgl32.Quat{W: q.W, V: axis.Mul(-1)}
}

// Mat4 converts a transform matrix as S*M*S, where S is the mirror scale.
func Mat4(m mgl32.Mat4) mgl32.Mat4 {
	s := mgl32.Scale3D(mirror[0], mirror[1], mirror[2])
	return s.Mul4(m).Mul4(s)
}

// FlipWinding reverses the winding of every triangle in place by swapping
// the first and last index. A trailing partial triangle is left untouched.
func FlipWinding(indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		indices[i], indices[i+2] = indices[i+2], indices[i]
	}
}
