package shadermap

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
)

// Values substituted for numeric properties the material does not have.
var (
	DefaultFloat float32 = 1
	DefaultVec4          = mgl32.Vec4{1, 1, 1, 1}
	DefaultColor         = mgl32.Vec4{1, 1, 1, 1}
)

// Texture returns the texture a single-source texture mapping reads
// from mat. ok is false when the mapping is not a texture mapping or the
// material has no texture under the property.
func (m *UniformMapping) Texture(mat host.Material) (tex host.Texture, ok bool) {
	if len(m.Sources) != 1 || !m.Sources[0].Type.IsTexture() {
		return nil, false
	}
	name := m.Sources[0].Property
	if !mat.HasProperty(name) {
		return nil, false
	}
	tex = mat.Texture(name)
	return tex, tex != nil
}

// Floats concatenates the values of every numeric source. Missing float,
// vector and color properties contribute their defaults; a missing
// matrix contributes nothing. ok is false when nothing was resolved.
func (m *UniformMapping) Floats(mat host.Material) (values []float32, ok bool) {
	for _, src := range m.Sources {
		values = append(values, src.floats(mat)...)
	}
	return values, len(values) > 0
}

func (s UniformSource) floats(mat host.Material) []float32 {
	has := mat.HasProperty(s.Property)
	switch s.Type {
	case UniformFloat:
		if has {
			return []float32{mat.Float(s.Property)}
		}
		return []float32{DefaultFloat}
	case UniformVec4:
		v := DefaultVec4
		if has {
			v = mat.Vector(s.Property)
		}
		return v[:]
	case UniformColor:
		c := DefaultColor
		if has {
			c = mat.Color(s.Property)
		}
		return c[:]
	case UniformMatrix4x4:
		if has {
			mat4 := mat.Matrix(s.Property)
			return mat4[:]
		}
	}
	return nil
}
