package shadermap

import (
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/format"
)

// Template builds a mapping skeleton for mat's shader. Every supported
// property gets a uniform with the next free binding; the user then
// edits bindings, stages and defines to match the renderer shader.
func Template(mat host.Material) *ShaderMapping {
	m := &ShaderMapping{
		HostShader: mat.ShaderName(),
		Shaders: []ShaderResource{{
			Source: mat.ShaderName(),
			Stages: Stages(format.StageVertex | format.StageFragment),
		}},
		VertexDependencies: []VertexDependency{
			{Attribute: Attribute(format.AttributePosition), Defines: []string{"ALL"}},
			{Attribute: Attribute(format.AttributeNormal), Defines: []string{"VSG_LIGHTING", "VSG_NORMAL_MAP"}},
			{Attribute: Attribute(format.AttributeTangent), Defines: []string{"VSG_NORMAL_MAP"}},
			{Attribute: Attribute(format.AttributeColor), Defines: []string{"NONE"}},
			{Attribute: Attribute(format.AttributeUV0), Defines: []string{"VSG_DIFFUSE_MAP", "VSG_NORMAL_MAP"}},
		},
	}

	var binding uint32
	for _, p := range mat.Properties() {
		t := templateType(mat, p)
		if t == UniformUnknown {
			continue
		}
		m.Uniforms = append(m.Uniforms, UniformMapping{
			Binding: binding,
			Stages:  Stages(format.StageFragment),
			Sources: []UniformSource{{Type: t, Property: p.Name}},
		})
		binding++
	}
	return m
}

func templateType(mat host.Material, p host.Property) UniformType {
	switch p.Type {
	case host.PropertyFloat, host.PropertyRange:
		return UniformFloat
	case host.PropertyVector:
		return UniformVec4
	case host.PropertyColor:
		return UniformColor
	case host.PropertyTexture:
		tex := mat.Texture(p.Name)
		if tex == nil {
			return UniformTexture2D
		}
		switch tex.Dimension() {
		case host.Texture2D:
			return UniformTexture2D
		case host.Texture2DArray:
			return UniformTexture2DArray
		}
	}
	return UniformUnknown
}
