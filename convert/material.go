package convert

import (
	"strconv"
	"strings"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/shadermap"
)

// Defines added from material tags.
const (
	DefineBlend    = "VSG_BLEND"
	DefineLighting = "VSG_LIGHTING"
)

// Tag names and their defaults when a material leaves them empty.
const (
	TagRenderType        = "RenderType"
	TagLightMode         = "LightMode"
	DefaultRenderType    = "Opaque"
	DefaultLightMode     = "ForwardBase"
	unlitLightMode       = "Always"
	transparentRenderTag = "Transparent"
)

// MaterialInfo is a material resolved through its shader mapping.
type MaterialInfo struct {
	ID      string
	Mapping *shadermap.ShaderMapping

	ShaderStages       *graph.ShaderStagesData
	Descriptors        *graph.DescriptorSetData
	DescriptorBindings []graph.DescriptorBinding

	// CustomDefines are the defines the shader stages were built with.
	CustomDefines []string
	UseAlpha      bool
}

// Material converts a host material through the mapping of its shader,
// falling back to the default mapping. It returns nil, and reports once,
// when no mapping is found.
func (c *ExportContext) Material(m host.Material) *MaterialInfo {
	if m == nil {
		return nil
	}
	mapping, err := c.Mappings.Find(m.ShaderName())
	if err != nil {
		key := materialKey{id: m.InstanceID()}
		return c.materials.GetOrCreate(key, func() *MaterialInfo {
			c.Report.Add("No shader mapping for shader '%s' used by material '%s': %v", m.ShaderName(), m.Name(), err)
			return nil
		})
	}
	return c.MaterialWith(m, mapping)
}

// MaterialWith converts a host material through mapping.
func (c *ExportContext) MaterialWith(m host.Material, mapping *shadermap.ShaderMapping) *MaterialInfo {
	if m == nil || mapping == nil {
		return nil
	}
	key := materialKey{id: m.InstanceID(), mapping: mapping.Key()}
	return c.materials.GetOrCreate(key, func() *MaterialInfo {
		return c.newMaterialInfo(m, mapping)
	})
}

func (c *ExportContext) newMaterialInfo(m host.Material, mapping *shadermap.ShaderMapping) *MaterialInfo {
	id := strconv.FormatInt(int64(m.InstanceID()), 10)
	mi := &MaterialInfo{
		ID:          id,
		Mapping:     mapping,
		Descriptors: &graph.DescriptorSetData{ID: id},
	}
	set := mi.Descriptors

	for i := range mapping.Uniforms {
		u := &mapping.Uniforms[i]
		dt, ok := u.DescriptorType()
		if !ok {
			c.Report.Add("Material '%s': uniform at binding %d of mapping '%s' is invalid", m.Name(), u.Binding, mapping.Key())
			continue
		}

		count := uint32(1)
		switch {
		case len(u.Sources) == 1 && u.Sources[0].Type == shadermap.UniformTexture2D:
			tex, ok := u.Texture(m)
			if !ok {
				continue
			}
			set.Images = append(set.Images, c.DescriptorImage(u.Binding, tex))

		case len(u.Sources) == 1 && u.Sources[0].Type == shadermap.UniformTexture2DArray:
			tex, ok := u.Texture(m)
			if !ok {
				continue
			}
			d := c.DescriptorImageArray(u.Binding, tex)
			set.Images = append(set.Images, d)
			count = uint32(len(d.Images)) // #nosec G115 -- layer counts are small

		default:
			values, ok := u.Floats(m)
			if !ok {
				continue
			}
			switch len(values) {
			case 1:
				set.Floats = append(set.Floats, &graph.DescriptorFloatData{Binding: u.Binding, Value: values[0]})
			case 4:
				v := &graph.DescriptorVectorData{Binding: u.Binding}
				copy(v.Value[:], values)
				set.Vectors = append(set.Vectors, v)
			default:
				set.FloatBuffers = append(set.FloatBuffers, &graph.DescriptorFloatBufferData{Binding: u.Binding, Values: values})
			}
		}

		mi.CustomDefines = appendDefines(mi.CustomDefines, u.Defines...)
		mi.DescriptorBindings = append(mi.DescriptorBindings, graph.DescriptorBinding{
			Binding: u.Binding,
			Type:    dt,
			Count:   count,
			Stages:  u.Stages.Flags(),
		})
	}

	renderType := m.Tag(TagRenderType)
	if renderType == "" {
		renderType = DefaultRenderType
	}
	if strings.Contains(renderType, transparentRenderTag) {
		mi.UseAlpha = true
		mi.CustomDefines = appendDefines(mi.CustomDefines, DefineBlend)
	}

	lightMode := m.Tag(TagLightMode)
	if lightMode == "" {
		lightMode = DefaultLightMode
	}
	if lightMode != unlitLightMode {
		mi.CustomDefines = appendDefines(mi.CustomDefines, DefineLighting)
	}

	mi.ShaderStages = c.ShaderStages(mapping.Shaders, mi.CustomDefines, nil)
	c.Log.Debug("material converted", "material", m.Name(), "mapping", mapping.Key(),
		"bindings", len(mi.DescriptorBindings), "defines", mi.CustomDefines)
	return mi
}

