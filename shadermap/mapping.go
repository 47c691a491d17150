// Package shadermap describes how a host shader maps onto renderer shader
// stages and descriptor bindings.
//
// A ShaderMapping is user-authored. It lists the renderer shader sources
// that stand in for a host shader, the descriptor binding each host
// property feeds, and which vertex streams the stand-in shader consumes
// under which defines. Mappings are stored as YAML (JSON documents are
// accepted too) next to each other in one directory; see Dir.
package shadermap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/sgexport/internal/format"
)

// UniformType is the kind of host property a uniform source reads.
type UniformType int

// Uniform types.
const (
	UniformUnknown UniformType = iota
	UniformFloat
	UniformVec4
	UniformColor
	UniformMatrix4x4
	UniformTexture2D
	UniformTexture2DArray
)

var uniformTypeNames = [...]string{
	UniformUnknown:        "UnknownUniform",
	UniformFloat:          "FloatUniform",
	UniformVec4:           "Vec4Uniform",
	UniformColor:          "ColorUniform",
	UniformMatrix4x4:      "Matrix4x4Uniform",
	UniformTexture2D:      "Texture2DUniform",
	UniformTexture2DArray: "Texture2DArrayUniform",
}

func (u UniformType) String() string {
	if u < 0 || int(u) >= len(uniformTypeNames) {
		return uniformTypeNames[UniformUnknown]
	}
	return uniformTypeNames[u]
}

// IsTexture reports whether the uniform reads a texture property.
func (u UniformType) IsTexture() bool {
	return u == UniformTexture2D || u == UniformTexture2DArray
}

// FloatCount is the number of floats a numeric uniform contributes.
func (u UniformType) FloatCount() int {
	switch u {
	case UniformFloat:
		return 1
	case UniformVec4, UniformColor:
		return 4
	case UniformMatrix4x4:
		return 16
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u UniformType) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to UniformUnknown.
func (u *UniformType) UnmarshalText(b []byte) error {
	*u = UniformUnknown
	for i, name := range uniformTypeNames {
		if name == string(b) {
			*u = UniformType(i)
		}
	}
	return nil
}

// Stages is a shader stage set written as "VertexStage|FragmentStage".
type Stages format.ShaderStageFlags

type stageName struct {
	flag format.ShaderStageFlags
	name string
}

var stageNames = []stageName{
	{format.StageVertex, "VertexStage"},
	{format.StageTessControl, "TessControlStage"},
	{format.StageTessEval, "TessEvalStage"},
	{format.StageGeometry, "GeometryStage"},
	{format.StageFragment, "FragmentStage"},
	{format.StageCompute, "ComputeStage"},
}

// Flags returns the stage bits.
func (s Stages) Flags() format.ShaderStageFlags {
	return format.ShaderStageFlags(s)
}

func (s Stages) String() string {
	var parts []string
	for _, n := range stageNames {
		if s.Flags().Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "UnknownStage"
	}
	return strings.Join(parts, "|")
}

// MarshalText implements encoding.TextMarshaler.
func (s Stages) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Stages) UnmarshalText(b []byte) error {
	*s = 0
	text := strings.TrimSpace(string(b))
	if text == "" || text == "UnknownStage" {
		return nil
	}
	for _, part := range strings.Split(text, "|") {
		part = strings.TrimSpace(part)
		i := slices.IndexFunc(stageNames, func(n stageName) bool { return n.name == part })
		if i < 0 {
			return fmt.Errorf("shadermap: unknown stage %q", part)
		}
		*s |= Stages(stageNames[i].flag)
	}
	return nil
}

// Attribute is a vertex stream name as written in mappings.
type Attribute format.VertexAttribute

// MarshalText implements encoding.TextMarshaler.
func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(format.VertexAttribute(a).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Attribute) UnmarshalText(b []byte) error {
	v, ok := format.ParseVertexAttribute(strings.ToUpper(string(b)))
	if !ok {
		return fmt.Errorf("shadermap: unknown vertex attribute %q", b)
	}
	*a = Attribute(v)
	return nil
}

// VertexDependency lists the defines under which the renderer shader
// reads a vertex stream.
type VertexDependency struct {
	Attribute Attribute `yaml:"attribute" json:"attribute"`
	Defines   []string  `yaml:"defines,omitempty" json:"defines,omitempty"`
}

// ShouldBind reports whether the stream must be bound for a material
// compiled with defines. An empty list or "ALL" always binds; "NONE"
// never does; otherwise any shared define binds.
func (d *VertexDependency) ShouldBind(defines []string) bool {
	if len(d.Defines) == 0 {
		return true
	}
	switch strings.ToUpper(d.Defines[0]) {
	case "ALL":
		return true
	case "NONE":
		return false
	}
	for _, def := range defines {
		if slices.Contains(d.Defines, def) {
			return true
		}
	}
	return false
}

// UniformSource names one host property feeding a uniform.
type UniformSource struct {
	Type     UniformType `yaml:"type" json:"type"`
	Property string      `yaml:"property" json:"property"`
}

// UniformMapping binds one or more host properties to a renderer
// descriptor.
type UniformMapping struct {
	Binding uint32          `yaml:"binding" json:"binding"`
	Stages  Stages          `yaml:"stages" json:"stages"`
	Defines []string        `yaml:"defines,omitempty" json:"defines,omitempty"`
	Sources []UniformSource `yaml:"sources" json:"sources"`
}

// DescriptorType returns the descriptor type the mapping produces.
// A texture source must be the only source; otherwise ok is false.
func (m *UniformMapping) DescriptorType() (t format.DescriptorType, ok bool) {
	if len(m.Sources) == 0 {
		return 0, false
	}
	for i, src := range m.Sources {
		if src.Type.IsTexture() {
			if i > 0 || len(m.Sources) > 1 {
				return 0, false
			}
			return format.DescriptorCombinedImageSampler, true
		}
		if src.Type == UniformUnknown {
			return 0, false
		}
	}
	return format.DescriptorUniformBuffer, true
}

// ShaderResource is one renderer shader source file and the stages it
// implements.
type ShaderResource struct {
	Source     string `yaml:"source" json:"source"`
	Stages     Stages `yaml:"stages" json:"stages"`
	EntryPoint string `yaml:"entryPoint,omitempty" json:"entryPoint,omitempty"`
}

// ShaderMapping maps one host shader onto renderer shaders.
type ShaderMapping struct {
	// HostShader is the name of the host shader.
	HostShader string `yaml:"hostShader" json:"hostShader"`

	Shaders            []ShaderResource   `yaml:"shaders" json:"shaders"`
	Uniforms           []UniformMapping   `yaml:"uniforms" json:"uniforms"`
	VertexDependencies []VertexDependency `yaml:"vertexDependencies" json:"vertexDependencies"`

	// path is the file the mapping was loaded from, empty for mappings
	// built in memory.
	path string
}

// Path returns the file the mapping was loaded from.
func (m *ShaderMapping) Path() string {
	return m.path
}

// VertexDependency returns the dependency entry for attribute a, or nil.
func (m *ShaderMapping) VertexDependency(a format.VertexAttribute) *VertexDependency {
	for i := range m.VertexDependencies {
		if format.VertexAttribute(m.VertexDependencies[i].Attribute) == a {
			return &m.VertexDependencies[i]
		}
	}
	return nil
}

// ShouldBind reports whether stream a is bound for defines. Streams
// without a dependency entry are bound.
func (m *ShaderMapping) ShouldBind(a format.VertexAttribute, defines []string) bool {
	if d := m.VertexDependency(a); d != nil {
		return d.ShouldBind(defines)
	}
	return true
}

// UniformsOfType returns the mappings whose first source has type t.
func (m *ShaderMapping) UniformsOfType(t UniformType) []*UniformMapping {
	var out []*UniformMapping
	for i := range m.Uniforms {
		u := &m.Uniforms[i]
		if len(u.Sources) > 0 && u.Sources[0].Type == t {
			out = append(out, u)
		}
	}
	return out
}

// Key identifies the mapping in material cache keys.
func (m *ShaderMapping) Key() string {
	if m.path != "" {
		return m.path
	}
	return m.HostShader
}
