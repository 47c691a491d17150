package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/internal/format"
	"github.com/gogpu/sgexport/shadermap"
)

func brickMaterial(id host.InstanceID) *inmem.Material {
	return &inmem.Material{
		ID:       id,
		Label:    "Brick",
		Shader:   "Standard",
		Textures: map[string]host.Texture{"_MainTex": inmem.SolidTexture(100, "BrickAlbedo", 2, 2, red)},
		Colors:   map[string]mgl32.Vec4{"_Color": {1, 0.5, 0.25, 1}},
	}
}

func TestMaterial(t *testing.T) {
	c := newTestContext(t)
	mi := c.Material(brickMaterial(20))
	require.NotNil(t, mi)

	assert.Equal(t, "20", mi.ID)
	assert.Equal(t, []graph.DescriptorBinding{
		{Binding: 0, Type: format.DescriptorCombinedImageSampler, Count: 1, Stages: format.StageFragment},
		{Binding: 10, Type: format.DescriptorUniformBuffer, Count: 1, Stages: format.StageVertex | format.StageFragment},
	}, mi.DescriptorBindings)
	assert.Equal(t, []string{"VSG_DIFFUSE_MAP", DefineLighting}, mi.CustomDefines)
	assert.False(t, mi.UseAlpha)

	require.Len(t, mi.Descriptors.Images, 1)
	assert.Equal(t, "0:100", mi.Descriptors.Images[0].ID)
	require.Len(t, mi.Descriptors.Vectors, 1)
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.25, 1}, mi.Descriptors.Vectors[0].Value)
	assert.Equal(t, 2, mi.Descriptors.Len())

	require.NotNil(t, mi.ShaderStages)
	require.Len(t, mi.ShaderStages.Stages, 2)
	assert.Equal(t, filepath.Join(c.Mappings.Root(), "standard.vert"), mi.ShaderStages.Stages[0].Source)
	assert.Equal(t, DefaultEntryPoint, mi.ShaderStages.Stages[0].EntryPoint)
	assert.Equal(t, mi.CustomDefines, mi.ShaderStages.Stages[1].CustomDefines)
	assert.Nil(t, mi.ShaderStages.Stages[0].SPIRV, "GLSL sources are not compiled")

	assert.Same(t, mi, c.Material(brickMaterial(20)))
	assert.Zero(t, c.Report.Len())
}

func TestMaterialTags(t *testing.T) {
	c := newTestContext(t)
	m := brickMaterial(21)
	m.Tags = map[string]string{TagRenderType: "Transparent", TagLightMode: "Always"}

	mi := c.Material(m)
	require.NotNil(t, mi)
	assert.True(t, mi.UseAlpha)
	assert.Equal(t, []string{"VSG_DIFFUSE_MAP", DefineBlend}, mi.CustomDefines)
}

func TestMaterialMissingTexture(t *testing.T) {
	c := newTestContext(t)
	m := brickMaterial(22)
	m.Textures = nil

	mi := c.Material(m)
	require.NotNil(t, mi)
	require.Len(t, mi.DescriptorBindings, 1)
	assert.Equal(t, uint32(10), mi.DescriptorBindings[0].Binding)
	assert.Equal(t, []string{DefineLighting}, mi.CustomDefines, "defines of skipped uniforms are dropped")
	assert.Empty(t, mi.Descriptors.Images)
}

func TestMaterialWithoutMapping(t *testing.T) {
	c := newTestContext(t)
	m := &inmem.Material{ID: 23, Label: "Glass", Shader: "Custom/Glass"}

	assert.Nil(t, c.Material(m))
	assert.Nil(t, c.Material(m))
	require.Equal(t, 1, c.Report.Len())
	assert.Contains(t, c.Report.Lines()[0], "No shader mapping for shader 'Custom/Glass' used by material 'Glass'")
}

func TestMaterialNumericUniforms(t *testing.T) {
	c := newTestContext(t)
	mapping := &shadermap.ShaderMapping{
		HostShader: "Numeric",
		Uniforms: []shadermap.UniformMapping{
			{Binding: 1, Stages: shadermap.Stages(format.StageVertex), Sources: []shadermap.UniformSource{{Type: shadermap.UniformFloat, Property: "_Gloss"}}},
			{Binding: 2, Stages: shadermap.Stages(format.StageVertex), Sources: []shadermap.UniformSource{{Type: shadermap.UniformMatrix4x4, Property: "_Warp"}}},
			{Binding: 3, Stages: shadermap.Stages(format.StageVertex), Sources: []shadermap.UniformSource{
				{Type: shadermap.UniformTexture2D, Property: "_MainTex"},
				{Type: shadermap.UniformFloat, Property: "_Gloss"},
			}},
		},
	}
	m := &inmem.Material{
		ID:       24,
		Label:    "Warped",
		Floats:   map[string]float32{"_Gloss": 0.25},
		Matrices: map[string]mgl32.Mat4{"_Warp": mgl32.Scale3D(2, 2, 2)},
	}

	mi := c.MaterialWith(m, mapping)
	require.NotNil(t, mi)
	require.Len(t, mi.Descriptors.Floats, 1)
	assert.Equal(t, float32(0.25), mi.Descriptors.Floats[0].Value)
	require.Len(t, mi.Descriptors.FloatBuffers, 1)
	assert.Len(t, mi.Descriptors.FloatBuffers[0].Values, 16)
	assert.Equal(t, float32(2), mi.Descriptors.FloatBuffers[0].Values[0])
	assert.Len(t, mi.DescriptorBindings, 2)

	require.Equal(t, 1, c.Report.Len(), "the mixed texture uniform is reported")
	assert.Contains(t, c.Report.Lines()[0], "binding 3")
}

func TestPipeline(t *testing.T) {
	c := newTestContext(t)
	mesh := c.Mesh(inmem.Quad(30))
	mat := c.Material(brickMaterial(31))
	require.NotNil(t, mesh)
	require.NotNil(t, mat)

	p := c.Pipeline(mesh, mat)
	require.NotNil(t, p)
	assert.True(t, strings.HasPrefix(p.ID, "11010-2:0.1.1.16:10.6.1.17-"), p.ID)
	assert.True(t, strings.HasSuffix(p.ID, mat.ShaderStages.ID))
	assert.Len(t, p.VertexLayouts, 4)
	assert.Len(t, p.BindGroupEntries, 2)

	other := c.Material(brickMaterial(32))
	assert.Same(t, p, c.Pipeline(mesh, other), "equal pipelines share one record")
}

func TestPipelineUnlit(t *testing.T) {
	c := newTestContext(t)
	mesh := c.Mesh(inmem.Quad(33))
	m := brickMaterial(34)
	m.Tags = map[string]string{TagLightMode: "Always"}
	mat := c.Material(m)

	p := c.Pipeline(mesh, mat)
	require.NotNil(t, p)
	assert.False(t, p.HasNormals, "normals depend on lighting")
	assert.True(t, p.HasTangents)
	assert.Len(t, p.VertexLayouts, 3)
	assert.Nil(t, c.Pipeline(nil, mat))
}

func TestShaderStagesDedup(t *testing.T) {
	c := newTestContext(t)
	shaders := []shadermap.ShaderResource{{Source: "a.vert", Stages: shadermap.Stages(format.StageVertex)}}

	a := c.ShaderStages(shaders, []string{"X"}, nil)
	assert.Same(t, a, c.ShaderStages(shaders, []string{"X"}, nil))
	assert.NotSame(t, a, c.ShaderStages(shaders, []string{"Y"}, nil))
	assert.NotSame(t, a, c.ShaderStages(shaders, []string{"X"}, []uint32{1}))
	assert.NotEqual(t, a.ID, c.ShaderStages(shaders, nil, nil).ID)
}

func TestShaderStagesMissingWGSL(t *testing.T) {
	c := newTestContext(t)
	src := filepath.Join(t.TempDir(), "missing.wgsl")
	d := c.ShaderStages([]shadermap.ShaderResource{{Source: src, Stages: shadermap.Stages(format.StageVertex)}}, nil, nil)

	require.Len(t, d.Stages, 1)
	assert.Nil(t, d.Stages[0].SPIRV)
	require.Equal(t, 1, c.Report.Len())
	assert.Contains(t, c.Report.Lines()[0], "cannot be read")
}

const vertexWGSL = `
@vertex
fn main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`

func TestShaderStagesCompileWGSL(t *testing.T) {
	c := newTestContext(t)
	src := filepath.Join(t.TempDir(), "pass.wgsl")
	require.NoError(t, os.WriteFile(src, []byte(vertexWGSL), 0o600))

	d := c.ShaderStages([]shadermap.ShaderResource{{Source: src, Stages: shadermap.Stages(format.StageVertex)}}, nil, nil)
	require.Len(t, d.Stages, 1)
	spirv := d.Stages[0].SPIRV
	require.GreaterOrEqual(t, len(spirv), 4, "report: %s", c.Report)
	assert.Equal(t, []byte{0x03, 0x02, 0x23, 0x07}, spirv[:4], "SPIR-V magic")
}
