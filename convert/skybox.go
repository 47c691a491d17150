package convert

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/format"
	"github.com/gogpu/sgexport/shadermap"
)

// SkyboxMappingName is the mapping consulted for skybox shaders. Without
// it the skybox uses SkyboxShaders.
const SkyboxMappingName = "Skybox"

// SkyboxShaders are the stages of the built-in skybox shader.
var SkyboxShaders = []shadermap.ShaderResource{
	{Source: "skybox.vert", Stages: shadermap.Stages(format.StageVertex)},
	{Source: "skybox.frag", Stages: shadermap.Stages(format.StageFragment)},
}

// SkyboxInfo draws a cubemap on the inside of a unit cube.
type SkyboxInfo struct {
	Pipeline    *graph.PipelineData
	Descriptors *graph.DescriptorSetData
	Draw        *graph.VertexIndexDrawData
}

// Skybox converts a cubemap to a skybox. It returns nil, with a report
// entry, for textures that are not cubemaps.
func (c *ExportContext) Skybox(t host.Texture) *SkyboxInfo {
	if t == nil {
		return nil
	}
	if t.Dimension() != host.TextureCube {
		c.Report.Add("Skybox texture '%s' is not a cubemap (dimension '%s')", t.Name(), t.Dimension())
		return nil
	}

	shaders := SkyboxShaders
	if m, err := c.Mappings.Load(shadermap.FileName(SkyboxMappingName)); err == nil {
		shaders = m.Shaders
	}
	binding := graph.DescriptorBinding{
		Binding: 0,
		Type:    format.DescriptorCombinedImageSampler,
		Count:   1,
		Stages:  format.StageFragment,
	}
	set := &graph.DescriptorSetData{
		ID:     "skybox",
		Images: []*graph.DescriptorImageData{c.DescriptorImage(0, t)},
	}
	return &SkyboxInfo{
		Pipeline: c.pipeline(&graph.PipelineData{
			DescriptorBindings: []graph.DescriptorBinding{binding},
			ShaderStages:       c.ShaderStages(shaders, nil, nil),
		}),
		Descriptors: set,
		Draw:        c.VertexIndexDraw(skyboxCube()),
	}
}

// skyboxCube is a unit cube whose faces point inwards.
func skyboxCube() *MeshInfo {
	mi := &MeshInfo{
		ID: "skybox",
		Vertices: []mgl32.Vec3{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		},
		Indices: []uint32{
			0, 1, 2, 2, 3, 0, // back
			5, 4, 7, 7, 6, 5, // front
			4, 0, 3, 3, 7, 4, // left
			1, 5, 6, 6, 2, 1, // right
			3, 2, 6, 6, 7, 3, // top
			4, 5, 1, 1, 0, 4, // bottom
		},
	}
	mi.Submeshes = []Submesh{{IndexCount: uint32(len(mi.Indices))}}
	return mi
}
