package graph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sgexport/internal/format"
)

// Records are immutable once added to a Pool. Records shared between
// nodes are shared by pointer; targets write a shared record once and
// refer back to it afterwards.

// TransformData is a local transform.
type TransformData struct {
	// Matrix holds the 4x4 matrix in row-major order.
	Matrix [16]float32
}

// CullData is a bounding sphere.
type CullData struct {
	Center mgl32.Vec3
	Radius float32
}

// LODChildData configures one detail level.
type LODChildData struct {
	// MinimumScreenHeightRatio is the screen coverage above which the
	// level is drawn.
	MinimumScreenHeightRatio float32
}

// VertexBuffersData holds the vertex streams of a mesh. Absent streams
// are nil. ID is the mesh id.
type VertexBuffersData struct {
	ID       string
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Tangents []mgl32.Vec4
	Colors   []mgl32.Vec4
	UV0      []mgl32.Vec2
	UV1      []mgl32.Vec2
}

// IndexBufferData holds the index buffer of a mesh. ID is the mesh id.
type IndexBufferData struct {
	ID      string
	Indices []uint32

	// Use32Bit selects 32-bit indices; otherwise readers narrow the
	// indices to 16 bits.
	Use32Bit bool
}

// DrawIndexedData draws a range of the bound index buffer.
type DrawIndexedData struct {
	ID            string
	IndexCount    uint32
	FirstIndex    uint32
	VertexOffset  uint32
	InstanceCount uint32
	FirstInstance uint32
}

// VertexIndexDrawData is a self-contained draw of a whole mesh.
type VertexIndexDrawData struct {
	ID            string
	Vertices      *VertexBuffersData
	Indices       *IndexBufferData
	IndexCount    uint32
	FirstIndex    uint32
	InstanceCount uint32
}

// ImageData is one texture image with its sampler state.
type ImageData struct {
	ID     string
	Pixels []byte
	Format format.VkFormat

	Width  int
	Height int
	Depth  int

	ViewType format.ImageViewType

	AnisoLevel int
	WrapMode   format.AddressMode
	FilterMode format.Filter
	MipmapMode format.MipmapMode
	MipCount   int
	MipBias    float32
}

// AnisotropyEnabled reports whether the sampler filters anisotropically.
func (d *ImageData) AnisotropyEnabled() bool {
	return d.AnisoLevel > 1
}

// MaxLod returns the highest mip level the sampler may select.
func (d *ImageData) MaxLod() float32 {
	return float32(d.MipCount)
}

// DescriptorImageData binds one image, or an array of images, to a
// descriptor binding.
type DescriptorImageData struct {
	ID      string
	Binding uint32
	Images  []*ImageData
}

// DescriptorFloatData binds a single float uniform.
type DescriptorFloatData struct {
	Binding uint32
	Value   float32
}

// DescriptorFloatArrayData binds a float array uniform.
type DescriptorFloatArrayData struct {
	Binding uint32
	Values  []float32
}

// DescriptorVectorData binds a vec4 uniform.
type DescriptorVectorData struct {
	Binding uint32
	Value   mgl32.Vec4
}

// DescriptorVectorArrayData binds a vec4 array uniform.
type DescriptorVectorArrayData struct {
	Binding uint32
	Values  []mgl32.Vec4
}

// DescriptorFloatBufferData binds a raw float buffer, used for matrices
// and other values that are neither scalars nor vec4s.
type DescriptorFloatBufferData struct {
	Binding uint32
	Values  []float32
}

// DescriptorSetData is the full set of descriptors of one material.
type DescriptorSetData struct {
	ID           string
	Images       []*DescriptorImageData
	Floats       []*DescriptorFloatData
	FloatArrays  []*DescriptorFloatArrayData
	Vectors      []*DescriptorVectorData
	VectorArrays []*DescriptorVectorArrayData
	FloatBuffers []*DescriptorFloatBufferData
}

// Len returns the number of descriptors in the set.
func (d *DescriptorSetData) Len() int {
	return len(d.Images) + len(d.Floats) + len(d.FloatArrays) +
		len(d.Vectors) + len(d.VectorArrays) + len(d.FloatBuffers)
}

// ShaderStageData is one shader stage.
type ShaderStageData struct {
	Stages        format.ShaderStageFlags
	EntryPoint    string
	Source        string
	CustomDefines []string

	// SpecializationData holds specialization constants in
	// declaration order.
	SpecializationData []uint32

	// SPIRV holds compiled code when the source could be compiled
	// at export time.
	SPIRV []byte
}

// ShaderStagesData is the ordered set of stages of one pipeline.
type ShaderStagesData struct {
	ID     string
	Stages []*ShaderStageData
}

// DescriptorBinding describes one descriptor set layout binding.
type DescriptorBinding struct {
	Binding uint32
	Type    format.DescriptorType
	Count   uint32
	Stages  format.ShaderStageFlags
}

// PipelineData describes a graphics pipeline.
type PipelineData struct {
	// ID is derived from the fields below and is the dedup key.
	ID string

	HasNormals     bool
	HasTangents    bool
	HasColors      bool
	UVChannelCount int
	UseAlpha       bool

	DescriptorBindings []DescriptorBinding
	ShaderStages       *ShaderStagesData

	// VertexLayouts and BindGroupEntries are the WebGPU view of the
	// vertex input and descriptor layout.
	VertexLayouts    []gputypes.VertexBufferLayout
	BindGroupEntries []gputypes.BindGroupLayoutEntry
}

// LightType is the light kind code written to documents.
type LightType int32

// Light types.
const (
	LightPoint       LightType = 0
	LightDirectional LightType = 1
	LightSpot        LightType = 2
	LightAmbient     LightType = 3
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "Point"
	case LightDirectional:
		return "Directional"
	case LightSpot:
		return "Spot"
	case LightAmbient:
		return "Ambient"
	default:
		return "Unknown"
	}
}

// LightData is a light source.
type LightData struct {
	Type LightType

	// EyeCoordinateFrame places the light in eye space instead of the
	// space of its node.
	EyeCoordinateFrame bool

	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32

	// InnerAngle and OuterAngle are half cone angles in degrees.
	InnerAngle float32
	OuterAngle float32
}
