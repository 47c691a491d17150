package format

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/sgexport/host"
)

// AddressMode is a Vulkan sampler address mode.
type AddressMode uint32

// Sampler address modes.
const (
	AddressRepeat AddressMode = iota
	AddressMirroredRepeat
	AddressClampToEdge
	AddressClampToBorder
)

// AddressModeFor maps a host wrap mode.
func AddressModeFor(w host.WrapMode) AddressMode {
	switch w {
	case host.WrapClamp:
		return AddressClampToEdge
	case host.WrapMirror, host.WrapMirrorOnce:
		return AddressMirroredRepeat
	default:
		return AddressRepeat
	}
}

// WebGPU returns the equivalent WebGPU address mode. Clamp-to-border has
// no WebGPU counterpart and maps to clamp-to-edge.
func (a AddressMode) WebGPU() gputypes.AddressMode {
	switch a {
	case AddressRepeat:
		return gputypes.AddressModeRepeat
	case AddressMirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

// String returns the Vulkan name of the address mode.
func (a AddressMode) String() string {
	switch a {
	case AddressRepeat:
		return "REPEAT"
	case AddressMirroredRepeat:
		return "MIRRORED_REPEAT"
	case AddressClampToEdge:
		return "CLAMP_TO_EDGE"
	case AddressClampToBorder:
		return "CLAMP_TO_BORDER"
	default:
		return "Unknown"
	}
}

// Filter is a Vulkan texel filter.
type Filter uint32

// Texel filters.
const (
	FilterNearest Filter = iota
	FilterLinear
)

// FilterFor maps a host filter mode.
func FilterFor(f host.FilterMode) Filter {
	if f == host.FilterPoint {
		return FilterNearest
	}
	return FilterLinear
}

// WebGPU returns the equivalent WebGPU filter mode.
func (f Filter) WebGPU() gputypes.FilterMode {
	if f == FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// String returns the Vulkan name of the filter.
func (f Filter) String() string {
	if f == FilterNearest {
		return "NEAREST"
	}
	return "LINEAR"
}

// MipmapMode is a Vulkan mipmap filter.
type MipmapMode uint32

// Mipmap modes.
const (
	MipmapNearest MipmapMode = iota
	MipmapLinear
)

// MipmapModeFor maps a host filter mode. Only trilinear filtering blends
// between mip levels.
func MipmapModeFor(f host.FilterMode) MipmapMode {
	if f == host.FilterTrilinear {
		return MipmapLinear
	}
	return MipmapNearest
}

// String returns the Vulkan name of the mipmap mode.
func (m MipmapMode) String() string {
	if m == MipmapNearest {
		return "NEAREST"
	}
	return "LINEAR"
}

// DescriptorType is a Vulkan descriptor type.
type DescriptorType uint32

// Descriptor types.
const (
	DescriptorSampler DescriptorType = iota
	DescriptorCombinedImageSampler
	DescriptorSampledImage
	DescriptorStorageImage
	DescriptorUniformTexelBuffer
	DescriptorStorageTexelBuffer
	DescriptorUniformBuffer
	DescriptorStorageBuffer
)

var descriptorTypeNames = [...]string{
	DescriptorSampler:              "SAMPLER",
	DescriptorCombinedImageSampler: "COMBINED_IMAGE_SAMPLER",
	DescriptorSampledImage:         "SAMPLED_IMAGE",
	DescriptorStorageImage:         "STORAGE_IMAGE",
	DescriptorUniformTexelBuffer:   "UNIFORM_TEXEL_BUFFER",
	DescriptorStorageTexelBuffer:   "STORAGE_TEXEL_BUFFER",
	DescriptorUniformBuffer:        "UNIFORM_BUFFER",
	DescriptorStorageBuffer:        "STORAGE_BUFFER",
}

// String returns the Vulkan name of the descriptor type.
func (d DescriptorType) String() string {
	if int(d) >= len(descriptorTypeNames) {
		return "Unknown"
	}
	return descriptorTypeNames[d]
}

// ShaderStageFlags is a Vulkan shader stage bit set.
type ShaderStageFlags uint32

// Shader stage bits.
const (
	StageVertex      ShaderStageFlags = 0x01
	StageTessControl ShaderStageFlags = 0x02
	StageTessEval    ShaderStageFlags = 0x04
	StageGeometry    ShaderStageFlags = 0x08
	StageFragment    ShaderStageFlags = 0x10
	StageCompute     ShaderStageFlags = 0x20

	StageAllGraphics ShaderStageFlags = 0x1F
)

// Has reports whether all bits of s are set in f.
func (f ShaderStageFlags) Has(s ShaderStageFlags) bool {
	return f&s == s
}

// String returns the set bits joined by "|".
func (f ShaderStageFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	names := [...]struct {
		bit  ShaderStageFlags
		name string
	}{
		{StageVertex, "VERTEX"},
		{StageTessControl, "TESSELLATION_CONTROL"},
		{StageTessEval, "TESSELLATION_EVALUATION"},
		{StageGeometry, "GEOMETRY"},
		{StageFragment, "FRAGMENT"},
		{StageCompute, "COMPUTE"},
	}
	out := ""
	for _, n := range names {
		if f&n.bit == 0 {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += n.name
	}
	return out
}

// BindGroupLayoutEntry builds the WebGPU layout entry for a descriptor
// binding. Stages without a WebGPU counterpart are dropped from the
// visibility mask.
func BindGroupLayoutEntry(binding uint32, t DescriptorType, stages ShaderStageFlags) gputypes.BindGroupLayoutEntry {
	e := gputypes.BindGroupLayoutEntry{Binding: binding}
	if stages&StageVertex != 0 {
		e.Visibility |= gputypes.ShaderStageVertex
	}
	if stages&StageFragment != 0 {
		e.Visibility |= gputypes.ShaderStageFragment
	}
	if stages&StageCompute != 0 {
		e.Visibility |= gputypes.ShaderStageCompute
	}
	switch t {
	case DescriptorCombinedImageSampler, DescriptorSampledImage:
		e.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case DescriptorSampler:
		e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	case DescriptorStorageBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	default:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	}
	return e
}

// ImageViewType is a Vulkan image view type. ViewTypeDefault lets the
// reader derive it from the image dimensions.
type ImageViewType int32

// Image view types.
const (
	ViewTypeDefault ImageViewType = -1
	ViewType1D      ImageViewType = 0
	ViewType2D      ImageViewType = 1
	ViewType3D      ImageViewType = 2
	ViewTypeCube    ImageViewType = 3
	ViewType1DArray ImageViewType = 4
	ViewType2DArray ImageViewType = 5
)

// WebGPU returns the equivalent WebGPU texture view dimension.
func (v ImageViewType) WebGPU() gputypes.TextureViewDimension {
	switch v {
	case ViewType1D:
		return gputypes.TextureViewDimension1D
	case ViewType3D:
		return gputypes.TextureViewDimension3D
	case ViewTypeCube:
		return gputypes.TextureViewDimensionCube
	case ViewType2DArray:
		return gputypes.TextureViewDimension2DArray
	default:
		return gputypes.TextureViewDimension2D
	}
}

// String returns the Vulkan name of the view type.
func (v ImageViewType) String() string {
	switch v {
	case ViewTypeDefault:
		return "DEFAULT"
	case ViewType1D:
		return "1D"
	case ViewType2D:
		return "2D"
	case ViewType3D:
		return "3D"
	case ViewTypeCube:
		return "CUBE"
	case ViewType1DArray:
		return "1D_ARRAY"
	case ViewType2DArray:
		return "2D_ARRAY"
	default:
		return "Unknown"
	}
}
