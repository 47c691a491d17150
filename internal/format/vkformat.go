// Package format maps host pixel, sampler and shader enumerations to the
// Vulkan-style codes written into exported documents, and to their WebGPU
// equivalents where one exists.
package format

import (
	"strconv"

	"github.com/gogpu/gputypes"
)

// VkFormat is a Vulkan texel format code.
type VkFormat uint32

// Texel formats referenced by the host mapping table.
const (
	Undefined VkFormat = 0

	R4G4B4A4UNormPack16 VkFormat = 2
	B5G6R5UNormPack16   VkFormat = 5

	R8UNorm VkFormat = 9
	R8SNorm VkFormat = 10
	R8UInt  VkFormat = 13
	R8SRGB  VkFormat = 15

	R8G8UNorm VkFormat = 16
	R8G8SNorm VkFormat = 17
	R8G8SRGB  VkFormat = 22

	B8G8R8UNorm VkFormat = 30

	R8G8B8A8UNorm VkFormat = 37
	R8G8B8A8SNorm VkFormat = 38
	R8G8B8A8UInt  VkFormat = 41
	R8G8B8A8SRGB  VkFormat = 43
	B8G8R8A8UNorm VkFormat = 44
	B8G8R8A8SRGB  VkFormat = 50

	A2B10G10R10UNormPack32 VkFormat = 64

	R16UNorm           VkFormat = 70
	R16SFloat          VkFormat = 76
	R16G16UNorm        VkFormat = 77
	R16G16SFloat       VkFormat = 83
	R16G16B16A16UNorm  VkFormat = 91
	R16G16B16A16SFloat VkFormat = 97

	R32SFloat          VkFormat = 100
	R32G32SFloat       VkFormat = 103
	R32G32B32SFloat    VkFormat = 106
	R32G32B32A32SFloat VkFormat = 109

	B10G11R11UFloatPack32 VkFormat = 122
	E5B9G9R9UFloatPack32  VkFormat = 123
	D24UNormS8UInt        VkFormat = 129

	BC1RGBAUNorm VkFormat = 133
	BC1RGBASRGB  VkFormat = 134
	BC2UNorm     VkFormat = 135
	BC2SRGB      VkFormat = 136
	BC3UNorm     VkFormat = 137
	BC3SRGB      VkFormat = 138
	BC4UNorm     VkFormat = 139
	BC5UNorm     VkFormat = 141
	BC6HUFloat   VkFormat = 143
	BC6HSFloat   VkFormat = 144
	BC7UNorm     VkFormat = 145
	BC7SRGB      VkFormat = 146

	ETC2R8G8B8UNorm   VkFormat = 147
	ETC2R8G8B8SRGB    VkFormat = 148
	ETC2R8G8B8A1UNorm VkFormat = 149
	ETC2R8G8B8A8UNorm VkFormat = 151
	ETC2R8G8B8A8SRGB  VkFormat = 152
	EACR11UNorm       VkFormat = 153
	EACR11G11UNorm    VkFormat = 155

	ASTC4x4UNorm   VkFormat = 157
	ASTC4x4SRGB    VkFormat = 158
	ASTC5x5UNorm   VkFormat = 161
	ASTC6x6UNorm   VkFormat = 165
	ASTC8x8UNorm   VkFormat = 171
	ASTC10x10UNorm VkFormat = 179
	ASTC12x12UNorm VkFormat = 183

	PVRTC12BppUNorm VkFormat = 1000054000
	PVRTC14BppUNorm VkFormat = 1000054001
	PVRTC22BppUNorm VkFormat = 1000054002
	PVRTC24BppUNorm VkFormat = 1000054003
)

// SizeInfo describes the storage block of a format. Uncompressed formats
// use 1x1x1 blocks.
type SizeInfo struct {
	// BlockBits is the size of one block in bits.
	BlockBits   int
	BlockWidth  int
	BlockHeight int
	BlockDepth  int
}

// FormatInfo holds metadata for one VkFormat.
type FormatInfo struct {
	Name string
	Size SizeInfo

	// WebGPU is the equivalent WebGPU texture format. It is left at the
	// zero value when WebGPU has no direct equivalent.
	WebGPU gputypes.TextureFormat
}

func texel(bits int) SizeInfo { return SizeInfo{bits, 1, 1, 1} }

func block(bits, w, h int) SizeInfo { return SizeInfo{bits, w, h, 1} }

var formatInfoTable = map[VkFormat]FormatInfo{
	Undefined: {Name: "UNDEFINED", Size: texel(8)},

	R4G4B4A4UNormPack16: {Name: "R4G4B4A4_UNORM_PACK16", Size: texel(16)},
	B5G6R5UNormPack16:   {Name: "B5G6R5_UNORM_PACK16", Size: texel(16)},

	R8UNorm: {Name: "R8_UNORM", Size: texel(8), WebGPU: gputypes.TextureFormatR8Unorm},
	R8SNorm: {Name: "R8_SNORM", Size: texel(8)},
	R8UInt:  {Name: "R8_UINT", Size: texel(8)},
	R8SRGB:  {Name: "R8_SRGB", Size: texel(8)},

	R8G8UNorm: {Name: "R8G8_UNORM", Size: texel(16)},
	R8G8SNorm: {Name: "R8G8_SNORM", Size: texel(16)},
	R8G8SRGB:  {Name: "R8G8_SRGB", Size: texel(16)},

	B8G8R8UNorm: {Name: "B8G8R8_UNORM", Size: texel(24)},

	R8G8B8A8UNorm: {Name: "R8G8B8A8_UNORM", Size: texel(32), WebGPU: gputypes.TextureFormatRGBA8Unorm},
	R8G8B8A8SNorm: {Name: "R8G8B8A8_SNORM", Size: texel(32)},
	R8G8B8A8UInt:  {Name: "R8G8B8A8_UINT", Size: texel(32)},
	R8G8B8A8SRGB:  {Name: "R8G8B8A8_SRGB", Size: texel(32)},
	B8G8R8A8UNorm: {Name: "B8G8R8A8_UNORM", Size: texel(32), WebGPU: gputypes.TextureFormatBGRA8Unorm},
	B8G8R8A8SRGB:  {Name: "B8G8R8A8_SRGB", Size: texel(32)},

	A2B10G10R10UNormPack32: {Name: "A2B10G10R10_UNORM_PACK32", Size: texel(32)},

	R16UNorm:           {Name: "R16_UNORM", Size: texel(16)},
	R16SFloat:          {Name: "R16_SFLOAT", Size: texel(16)},
	R16G16UNorm:        {Name: "R16G16_UNORM", Size: texel(32)},
	R16G16SFloat:       {Name: "R16G16_SFLOAT", Size: texel(32)},
	R16G16B16A16UNorm:  {Name: "R16G16B16A16_UNORM", Size: texel(64)},
	R16G16B16A16SFloat: {Name: "R16G16B16A16_SFLOAT", Size: texel(64)},

	R32SFloat:          {Name: "R32_SFLOAT", Size: texel(32)},
	R32G32SFloat:       {Name: "R32G32_SFLOAT", Size: texel(64)},
	R32G32B32SFloat:    {Name: "R32G32B32_SFLOAT", Size: texel(96)},
	R32G32B32A32SFloat: {Name: "R32G32B32A32_SFLOAT", Size: texel(128)},

	B10G11R11UFloatPack32: {Name: "B10G11R11_UFLOAT_PACK32", Size: texel(32)},
	E5B9G9R9UFloatPack32:  {Name: "E5B9G9R9_UFLOAT_PACK32", Size: texel(32)},
	D24UNormS8UInt:        {Name: "D24_UNORM_S8_UINT", Size: texel(32), WebGPU: gputypes.TextureFormatDepth24PlusStencil8},

	BC1RGBAUNorm: {Name: "BC1_RGBA_UNORM_BLOCK", Size: block(64, 4, 4)},
	BC1RGBASRGB:  {Name: "BC1_RGBA_SRGB_BLOCK", Size: block(64, 4, 4)},
	BC2UNorm:     {Name: "BC2_UNORM_BLOCK", Size: block(128, 4, 4)},
	BC2SRGB:      {Name: "BC2_SRGB_BLOCK", Size: block(128, 4, 4)},
	BC3UNorm:     {Name: "BC3_UNORM_BLOCK", Size: block(128, 4, 4)},
	BC3SRGB:      {Name: "BC3_SRGB_BLOCK", Size: block(128, 4, 4)},
	BC4UNorm:     {Name: "BC4_UNORM_BLOCK", Size: block(64, 4, 4)},
	BC5UNorm:     {Name: "BC5_UNORM_BLOCK", Size: block(128, 4, 4)},
	BC6HUFloat:   {Name: "BC6H_UFLOAT_BLOCK", Size: block(128, 4, 4)},
	BC6HSFloat:   {Name: "BC6H_SFLOAT_BLOCK", Size: block(128, 4, 4)},
	BC7UNorm:     {Name: "BC7_UNORM_BLOCK", Size: block(128, 4, 4)},
	BC7SRGB:      {Name: "BC7_SRGB_BLOCK", Size: block(128, 4, 4)},

	ETC2R8G8B8UNorm:   {Name: "ETC2_R8G8B8_UNORM_BLOCK", Size: block(64, 4, 4)},
	ETC2R8G8B8SRGB:    {Name: "ETC2_R8G8B8_SRGB_BLOCK", Size: block(64, 4, 4)},
	ETC2R8G8B8A1UNorm: {Name: "ETC2_R8G8B8A1_UNORM_BLOCK", Size: block(64, 4, 4)},
	ETC2R8G8B8A8UNorm: {Name: "ETC2_R8G8B8A8_UNORM_BLOCK", Size: block(128, 4, 4)},
	ETC2R8G8B8A8SRGB:  {Name: "ETC2_R8G8B8A8_SRGB_BLOCK", Size: block(128, 4, 4)},
	EACR11UNorm:       {Name: "EAC_R11_UNORM_BLOCK", Size: block(64, 4, 4)},
	EACR11G11UNorm:    {Name: "EAC_R11G11_UNORM_BLOCK", Size: block(128, 4, 4)},

	ASTC4x4UNorm:   {Name: "ASTC_4x4_UNORM_BLOCK", Size: block(128, 4, 4)},
	ASTC4x4SRGB:    {Name: "ASTC_4x4_SRGB_BLOCK", Size: block(128, 4, 4)},
	ASTC5x5UNorm:   {Name: "ASTC_5x5_UNORM_BLOCK", Size: block(128, 5, 5)},
	ASTC6x6UNorm:   {Name: "ASTC_6x6_UNORM_BLOCK", Size: block(128, 6, 6)},
	ASTC8x8UNorm:   {Name: "ASTC_8x8_UNORM_BLOCK", Size: block(128, 8, 8)},
	ASTC10x10UNorm: {Name: "ASTC_10x10_UNORM_BLOCK", Size: block(128, 10, 10)},
	ASTC12x12UNorm: {Name: "ASTC_12x12_UNORM_BLOCK", Size: block(128, 12, 12)},

	PVRTC12BppUNorm: {Name: "PVRTC1_2BPP_UNORM_BLOCK_IMG", Size: block(64, 8, 4)},
	PVRTC14BppUNorm: {Name: "PVRTC1_4BPP_UNORM_BLOCK_IMG", Size: block(64, 4, 4)},
	PVRTC22BppUNorm: {Name: "PVRTC2_2BPP_UNORM_BLOCK_IMG", Size: block(64, 8, 4)},
	PVRTC24BppUNorm: {Name: "PVRTC2_4BPP_UNORM_BLOCK_IMG", Size: block(64, 4, 4)},
}

// Info returns the metadata for f. Unknown codes report a 1-bit texel.
func (f VkFormat) Info() FormatInfo {
	if info, ok := formatInfoTable[f]; ok {
		return info
	}
	return FormatInfo{Name: "VK_FORMAT_" + strconv.FormatUint(uint64(f), 10), Size: texel(1)}
}

// String returns the Vulkan name of the format without its VK_FORMAT_ prefix.
func (f VkFormat) String() string {
	return f.Info().Name
}

// IsCompressed reports whether the format uses blocks larger than one texel.
func (f VkFormat) IsCompressed() bool {
	s := f.Info().Size
	return s.BlockWidth > 1 || s.BlockHeight > 1
}

// ImageBytes returns the byte size of a width x height x depth image
// in this format, rounding partial blocks up.
func (f VkFormat) ImageBytes(width, height, depth int) int {
	s := f.Info().Size
	bw := (width + s.BlockWidth - 1) / s.BlockWidth
	bh := (height + s.BlockHeight - 1) / s.BlockHeight
	bd := (depth + s.BlockDepth - 1) / s.BlockDepth
	return bw * bh * bd * s.BlockBits / 8
}
