package format

import "github.com/gogpu/sgexport/host"

// hostFormatTable maps host texel formats to Vulkan formats. Three-channel
// formats have no sampled Vulkan equivalent and map to Undefined, which
// routes them through RGBA conversion.
var hostFormatTable = map[host.PixelFormat]VkFormat{
	host.FormatNone: Undefined,

	host.FormatR8SRGB:        R8SRGB,
	host.FormatR8G8SRGB:      R8G8SRGB,
	host.FormatR8G8B8SRGB:    Undefined,
	host.FormatR8G8B8A8SRGB:  R8G8B8A8SRGB,
	host.FormatR8UNorm:       R8UNorm,
	host.FormatR8G8UNorm:     R8G8UNorm,
	host.FormatR8G8B8UNorm:   Undefined,
	host.FormatR8G8B8A8UNorm: R8G8B8A8UNorm,
	host.FormatR8SNorm:       R8SNorm,
	host.FormatR8G8SNorm:     R8G8SNorm,
	host.FormatR8G8B8A8SNorm: R8G8B8A8SNorm,
	host.FormatR8UInt:        R8UInt,
	host.FormatR8G8B8A8UInt:  R8G8B8A8UInt,

	host.FormatR16UNorm:           R16UNorm,
	host.FormatR16G16UNorm:        R16G16UNorm,
	host.FormatR16G16B16A16UNorm:  R16G16B16A16UNorm,
	host.FormatR16SFloat:          R16SFloat,
	host.FormatR16G16SFloat:       R16G16SFloat,
	host.FormatR16G16B16SFloat:    Undefined,
	host.FormatR16G16B16A16SFloat: R16G16B16A16SFloat,

	host.FormatR32SFloat:          R32SFloat,
	host.FormatR32G32SFloat:       R32G32SFloat,
	host.FormatR32G32B32SFloat:    Undefined,
	host.FormatR32G32B32A32SFloat: R32G32B32A32SFloat,

	host.FormatB8G8R8UNorm:   B8G8R8UNorm,
	host.FormatB8G8R8A8UNorm: B8G8R8A8UNorm,
	host.FormatB8G8R8A8SRGB:  B8G8R8A8SRGB,

	host.FormatR4G4B4A4UNormPack16:    R4G4B4A4UNormPack16,
	host.FormatR5G6B5UNormPack16:      Undefined,
	host.FormatB5G6R5UNormPack16:      B5G6R5UNormPack16,
	host.FormatE5B9G9R9UFloatPack32:   E5B9G9R9UFloatPack32,
	host.FormatB10G11R11UFloatPack32:  B10G11R11UFloatPack32,
	host.FormatA2B10G10R10UNormPack32: A2B10G10R10UNormPack32,

	host.FormatRGBADXT1SRGB:  BC1RGBASRGB,
	host.FormatRGBADXT1UNorm: BC1RGBAUNorm,
	host.FormatRGBADXT3SRGB:  BC2SRGB,
	host.FormatRGBADXT3UNorm: BC2UNorm,
	host.FormatRGBADXT5SRGB:  BC3SRGB,
	host.FormatRGBADXT5UNorm: BC3UNorm,
	host.FormatRBC4UNorm:     BC4UNorm,
	host.FormatRGBC5UNorm:    BC5UNorm,
	host.FormatRGBBC6HUFloat: BC6HUFloat,
	host.FormatRGBBC6HSFloat: BC6HSFloat,
	host.FormatRGBABC7SRGB:   BC7SRGB,
	host.FormatRGBABC7UNorm:  BC7UNorm,

	host.FormatRGBPVRTC2BppUNorm:  PVRTC12BppUNorm,
	host.FormatRGBPVRTC4BppUNorm:  PVRTC14BppUNorm,
	host.FormatRGBAPVRTC2BppUNorm: PVRTC22BppUNorm,
	host.FormatRGBAPVRTC4BppUNorm: PVRTC24BppUNorm,

	host.FormatRGBETC2UNorm:   ETC2R8G8B8UNorm,
	host.FormatRGBETC2SRGB:    ETC2R8G8B8SRGB,
	host.FormatRGBA1ETC2UNorm: ETC2R8G8B8A1UNorm,
	host.FormatRGBAETC2UNorm:  ETC2R8G8B8A8UNorm,
	host.FormatRGBAETC2SRGB:   ETC2R8G8B8A8SRGB,
	host.FormatREACUNorm:      EACR11UNorm,
	host.FormatRGEACUNorm:     EACR11G11UNorm,

	host.FormatRGBAASTC4x4UNorm:   ASTC4x4UNorm,
	host.FormatRGBAASTC4x4SRGB:    ASTC4x4SRGB,
	host.FormatRGBAASTC5x5UNorm:   ASTC5x5UNorm,
	host.FormatRGBAASTC6x6UNorm:   ASTC6x6UNorm,
	host.FormatRGBAASTC8x8UNorm:   ASTC8x8UNorm,
	host.FormatRGBAASTC10x10UNorm: ASTC10x10UNorm,
	host.FormatRGBAASTC12x12UNorm: ASTC12x12UNorm,
}

// FromHost returns the Vulkan format for a host format. It returns
// Undefined for formats that cannot be exported as is.
func FromHost(f host.PixelFormat) VkFormat {
	return hostFormatTable[f]
}

// Supported reports whether a host format maps to a defined Vulkan format.
func Supported(f host.PixelFormat) bool {
	return FromHost(f) != Undefined
}
