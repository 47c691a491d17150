package host

// PixelFormat is the host's native texel format.
type PixelFormat int

// Pixel formats. The set mirrors the formats a host texture can report;
// not every one has an exportable equivalent.
const (
	FormatNone PixelFormat = iota

	FormatR8SRGB
	FormatR8G8SRGB
	FormatR8G8B8SRGB
	FormatR8G8B8A8SRGB
	FormatR8UNorm
	FormatR8G8UNorm
	FormatR8G8B8UNorm
	FormatR8G8B8A8UNorm
	FormatR8SNorm
	FormatR8G8SNorm
	FormatR8G8B8A8SNorm
	FormatR8UInt
	FormatR8G8B8A8UInt

	FormatR16UNorm
	FormatR16G16UNorm
	FormatR16G16B16A16UNorm
	FormatR16SFloat
	FormatR16G16SFloat
	FormatR16G16B16SFloat
	FormatR16G16B16A16SFloat

	FormatR32SFloat
	FormatR32G32SFloat
	FormatR32G32B32SFloat
	FormatR32G32B32A32SFloat

	FormatB8G8R8UNorm
	FormatB8G8R8A8UNorm
	FormatB8G8R8A8SRGB

	FormatR4G4B4A4UNormPack16
	FormatR5G6B5UNormPack16
	FormatB5G6R5UNormPack16
	FormatE5B9G9R9UFloatPack32
	FormatB10G11R11UFloatPack32
	FormatA2B10G10R10UNormPack32

	FormatRGBADXT1SRGB
	FormatRGBADXT1UNorm
	FormatRGBADXT3SRGB
	FormatRGBADXT3UNorm
	FormatRGBADXT5SRGB
	FormatRGBADXT5UNorm
	FormatRBC4UNorm
	FormatRGBC5UNorm
	FormatRGBBC6HUFloat
	FormatRGBBC6HSFloat
	FormatRGBABC7SRGB
	FormatRGBABC7UNorm

	FormatRGBPVRTC2BppUNorm
	FormatRGBPVRTC4BppUNorm
	FormatRGBAPVRTC2BppUNorm
	FormatRGBAPVRTC4BppUNorm

	FormatRGBETC2UNorm
	FormatRGBETC2SRGB
	FormatRGBA1ETC2UNorm
	FormatRGBAETC2UNorm
	FormatRGBAETC2SRGB
	FormatREACUNorm
	FormatRGEACUNorm

	FormatRGBAASTC4x4UNorm
	FormatRGBAASTC4x4SRGB
	FormatRGBAASTC5x5UNorm
	FormatRGBAASTC6x6UNorm
	FormatRGBAASTC8x8UNorm
	FormatRGBAASTC10x10UNorm
	FormatRGBAASTC12x12UNorm

	FormatD24UNormS8UInt

	pixelFormatCount
)

var pixelFormatNames = [pixelFormatCount]string{
	FormatNone: "None",

	FormatR8SRGB:        "R8_SRGB",
	FormatR8G8SRGB:      "R8G8_SRGB",
	FormatR8G8B8SRGB:    "R8G8B8_SRGB",
	FormatR8G8B8A8SRGB:  "R8G8B8A8_SRGB",
	FormatR8UNorm:       "R8_UNorm",
	FormatR8G8UNorm:     "R8G8_UNorm",
	FormatR8G8B8UNorm:   "R8G8B8_UNorm",
	FormatR8G8B8A8UNorm: "R8G8B8A8_UNorm",
	FormatR8SNorm:       "R8_SNorm",
	FormatR8G8SNorm:     "R8G8_SNorm",
	FormatR8G8B8A8SNorm: "R8G8B8A8_SNorm",
	FormatR8UInt:        "R8_UInt",
	FormatR8G8B8A8UInt:  "R8G8B8A8_UInt",

	FormatR16UNorm:           "R16_UNorm",
	FormatR16G16UNorm:        "R16G16_UNorm",
	FormatR16G16B16A16UNorm:  "R16G16B16A16_UNorm",
	FormatR16SFloat:          "R16_SFloat",
	FormatR16G16SFloat:       "R16G16_SFloat",
	FormatR16G16B16SFloat:    "R16G16B16_SFloat",
	FormatR16G16B16A16SFloat: "R16G16B16A16_SFloat",

	FormatR32SFloat:          "R32_SFloat",
	FormatR32G32SFloat:       "R32G32_SFloat",
	FormatR32G32B32SFloat:    "R32G32B32_SFloat",
	FormatR32G32B32A32SFloat: "R32G32B32A32_SFloat",

	FormatB8G8R8UNorm:   "B8G8R8_UNorm",
	FormatB8G8R8A8UNorm: "B8G8R8A8_UNorm",
	FormatB8G8R8A8SRGB:  "B8G8R8A8_SRGB",

	FormatR4G4B4A4UNormPack16:    "R4G4B4A4_UNormPack16",
	FormatR5G6B5UNormPack16:      "R5G6B5_UNormPack16",
	FormatB5G6R5UNormPack16:      "B5G6R5_UNormPack16",
	FormatE5B9G9R9UFloatPack32:   "E5B9G9R9_UFloatPack32",
	FormatB10G11R11UFloatPack32:  "B10G11R11_UFloatPack32",
	FormatA2B10G10R10UNormPack32: "A2B10G10R10_UNormPack32",

	FormatRGBADXT1SRGB:  "RGBA_DXT1_SRGB",
	FormatRGBADXT1UNorm: "RGBA_DXT1_UNorm",
	FormatRGBADXT3SRGB:  "RGBA_DXT3_SRGB",
	FormatRGBADXT3UNorm: "RGBA_DXT3_UNorm",
	FormatRGBADXT5SRGB:  "RGBA_DXT5_SRGB",
	FormatRGBADXT5UNorm: "RGBA_DXT5_UNorm",
	FormatRBC4UNorm:     "R_BC4_UNorm",
	FormatRGBC5UNorm:    "RG_BC5_UNorm",
	FormatRGBBC6HUFloat: "RGB_BC6H_UFloat",
	FormatRGBBC6HSFloat: "RGB_BC6H_SFloat",
	FormatRGBABC7SRGB:   "RGBA_BC7_SRGB",
	FormatRGBABC7UNorm:  "RGBA_BC7_UNorm",

	FormatRGBPVRTC2BppUNorm:  "RGB_PVRTC_2Bpp_UNorm",
	FormatRGBPVRTC4BppUNorm:  "RGB_PVRTC_4Bpp_UNorm",
	FormatRGBAPVRTC2BppUNorm: "RGBA_PVRTC_2Bpp_UNorm",
	FormatRGBAPVRTC4BppUNorm: "RGBA_PVRTC_4Bpp_UNorm",

	FormatRGBETC2UNorm:   "RGB_ETC2_UNorm",
	FormatRGBETC2SRGB:    "RGB_ETC2_SRGB",
	FormatRGBA1ETC2UNorm: "RGB_A1_ETC2_UNorm",
	FormatRGBAETC2UNorm:  "RGBA_ETC2_UNorm",
	FormatRGBAETC2SRGB:   "RGBA_ETC2_SRGB",
	FormatREACUNorm:      "R_EAC_UNorm",
	FormatRGEACUNorm:     "RG_EAC_UNorm",

	FormatRGBAASTC4x4UNorm:   "RGBA_ASTC4X4_UNorm",
	FormatRGBAASTC4x4SRGB:    "RGBA_ASTC4X4_SRGB",
	FormatRGBAASTC5x5UNorm:   "RGBA_ASTC5X5_UNorm",
	FormatRGBAASTC6x6UNorm:   "RGBA_ASTC6X6_UNorm",
	FormatRGBAASTC8x8UNorm:   "RGBA_ASTC8X8_UNorm",
	FormatRGBAASTC10x10UNorm: "RGBA_ASTC10X10_UNorm",
	FormatRGBAASTC12x12UNorm: "RGBA_ASTC12X12_UNorm",

	FormatD24UNormS8UInt: "D24_UNorm_S8_UInt",
}

// String returns the host name of the format.
func (f PixelFormat) String() string {
	if f < 0 || f >= pixelFormatCount {
		return "Unknown"
	}
	return pixelFormatNames[f]
}

// ParsePixelFormat returns the format with the given host name.
func ParsePixelFormat(s string) (PixelFormat, bool) {
	for i, name := range pixelFormatNames {
		if name == s {
			return PixelFormat(i), true
		}
	}
	return FormatNone, false
}
