package host

// TextureDimension is the shape of a texture resource.
type TextureDimension int

// Texture dimensions.
const (
	TextureUnknown TextureDimension = iota
	Texture1D
	Texture2D
	Texture3D
	TextureCube
	Texture2DArray
	TextureCubeArray
)

var dimensionNames = [...]string{
	TextureUnknown:   "Unknown",
	Texture1D:        "Tex1D",
	Texture2D:        "Tex2D",
	Texture3D:        "Tex3D",
	TextureCube:      "Cube",
	Texture2DArray:   "Tex2DArray",
	TextureCubeArray: "CubeArray",
}

// String returns the host name of the dimension.
func (d TextureDimension) String() string {
	if d < 0 || int(d) >= len(dimensionNames) {
		return "Unknown"
	}
	return dimensionNames[d]
}

// ParseTextureDimension returns the dimension with the given name.
func ParseTextureDimension(s string) (TextureDimension, bool) {
	for i, name := range dimensionNames {
		if name == s {
			return TextureDimension(i), true
		}
	}
	return TextureUnknown, false
}

// WrapMode is the texture coordinate wrapping mode.
type WrapMode int

// Wrap modes.
const (
	WrapRepeat WrapMode = iota
	WrapClamp
	WrapMirror
	WrapMirrorOnce
)

var wrapNames = [...]string{
	WrapRepeat:     "Repeat",
	WrapClamp:      "Clamp",
	WrapMirror:     "Mirror",
	WrapMirrorOnce: "MirrorOnce",
}

// String returns the host name of the wrap mode.
func (w WrapMode) String() string {
	if w < 0 || int(w) >= len(wrapNames) {
		return "Unknown"
	}
	return wrapNames[w]
}

// ParseWrapMode returns the wrap mode with the given name.
func ParseWrapMode(s string) (WrapMode, bool) {
	for i, name := range wrapNames {
		if name == s {
			return WrapMode(i), true
		}
	}
	return WrapRepeat, false
}

// FilterMode is the texture filtering mode.
type FilterMode int

// Filter modes.
const (
	FilterPoint FilterMode = iota
	FilterBilinear
	FilterTrilinear
)

var filterNames = [...]string{
	FilterPoint:     "Point",
	FilterBilinear:  "Bilinear",
	FilterTrilinear: "Trilinear",
}

// String returns the host name of the filter mode.
func (f FilterMode) String() string {
	if f < 0 || int(f) >= len(filterNames) {
		return "Unknown"
	}
	return filterNames[f]
}

// ParseFilterMode returns the filter mode with the given name.
func ParseFilterMode(s string) (FilterMode, bool) {
	for i, name := range filterNames {
		if name == s {
			return FilterMode(i), true
		}
	}
	return FilterPoint, false
}

// PropertyType is the declared type of a shader property.
type PropertyType int

// Property types.
const (
	PropertyColor PropertyType = iota
	PropertyVector
	PropertyFloat
	PropertyRange
	PropertyTexture
)

// String returns the host name of the property type.
func (p PropertyType) String() string {
	switch p {
	case PropertyColor:
		return "Color"
	case PropertyVector:
		return "Vector"
	case PropertyFloat:
		return "Float"
	case PropertyRange:
		return "Range"
	case PropertyTexture:
		return "Texture"
	default:
		return "Unknown"
	}
}
