package inmem

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/host"
)

// Mesh is host geometry. All submeshes share the vertex streams.
type Mesh struct {
	ID         host.InstanceID
	Label      string
	Unreadable bool

	Positions []mgl32.Vec3
	Norms     []mgl32.Vec3
	Tans      []mgl32.Vec4
	Cols      []mgl32.Vec4
	TexCoord0 []mgl32.Vec2
	TexCoord1 []mgl32.Vec2

	// Submeshes holds the triangle list of each submesh.
	Submeshes [][]uint32
	Index32   bool
}

var _ host.Mesh = (*Mesh)(nil)

func (m *Mesh) InstanceID() host.InstanceID { return m.ID }
func (m *Mesh) Name() string                { return m.Label }
func (m *Mesh) Readable() bool              { return !m.Unreadable }
func (m *Mesh) Vertices() []mgl32.Vec3      { return m.Positions }
func (m *Mesh) Normals() []mgl32.Vec3       { return m.Norms }
func (m *Mesh) Tangents() []mgl32.Vec4      { return m.Tans }
func (m *Mesh) Colors() []mgl32.Vec4        { return m.Cols }
func (m *Mesh) UV0() []mgl32.Vec2           { return m.TexCoord0 }
func (m *Mesh) UV1() []mgl32.Vec2           { return m.TexCoord1 }
func (m *Mesh) SubmeshCount() int           { return len(m.Submeshes) }
func (m *Mesh) Use32BitIndices() bool       { return m.Index32 }

func (m *Mesh) Triangles(submesh int) []uint32 {
	if submesh < 0 || submesh >= len(m.Submeshes) {
		return nil
	}
	return m.Submeshes[submesh]
}

// Texture is host pixel data. Layers holds the raw bytes of each layer or
// cubemap face in PixelFormat.
type Texture struct {
	ID          host.InstanceID
	Label       string
	Dim         host.TextureDimension
	PixelFormat host.PixelFormat
	Unreadable  bool

	W, H, D int
	Mips    int
	Aniso   int
	Wrap    host.WrapMode
	Filter  host.FilterMode

	Layers [][]byte

	// Images optionally overrides Render per layer.
	Images []image.Image
}

var _ host.Texture = (*Texture)(nil)

func (t *Texture) InstanceID() host.InstanceID       { return t.ID }
func (t *Texture) Name() string                      { return t.Label }
func (t *Texture) Dimension() host.TextureDimension  { return t.Dim }
func (t *Texture) Format() host.PixelFormat          { return t.PixelFormat }
func (t *Texture) Readable() bool                    { return !t.Unreadable }
func (t *Texture) Width() int                        { return t.W }
func (t *Texture) Height() int                       { return t.H }
func (t *Texture) MipCount() int                     { return max(t.Mips, 1) }
func (t *Texture) AnisoLevel() int                   { return t.Aniso }
func (t *Texture) WrapMode() host.WrapMode           { return t.Wrap }
func (t *Texture) FilterMode() host.FilterMode       { return t.Filter }

func (t *Texture) Depth() int {
	if t.D > 0 {
		return t.D
	}
	if t.Dim == host.TextureCube {
		return 6
	}
	return 1
}

func (t *Texture) Pixels() []byte {
	return t.Layer(0)
}

func (t *Texture) Layer(index int) []byte {
	if index < 0 || index >= len(t.Layers) {
		return nil
	}
	return t.Layers[index]
}

// Render returns Images[layer] when set. RGBA8 and BGRA8 layers are
// wrapped as image.RGBA; other formats cannot be rendered.
func (t *Texture) Render(layer int) host.Renderable {
	if layer >= 0 && layer < len(t.Images) && t.Images[layer] != nil {
		return t.Images[layer]
	}
	pix := t.Layer(layer)
	if len(pix) < t.W*t.H*4 || t.W == 0 || t.H == 0 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, t.W, t.H))
	switch t.PixelFormat {
	case host.FormatR8G8B8A8UNorm, host.FormatR8G8B8A8SRGB:
		copy(img.Pix, pix)
	case host.FormatB8G8R8A8UNorm, host.FormatB8G8R8A8SRGB:
		for i := 0; i+3 < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = pix[i+2], pix[i+1], pix[i], pix[i+3]
		}
	default:
		return nil
	}
	return img
}

// SolidTexture returns a readable RGBA8 2D texture filled with c.
func SolidTexture(id host.InstanceID, name string, w, h int, c color.RGBA) *Texture {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	return &Texture{
		ID:          id,
		Label:       name,
		Dim:         host.Texture2D,
		PixelFormat: host.FormatR8G8B8A8UNorm,
		W:           w,
		H:           h,
		Mips:        1,
		Aniso:       1,
		Filter:      host.FilterBilinear,
		Layers:      [][]byte{pix},
	}
}

// Material is a host material. Property maps are keyed by property name.
type Material struct {
	ID     host.InstanceID
	Label  string
	Shader string
	Tags   map[string]string
	Props  []host.Property

	Textures     map[string]host.Texture
	Floats       map[string]float32
	Vectors      map[string]mgl32.Vec4
	Colors       map[string]mgl32.Vec4
	Matrices     map[string]mgl32.Mat4
	FloatArrays  map[string][]float32
	VectorArrays map[string][]mgl32.Vec4
}

var _ host.Material = (*Material)(nil)

func (m *Material) InstanceID() host.InstanceID { return m.ID }
func (m *Material) Name() string                { return m.Label }
func (m *Material) ShaderName() string          { return m.Shader }
func (m *Material) Tag(name string) string      { return m.Tags[name] }

// Properties returns Props, or properties derived from the value maps
// in a stable order when Props is empty.
func (m *Material) Properties() []host.Property {
	if len(m.Props) > 0 {
		return m.Props
	}
	var out []host.Property
	add := func(names []string, t host.PropertyType) {
		for _, n := range names {
			out = append(out, host.Property{Name: n, Type: t})
		}
	}
	add(sortedKeys(m.Textures), host.PropertyTexture)
	add(sortedKeys(m.Colors), host.PropertyColor)
	add(sortedKeys(m.Vectors), host.PropertyVector)
	add(sortedKeys(m.Floats), host.PropertyFloat)
	return out
}

func (m *Material) HasProperty(name string) bool {
	if _, ok := m.Textures[name]; ok {
		return true
	}
	if _, ok := m.Floats[name]; ok {
		return true
	}
	if _, ok := m.Vectors[name]; ok {
		return true
	}
	if _, ok := m.Colors[name]; ok {
		return true
	}
	if _, ok := m.Matrices[name]; ok {
		return true
	}
	if _, ok := m.FloatArrays[name]; ok {
		return true
	}
	_, ok := m.VectorArrays[name]
	return ok
}

func (m *Material) Texture(name string) host.Texture {
	return m.Textures[name]
}

func (m *Material) Float(name string) float32                { return m.Floats[name] }
func (m *Material) Vector(name string) mgl32.Vec4            { return m.Vectors[name] }
func (m *Material) Color(name string) mgl32.Vec4             { return m.Colors[name] }
func (m *Material) FloatArray(name string) []float32         { return m.FloatArrays[name] }
func (m *Material) VectorArray(name string) []mgl32.Vec4     { return m.VectorArrays[name] }

func (m *Material) Matrix(name string) mgl32.Mat4 {
	if v, ok := m.Matrices[name]; ok {
		return v
	}
	return mgl32.Ident4()
}

// Light is a host light source.
type Light struct {
	Type             host.LightKind
	RGB              mgl32.Vec3
	Strength         float32
	SpotDegrees      float32
	InnerSpotDegrees float32
}

var _ host.Light = (*Light)(nil)

func (l *Light) Kind() host.LightKind    { return l.Type }
func (l *Light) Color() mgl32.Vec3       { return l.RGB }
func (l *Light) Intensity() float32      { return l.Strength }
func (l *Light) SpotAngle() float32      { return l.SpotDegrees }
func (l *Light) InnerSpotAngle() float32 { return l.InnerSpotDegrees }

// Environment is the scene-wide ambient state.
type Environment struct {
	Mode            host.AmbientMode
	Ambient         mgl32.Vec3
	AmbientStrength float32
}

var _ host.Environment = (*Environment)(nil)

func (e *Environment) AmbientMode() host.AmbientMode { return e.Mode }
func (e *Environment) AmbientColor() mgl32.Vec3      { return e.Ambient }
func (e *Environment) AmbientIntensity() float32     { return e.AmbientStrength }

// Terrain is a heightmap terrain. Samples is indexed [y][x] and must be
// square.
type Terrain struct {
	ID      host.InstanceID
	Label   string
	Extent  mgl32.Vec3
	Samples [][]float32

	SplatLayers []host.TerrainLayer
	Splats      []host.Texture
	Custom      host.Material
}

var _ host.Terrain = (*Terrain)(nil)

func (t *Terrain) InstanceID() host.InstanceID      { return t.ID }
func (t *Terrain) Name() string                     { return t.Label }
func (t *Terrain) Size() mgl32.Vec3                 { return t.Extent }
func (t *Terrain) HeightmapResolution() int         { return len(t.Samples) }
func (t *Terrain) Heights() [][]float32             { return t.Samples }
func (t *Terrain) Layers() []host.TerrainLayer      { return t.SplatLayers }
func (t *Terrain) AlphaMaps() []host.Texture        { return t.Splats }

func (t *Terrain) CustomMaterial() host.Material {
	if t.Custom == nil {
		return nil
	}
	return t.Custom
}

// InterpolatedNormal estimates the normal from central height
// differences at the nearest sample.
func (t *Terrain) InterpolatedNormal(u, v float32) mgl32.Vec3 {
	n := len(t.Samples)
	if n < 2 {
		return mgl32.Vec3{0, 1, 0}
	}
	x := clampIndex(int(math.Round(float64(u*float32(n-1)))), n)
	y := clampIndex(int(math.Round(float64(v*float32(n-1)))), n)
	x0, x1 := clampIndex(x-1, n), clampIndex(x+1, n)
	y0, y1 := clampIndex(y-1, n), clampIndex(y+1, n)

	cellX := t.Extent.X() / float32(n-1)
	cellZ := t.Extent.Z() / float32(n-1)
	dx := (t.Samples[y][x1] - t.Samples[y][x0]) * t.Extent.Y() / (float32(x1-x0) * cellX)
	dz := (t.Samples[y1][x] - t.Samples[y0][x]) * t.Extent.Y() / (float32(y1-y0) * cellZ)
	return mgl32.Vec3{-dx, 1, -dz}.Normalize()
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

// FlatTerrain returns a terrain of res×res samples at constant height h.
func FlatTerrain(id host.InstanceID, name string, size mgl32.Vec3, res int, h float32) *Terrain {
	samples := make([][]float32, res)
	for y := range samples {
		samples[y] = make([]float32, res)
		for x := range samples[y] {
			samples[y][x] = h
		}
	}
	return &Terrain{ID: id, Label: name, Extent: size, Samples: samples}
}
