// Package host defines the read-only view of a host application's scene
// that the exporter walks.
//
// The host object model itself (how nodes, meshes, textures and materials
// are stored) is opaque to the exporter. Implementations of these interfaces
// adapt it: package inmem provides one backed by plain Go values and a YAML
// scene file.
//
// Optional components are returned as nil interfaces when absent.
// Implementations must return an untyped nil, not a typed nil pointer.
package host

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceID identifies a host object for the lifetime of one export pass.
// Two references to the same host object report the same id.
type InstanceID int64

// Node is one entry of the host transform hierarchy.
type Node interface {
	Name() string

	// Children returns the direct children in host-declared order.
	Children() []Node

	LocalPosition() mgl32.Vec3
	LocalRotation() mgl32.Quat
	LocalScale() mgl32.Vec3

	// WorldPosition is the node origin in world space.
	WorldPosition() mgl32.Vec3

	// Forward is the node's world-space forward axis (+Z).
	Forward() mgl32.Vec3

	Mesh() Mesh
	Renderer() Renderer
	Light() Light
	Terrain() Terrain
	LODGroup() LODGroup
}

// Bounds is an axis-aligned world-space box.
type Bounds struct {
	Center mgl32.Vec3
	Size   mgl32.Vec3
}

// Min returns the minimum corner of the box.
func (b Bounds) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Size.Mul(0.5))
}

// Max returns the maximum corner of the box.
func (b Bounds) Max() mgl32.Vec3 {
	return b.Center.Add(b.Size.Mul(0.5))
}

// Encapsulate grows b to contain o.
func (b Bounds) Encapsulate(o Bounds) Bounds {
	bmin, bmax := b.Min(), b.Max()
	omin, omax := o.Min(), o.Max()
	for i := range 3 {
		bmin[i] = min(bmin[i], omin[i])
		bmax[i] = max(bmax[i], omax[i])
	}
	return Bounds{
		Center: bmin.Add(bmax).Mul(0.5),
		Size:   bmax.Sub(bmin),
	}
}

// Renderer draws a node's mesh with an ordered list of materials,
// one per submesh.
type Renderer interface {
	// Node returns the node that owns the renderer.
	Node() Node

	// Materials may contain nil entries.
	Materials() []Material

	Bounds() Bounds
}

// LODLevel is one detail level of an LOD group.
type LODLevel struct {
	ScreenRelativeTransitionHeight float32
	Renderers                      []Renderer
}

// LODGroup switches between detail levels by screen coverage.
type LODGroup interface {
	Levels() []LODLevel
}

// Mesh exposes geometry. Index data is per submesh; all submeshes share
// the vertex streams.
type Mesh interface {
	InstanceID() InstanceID
	Name() string

	// Readable reports whether vertex and index data can be read
	// from the CPU side.
	Readable() bool

	Vertices() []mgl32.Vec3
	Normals() []mgl32.Vec3
	Tangents() []mgl32.Vec4
	Colors() []mgl32.Vec4
	UV0() []mgl32.Vec2
	UV1() []mgl32.Vec2

	SubmeshCount() int
	Triangles(submesh int) []uint32
	Use32BitIndices() bool
}

// Renderable is a decoded view of texture content that can be drawn into
// a scratch render target.
type Renderable = image.Image

// Texture exposes pixel data and sampling state.
type Texture interface {
	InstanceID() InstanceID
	Name() string

	Dimension() TextureDimension
	Format() PixelFormat
	Readable() bool

	Width() int
	Height() int

	// Depth is the layer count for arrays and the slice count for 3D
	// textures. It is 1 for plain 2D textures and 6 for cubemaps.
	Depth() int

	MipCount() int
	AnisoLevel() int
	WrapMode() WrapMode
	FilterMode() FilterMode

	// Pixels returns the raw bytes of the top mip level in Format().
	Pixels() []byte

	// Layer returns the raw bytes of one array layer or cubemap face.
	Layer(index int) []byte

	// Render returns a displayable view of one layer or face, used when
	// the native format cannot be exported as is. It may return nil when
	// the host cannot render the texture.
	Render(layer int) Renderable
}

// Material exposes a shader and its named properties.
type Material interface {
	InstanceID() InstanceID
	Name() string
	ShaderName() string

	// Tag returns a shader tag such as "RenderType" or "LightMode".
	Tag(name string) string

	// HasProperty reports whether the shader declares the property.
	HasProperty(name string) bool

	Properties() []Property

	Texture(name string) Texture
	Float(name string) float32
	Vector(name string) mgl32.Vec4
	Color(name string) mgl32.Vec4
	Matrix(name string) mgl32.Mat4
	FloatArray(name string) []float32
	VectorArray(name string) []mgl32.Vec4
}

// Property describes one declared shader property.
type Property struct {
	Name string
	Type PropertyType
}

// LightKind distinguishes host light sources.
type LightKind int

// Light kinds.
const (
	LightSpot LightKind = iota
	LightDirectional
	LightPoint
	LightArea
	LightDisc
)

// String returns the host name of the light kind.
func (k LightKind) String() string {
	switch k {
	case LightSpot:
		return "Spot"
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightArea:
		return "Area"
	case LightDisc:
		return "Disc"
	default:
		return "Unknown"
	}
}

// Light is a light source attached to a node.
type Light interface {
	Kind() LightKind
	Color() mgl32.Vec3
	Intensity() float32

	// SpotAngle is the full outer cone angle in degrees.
	SpotAngle() float32

	// InnerSpotAngle is the full inner cone angle in degrees.
	InnerSpotAngle() float32
}

// AmbientMode selects how the host computes ambient light.
type AmbientMode int

// Ambient modes.
const (
	AmbientSkybox AmbientMode = iota
	AmbientTrilight
	AmbientFlat
	AmbientCustom
)

// String returns the host name of the ambient mode.
func (m AmbientMode) String() string {
	switch m {
	case AmbientSkybox:
		return "Skybox"
	case AmbientTrilight:
		return "Trilight"
	case AmbientFlat:
		return "Flat"
	case AmbientCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Environment is the scene-wide render state.
type Environment interface {
	AmbientMode() AmbientMode
	AmbientColor() mgl32.Vec3
	AmbientIntensity() float32
}

// TerrainLayer is one splat layer of a terrain.
type TerrainLayer struct {
	Diffuse  Texture
	TileSize mgl32.Vec2
}

// Terrain is a heightmap terrain.
type Terrain interface {
	InstanceID() InstanceID
	Name() string

	// Size is the world-space extent (width, max height, length).
	Size() mgl32.Vec3

	// HeightmapResolution is the number of samples along each axis.
	HeightmapResolution() int

	// Heights returns normalized heights indexed [y][x].
	Heights() [][]float32

	// InterpolatedNormal returns the surface normal at normalized
	// coordinates (u, v) in [0, 1].
	InterpolatedNormal(u, v float32) mgl32.Vec3

	Layers() []TerrainLayer

	// AlphaMaps returns the splat control textures.
	AlphaMaps() []Texture

	// CustomMaterial returns nil unless the terrain renders with a
	// user material.
	CustomMaterial() Material
}

// Camera is a snapshot of the host's scene view.
type Camera struct {
	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	// FOV is the vertical field of view in degrees.
	FOV  float32
	Near float32
	Far  float32
}
