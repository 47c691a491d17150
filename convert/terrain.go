package convert

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/coord"
	"github.com/gogpu/sgexport/internal/format"
	"github.com/gogpu/sgexport/shadermap"
)

// Bindings of the standard terrain layout.
const (
	TerrainDiffuseBinding uint32 = 0
	TerrainMaskBinding    uint32 = 1
	TerrainScaleBinding   uint32 = 2
	TerrainSizeBinding    uint32 = 3
)

// TerrainMeshPrefix starts the mesh ids of terrains, keeping their
// buffers and draws apart from host meshes with the same instance id.
const TerrainMeshPrefix = "terrain:"

// DefineTerrainLayers is set when a terrain has diffuse layers.
const DefineTerrainLayers = "VSG_TERRAIN_LAYERS"

// TerrainInfo is a terrain ready to draw: a grid mesh, its pipeline and
// its descriptors.
type TerrainInfo struct {
	Mapping *shadermap.ShaderMapping
	Mesh    *MeshInfo

	// Custom is set when the terrain renders with its own material.
	Custom *MaterialInfo

	// Standard layout inputs. Scales hold 1/tileSize per diffuse layer.
	Diffuse []host.Texture
	Masks   []host.Texture
	Scales  []mgl32.Vec4
	Size    mgl32.Vec4

	Defines   []string
	Constants []uint32

	Pipeline    *graph.PipelineData
	Descriptors *graph.DescriptorSetData
}

// Terrain converts a terrain. Standard terrains use the DefaultTerrain
// mapping and the fixed splat layout; terrains with a custom material use
// the mapping of the material's shader and its descriptors. It returns
// nil when no mapping is found or the terrain has nothing to draw with.
func (c *ExportContext) Terrain(t host.Terrain) *TerrainInfo {
	if t == nil {
		return nil
	}
	return c.terrains.GetOrCreate(t.InstanceID(), func() *TerrainInfo {
		return c.newTerrainInfo(t)
	})
}

func (c *ExportContext) newTerrainInfo(t host.Terrain) *TerrainInfo {
	custom := t.CustomMaterial()

	var mapping *shadermap.ShaderMapping
	var err error
	if custom != nil {
		mapping, err = c.Mappings.Load(shadermap.FileName(custom.ShaderName()))
	} else {
		mapping, err = c.Mappings.FindTerrain("")
	}
	if err != nil {
		c.Report.Add("Failed to load terrain shader mapping for terrain '%s': %v", t.Name(), err)
		return nil
	}
	if t.HeightmapResolution() < 2 {
		c.Report.Add("Terrain '%s' has no heightmap", t.Name())
		return nil
	}

	ti := &TerrainInfo{
		Mapping: mapping,
		Mesh:    terrainMesh(t),
		Defines: []string{DefineLighting},
	}
	size := t.Size()
	ti.Size = size.Vec4(1)

	if custom != nil {
		ti.Custom = c.MaterialWith(custom, mapping)
		if ti.Custom == nil {
			return nil
		}
		ti.Pipeline = c.pipeline(&graph.PipelineData{
			HasNormals:         true,
			UVChannelCount:     1,
			DescriptorBindings: ti.Custom.DescriptorBindings,
			ShaderStages:       ti.Custom.ShaderStages,
		})
		ti.Descriptors = ti.Custom.Descriptors
		return ti
	}

	for _, l := range t.Layers() {
		if l.Diffuse == nil {
			continue
		}
		ti.Diffuse = append(ti.Diffuse, l.Diffuse)
		ti.Scales = append(ti.Scales, mgl32.Vec4{1 / l.TileSize.X(), 1 / l.TileSize.Y(), 0, 0})
	}
	for _, m := range t.AlphaMaps() {
		if m != nil {
			ti.Masks = append(ti.Masks, m)
		}
	}
	if len(ti.Diffuse) == 0 && len(ti.Masks) == 0 {
		c.Report.Add("Terrain '%s' has no diffuse layers or splat masks", t.Name())
		return nil
	}

	set := &graph.DescriptorSetData{ID: "terrain-" + strconv.FormatInt(int64(t.InstanceID()), 10)}
	var bindings []graph.DescriptorBinding

	// Constants hold the diffuse and mask layer counts; zero when absent.
	var nDiffuse, nMasks uint32
	if len(ti.Diffuse) > 0 {
		diffuse := c.DescriptorImageArray(TerrainDiffuseBinding, ti.Diffuse...)
		set.Images = append(set.Images, diffuse)
		set.VectorArrays = append(set.VectorArrays, &graph.DescriptorVectorArrayData{Binding: TerrainScaleBinding, Values: ti.Scales})
		bindings = append(bindings,
			terrainBinding(TerrainDiffuseBinding, format.DescriptorCombinedImageSampler, len(diffuse.Images)),
			terrainBinding(TerrainScaleBinding, format.DescriptorUniformBuffer, len(ti.Scales)),
		)
		nDiffuse = uint32(len(diffuse.Images)) // #nosec G115 -- layer counts are small
		ti.Defines = append(ti.Defines, DefineTerrainLayers)
	}

	set.Vectors = append(set.Vectors, &graph.DescriptorVectorData{Binding: TerrainSizeBinding, Value: ti.Size})
	bindings = append(bindings, terrainBinding(TerrainSizeBinding, format.DescriptorUniformBuffer, 1))

	if len(ti.Masks) > 0 {
		masks := c.DescriptorImageArray(TerrainMaskBinding, ti.Masks...)
		set.Images = append(set.Images, masks)
		bindings = append(bindings, terrainBinding(TerrainMaskBinding, format.DescriptorCombinedImageSampler, len(masks.Images)))
		nMasks = uint32(len(masks.Images)) // #nosec G115
	}
	ti.Constants = []uint32{nDiffuse, nMasks}

	ti.Descriptors = set
	ti.Pipeline = c.pipeline(&graph.PipelineData{
		HasNormals:         true,
		UVChannelCount:     1,
		DescriptorBindings: bindings,
		ShaderStages:       c.ShaderStages(mapping.Shaders, ti.Defines, ti.Constants),
	})
	return ti
}

func terrainBinding(binding uint32, t format.DescriptorType, count int) graph.DescriptorBinding {
	return graph.DescriptorBinding{
		Binding: binding,
		Type:    t,
		Count:   uint32(count), // #nosec G115
		Stages:  format.StageFragment,
	}
}

// terrainMesh builds a grid with one vertex per height sample and two
// triangles per cell, scaled to the terrain size.
func terrainMesh(t host.Terrain) *MeshInfo {
	n := t.HeightmapResolution()
	heights := t.Heights()
	size := t.Size()
	cells := float32(n - 1)
	cellX, cellZ := size.X()/cells, size.Z()/cells

	mi := &MeshInfo{
		ID:       TerrainMeshPrefix + strconv.FormatInt(int64(t.InstanceID()), 10),
		Vertices: make([]mgl32.Vec3, 0, n*n),
		Normals:  make([]mgl32.Vec3, 0, n*n),
		UV0:      make([]mgl32.Vec2, 0, n*n),
		Use32Bit: true,
	}
	for y := range n {
		for x := range n {
			u, v := float32(x)/cells, float32(y)/cells
			mi.Vertices = append(mi.Vertices, mgl32.Vec3{float32(x) * cellX, heights[y][x] * size.Y(), float32(y) * cellZ})
			mi.Normals = append(mi.Normals, t.InterpolatedNormal(u, v))
			mi.UV0 = append(mi.UV0, mgl32.Vec2{u, v})
		}
	}

	row := uint32(n) // #nosec G115 -- heightmap resolutions are small
	mi.Indices = make([]uint32, 0, (n-1)*(n-1)*6)
	for y := range row - 1 {
		for x := range row - 1 {
			i := y*row + x
			mi.Indices = append(mi.Indices,
				i, i+row, i+1,
				i+row, i+row+1, i+1,
			)
		}
	}
	coord.Vec3s(mi.Vertices)
	coord.Vec3s(mi.Normals)
	coord.FlipWinding(mi.Indices)
	mi.Submeshes = []Submesh{{IndexCount: uint32(len(mi.Indices))}} // #nosec G115
	return mi
}
