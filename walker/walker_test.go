package walker

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/shadermap"
)

const standardMapping = `
hostShader: Standard
shaders:
  - source: standard.vert
    stages: VertexStage
  - source: standard.frag
    stages: FragmentStage
uniforms:
  - binding: 0
    stages: FragmentStage
    defines: [VSG_DIFFUSE_MAP]
    sources:
      - {type: Texture2DUniform, property: _MainTex}
  - binding: 10
    stages: VertexStage|FragmentStage
    sources:
      - {type: ColorUniform, property: _Color}
`

const terrainMapping = `
hostShader: Terrain
shaders:
  - source: terrain.vert
    stages: VertexStage
  - source: terrain.frag
    stages: FragmentStage
`

var white = inmem.SolidTexture(900, "White", 1, 1, color.RGBA{255, 255, 255, 255})

func newContext(t *testing.T) *convert.ExportContext {
	t.Helper()
	dir := t.TempDir()
	mappings := map[string]string{
		"Standard":                   standardMapping,
		shadermap.DefaultTerrainName: terrainMapping,
	}
	for shader, doc := range mappings {
		path := filepath.Join(dir, shadermap.FileName(shader)+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	}
	return convert.NewExportContext(shadermap.NewDir(dir))
}

func material(id host.InstanceID, tags map[string]string) *inmem.Material {
	return &inmem.Material{
		ID:       id,
		Label:    "mat",
		Shader:   "Standard",
		Tags:     tags,
		Textures: map[string]host.Texture{"_MainTex": white},
		Colors:   map[string]mgl32.Vec4{"_Color": {1, 1, 1, 1}},
	}
}

// export runs one pass over roots and returns the document and report.
func export(t *testing.T, w *Walker, scene Scene) (*graph.Document, *convert.Report) {
	t.Helper()
	doc := graph.NewDocument()
	report, err := w.Export(graph.NewEmitter(doc), scene)
	require.NoError(t, err)
	require.NoError(t, doc.Validate())
	return doc, report
}

func roots(nodes ...*inmem.Node) Scene {
	s := Scene{}
	for _, n := range nodes {
		s.Roots = append(s.Roots, n)
	}
	return s
}

func TestIdentityRootWithTransformedChild(t *testing.T) {
	child := inmem.NewNode("child").
		SetPosition(mgl32.Vec3{0, 1, 0}).
		WithMesh(inmem.Triangle(1), material(2, nil))
	root := inmem.NewNode("root").Add(child)

	doc, report := export(t, New(newContext(t), Options{}), roots(root))
	assert.Equal(t, "Group{Transform{StateGroup{VertexIndexDraw}}}", doc.Outline())
	assert.Equal(t, []graph.Tag{
		graph.TagGroup, graph.TagTransform, graph.TagStateGroup,
		graph.TagBindPipeline, graph.TagBindDescriptorSet, graph.TagVertexIndexDraw,
	}, doc.Stream.Kinds())
	assert.Zero(t, report.Len())
}

func TestNodeKinds(t *testing.T) {
	moved := func() *inmem.Node { return inmem.NewNode("moved").SetPosition(mgl32.Vec3{1, 0, 0}) }
	tests := []struct {
		name string
		opts Options
		root *inmem.Node
		want string
	}{
		{"identity leaf is wrapped", Options{}, inmem.NewNode("leaf"), "Group"},
		{"non-identity", Options{}, moved(), "Transform"},
		{"zero root transform", Options{ZeroRootTransform: true}, moved().Add(moved()), "Group{Transform}"},
		{"keep identity", Options{KeepIdentityTransforms: true}, inmem.NewNode("leaf"), "Transform"},
		{"scaled", Options{}, inmem.NewNode("s").SetScale(mgl32.Vec3{2, 2, 2}), "Transform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := export(t, New(newContext(t), tt.opts), roots(tt.root))
			assert.Equal(t, tt.want, doc.Outline())
		})
	}
}

func TestSharedMesh(t *testing.T) {
	mesh := inmem.Quad(10)
	mat := material(11, nil)
	root := inmem.NewNode("root").Add(
		inmem.NewNode("a").WithMesh(mesh, mat),
		inmem.NewNode("b").SetPosition(mgl32.Vec3{2, 0, 0}).WithMesh(mesh, mat),
	)

	doc, _ := export(t, New(newContext(t), Options{}), roots(root))
	stats := doc.Stream.Stats()
	assert.Equal(t, 2, stats.Counts[graph.TagVertexIndexDraw])

	counts := doc.Pool.Counts()
	assert.Equal(t, 1, counts.VertexIndexDraws, "a shared mesh is one record")
	assert.Equal(t, 1, counts.Pipelines)
	assert.Equal(t, 1, counts.DescriptorSets)
	draw := doc.Pool.VertexIndexDraw(0)
	require.NotNil(t, draw)
	assert.Equal(t, "10", draw.Vertices.ID)
}

func TestMultipleSubmeshes(t *testing.T) {
	a := material(21, nil)
	b := material(22, nil)
	glass := material(23, map[string]string{convert.TagRenderType: "Transparent"})
	node := inmem.NewNode("cube").WithMesh(inmem.Cube(20, 1, true), a, a, b, b, glass, nil, a)

	doc, _ := export(t, New(newContext(t), Options{}), roots(node))
	assert.Equal(t, []graph.Tag{
		graph.TagGroup,
		graph.TagStateGroup, graph.TagBindPipeline, graph.TagCommands,
		graph.TagBindVertexBuffers, graph.TagBindIndexBuffer,
		graph.TagBindDescriptorSet, graph.TagDrawIndexed, graph.TagDrawIndexed,
		graph.TagBindDescriptorSet, graph.TagDrawIndexed, graph.TagDrawIndexed,
		graph.TagStateGroup, graph.TagBindPipeline, graph.TagCommands,
		graph.TagBindVertexBuffers, graph.TagBindIndexBuffer,
		graph.TagBindDescriptorSet, graph.TagDrawIndexed,
	}, doc.Stream.Kinds(), "materials past the submesh count and nil materials are skipped")

	counts := doc.Pool.Counts()
	assert.Equal(t, 5, counts.DrawIndexed)
	assert.Equal(t, 2, counts.Pipelines)
	assert.Equal(t, 1, counts.VertexBuffers)
	assert.Equal(t, 1, counts.IndexBuffers)
	assert.Equal(t, "20-4", doc.Pool.DrawIndexed(4).ID)
	assert.True(t, doc.Pool.Pipeline(1).UseAlpha)
}

func TestLOD(t *testing.T) {
	high := inmem.NewNode("high").WithMesh(inmem.Cube(30, 1, false), material(31, nil))
	low := inmem.NewNode("low").WithMesh(inmem.Quad(32), material(31, nil))
	ignored := inmem.NewNode("ignored").WithMesh(inmem.Triangle(33), material(31, nil))
	group := inmem.NewNode("group").
		SetPosition(mgl32.Vec3{5, 0, 0}).
		Add(high, low, ignored)
	group.WithLOD(
		inmem.Level(0.5, high),
		inmem.Level(0.1, low),
		inmem.Level(0.01),
	)

	doc, _ := export(t, New(newContext(t), Options{}), roots(group))
	assert.Equal(t,
		"Transform{LOD{LODChild{Group{StateGroup{VertexIndexDraw}}},LODChild{Group{StateGroup{VertexIndexDraw}}}}}",
		doc.Outline())

	counts := doc.Pool.Counts()
	require.Equal(t, 2, counts.LODChildren)
	assert.Equal(t, float32(0.5), doc.Pool.LODChild(0).MinimumScreenHeightRatio)
	assert.Equal(t, float32(0.1), doc.Pool.LODChild(1).MinimumScreenHeightRatio)

	bounds := doc.Pool.Cull(0)
	require.NotNil(t, bounds)
	assert.InDelta(t, 0, bounds.Center.Len(), 1e-5, "bounds are relative to the group origin")
	assert.InDelta(t, mgl32.Vec3{1, 1, 1}.Len()*0.5, bounds.Radius, 1e-5)
}

func TestLODOwnRenderer(t *testing.T) {
	detail := inmem.NewNode("detail").WithMesh(inmem.Quad(41), material(42, nil))
	group := inmem.NewNode("group").WithMesh(inmem.Cube(40, 1, false), material(42, nil)).Add(detail)
	group.WithLOD(inmem.Level(0.6, group), inmem.Level(0.2, detail))

	doc, _ := export(t, New(newContext(t), Options{}), roots(group))
	assert.Equal(t,
		"Group{LOD{LODChild{StateGroup{VertexIndexDraw}},LODChild{Group{StateGroup{VertexIndexDraw}}}}}",
		doc.Outline(), "the own mesh is emitted once, inside its level")
}

func TestNestedLODIsFlattened(t *testing.T) {
	innerMesh := inmem.NewNode("innerMesh").WithMesh(inmem.Quad(51), material(52, nil))
	inner := inmem.NewNode("inner").Add(innerMesh)
	inner.WithLOD(inmem.Level(0.3, innerMesh))
	inner.WithMesh(inmem.Triangle(53), material(52, nil))
	outer := inmem.NewNode("outer").Add(inner)
	outer.WithLOD(inmem.Level(0.5, inner))

	doc, _ := export(t, New(newContext(t), Options{}), roots(outer))
	stats := doc.Stream.Stats()
	assert.Equal(t, 1, stats.Counts[graph.TagLOD], "an LOD inside an LOD is walked as plain children")
	assert.Equal(t,
		"Group{LOD{LODChild{Group{Group{StateGroup{VertexIndexDraw}},StateGroup{VertexIndexDraw}}}}}",
		doc.Outline())
}

func TestLightAndTerrain(t *testing.T) {
	terrain := inmem.FlatTerrain(60, "Ground", mgl32.Vec3{10, 1, 10}, 3, 0)
	terrain.SplatLayers = []host.TerrainLayer{{Diffuse: white, TileSize: mgl32.Vec2{1, 1}}}
	terrain.Splats = []host.Texture{white}

	root := inmem.NewNode("root").Add(
		inmem.NewNode("sun").WithLight(&inmem.Light{Type: host.LightDirectional, RGB: mgl32.Vec3{1, 1, 1}, Strength: 1}),
		inmem.NewNode("area").WithLight(&inmem.Light{Type: host.LightArea}),
		inmem.NewNode("ground").WithTerrain(terrain),
	)

	doc, report := export(t, New(newContext(t), Options{}), roots(root))
	assert.Equal(t, "Group{Group{Light},Group,Group{StateGroup{VertexIndexDraw}}}", doc.Outline())
	assert.Equal(t, []string{"Unsupported light type: Area"}, report.Lines())
	assert.Equal(t, graph.LightDirectional, doc.Pool.Light(0).Type)
}

func TestTerrainAndMeshShareInstanceID(t *testing.T) {
	terrain := inmem.FlatTerrain(7, "Ground", mgl32.Vec3{10, 1, 10}, 3, 0)
	terrain.SplatLayers = []host.TerrainLayer{{Diffuse: white, TileSize: mgl32.Vec2{1, 1}}}

	root := inmem.NewNode("root").Add(
		inmem.NewNode("tri").WithMesh(inmem.Triangle(7), material(8, nil)),
		inmem.NewNode("ground").WithTerrain(terrain),
	)

	doc, report := export(t, New(newContext(t), Options{}), roots(root))
	assert.Empty(t, report.Lines())
	require.Equal(t, 2, doc.Pool.Counts().VertexIndexDraws)

	tri := doc.Pool.VertexIndexDraw(0)
	assert.Equal(t, "7", tri.ID)
	assert.Len(t, tri.Vertices.Vertices, 3)

	ground := doc.Pool.VertexIndexDraw(1)
	assert.Equal(t, convert.TerrainMeshPrefix+"7", ground.ID)
	assert.Len(t, ground.Vertices.Vertices, 9)
}

func TestDiffuseOnlyTerrain(t *testing.T) {
	terrain := inmem.FlatTerrain(61, "Ground", mgl32.Vec3{10, 1, 10}, 3, 0)
	terrain.SplatLayers = []host.TerrainLayer{{Diffuse: white, TileSize: mgl32.Vec2{1, 1}}}

	root := inmem.NewNode("root").Add(inmem.NewNode("ground").WithTerrain(terrain))
	doc, report := export(t, New(newContext(t), Options{}), roots(root))
	assert.Equal(t, "Group{Group{StateGroup{VertexIndexDraw}}}", doc.Outline())
	assert.Empty(t, report.Lines())
}

func TestAutoAddCull(t *testing.T) {
	node := inmem.NewNode("n").WithMesh(inmem.Quad(70), material(71, nil))
	doc, _ := export(t, New(newContext(t), Options{AutoAddCull: true}), roots(node))
	assert.Equal(t, "Group{CullGroup{StateGroup{VertexIndexDraw}}}", doc.Outline())
	assert.InDelta(t, mgl32.Vec3{1, 1, 0}.Len()*0.5, doc.Pool.Cull(0).Radius, 1e-5)
}

func TestAmbientAndSkybox(t *testing.T) {
	sky := &inmem.Texture{ID: 80, Label: "Sky", Dim: host.TextureCube, PixelFormat: host.FormatR8G8B8A8UNorm, W: 1, H: 1}
	for range 6 {
		sky.Layers = append(sky.Layers, []byte{0, 0, 255, 255})
	}
	scene := roots(inmem.NewNode("root"))
	scene.Environment = &inmem.Environment{Mode: host.AmbientFlat, Ambient: mgl32.Vec3{0.1, 0.1, 0.1}, AmbientStrength: 1}
	scene.Skybox = sky

	doc, report := export(t, New(newContext(t), Options{}), scene)
	assert.Equal(t, "Light,StateGroup{VertexIndexDraw},Group", doc.Outline())
	assert.True(t, doc.Pool.Light(0).EyeCoordinateFrame)
	assert.Zero(t, report.Len())
}

func TestMissingMappingSkipsMesh(t *testing.T) {
	m := &inmem.Material{ID: 91, Label: "odd", Shader: "Custom/Odd"}
	node := inmem.NewNode("n").WithMesh(inmem.Quad(90), m)

	doc, report := export(t, New(newContext(t), Options{}), roots(node))
	assert.Equal(t, "Group", doc.Outline())
	assert.Equal(t, 1, report.Len())
}

func TestUnreadableMeshIsReported(t *testing.T) {
	node := inmem.NewNode("n").WithMesh(&inmem.Mesh{ID: 95, Label: "locked", Unreadable: true}, material(96, nil))
	doc, report := export(t, New(newContext(t), Options{AutoAddCull: true}), roots(node))
	assert.Equal(t, "Group", doc.Outline())
	assert.Equal(t, 1, report.Len())
}

func TestStableAcrossPasses(t *testing.T) {
	mesh := inmem.Cube(100, 1, true)
	root := inmem.NewNode("root").Add(
		inmem.NewNode("a").SetPosition(mgl32.Vec3{1, 2, 3}).WithMesh(mesh, material(101, nil)),
		inmem.NewNode("b").WithMesh(inmem.Quad(102), material(103, nil)),
	)
	w := New(newContext(t), Options{AutoAddCull: true})

	first, _ := export(t, w, roots(root))
	second, _ := export(t, w, roots(root))
	assert.Equal(t, first.Stream.Kinds(), second.Stream.Kinds())
	assert.Equal(t, first.Stream.Stats(), second.Stream.Stats())
	assert.Equal(t, first.Stream.Hash(), second.Stream.Hash())
	assert.NotEqual(t, first.ID, second.ID)
	assert.NotSame(t, first.Pool.VertexIndexDraw(0), second.Pool.VertexIndexDraw(0), "caches do not outlive a pass")
}

func TestObservers(t *testing.T) {
	var begins, ends int
	var nodes []string
	hooks := Hooks{
		OnBegin: func(*convert.ExportContext, *graph.Emitter) { begins++ },
		OnNode: func(n host.Node, ctx *convert.ExportContext, em *graph.Emitter) {
			nodes = append(nodes, n.Name())
			if n.Name() == "lit" {
				_ = em.BeginLight(&graph.LightData{Type: graph.LightPoint}).End()
			}
		},
		OnEnd: func(_ *convert.ExportContext, doc *graph.Document) {
			ends++
			assert.NotZero(t, doc.Stream.Len())
		},
	}
	root := inmem.NewNode("root").Add(inmem.NewNode("lit"), inmem.NewNode("plain"))

	doc, _ := export(t, New(newContext(t), Options{}, hooks), roots(root))
	assert.Equal(t, 1, begins)
	assert.Equal(t, 1, ends)
	assert.Equal(t, []string{"root", "lit", "plain"}, nodes)
	assert.Equal(t, "Group{Group{Light},Group}", doc.Outline())
}

func TestObserverLeavingNodeOpen(t *testing.T) {
	hooks := Hooks{OnNode: func(_ host.Node, _ *convert.ExportContext, em *graph.Emitter) {
		em.BeginGroup()
	}}
	w := New(newContext(t), Options{}, hooks)
	_, err := w.Export(graph.NewEmitter(graph.NewDocument()), roots(inmem.NewNode("root")))
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrScopeOrder)
}
