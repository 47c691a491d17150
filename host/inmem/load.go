package inmem

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp" // register decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
	"gopkg.in/yaml.v3"

	"github.com/gogpu/sgexport/host"
)

// Scene is a loaded scene file.
type Scene struct {
	Roots       []*Node
	Environment *Environment
	Camera      *host.Camera

	// Skybox is the cubemap drawn behind the scene, or nil.
	Skybox *Texture

	Textures  map[host.InstanceID]*Texture
	Materials map[host.InstanceID]*Material
	Meshes    map[host.InstanceID]*Mesh
}

// HostRoots returns the roots as host nodes.
func (s *Scene) HostRoots() []host.Node {
	out := make([]host.Node, len(s.Roots))
	for i, r := range s.Roots {
		out[i] = r
	}
	return out
}

// Find returns the first node named name in depth-first order.
func (s *Scene) Find(name string) *Node {
	var find func(n *Node) *Node
	find = func(n *Node) *Node {
		if n.name == name {
			return n
		}
		for _, c := range n.children {
			if f := find(c); f != nil {
				return f
			}
		}
		return nil
	}
	for _, r := range s.Roots {
		if f := find(r); f != nil {
			return f
		}
	}
	return nil
}

type sceneFile struct {
	Environment *envFile       `yaml:"environment"`
	Camera      *cameraFile    `yaml:"camera"`
	Skybox      int64          `yaml:"skybox"`
	Textures    []textureFile  `yaml:"textures"`
	Materials   []materialFile `yaml:"materials"`
	Meshes      []meshFile     `yaml:"meshes"`
	Nodes       []nodeFile     `yaml:"nodes"`
}

type envFile struct {
	Mode      string     `yaml:"mode"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
}

type cameraFile struct {
	Position [3]float32 `yaml:"position"`
	LookAt   [3]float32 `yaml:"lookAt"`
	Up       [3]float32 `yaml:"up"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

type textureFile struct {
	ID         int64     `yaml:"id"`
	Name       string    `yaml:"name"`
	Dimension  string    `yaml:"dimension"`
	Format     string    `yaml:"format"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Depth      int       `yaml:"depth"`
	Mips       int       `yaml:"mips"`
	Aniso      int       `yaml:"aniso"`
	Wrap       string    `yaml:"wrap"`
	Filter     string    `yaml:"filter"`
	Color      *[4]uint8 `yaml:"color"`
	Files      []string  `yaml:"files"`
	Unreadable bool      `yaml:"unreadable"`
}

type materialFile struct {
	ID       int64                 `yaml:"id"`
	Name     string                `yaml:"name"`
	Shader   string                `yaml:"shader"`
	Tags     map[string]string     `yaml:"tags"`
	Textures map[string]int64      `yaml:"textures"`
	Floats   map[string]float32    `yaml:"floats"`
	Vectors  map[string][4]float32 `yaml:"vectors"`
	Colors   map[string][4]float32 `yaml:"colors"`
}

type meshFile struct {
	ID         int64        `yaml:"id"`
	Name       string       `yaml:"name"`
	Primitive  string       `yaml:"primitive"`
	Size       float32      `yaml:"size"`
	PerFace    bool         `yaml:"perFace"`
	Positions  [][3]float32 `yaml:"positions"`
	Normals    [][3]float32 `yaml:"normals"`
	UV0        [][2]float32 `yaml:"uv0"`
	Submeshes  [][]uint32   `yaml:"submeshes"`
	Index32    bool         `yaml:"index32"`
	Unreadable bool         `yaml:"unreadable"`
}

type lightFile struct {
	Type           string     `yaml:"type"`
	Color          [3]float32 `yaml:"color"`
	Intensity      float32    `yaml:"intensity"`
	SpotAngle      float32    `yaml:"spotAngle"`
	InnerSpotAngle float32    `yaml:"innerSpotAngle"`
}

type terrainLayerFile struct {
	Diffuse  int64      `yaml:"diffuse"`
	TileSize [2]float32 `yaml:"tileSize"`
}

type terrainFile struct {
	ID         int64              `yaml:"id"`
	Name       string             `yaml:"name"`
	Size       [3]float32         `yaml:"size"`
	Resolution int                `yaml:"resolution"`
	Height     float32            `yaml:"height"`
	Heights    [][]float32        `yaml:"heights"`
	Layers     []terrainLayerFile `yaml:"layers"`
	AlphaMaps  []int64            `yaml:"alphaMaps"`
	Material   int64              `yaml:"material"`
}

type lodLevelFile struct {
	Ratio float32  `yaml:"ratio"`
	Nodes []string `yaml:"nodes"`
}

type nodeFile struct {
	Name      string         `yaml:"name"`
	Position  [3]float32     `yaml:"position"`
	Rotation  *[4]float32    `yaml:"rotation"`
	Euler     *[3]float32    `yaml:"euler"`
	Scale     *[3]float32    `yaml:"scale"`
	Mesh      int64          `yaml:"mesh"`
	Materials []int64        `yaml:"materials"`
	Light     *lightFile     `yaml:"light"`
	Terrain   *terrainFile   `yaml:"terrain"`
	LOD       []lodLevelFile `yaml:"lod"`
	Children  []nodeFile     `yaml:"children"`
}

// Load reads a scene file. Texture image files are resolved relative to
// the scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-selected scene file
	if err != nil {
		return nil, fmt.Errorf("inmem: %w", err)
	}
	s, err := Decode(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode reads a scene document. dir is the base for relative image
// paths.
func Decode(r io.Reader, dir string) (*Scene, error) {
	var f sceneFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("inmem: decode: %w", err)
	}
	b := &builder{
		dir: dir,
		scene: &Scene{
			Textures:  make(map[host.InstanceID]*Texture),
			Materials: make(map[host.InstanceID]*Material),
			Meshes:    make(map[host.InstanceID]*Mesh),
		},
		named: make(map[string]*Node),
	}
	if err := b.build(&f); err != nil {
		return nil, err
	}
	return b.scene, nil
}

type builder struct {
	dir     string
	scene   *Scene
	named   map[string]*Node
	pending []pendingLOD
}

type pendingLOD struct {
	node   *Node
	levels []lodLevelFile
}

func (b *builder) build(f *sceneFile) error {
	if f.Environment != nil {
		mode, ok := parseAmbientMode(f.Environment.Mode)
		if !ok {
			return fmt.Errorf("inmem: unknown ambient mode %q", f.Environment.Mode)
		}
		b.scene.Environment = &Environment{
			Mode:            mode,
			Ambient:         mgl32.Vec3(f.Environment.Color),
			AmbientStrength: f.Environment.Intensity,
		}
	}
	if c := f.Camera; c != nil {
		b.scene.Camera = &host.Camera{
			Position: mgl32.Vec3(c.Position),
			LookAt:   mgl32.Vec3(c.LookAt),
			Up:       mgl32.Vec3(c.Up),
			FOV:      c.FOV,
			Near:     c.Near,
			Far:      c.Far,
		}
	}
	for i := range f.Textures {
		t, err := b.texture(&f.Textures[i])
		if err != nil {
			return err
		}
		b.scene.Textures[t.ID] = t
	}
	if f.Skybox != 0 {
		sky, ok := b.scene.Textures[host.InstanceID(f.Skybox)]
		if !ok {
			return fmt.Errorf("inmem: skybox texture %d not defined", f.Skybox)
		}
		b.scene.Skybox = sky
	}
	for i := range f.Materials {
		m, err := b.material(&f.Materials[i])
		if err != nil {
			return err
		}
		b.scene.Materials[m.ID] = m
	}
	for i := range f.Meshes {
		m, err := b.mesh(&f.Meshes[i])
		if err != nil {
			return err
		}
		b.scene.Meshes[m.ID] = m
	}
	for i := range f.Nodes {
		n, err := b.node(&f.Nodes[i])
		if err != nil {
			return err
		}
		b.scene.Roots = append(b.scene.Roots, n)
	}
	for _, p := range b.pending {
		levels := make([]host.LODLevel, 0, len(p.levels))
		for _, lf := range p.levels {
			nodes := make([]*Node, 0, len(lf.Nodes))
			for _, name := range lf.Nodes {
				n, ok := b.named[name]
				if !ok {
					return fmt.Errorf("inmem: LOD of %q references unknown node %q", p.node.name, name)
				}
				nodes = append(nodes, n)
			}
			levels = append(levels, Level(lf.Ratio, nodes...))
		}
		p.node.WithLOD(levels...)
	}
	return nil
}

func (b *builder) texture(tf *textureFile) (*Texture, error) {
	dim := host.Texture2D
	if tf.Dimension != "" {
		var ok bool
		if dim, ok = host.ParseTextureDimension(tf.Dimension); !ok {
			return nil, fmt.Errorf("inmem: texture %d: unknown dimension %q", tf.ID, tf.Dimension)
		}
	}
	t := &Texture{
		ID:          host.InstanceID(tf.ID),
		Label:       tf.Name,
		Dim:         dim,
		PixelFormat: host.FormatR8G8B8A8UNorm,
		Unreadable:  tf.Unreadable,
		W:           tf.Width,
		H:           tf.Height,
		D:           tf.Depth,
		Mips:        tf.Mips,
		Aniso:       tf.Aniso,
	}
	if tf.Format != "" {
		f, ok := host.ParsePixelFormat(tf.Format)
		if !ok {
			return nil, fmt.Errorf("inmem: texture %d: unknown format %q", tf.ID, tf.Format)
		}
		t.PixelFormat = f
	}
	if tf.Wrap != "" {
		w, ok := host.ParseWrapMode(tf.Wrap)
		if !ok {
			return nil, fmt.Errorf("inmem: texture %d: unknown wrap mode %q", tf.ID, tf.Wrap)
		}
		t.Wrap = w
	}
	if tf.Filter != "" {
		f, ok := host.ParseFilterMode(tf.Filter)
		if !ok {
			return nil, fmt.Errorf("inmem: texture %d: unknown filter mode %q", tf.ID, tf.Filter)
		}
		t.Filter = f
	}

	for _, file := range tf.Files {
		img, err := b.decodeImage(file)
		if err != nil {
			return nil, fmt.Errorf("inmem: texture %d: %w", tf.ID, err)
		}
		t.W, t.H = img.Bounds().Dx(), img.Bounds().Dy()
		t.Images = append(t.Images, img)
		t.Layers = append(t.Layers, img.Pix)
	}
	if len(tf.Files) > 0 {
		t.PixelFormat = host.FormatR8G8B8A8UNorm
		return t, nil
	}

	if tf.Color != nil {
		if t.W == 0 || t.H == 0 {
			t.W, t.H = 1, 1
		}
		c := *tf.Color
		for range t.Depth() {
			pix := make([]byte, t.W*t.H*4)
			for i := 0; i < len(pix); i += 4 {
				copy(pix[i:i+4], c[:])
			}
			t.Layers = append(t.Layers, pix)
		}
	}
	return t, nil
}

// decodeImage reads an image file and converts it to RGBA.
func (b *builder) decodeImage(file string) (*image.RGBA, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(b.dir, file)
	}
	fh, err := os.Open(file) // #nosec G304 -- path from the scene file
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	src, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst, nil
}

func (b *builder) material(mf *materialFile) (*Material, error) {
	m := &Material{
		ID:       host.InstanceID(mf.ID),
		Label:    mf.Name,
		Shader:   mf.Shader,
		Tags:     mf.Tags,
		Floats:   mf.Floats,
		Textures: make(map[string]host.Texture, len(mf.Textures)),
		Vectors:  make(map[string]mgl32.Vec4, len(mf.Vectors)),
		Colors:   make(map[string]mgl32.Vec4, len(mf.Colors)),
	}
	for name, id := range mf.Textures {
		t, ok := b.scene.Textures[host.InstanceID(id)]
		if !ok {
			return nil, fmt.Errorf("inmem: material %d: texture %d not defined", mf.ID, id)
		}
		m.Textures[name] = t
	}
	for name, v := range mf.Vectors {
		m.Vectors[name] = mgl32.Vec4(v)
	}
	for name, c := range mf.Colors {
		m.Colors[name] = mgl32.Vec4(c)
	}
	return m, nil
}

func (b *builder) mesh(mf *meshFile) (*Mesh, error) {
	id := host.InstanceID(mf.ID)
	size := mf.Size
	if size == 0 {
		size = 1
	}
	var m *Mesh
	switch mf.Primitive {
	case "":
		m = &Mesh{ID: id, Submeshes: mf.Submeshes, Index32: mf.Index32}
		for _, p := range mf.Positions {
			m.Positions = append(m.Positions, mgl32.Vec3(p))
		}
		for _, n := range mf.Normals {
			m.Norms = append(m.Norms, mgl32.Vec3(n))
		}
		for _, uv := range mf.UV0 {
			m.TexCoord0 = append(m.TexCoord0, mgl32.Vec2(uv))
		}
	case "cube":
		m = Cube(id, size, mf.PerFace)
	case "quad":
		m = Quad(id)
	case "triangle":
		m = Triangle(id)
	default:
		return nil, fmt.Errorf("inmem: mesh %d: unknown primitive %q", mf.ID, mf.Primitive)
	}
	if mf.Name != "" {
		m.Label = mf.Name
	}
	m.Unreadable = mf.Unreadable
	return m, nil
}

func (b *builder) node(nf *nodeFile) (*Node, error) {
	n := NewNode(nf.Name).SetPosition(mgl32.Vec3(nf.Position))
	switch {
	case nf.Rotation != nil:
		r := nf.Rotation
		n.SetRotation(mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}})
	case nf.Euler != nil:
		e := nf.Euler
		n.SetRotation(mgl32.AnglesToQuat(
			mgl32.DegToRad(e[0]), mgl32.DegToRad(e[1]), mgl32.DegToRad(e[2]), mgl32.XYZ))
	}
	if nf.Scale != nil {
		n.SetScale(mgl32.Vec3(*nf.Scale))
	}
	if nf.Mesh != 0 {
		mesh, ok := b.scene.Meshes[host.InstanceID(nf.Mesh)]
		if !ok {
			return nil, fmt.Errorf("inmem: node %q: mesh %d not defined", nf.Name, nf.Mesh)
		}
		mats := make([]host.Material, len(nf.Materials))
		for i, id := range nf.Materials {
			// Id 0 leaves a nil material slot.
			if id == 0 {
				continue
			}
			m, ok := b.scene.Materials[host.InstanceID(id)]
			if !ok {
				return nil, fmt.Errorf("inmem: node %q: material %d not defined", nf.Name, id)
			}
			mats[i] = m
		}
		n.WithMesh(mesh, mats...)
	}
	if lf := nf.Light; lf != nil {
		kind, ok := parseLightKind(lf.Type)
		if !ok {
			return nil, fmt.Errorf("inmem: node %q: unknown light type %q", nf.Name, lf.Type)
		}
		n.WithLight(&Light{
			Type:             kind,
			RGB:              mgl32.Vec3(lf.Color),
			Strength:         lf.Intensity,
			SpotDegrees:      lf.SpotAngle,
			InnerSpotDegrees: lf.InnerSpotAngle,
		})
	}
	if nf.Terrain != nil {
		t, err := b.terrain(nf.Terrain)
		if err != nil {
			return nil, fmt.Errorf("inmem: node %q: %w", nf.Name, err)
		}
		n.WithTerrain(t)
	}
	if len(nf.LOD) > 0 {
		b.pending = append(b.pending, pendingLOD{node: n, levels: nf.LOD})
	}
	if nf.Name != "" {
		if _, dup := b.named[nf.Name]; !dup {
			b.named[nf.Name] = n
		}
	}
	for i := range nf.Children {
		c, err := b.node(&nf.Children[i])
		if err != nil {
			return nil, err
		}
		n.Add(c)
	}
	return n, nil
}

func (b *builder) terrain(tf *terrainFile) (*Terrain, error) {
	var t *Terrain
	if len(tf.Heights) > 0 {
		t = &Terrain{Samples: tf.Heights}
	} else {
		res := tf.Resolution
		if res < 2 {
			res = 2
		}
		t = FlatTerrain(0, "", mgl32.Vec3{}, res, tf.Height)
	}
	t.ID = host.InstanceID(tf.ID)
	t.Label = tf.Name
	t.Extent = mgl32.Vec3(tf.Size)
	for _, lf := range tf.Layers {
		tex, ok := b.scene.Textures[host.InstanceID(lf.Diffuse)]
		if !ok {
			return nil, fmt.Errorf("terrain %d: texture %d not defined", tf.ID, lf.Diffuse)
		}
		t.SplatLayers = append(t.SplatLayers, host.TerrainLayer{Diffuse: tex, TileSize: mgl32.Vec2(lf.TileSize)})
	}
	for _, id := range tf.AlphaMaps {
		tex, ok := b.scene.Textures[host.InstanceID(id)]
		if !ok {
			return nil, fmt.Errorf("terrain %d: texture %d not defined", tf.ID, id)
		}
		t.Splats = append(t.Splats, tex)
	}
	if tf.Material != 0 {
		m, ok := b.scene.Materials[host.InstanceID(tf.Material)]
		if !ok {
			return nil, fmt.Errorf("terrain %d: material %d not defined", tf.ID, tf.Material)
		}
		t.Custom = m
	}
	return t, nil
}

func parseLightKind(s string) (host.LightKind, bool) {
	for k := host.LightSpot; k <= host.LightDisc; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func parseAmbientMode(s string) (host.AmbientMode, bool) {
	if s == "" {
		return host.AmbientFlat, true
	}
	for m := host.AmbientSkybox; m <= host.AmbientCustom; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}
