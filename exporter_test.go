package sgexport

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/shadermap"
	"github.com/gogpu/sgexport/target"
	"github.com/gogpu/sgexport/target/binary"
	"github.com/gogpu/sgexport/walker"
)

const testScene = `
environment:
  mode: Flat
  color: [0.2, 0.2, 0.2]
  intensity: 1
camera:
  position: [1, 2, 3]
  lookAt: [0, 0, 0]
  up: [0, 1, 0]
  fov: 45
  near: 0.1
  far: 100
textures:
  - id: 10
    name: white
    width: 2
    height: 2
    color: [255, 255, 255, 255]
materials:
  - id: 20
    name: brick
    shader: Standard
    textures: {_MainTex: 10}
    colors: {_Color: [1, 0, 0, 1]}
  - id: 21
    name: odd
    shader: Custom/Unmapped
meshes:
  - id: 30
    primitive: cube
  - id: 31
    primitive: quad
nodes:
  - name: root
    children:
      - name: box
        position: [0, 1, 0]
        mesh: 30
        materials: [20]
      - name: plane
        mesh: 31
        materials: [21]
      - name: sun
        euler: [50, -30, 0]
        light: {type: Directional, color: [1, 1, 1], intensity: 1}
`

const testMapping = `
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
`

// fixture writes the scene and mapping files and returns the scene file
// and mapping directory.
func fixture(t *testing.T) (scenePath, mappingDir string) {
	t.Helper()
	dir := t.TempDir()
	scenePath = filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(scenePath, []byte(testScene), 0o600); err != nil {
		t.Fatal(err)
	}
	mappingDir = filepath.Join(dir, "mappings")
	if err := os.Mkdir(mappingDir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(mappingDir, shadermap.FileName("Standard")+".yaml")
	if err := os.WriteFile(path, []byte(testMapping), 0o600); err != nil {
		t.Fatal(err)
	}
	return scenePath, mappingDir
}

func TestExportBinary(t *testing.T) {
	scenePath, mappings := fixture(t)
	scene, camera, err := LoadScene(scenePath)
	if err != nil {
		t.Fatalf("LoadScene() = %v", err)
	}
	if camera == nil || camera.FOV != 45 {
		t.Fatalf("camera = %+v, want fov 45", camera)
	}

	settings := DefaultSettings()
	settings.ExportDirectory = filepath.Join(t.TempDir(), "out")
	settings.ExportFileName = "level"

	res, err := ExportDocument(scene, settings, WithMappingDir(mappings))
	if err != nil {
		t.Fatalf("ExportDocument() = %v", err)
	}
	if res.Path != settings.FinalFileName() {
		t.Errorf("Path = %q, want %q", res.Path, settings.FinalFileName())
	}

	f, err := os.Open(res.Path)
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	defer f.Close()
	h, err := binary.ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader() = %v", err)
	}
	if h.ID != res.Document.ID {
		t.Errorf("header id = %x, want %x", h.ID, res.Document.ID)
	}

	if got, want := res.Document.Outline(), "Light,Group{Transform{StateGroup{VertexIndexDraw}},Group,Transform{Light}}"; got != want {
		t.Errorf("Outline() = %q, want %q", got, want)
	}

	lines := res.Report.Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "Custom/Unmapped") {
		t.Errorf("report = %q, want one line naming the unmapped shader", lines)
	}
}

func TestExportText(t *testing.T) {
	scenePath, mappings := fixture(t)
	scene, _, err := LoadScene(scenePath)
	if err != nil {
		t.Fatal(err)
	}
	settings := Settings{ExportDirectory: t.TempDir(), ExportFileName: "level"}

	report, err := Export(scene, settings, WithMappingDir(mappings))
	if err != nil {
		t.Fatalf("Export() = %v", err)
	}
	if report.Len() != 1 {
		t.Errorf("report entries = %d, want 1", report.Len())
	}

	f, err := os.Open(filepath.Join(settings.ExportDirectory, "level.sgxt"))
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	defer f.Close()
	first, _ := bufio.NewReader(f).ReadString('\n')
	if first != "#sgxt 1\n" {
		t.Errorf("first line = %q, want %q", first, "#sgxt 1\n")
	}
}

func TestExportWithTarget(t *testing.T) {
	scenePath, mappings := fixture(t)
	scene, _, err := LoadScene(scenePath)
	if err != nil {
		t.Fatal(err)
	}
	settings := Settings{ExportDirectory: t.TempDir(), BinaryExport: true}

	res, err := ExportDocument(scene, settings, WithMappingDir(mappings), WithTarget("text"))
	if err != nil {
		t.Fatalf("ExportDocument() = %v", err)
	}
	if got, want := res.Path, filepath.Join(settings.ExportDirectory, "export.sgxt"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}

func TestExportUnknownTarget(t *testing.T) {
	_, err := Export(walker.Scene{}, DefaultSettings(), WithTarget("nope"))
	if !errors.Is(err, target.ErrUnknownTarget) {
		t.Errorf("Export() = %v, want ErrUnknownTarget", err)
	}
}

// memoryTarget encodes nothing and cannot save files.
type memoryTarget struct{}

func (memoryTarget) Begin(*graph.Document) error { return nil }
func (memoryTarget) End() error                  { return nil }
func (memoryTarget) Extension() string           { return ".mem" }

func TestExportNotFileTarget(t *testing.T) {
	target.Register("memory-test", func() target.Target { return memoryTarget{} })
	t.Cleanup(func() { target.Unregister("memory-test") })

	_, err := Export(walker.Scene{}, DefaultSettings(), WithTarget("memory-test"))
	if !errors.Is(err, ErrNotFileTarget) {
		t.Errorf("Export() = %v, want ErrNotFileTarget", err)
	}
}

func TestExportObservers(t *testing.T) {
	scenePath, mappings := fixture(t)
	scene, _, err := LoadScene(scenePath)
	if err != nil {
		t.Fatal(err)
	}

	var nodes []string
	var ended bool
	obs := walker.Hooks{
		OnNode: func(n host.Node, _ *convert.ExportContext, _ *graph.Emitter) {
			nodes = append(nodes, n.Name())
		},
		OnEnd: func(_ *convert.ExportContext, doc *graph.Document) {
			ended = doc.Stream.Validate() == nil
		},
	}
	settings := Settings{ExportDirectory: t.TempDir(), BinaryExport: true}
	if _, err := Export(scene, settings, WithMappingDir(mappings), WithObservers(obs)); err != nil {
		t.Fatalf("Export() = %v", err)
	}

	if got, want := strings.Join(nodes, ","), "root,box,plane,sun"; got != want {
		t.Errorf("visited = %q, want %q", got, want)
	}
	if !ended {
		t.Error("EndExport did not see a valid stream")
	}
}

func TestExportUnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	settings := Settings{ExportDirectory: filepath.Join(blocker, "sub"), BinaryExport: true}

	res, err := ExportDocument(walker.Scene{}, settings)
	if err == nil {
		t.Fatal("ExportDocument() succeeded writing below a regular file")
	}
	if res == nil || res.Document == nil {
		t.Error("a failed write should still return the built document")
	}
}
