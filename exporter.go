package sgexport

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/shadermap"
	"github.com/gogpu/sgexport/target"
	"github.com/gogpu/sgexport/walker"
)

// Observer is notified of the stages of an export pass.
type Observer = walker.Observer

// ErrNotFileTarget is returned when the selected target cannot save to a
// file.
var ErrNotFileTarget = errors.New("sgexport: target cannot write files")

// Result describes a finished export.
type Result struct {
	// Path is the written document.
	Path string

	// Report lists the resources that were skipped or replaced.
	Report *convert.Report

	// Document is the exported document.
	Document *graph.Document
}

// Export walks scene and writes the document described by settings.
//
// Conversion problems do not fail the export; they are listed in the
// returned report. The error is non-nil when the stream is malformed or
// the document cannot be written, in which case the file at
// settings.FinalFileName() may be missing or invalid.
func Export(scene walker.Scene, settings Settings, opts ...ExportOption) (*convert.Report, error) {
	res, err := ExportDocument(scene, settings, opts...)
	if res == nil {
		return nil, err
	}
	return res.Report, err
}

// ExportDocument is Export returning the written path and document as
// well. The preview viewer, if enabled, has exited when it returns.
func ExportDocument(scene walker.Scene, settings Settings, opts ...ExportOption) (*Result, error) {
	o := defaultExportOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := Logger()

	name := o.target
	if name == "" {
		name = settings.TargetName()
	}
	t, err := target.New(name)
	if err != nil {
		return nil, fmt.Errorf("sgexport: %w", err)
	}
	ft, ok := t.(target.FileTarget)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFileTarget, name)
	}

	ctx := convert.NewExportContext(shadermap.NewDir(o.mappingDir))
	ctx.Log = log
	doc := graph.NewDocument()
	w := walker.New(ctx, settings.Graph, o.observers...)

	report, err := w.Export(graph.NewEmitter(doc), scene)
	res := &Result{Report: report, Document: doc}
	if err != nil {
		return res, fmt.Errorf("sgexport: %w", err)
	}

	st := doc.Stream.Stats()
	log.Info("document built",
		"id", doc.ID.String(),
		"nodes", st.Nodes,
		"commands", st.Commands,
		"depth", st.MaxDepth,
		"hash", fmt.Sprintf("%016x", doc.Stream.Hash()))
	for _, tag := range slices.Sorted(maps.Keys(st.Counts)) {
		log.Debug("document kind", "tag", tag.String(), "count", st.Counts[tag])
	}

	res.Path = settings.pathWith(t.Extension())
	if err := write(ft, doc, res.Path); err != nil {
		log.Error("document not written", "path", res.Path, "err", err)
		return res, err
	}
	log.Info("document written", "path", res.Path, "target", name)

	if settings.ShowPreview {
		if err := LaunchViewer(o.viewer, res.Path, o.camera, settings.MatchSceneCamera); err != nil {
			log.Warn("viewer failed", "viewer", o.viewer, "err", err)
		}
	}
	return res, nil
}

func write(t target.FileTarget, doc *graph.Document, path string) error {
	if err := t.Begin(doc); err != nil {
		return fmt.Errorf("sgexport: begin: %w", err)
	}
	if err := t.End(); err != nil {
		return fmt.Errorf("sgexport: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("sgexport: %w", err)
		}
	}
	if err := t.SaveToFile(path); err != nil {
		return fmt.Errorf("sgexport: save %s: %w", path, err)
	}
	return nil
}

// LoadScene reads a YAML scene file and returns the walker input and the
// scene camera, which is nil when the file has none.
func LoadScene(path string) (walker.Scene, *host.Camera, error) {
	s, err := inmem.Load(path)
	if err != nil {
		return walker.Scene{}, nil, fmt.Errorf("sgexport: %w", err)
	}
	return SceneOf(s), s.Camera, nil
}

// SceneOf returns the walker input of an in-memory scene.
func SceneOf(s *inmem.Scene) walker.Scene {
	scene := walker.Scene{Roots: s.HostRoots()}
	// Typed nil pointers must not become non-nil interfaces.
	if s.Environment != nil {
		scene.Environment = s.Environment
	}
	if s.Skybox != nil {
		scene.Skybox = s.Skybox
	}
	return scene
}
