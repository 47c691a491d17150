package sgexport

import (
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/walker"
)

// DefaultMappingDir is the shader mapping directory used when
// WithMappingDir is not given.
const DefaultMappingDir = "ShaderMappings"

// ExportOption configures an Export call.
//
// Example:
//
//	report, err := sgexport.Export(scene, settings,
//	    sgexport.WithMappingDir("assets/mappings"),
//	    sgexport.WithTarget("text"),
//	)
type ExportOption func(*exportOptions)

// exportOptions holds the optional configuration of one export.
type exportOptions struct {
	target     string
	observers  []walker.Observer
	mappingDir string
	viewer     string
	camera     *host.Camera
}

func defaultExportOptions() exportOptions {
	return exportOptions{
		mappingDir: DefaultMappingDir,
	}
}

// WithTarget writes the document with the named target instead of the
// one selected by Settings.BinaryExport. The target must be registered.
func WithTarget(name string) ExportOption {
	return func(o *exportOptions) {
		o.target = name
	}
}

// WithObservers adds observers notified during the walk, in order.
func WithObservers(observers ...Observer) ExportOption {
	return func(o *exportOptions) {
		o.observers = append(o.observers, observers...)
	}
}

// WithMappingDir sets the directory searched for shader mappings.
func WithMappingDir(dir string) ExportOption {
	return func(o *exportOptions) {
		o.mappingDir = dir
	}
}

// WithViewer sets the viewer executable launched when
// Settings.ShowPreview is true. camera is passed to the viewer when
// Settings.MatchSceneCamera is true; it may be nil.
func WithViewer(path string, camera *host.Camera) ExportOption {
	return func(o *exportOptions) {
		o.viewer = path
		o.camera = camera
	}
}
