// Package walker builds the node stream of an export pass from a host
// scene.
//
// The walk is depth-first and pre-order. Every visited node opens a
// Transform (non-identity local transform) or a Group, then emits its
// LOD levels or children, its mesh, its light and its terrain, and
// closes the node again. Resources are converted through a
// convert.ExportContext, so shared host resources become shared records.
//
// Basic usage:
//
//	ctx := convert.NewExportContext(shadermap.NewDir("mappings"))
//	w := walker.New(ctx, walker.Options{AutoAddCull: true})
//	em := graph.NewEmitter(graph.NewDocument())
//	report, err := w.Export(em, walker.Scene{Roots: roots})
package walker

import (
	"fmt"

	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
)

// Options control the shape of the emitted graph.
type Options struct {
	// AutoAddCull wraps every mesh in a CullGroup bounding its renderer.
	AutoAddCull bool `toml:"auto_add_cull"`

	// ZeroRootTransform emits the first node of a pass as a Group even
	// when its local transform is not the identity.
	ZeroRootTransform bool `toml:"zero_root_transform"`

	// KeepIdentityTransforms emits identity transforms as Transform
	// nodes instead of Groups.
	KeepIdentityTransforms bool `toml:"keep_identity_transforms"`
}

// Scene is the input of one pass.
type Scene struct {
	Roots []host.Node

	// Environment supplies the ambient light, or nil for none.
	Environment host.Environment

	// Skybox is a cubemap drawn behind the scene, or nil.
	Skybox host.Texture
}

// Walker emits the graph of a host scene.
//
// Walker is not safe for concurrent use.
type Walker struct {
	ctx       *convert.ExportContext
	opts      Options
	observers []Observer

	// per-pass state
	em        *graph.Emitter
	firstNode bool
	lodDepth  int
}

// New creates a walker converting resources through ctx. Observers are
// notified in order.
func New(ctx *convert.ExportContext, opts Options, observers ...Observer) *Walker {
	return &Walker{
		ctx:       ctx,
		opts:      opts,
		observers: observers,
	}
}

// Context returns the export context of the walker.
func (w *Walker) Context() *convert.ExportContext {
	return w.ctx
}

// Options returns the walker options.
func (w *Walker) Options() Options {
	return w.opts
}

// Export runs one pass over scene, writing into em. It returns the report
// of the pass. The error is non-nil only when the emitted stream is
// malformed; conversion problems end up in the report.
//
// The context caches are cleared before and after the pass.
func (w *Walker) Export(em *graph.Emitter, scene Scene) (*convert.Report, error) {
	w.em = em
	w.firstNode = true
	w.lodDepth = 0
	defer func() { w.em = nil }()

	w.ctx.Begin()
	for _, o := range w.observers {
		o.BeginExport(w.ctx, em)
	}

	if light := w.ctx.AmbientLight(scene.Environment); light != nil {
		_ = em.BeginLight(light).End()
	}
	w.emitSkybox(scene.Skybox)

	for _, root := range scene.Roots {
		if root != nil {
			w.visit(root)
		}
	}

	err := em.Close()
	if err == nil {
		err = em.Document().Validate()
	}
	for _, o := range w.observers {
		o.EndExport(w.ctx, em.Document())
	}
	report := w.ctx.End()
	if err != nil {
		return report, fmt.Errorf("walker: %w", err)
	}
	return report, nil
}

// visit emits n and everything below it.
func (w *Walker) visit(n host.Node) {
	node := w.beginNode(n)
	defer node.End()

	for _, o := range w.observers {
		o.ProcessNode(n, w.ctx, w.em)
	}

	meshDone := false
	if lod := n.LODGroup(); lod != nil && w.lodDepth == 0 {
		meshDone = w.emitLOD(n, lod)
	} else {
		for _, c := range n.Children() {
			w.visit(c)
		}
	}

	if !meshDone {
		w.emitMesh(n, n.Renderer())
	}
	if l := n.Light(); l != nil {
		if d := w.ctx.Light(l); d != nil {
			_ = w.em.BeginLight(d).End()
		}
	}
	if t := n.Terrain(); t != nil {
		w.emitTerrain(t)
	}
}

// beginNode opens the Transform or Group node of n.
func (w *Walker) beginNode(n host.Node) *graph.Scope {
	first := w.firstNode
	w.firstNode = false
	switch {
	case first && w.opts.ZeroRootTransform:
		return w.em.BeginGroup()
	case w.opts.KeepIdentityTransforms || !convert.IsIdentity(n):
		return w.em.BeginTransform(convert.Transform(n))
	default:
		return w.em.BeginGroup()
	}
}

// emitLOD emits an LOD node with one child per level that has renderers.
// The children of n are not visited; each level visits the nodes of its
// renderers instead. It reports whether the mesh of n was emitted by a
// level. A group without any renderer falls back to visiting the
// children.
func (w *Walker) emitLOD(n host.Node, lod host.LODGroup) bool {
	levels := lod.Levels()
	var bounds *host.Bounds
	for _, l := range levels {
		for _, r := range l.Renderers {
			if r == nil {
				continue
			}
			if bounds == nil {
				b := r.Bounds()
				bounds = &b
			} else {
				*bounds = bounds.Encapsulate(r.Bounds())
			}
		}
		if bounds != nil {
			break
		}
	}
	if bounds == nil {
		for _, c := range n.Children() {
			w.visit(c)
		}
		return false
	}

	w.lodDepth++
	defer func() { w.lodDepth-- }()

	group := w.em.BeginLOD(convert.Cull(n, *bounds))
	defer group.End()

	own := n.Renderer()
	meshDone := false
	for _, l := range levels {
		if len(l.Renderers) == 0 {
			continue
		}
		child := w.em.BeginLODChild(&graph.LODChildData{MinimumScreenHeightRatio: l.ScreenRelativeTransitionHeight})
		for _, r := range l.Renderers {
			switch {
			case r == nil:
			case own != nil && r == own:
				w.emitMesh(n, own)
				meshDone = true
			default:
				w.visit(r.Node())
			}
		}
		_ = child.End()
	}
	w.ctx.Log.Debug("lod emitted", "node", n.Name(), "levels", len(levels))
	return meshDone
}
