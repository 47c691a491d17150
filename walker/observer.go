package walker

import (
	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
)

// Observer is notified of the stages of an export pass.
//
// Observers may emit into em. Nodes they open must be closed before the
// callback returns.
type Observer interface {
	// BeginExport runs after the caches are cleared, before anything is
	// emitted.
	BeginExport(ctx *convert.ExportContext, em *graph.Emitter)

	// ProcessNode runs for every visited node, right after its Group or
	// Transform node is opened.
	ProcessNode(n host.Node, ctx *convert.ExportContext, em *graph.Emitter)

	// EndExport runs once the stream is complete, before the caches are
	// cleared.
	EndExport(ctx *convert.ExportContext, doc *graph.Document)
}

// Hooks adapts plain functions to an Observer. Nil fields are skipped.
type Hooks struct {
	OnBegin func(ctx *convert.ExportContext, em *graph.Emitter)
	OnNode  func(n host.Node, ctx *convert.ExportContext, em *graph.Emitter)
	OnEnd   func(ctx *convert.ExportContext, doc *graph.Document)
}

var _ Observer = Hooks{}

// BeginExport calls OnBegin.
func (h Hooks) BeginExport(ctx *convert.ExportContext, em *graph.Emitter) {
	if h.OnBegin != nil {
		h.OnBegin(ctx, em)
	}
}

// ProcessNode calls OnNode.
func (h Hooks) ProcessNode(n host.Node, ctx *convert.ExportContext, em *graph.Emitter) {
	if h.OnNode != nil {
		h.OnNode(n, ctx, em)
	}
}

// EndExport calls OnEnd.
func (h Hooks) EndExport(ctx *convert.ExportContext, doc *graph.Document) {
	if h.OnEnd != nil {
		h.OnEnd(ctx, doc)
	}
}
