// Package convert turns host resources into graph records.
//
// Every conversion goes through an ExportContext, which owns the record
// caches of one export pass. Asking twice for the same host resource
// returns the same record pointer, so documents share the record instead
// of duplicating it.
//
// Converters do not fail on routine problems such as unreadable meshes or
// unsupported texture formats. They substitute a placeholder or skip the
// resource and add an entry to the context's Report.
//
// Basic usage:
//
//	ctx := convert.NewExportContext(shadermap.NewDir("mappings"))
//	ctx.Begin()
//	mesh := ctx.Mesh(hostMesh)
//	mat := ctx.Material(hostMaterial)
//	pipeline := ctx.Pipeline(mesh, mat)
//	report := ctx.End()
package convert

import (
	"log/slog"

	"github.com/gogpu/sgexport/cache"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/shadermap"
)

// imageKey identifies a converted image. Layer is -1 for a whole texture
// and the layer index for one layer of an array.
type imageKey struct {
	id    host.InstanceID
	layer int
}

// materialKey identifies a converted material. The same host material
// converted through two mappings yields two records.
type materialKey struct {
	id      host.InstanceID
	mapping string
}

// ExportContext owns the caches of one export pass.
//
// ExportContext is not safe for concurrent use. Separate contexts may run
// concurrently.
type ExportContext struct {
	// Log receives cache statistics and report entries. It defaults to a
	// logger that discards everything.
	Log *slog.Logger

	// Report collects the diagnostics of the current pass.
	Report *Report

	// Mappings finds the shader mapping of each material.
	Mappings *shadermap.Dir

	meshes           *cache.Store[host.InstanceID, *MeshInfo]
	vertexBuffers    *cache.Store[string, *graph.VertexBuffersData]
	indexBuffers     *cache.Store[string, *graph.IndexBufferData]
	vertexIndexDraws *cache.Store[string, *graph.VertexIndexDrawData]
	drawIndexed      *cache.Store[string, *graph.DrawIndexedData]
	images           *cache.Store[imageKey, *graph.ImageData]
	arrays           *cache.Store[host.InstanceID, []*graph.ImageData]
	descriptorImages *cache.Store[string, *graph.DescriptorImageData]
	shaderStages     *cache.Store[string, *graph.ShaderStagesData]
	pipelines        *cache.Store[string, *graph.PipelineData]
	materials        *cache.Store[materialKey, *MaterialInfo]
	terrains         *cache.Store[host.InstanceID, *TerrainInfo]

	stores      []cache.Collector
	placeholder *graph.ImageData
	scratch     *scratchPool
}

// NewExportContext creates a context that resolves materials through
// mappings. A nil mappings finds no mapping at all.
func NewExportContext(mappings *shadermap.Dir) *ExportContext {
	if mappings == nil {
		mappings = shadermap.NewDir("")
	}
	c := &ExportContext{
		Log:      slog.New(slog.DiscardHandler),
		Mappings: mappings,

		meshes:           cache.New[host.InstanceID, *MeshInfo]("meshes"),
		vertexBuffers:    cache.New[string, *graph.VertexBuffersData]("vertex buffers"),
		indexBuffers:     cache.New[string, *graph.IndexBufferData]("index buffers"),
		vertexIndexDraws: cache.New[string, *graph.VertexIndexDrawData]("vertex index draws"),
		drawIndexed:      cache.New[string, *graph.DrawIndexedData]("draw indexed"),
		images:           cache.New[imageKey, *graph.ImageData]("images"),
		arrays:           cache.New[host.InstanceID, []*graph.ImageData]("image arrays"),
		descriptorImages: cache.New[string, *graph.DescriptorImageData]("descriptor images"),
		shaderStages:     cache.New[string, *graph.ShaderStagesData]("shader stages"),
		pipelines:        cache.New[string, *graph.PipelineData]("pipelines"),
		materials:        cache.New[materialKey, *MaterialInfo]("materials"),
		terrains:         cache.New[host.InstanceID, *TerrainInfo]("terrains"),

		scratch: newScratchPool(4),
	}
	c.stores = []cache.Collector{
		c.meshes, c.vertexBuffers, c.indexBuffers, c.vertexIndexDraws,
		c.drawIndexed, c.images, c.arrays, c.descriptorImages,
		c.shaderStages, c.pipelines, c.materials, c.terrains,
	}
	c.Report = NewReport(c.Log)
	return c
}

// Begin starts a pass: caches are cleared and the report is emptied.
func (c *ExportContext) Begin() {
	c.Clear()
	c.Report = NewReport(c.Log)
	c.Log.Info("export begin", "mappings", c.Mappings.Root())
}

// End finishes a pass. It logs cache statistics and the report, clears
// the caches and returns the report of the pass.
func (c *ExportContext) End() *Report {
	for _, st := range c.Stats() {
		c.Log.Debug("cache", "stats", st.String())
	}
	report := c.Report
	if report.Len() > 0 {
		c.Log.Info("export report", "entries", report.Len(), "report", report.String())
	}
	c.Clear()
	c.Report = NewReport(c.Log)
	c.Log.Info("export end")
	return report
}

// Clear drops every cached record, including loaded shader mappings.
func (c *ExportContext) Clear() {
	for _, s := range c.stores {
		s.Clear()
	}
	c.Mappings.Clear()
	c.placeholder = nil
}

// Stats returns the statistics of every cache, the mapping directory
// last.
func (c *ExportContext) Stats() []cache.Stats {
	out := make([]cache.Stats, 0, len(c.stores)+1)
	for _, s := range c.stores {
		out = append(out, s.Stats())
	}
	return append(out, c.Mappings.Stats())
}
