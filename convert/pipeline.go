package convert

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/internal/format"
	"github.com/gogpu/sgexport/shadermap"
)

// PipelineID derives the id of a pipeline from its vertex input flags,
// its blend flag, its descriptor bindings and its shader stages.
func PipelineID(d *graph.PipelineData) string {
	var b strings.Builder
	for _, f := range []bool{d.HasNormals, d.HasTangents, d.HasColors} {
		b.WriteByte(flagDigit(f))
	}
	fmt.Fprintf(&b, "%d", d.UVChannelCount)
	b.WriteByte(flagDigit(d.UseAlpha))
	fmt.Fprintf(&b, "-%d", len(d.DescriptorBindings))
	for _, db := range d.DescriptorBindings {
		fmt.Fprintf(&b, ":%d.%d.%d.%d", db.Binding, db.Type, db.Count, db.Stages)
	}
	if d.ShaderStages != nil {
		b.WriteString("-" + d.ShaderStages.ID)
	}
	return b.String()
}

func flagDigit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

// Pipeline returns the pipeline drawing mi with mat. Vertex streams the
// mapping does not bind under the material's defines are left out.
// Pipelines with equal ids share one record.
func (c *ExportContext) Pipeline(mi *MeshInfo, mat *MaterialInfo) *graph.PipelineData {
	if mi == nil || mat == nil {
		return nil
	}
	bind := func(a format.VertexAttribute) bool {
		return mi.Has(a) && shouldBind(mat.Mapping, a, mat.CustomDefines)
	}
	uvs := 0
	if bind(format.AttributeUV0) {
		uvs = 1
		if bind(format.AttributeUV1) {
			uvs = 2
		}
	}
	return c.pipeline(&graph.PipelineData{
		HasNormals:         bind(format.AttributeNormal),
		HasTangents:        bind(format.AttributeTangent),
		HasColors:          bind(format.AttributeColor),
		UVChannelCount:     uvs,
		UseAlpha:           mat.UseAlpha,
		DescriptorBindings: mat.DescriptorBindings,
		ShaderStages:       mat.ShaderStages,
	})
}

func shouldBind(m *shadermap.ShaderMapping, a format.VertexAttribute, defines []string) bool {
	return m == nil || m.ShouldBind(a, defines)
}

// pipeline assigns the id of d and returns the cached record with that
// id, filling in the WebGPU layouts on first use.
func (c *ExportContext) pipeline(d *graph.PipelineData) *graph.PipelineData {
	d.ID = PipelineID(d)
	return c.pipelines.GetOrCreate(d.ID, func() *graph.PipelineData {
		d.VertexLayouts = vertexLayouts(d)
		for _, db := range d.DescriptorBindings {
			d.BindGroupEntries = append(d.BindGroupEntries, format.BindGroupLayoutEntry(db.Binding, db.Type, db.Stages))
		}
		c.Log.Debug("pipeline created", "id", d.ID)
		return d
	})
}

// vertexLayouts lists one buffer layout per bound stream, in binding
// order.
func vertexLayouts(d *graph.PipelineData) []gputypes.VertexBufferLayout {
	out := []gputypes.VertexBufferLayout{format.VertexLayout(format.AttributePosition)}
	if d.HasNormals {
		out = append(out, format.VertexLayout(format.AttributeNormal))
	}
	if d.HasTangents {
		out = append(out, format.VertexLayout(format.AttributeTangent))
	}
	if d.HasColors {
		out = append(out, format.VertexLayout(format.AttributeColor))
	}
	if d.UVChannelCount > 0 {
		out = append(out, format.VertexLayout(format.AttributeUV0))
	}
	if d.UVChannelCount > 1 {
		out = append(out, format.VertexLayout(format.AttributeUV1))
	}
	return out
}
