package walker

import (
	"slices"

	"github.com/gogpu/sgexport/convert"
	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
)

// materialDraws lists the submeshes drawn with one material.
type materialDraws struct {
	mat       *convert.MaterialInfo
	submeshes []int
}

// shaderGroup holds the materials sharing one set of shader stages, in
// first-use order.
type shaderGroup struct {
	stages string
	draws  []*materialDraws
}

// groupMaterials pairs each submesh with its material and groups the
// materials by shader stages. Materials past the submesh count, missing
// materials and materials without a mapping are skipped.
func groupMaterials(ctx *convert.ExportContext, mi *convert.MeshInfo, materials []host.Material) []*shaderGroup {
	var groups []*shaderGroup
	for i, m := range materials {
		if i >= len(mi.Submeshes) {
			break
		}
		if m == nil {
			continue
		}
		info := ctx.Material(m)
		if info == nil || info.ShaderStages == nil {
			continue
		}

		gi := slices.IndexFunc(groups, func(g *shaderGroup) bool { return g.stages == info.ShaderStages.ID })
		if gi < 0 {
			groups = append(groups, &shaderGroup{stages: info.ShaderStages.ID})
			gi = len(groups) - 1
		}
		g := groups[gi]

		di := slices.IndexFunc(g.draws, func(d *materialDraws) bool { return d.mat == info })
		if di < 0 {
			g.draws = append(g.draws, &materialDraws{mat: info})
			di = len(g.draws) - 1
		}
		g.draws[di].submeshes = append(g.draws[di].submeshes, i)
	}
	return groups
}

// emitMesh emits the mesh of n drawn by r. Nothing is emitted for a mesh
// that fails to convert or has no exportable material. A mesh with several submeshes
// gets one StateGroup and Commands pair per shader group with a
// DrawIndexed per submesh; a single submesh becomes one VertexIndexDraw.
func (w *Walker) emitMesh(n host.Node, r host.Renderer) {
	m := n.Mesh()
	if m == nil || r == nil {
		return
	}
	mi := w.ctx.Mesh(m)
	if mi == nil {
		return
	}
	groups := groupMaterials(w.ctx, mi, r.Materials())
	if len(groups) == 0 {
		w.ctx.Log.Debug("mesh has no exportable material", "node", n.Name(), "mesh", m.Name())
		return
	}

	// Only meshes that draw something get a CullGroup.
	if w.opts.AutoAddCull {
		cull := w.em.BeginCullGroup(convert.Cull(n, r.Bounds()))
		defer cull.End()
	}

	if len(mi.Submeshes) > 1 {
		for _, g := range groups {
			w.emitSubmeshes(mi, g)
		}
		return
	}

	mat := groups[0].draws[0].mat
	state := w.em.BeginStateGroup()
	w.em.BindPipeline(w.ctx.Pipeline(mi, mat), true)
	bindDescriptors(w.em, mat.Descriptors, true)
	_ = w.em.BeginVertexIndexDraw(w.ctx.VertexIndexDraw(mi)).End()
	_ = state.End()
}

func (w *Walker) emitSubmeshes(mi *convert.MeshInfo, g *shaderGroup) {
	state := w.em.BeginStateGroup()
	defer state.End()

	w.em.BindPipeline(w.ctx.Pipeline(mi, g.draws[0].mat), true)

	cmds := w.em.BeginCommands()
	defer cmds.End()

	w.em.BindVertexBuffers(w.ctx.VertexBuffers(mi))
	w.em.BindIndexBuffer(w.ctx.IndexBuffer(mi))
	for _, d := range g.draws {
		bindDescriptors(w.em, d.mat.Descriptors, false)
		for _, s := range d.submeshes {
			w.em.DrawIndexed(w.ctx.DrawIndexed(mi, s))
		}
	}
}

// bindDescriptors binds set unless it is empty.
func bindDescriptors(em *graph.Emitter, set *graph.DescriptorSetData, toStateGroup bool) {
	if set == nil || set.Len() == 0 {
		return
	}
	em.BindDescriptorSet(set, toStateGroup)
}

// emitTerrain emits a terrain as one StateGroup around a VertexIndexDraw.
func (w *Walker) emitTerrain(t host.Terrain) {
	ti := w.ctx.Terrain(t)
	if ti == nil || ti.Pipeline == nil {
		return
	}
	state := w.em.BeginStateGroup()
	w.em.BindPipeline(ti.Pipeline, true)
	bindDescriptors(w.em, ti.Descriptors, true)
	_ = w.em.BeginVertexIndexDraw(w.ctx.VertexIndexDraw(ti.Mesh)).End()
	_ = state.End()
}

// emitSkybox emits the skybox state block ahead of the roots.
func (w *Walker) emitSkybox(t host.Texture) {
	sky := w.ctx.Skybox(t)
	if sky == nil {
		return
	}
	state := w.em.BeginStateGroup()
	w.em.BindPipeline(sky.Pipeline, true)
	bindDescriptors(w.em, sky.Descriptors, true)
	_ = w.em.BeginVertexIndexDraw(sky.Draw).End()
	_ = state.End()
}
