package convert

import (
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/sgexport/graph"
	"github.com/gogpu/sgexport/host"
	"github.com/gogpu/sgexport/internal/coord"
	"github.com/gogpu/sgexport/internal/format"
)

// Submesh is a range of a mesh's index buffer.
type Submesh struct {
	FirstIndex uint32
	IndexCount uint32
}

// MeshInfo is a mesh in the exported coordinate system. Absent vertex
// streams are nil. The index buffer holds every submesh back to back.
type MeshInfo struct {
	ID string

	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	Tangents []mgl32.Vec4
	Colors   []mgl32.Vec4
	UV0      []mgl32.Vec2
	UV1      []mgl32.Vec2

	Indices   []uint32
	Submeshes []Submesh
	Use32Bit  bool
}

// Has reports whether the mesh carries stream a.
func (m *MeshInfo) Has(a format.VertexAttribute) bool {
	switch a {
	case format.AttributePosition:
		return len(m.Vertices) > 0
	case format.AttributeNormal:
		return len(m.Normals) > 0
	case format.AttributeTangent:
		return len(m.Tangents) > 0
	case format.AttributeColor:
		return len(m.Colors) > 0
	case format.AttributeUV0:
		return len(m.UV0) > 0
	case format.AttributeUV1:
		return len(m.UV1) > 0
	}
	return false
}

// Mesh converts a host mesh. It returns nil, and reports once per pass,
// when the mesh is unreadable or has no vertices or no indices in its
// first submesh.
func (c *ExportContext) Mesh(m host.Mesh) *MeshInfo {
	if m == nil {
		return nil
	}
	return c.meshes.GetOrCreate(m.InstanceID(), func() *MeshInfo {
		switch {
		case !m.Readable():
			c.Report.Add("Unable to export mesh '%s': mesh is not readable. Enable read/write in the import settings.", m.Name())
			return nil
		case len(m.Vertices()) == 0 || m.SubmeshCount() == 0 || len(m.Triangles(0)) == 0:
			c.Report.Add("Unable to export mesh '%s': mesh has no vertices or indices.", m.Name())
			return nil
		}
		return newMeshInfo(m)
	})
}

func newMeshInfo(m host.Mesh) *MeshInfo {
	mi := &MeshInfo{
		ID:       strconv.FormatInt(int64(m.InstanceID()), 10),
		Vertices: slices.Clone(m.Vertices()),
		Normals:  slices.Clone(m.Normals()),
		Tangents: slices.Clone(m.Tangents()),
		Colors:   slices.Clone(m.Colors()),
		UV0:      slices.Clone(m.UV0()),
		UV1:      slices.Clone(m.UV1()),
		Use32Bit: m.Use32BitIndices(),
	}
	coord.Vec3s(mi.Vertices)
	coord.Vec3s(mi.Normals)
	coord.Vec4s(mi.Tangents)

	for i := range m.SubmeshCount() {
		tris := m.Triangles(i)
		mi.Submeshes = append(mi.Submeshes, Submesh{
			FirstIndex: uint32(len(mi.Indices)), // #nosec G115 -- index counts fit in 32 bits
			IndexCount: uint32(len(tris)),       // #nosec G115
		})
		mi.Indices = append(mi.Indices, tris...)
	}
	coord.FlipWinding(mi.Indices)

	if !mi.Use32Bit && len(mi.Vertices) > 0xFFFF {
		mi.Use32Bit = true
	}
	return mi
}

// VertexBuffers returns the vertex streams of mi, shared by every draw
// of the mesh.
func (c *ExportContext) VertexBuffers(mi *MeshInfo) *graph.VertexBuffersData {
	return c.vertexBuffers.GetOrCreate(mi.ID, func() *graph.VertexBuffersData {
		return &graph.VertexBuffersData{
			ID:       mi.ID,
			Vertices: mi.Vertices,
			Normals:  mi.Normals,
			Tangents: mi.Tangents,
			Colors:   mi.Colors,
			UV0:      mi.UV0,
			UV1:      mi.UV1,
		}
	})
}

// IndexBuffer returns the index buffer of mi.
func (c *ExportContext) IndexBuffer(mi *MeshInfo) *graph.IndexBufferData {
	return c.indexBuffers.GetOrCreate(mi.ID, func() *graph.IndexBufferData {
		return &graph.IndexBufferData{
			ID:       mi.ID,
			Indices:  mi.Indices,
			Use32Bit: mi.Use32Bit,
		}
	})
}

// VertexIndexDraw returns a self-contained draw of every index of mi.
func (c *ExportContext) VertexIndexDraw(mi *MeshInfo) *graph.VertexIndexDrawData {
	return c.vertexIndexDraws.GetOrCreate(mi.ID, func() *graph.VertexIndexDrawData {
		return &graph.VertexIndexDrawData{
			ID:            mi.ID,
			Vertices:      c.VertexBuffers(mi),
			Indices:       c.IndexBuffer(mi),
			IndexCount:    uint32(len(mi.Indices)), // #nosec G115
			InstanceCount: 1,
		}
	})
}

// DrawIndexed returns the draw of one submesh of mi, or nil when the
// submesh does not exist. Its id is "<mesh id>-<submesh>".
func (c *ExportContext) DrawIndexed(mi *MeshInfo, submesh int) *graph.DrawIndexedData {
	if submesh < 0 || submesh >= len(mi.Submeshes) {
		return nil
	}
	id := mi.ID + "-" + strconv.Itoa(submesh)
	return c.drawIndexed.GetOrCreate(id, func() *graph.DrawIndexedData {
		s := mi.Submeshes[submesh]
		return &graph.DrawIndexedData{
			ID:            id,
			IndexCount:    s.IndexCount,
			FirstIndex:    s.FirstIndex,
			InstanceCount: 1,
		}
	})
}
