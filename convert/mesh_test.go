package convert

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/sgexport/host/inmem"
	"github.com/gogpu/sgexport/internal/format"
)

func TestMeshConversion(t *testing.T) {
	c := newTestContext(t)
	src := inmem.Triangle(7)

	mi := c.Mesh(src)
	require.NotNil(t, mi)
	assert.Equal(t, "7", mi.ID)
	assert.Equal(t, []mgl32.Vec3{{0, 0, 0}, {-1, 0, 0}, {0, 1, 0}}, mi.Vertices)
	assert.Equal(t, []uint32{2, 1, 0}, mi.Indices, "winding must be flipped")
	assert.Equal(t, []Submesh{{FirstIndex: 0, IndexCount: 3}}, mi.Submeshes)
	assert.Equal(t, []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}}, src.Positions[1:], "host data must not change")

	assert.True(t, mi.Has(format.AttributeNormal))
	assert.True(t, mi.Has(format.AttributeUV0))
	assert.False(t, mi.Has(format.AttributeTangent))
	assert.False(t, mi.Has(format.AttributeColor))
}

func TestMeshSharedRecords(t *testing.T) {
	c := newTestContext(t)
	src := inmem.Quad(3)

	mi := c.Mesh(src)
	require.NotNil(t, mi)
	assert.Same(t, mi, c.Mesh(src))
	assert.Same(t, c.VertexBuffers(mi), c.VertexBuffers(c.Mesh(src)))
	assert.Same(t, c.IndexBuffer(mi), c.IndexBuffer(c.Mesh(src)))
	assert.Equal(t, 1, c.meshes.Len())
	assert.Equal(t, 1, c.vertexBuffers.Len())
	assert.Equal(t, 1, c.indexBuffers.Len())
}

func TestMeshSkipped(t *testing.T) {
	tests := []struct {
		name string
		mesh *inmem.Mesh
		want string
	}{
		{"unreadable", &inmem.Mesh{ID: 1, Label: "locked", Unreadable: true}, "not readable"},
		{"no vertices", &inmem.Mesh{ID: 2, Label: "empty"}, "no vertices"},
		{"no indices", &inmem.Mesh{ID: 3, Label: "points", Positions: []mgl32.Vec3{{}}, Submeshes: [][]uint32{{}}}, "no vertices or indices"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			assert.Nil(t, c.Mesh(tt.mesh))
			assert.Nil(t, c.Mesh(tt.mesh))
			require.Equal(t, 1, c.Report.Len(), "a skipped mesh is reported once")
			assert.Contains(t, c.Report.Lines()[0], tt.mesh.Label)
			assert.Contains(t, c.Report.Lines()[0], tt.want)
		})
	}
}

func TestDrawIndexed(t *testing.T) {
	c := newTestContext(t)
	mi := c.Mesh(inmem.Cube(3, 1, true))
	require.NotNil(t, mi)
	require.Len(t, mi.Submeshes, 6)

	d := c.DrawIndexed(mi, 2)
	require.NotNil(t, d)
	assert.Equal(t, "3-2", d.ID)
	assert.Equal(t, uint32(12), d.FirstIndex)
	assert.Equal(t, uint32(6), d.IndexCount)
	assert.Equal(t, uint32(1), d.InstanceCount)
	assert.Same(t, d, c.DrawIndexed(mi, 2))

	assert.Nil(t, c.DrawIndexed(mi, 6))
	assert.Nil(t, c.DrawIndexed(mi, -1))
}

func TestVertexIndexDraw(t *testing.T) {
	c := newTestContext(t)
	mi := c.Mesh(inmem.Cube(4, 2, false))
	require.NotNil(t, mi)

	d := c.VertexIndexDraw(mi)
	assert.Equal(t, "4", d.ID)
	assert.Equal(t, uint32(36), d.IndexCount)
	assert.Equal(t, uint32(1), d.InstanceCount)
	assert.Same(t, c.VertexBuffers(mi), d.Vertices)
	assert.Same(t, c.IndexBuffer(mi), d.Indices)
}

func TestMeshWidensLargeIndexRange(t *testing.T) {
	c := newTestContext(t)
	m := &inmem.Mesh{
		ID:        9,
		Positions: make([]mgl32.Vec3, 0x10000+1),
		Submeshes: [][]uint32{{0, 1, 0x10000}},
	}
	mi := c.Mesh(m)
	require.NotNil(t, mi)
	assert.True(t, mi.Use32Bit)
	assert.True(t, c.IndexBuffer(mi).Use32Bit)
}
