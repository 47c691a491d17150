package graph

// InvalidRef marks a reference that points to no record.
const InvalidRef = ^uint32(0)

// Typed references into a Pool. The zero value refers to the first
// record of its kind.
type (
	TransformRef       uint32
	CullRef            uint32
	LODChildRef        uint32
	VertexIndexDrawRef uint32
	LightRef           uint32
	PipelineRef        uint32
	DescriptorSetRef   uint32
	VertexBuffersRef   uint32
	IndexBufferRef     uint32
	DrawIndexedRef     uint32
)

// slab stores records of one kind. Adding the same pointer twice
// returns the first reference.
type slab[T any] struct {
	items []*T
	index map[*T]uint32
}

func newSlab[T any](capacity int) slab[T] {
	return slab[T]{
		items: make([]*T, 0, capacity),
		index: make(map[*T]uint32, capacity),
	}
}

func (s *slab[T]) add(v *T) uint32 {
	if ref, ok := s.index[v]; ok {
		return ref
	}
	s.items = append(s.items, v)
	// #nosec G115 -- pool size is bounded by available memory, well under uint32 max
	ref := uint32(len(s.items) - 1)
	s.index[v] = ref
	return ref
}

func (s *slab[T]) get(ref uint32) *T {
	if int(ref) >= len(s.items) {
		return nil
	}
	return s.items[ref]
}

func (s *slab[T]) clear() {
	s.items = s.items[:0]
	clear(s.index)
}

// Pool stores the records referenced by a stream.
// Records are stored by pointer and never copied, so callers must not
// modify a record after adding it.
//
// Pool is not safe for concurrent use.
type Pool struct {
	transforms       slab[TransformData]
	culls            slab[CullData]
	lodChildren      slab[LODChildData]
	vertexIndexDraws slab[VertexIndexDrawData]
	lights           slab[LightData]
	pipelines        slab[PipelineData]
	descriptorSets   slab[DescriptorSetData]
	vertexBuffers    slab[VertexBuffersData]
	indexBuffers     slab[IndexBufferData]
	drawIndexed      slab[DrawIndexedData]
}

// NewPool creates an empty pool with pre-allocated capacity.
func NewPool() *Pool {
	return &Pool{
		transforms:       newSlab[TransformData](64),
		culls:            newSlab[CullData](16),
		lodChildren:      newSlab[LODChildData](8),
		vertexIndexDraws: newSlab[VertexIndexDrawData](32),
		lights:           newSlab[LightData](4),
		pipelines:        newSlab[PipelineData](8),
		descriptorSets:   newSlab[DescriptorSetData](16),
		vertexBuffers:    newSlab[VertexBuffersData](16),
		indexBuffers:     newSlab[IndexBufferData](16),
		drawIndexed:      newSlab[DrawIndexedData](32),
	}
}

// AddTransform adds a transform and returns its reference.
func (p *Pool) AddTransform(d *TransformData) TransformRef {
	return TransformRef(p.transforms.add(d))
}

// Transform returns the record for ref, or nil if ref is out of range.
func (p *Pool) Transform(ref TransformRef) *TransformData {
	return p.transforms.get(uint32(ref))
}

// AddCull adds a bounding sphere and returns its reference.
func (p *Pool) AddCull(d *CullData) CullRef {
	return CullRef(p.culls.add(d))
}

// Cull returns the record for ref, or nil if ref is out of range.
func (p *Pool) Cull(ref CullRef) *CullData {
	return p.culls.get(uint32(ref))
}

// AddLODChild adds a detail level and returns its reference.
func (p *Pool) AddLODChild(d *LODChildData) LODChildRef {
	return LODChildRef(p.lodChildren.add(d))
}

// LODChild returns the record for ref, or nil if ref is out of range.
func (p *Pool) LODChild(ref LODChildRef) *LODChildData {
	return p.lodChildren.get(uint32(ref))
}

// AddVertexIndexDraw adds a draw and returns its reference.
func (p *Pool) AddVertexIndexDraw(d *VertexIndexDrawData) VertexIndexDrawRef {
	return VertexIndexDrawRef(p.vertexIndexDraws.add(d))
}

// VertexIndexDraw returns the record for ref, or nil if ref is out of range.
func (p *Pool) VertexIndexDraw(ref VertexIndexDrawRef) *VertexIndexDrawData {
	return p.vertexIndexDraws.get(uint32(ref))
}

// AddLight adds a light and returns its reference.
func (p *Pool) AddLight(d *LightData) LightRef {
	return LightRef(p.lights.add(d))
}

// Light returns the record for ref, or nil if ref is out of range.
func (p *Pool) Light(ref LightRef) *LightData {
	return p.lights.get(uint32(ref))
}

// AddPipeline adds a pipeline and returns its reference.
func (p *Pool) AddPipeline(d *PipelineData) PipelineRef {
	return PipelineRef(p.pipelines.add(d))
}

// Pipeline returns the record for ref, or nil if ref is out of range.
func (p *Pool) Pipeline(ref PipelineRef) *PipelineData {
	return p.pipelines.get(uint32(ref))
}

// AddDescriptorSet adds a descriptor set and returns its reference.
func (p *Pool) AddDescriptorSet(d *DescriptorSetData) DescriptorSetRef {
	return DescriptorSetRef(p.descriptorSets.add(d))
}

// DescriptorSet returns the record for ref, or nil if ref is out of range.
func (p *Pool) DescriptorSet(ref DescriptorSetRef) *DescriptorSetData {
	return p.descriptorSets.get(uint32(ref))
}

// AddVertexBuffers adds vertex streams and returns their reference.
func (p *Pool) AddVertexBuffers(d *VertexBuffersData) VertexBuffersRef {
	return VertexBuffersRef(p.vertexBuffers.add(d))
}

// VertexBuffers returns the record for ref, or nil if ref is out of range.
func (p *Pool) VertexBuffers(ref VertexBuffersRef) *VertexBuffersData {
	return p.vertexBuffers.get(uint32(ref))
}

// AddIndexBuffer adds an index buffer and returns its reference.
func (p *Pool) AddIndexBuffer(d *IndexBufferData) IndexBufferRef {
	return IndexBufferRef(p.indexBuffers.add(d))
}

// IndexBuffer returns the record for ref, or nil if ref is out of range.
func (p *Pool) IndexBuffer(ref IndexBufferRef) *IndexBufferData {
	return p.indexBuffers.get(uint32(ref))
}

// AddDrawIndexed adds an indexed draw and returns its reference.
func (p *Pool) AddDrawIndexed(d *DrawIndexedData) DrawIndexedRef {
	return DrawIndexedRef(p.drawIndexed.add(d))
}

// DrawIndexed returns the record for ref, or nil if ref is out of range.
func (p *Pool) DrawIndexed(ref DrawIndexedRef) *DrawIndexedData {
	return p.drawIndexed.get(uint32(ref))
}

// PoolCounts holds the number of records of each kind.
type PoolCounts struct {
	Transforms       int
	Culls            int
	LODChildren      int
	VertexIndexDraws int
	Lights           int
	Pipelines        int
	DescriptorSets   int
	VertexBuffers    int
	IndexBuffers     int
	DrawIndexed      int
}

// Counts returns the number of records of each kind.
func (p *Pool) Counts() PoolCounts {
	return PoolCounts{
		Transforms:       len(p.transforms.items),
		Culls:            len(p.culls.items),
		LODChildren:      len(p.lodChildren.items),
		VertexIndexDraws: len(p.vertexIndexDraws.items),
		Lights:           len(p.lights.items),
		Pipelines:        len(p.pipelines.items),
		DescriptorSets:   len(p.descriptorSets.items),
		VertexBuffers:    len(p.vertexBuffers.items),
		IndexBuffers:     len(p.indexBuffers.items),
		DrawIndexed:      len(p.drawIndexed.items),
	}
}

// Clear removes all records from the pool.
// This does not release the underlying memory; use NewPool for that.
func (p *Pool) Clear() {
	p.transforms.clear()
	p.culls.clear()
	p.lodChildren.clear()
	p.vertexIndexDraws.clear()
	p.lights.clear()
	p.pipelines.clear()
	p.descriptorSets.clear()
	p.vertexBuffers.clear()
	p.indexBuffers.clear()
	p.drawIndexed.clear()
}
