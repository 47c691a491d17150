package graph

// Decoder provides sequential decoding of a Stream.
// It tracks the tag position, the argument position and the nesting
// depth, so targets can write documents in a single pass.
//
// Example usage:
//
//	dec := NewDecoder(doc.Stream)
//	for dec.Next() {
//	    switch dec.Tag() {
//	    case TagTransform:
//	        t := doc.Pool.Transform(dec.TransformRef())
//	        // open transform
//	    case TagEnd:
//	        // close node
//	    }
//	}
type Decoder struct {
	s *Stream

	tagIdx int
	argIdx int

	// args of the current tag
	cur     []uint32
	current Tag
	depth   int
}

// NewDecoder creates a new decoder for the given stream.
// Returns nil if stream is nil.
func NewDecoder(s *Stream) *Decoder {
	if s == nil {
		return nil
	}
	return &Decoder{s: s}
}

// Reset resets the decoder to the beginning of s.
func (d *Decoder) Reset(s *Stream) {
	d.s = s
	d.tagIdx = 0
	d.argIdx = 0
	d.cur = nil
	d.current = 0
	d.depth = 0
}

// Next advances to the next tag in the stream.
// Returns false when iteration is complete or the argument stream is
// shorter than the tags require.
func (d *Decoder) Next() bool {
	if d.s == nil || d.tagIdx >= len(d.s.tags) {
		return false
	}
	t := d.s.tags[d.tagIdx]
	n := max(t.ArgCount(), 0)
	if d.argIdx+n > len(d.s.args) {
		return false
	}

	if d.current.IsBegin() {
		d.depth++
	}
	if t == TagEnd {
		d.depth--
	}

	d.current = t
	d.cur = d.s.args[d.argIdx : d.argIdx+n]
	d.argIdx += n
	d.tagIdx++
	return true
}

// Tag returns the current tag.
func (d *Decoder) Tag() Tag {
	return d.current
}

// Arg returns the i-th argument of the current tag, or InvalidRef when
// the tag has fewer arguments.
func (d *Decoder) Arg(i int) uint32 {
	if i < 0 || i >= len(d.cur) {
		return InvalidRef
	}
	return d.cur[i]
}

// Position returns the current position in the tag stream.
func (d *Decoder) Position() int {
	return d.tagIdx
}

// Depth returns the number of nodes enclosing the current tag. A node's
// begin and end tags report the same depth.
func (d *Decoder) Depth() int {
	return d.depth
}

// HasMore returns true if there are more tags to decode.
func (d *Decoder) HasMore() bool {
	return d.s != nil && d.tagIdx < len(d.s.tags)
}

// Peek returns the next tag without advancing the decoder.
// Returns 0 at end of stream.
func (d *Decoder) Peek() Tag {
	if !d.HasMore() {
		return 0
	}
	return d.s.tags[d.tagIdx]
}

// ---------------------------------------------------------------------------
// Typed argument accessors
// ---------------------------------------------------------------------------

// TransformRef returns the ref of the current TagTransform.
func (d *Decoder) TransformRef() TransformRef { return TransformRef(d.Arg(0)) }

// CullRef returns the ref of the current TagCullGroup or TagLOD.
func (d *Decoder) CullRef() CullRef { return CullRef(d.Arg(0)) }

// LODChildRef returns the ref of the current TagLODChild.
func (d *Decoder) LODChildRef() LODChildRef { return LODChildRef(d.Arg(0)) }

// VertexIndexDrawRef returns the ref of the current TagVertexIndexDraw.
func (d *Decoder) VertexIndexDrawRef() VertexIndexDrawRef { return VertexIndexDrawRef(d.Arg(0)) }

// LightRef returns the ref of the current TagLight.
func (d *Decoder) LightRef() LightRef { return LightRef(d.Arg(0)) }

// PipelineRef returns the ref of the current TagBindPipeline.
func (d *Decoder) PipelineRef() PipelineRef { return PipelineRef(d.Arg(0)) }

// DescriptorSetRef returns the ref of the current TagBindDescriptorSet.
func (d *Decoder) DescriptorSetRef() DescriptorSetRef { return DescriptorSetRef(d.Arg(0)) }

// VertexBuffersRef returns the ref of the current TagBindVertexBuffers.
func (d *Decoder) VertexBuffersRef() VertexBuffersRef { return VertexBuffersRef(d.Arg(0)) }

// IndexBufferRef returns the ref of the current TagBindIndexBuffer.
func (d *Decoder) IndexBufferRef() IndexBufferRef { return IndexBufferRef(d.Arg(0)) }

// DrawIndexedRef returns the ref of the current TagDrawIndexed.
func (d *Decoder) DrawIndexedRef() DrawIndexedRef { return DrawIndexedRef(d.Arg(0)) }

// ToStateGroup reports whether the current bind command attaches to
// the enclosing StateGroup.
func (d *Decoder) ToStateGroup() bool {
	return (d.current == TagBindPipeline || d.current == TagBindDescriptorSet) && d.Arg(1) != 0
}
