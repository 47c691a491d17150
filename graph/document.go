package graph

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Document is the output of one export pass.
type Document struct {
	// ID is unique per document. It is written to the document header
	// and is not part of the stream hash.
	ID     uuid.UUID
	Stream *Stream
	Pool   *Pool
}

// NewDocument creates an empty document with a fresh id.
func NewDocument() *Document {
	return &Document{
		ID:     uuid.New(),
		Stream: NewStream(),
		Pool:   NewPool(),
	}
}

// Reset clears the document and assigns a new id.
func (d *Document) Reset() {
	d.ID = uuid.New()
	d.Stream.Reset()
	d.Pool.Clear()
}

// Validate checks the stream and that every ref resolves to a record.
func (d *Document) Validate() error {
	if err := d.Stream.Validate(); err != nil {
		return err
	}
	dec := NewDecoder(d.Stream)
	for dec.Next() {
		if !d.resolves(dec) {
			return fmt.Errorf("graph: %v at %d: dangling ref %d", dec.Tag(), dec.Position()-1, dec.Arg(0))
		}
	}
	return nil
}

func (d *Document) resolves(dec *Decoder) bool {
	switch dec.Tag() {
	case TagTransform:
		return d.Pool.Transform(dec.TransformRef()) != nil
	case TagCullGroup, TagLOD:
		return d.Pool.Cull(dec.CullRef()) != nil
	case TagLODChild:
		return d.Pool.LODChild(dec.LODChildRef()) != nil
	case TagVertexIndexDraw:
		return d.Pool.VertexIndexDraw(dec.VertexIndexDrawRef()) != nil
	case TagLight:
		return d.Pool.Light(dec.LightRef()) != nil
	case TagBindPipeline:
		return d.Pool.Pipeline(dec.PipelineRef()) != nil
	case TagBindDescriptorSet:
		return d.Pool.DescriptorSet(dec.DescriptorSetRef()) != nil
	case TagBindVertexBuffers:
		return d.Pool.VertexBuffers(dec.VertexBuffersRef()) != nil
	case TagBindIndexBuffer:
		return d.Pool.IndexBuffer(dec.IndexBufferRef()) != nil
	case TagDrawIndexed:
		return d.Pool.DrawIndexed(dec.DrawIndexedRef()) != nil
	default:
		return true
	}
}

// Outline returns the node structure as nested braces, for example
// "Group{Transform{StateGroup{VertexIndexDraw}}}". Commands are omitted.
func (d *Document) Outline() string {
	var b strings.Builder
	dec := NewDecoder(d.Stream)
	// Whether the node at each depth has written a child yet.
	var hasChild []bool
	for dec.Next() {
		t := dec.Tag()
		switch {
		case t.IsBegin():
			if n := len(hasChild); n > 0 {
				if hasChild[n-1] {
					b.WriteByte(',')
				} else {
					b.WriteByte('{')
				}
				hasChild[n-1] = true
			} else if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(t.String())
			hasChild = append(hasChild, false)
		case t == TagEnd:
			n := len(hasChild)
			if n == 0 {
				continue
			}
			if hasChild[n-1] {
				b.WriteByte('}')
			}
			hasChild = hasChild[:n-1]
		}
	}
	return b.String()
}
