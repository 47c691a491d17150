// Package graph provides the strictly nested node stream that an export
// pass produces.
//
// A document is a pair of streams plus a record pool:
//   - A compact tags stream (1 byte per node begin, end, or command)
//   - An argument stream of uint32 values (pool refs and flags)
//   - A Pool holding the records the refs point to
//
// Nodes are opened with an Emitter Begin method and closed through the
// returned Scope. Every begin tag is matched by exactly one TagEnd, and
// commands only appear inside the node kinds that accept them.
package graph

// Tag represents a single-byte entry in the node stream.
// Tags are organized into groups by their high nibble:
//
//	0x1X: Node begin markers
//	0x2X: Node end marker
//	0x3X: State and draw commands
type Tag byte

// Tag constants define all stream entries.
// Each tag has a fixed argument layout documented in its comment.
const (
	// TagGroup opens a plain grouping node.
	// Args: none
	TagGroup Tag = 0x10

	// TagTransform opens a node with a local transform.
	// Args: TransformRef
	TagTransform Tag = 0x11

	// TagCullGroup opens a node culled by a bounding sphere.
	// Args: CullRef
	TagCullGroup Tag = 0x12

	// TagLOD opens a level-of-detail switch. Only TagLODChild may be
	// opened directly inside it.
	// Args: CullRef (bounding sphere of the whole group)
	TagLOD Tag = 0x13

	// TagLODChild opens one detail level.
	// Args: LODChildRef
	TagLODChild Tag = 0x14

	// TagStateGroup opens a node whose children inherit bound state.
	// Args: none
	TagStateGroup Tag = 0x15

	// TagCommands opens a node that records a command sequence.
	// Args: none
	TagCommands Tag = 0x16

	// TagVertexIndexDraw opens a self-contained indexed draw. It has
	// no children.
	// Args: VertexIndexDrawRef
	TagVertexIndexDraw Tag = 0x17

	// TagLight opens a light source. It has no children.
	// Args: LightRef
	TagLight Tag = 0x18

	// TagEnd closes the innermost open node.
	// Args: none
	TagEnd Tag = 0x20

	// TagBindPipeline binds a graphics pipeline.
	// Args: PipelineRef, addToStateGroup (0 or 1)
	TagBindPipeline Tag = 0x30

	// TagBindDescriptorSet binds a descriptor set.
	// Args: DescriptorSetRef, addToStateGroup (0 or 1)
	TagBindDescriptorSet Tag = 0x31

	// TagBindVertexBuffers binds the vertex streams of a mesh.
	// Args: VertexBuffersRef
	TagBindVertexBuffers Tag = 0x32

	// TagBindIndexBuffer binds the index buffer of a mesh.
	// Args: IndexBufferRef
	TagBindIndexBuffer Tag = 0x33

	// TagDrawIndexed draws a range of the bound index buffer.
	// Args: DrawIndexedRef
	TagDrawIndexed Tag = 0x34
)

// String returns a human-readable name for the tag.
func (t Tag) String() string {
	switch t {
	case TagGroup:
		return "Group"
	case TagTransform:
		return "Transform"
	case TagCullGroup:
		return "CullGroup"
	case TagLOD:
		return "LOD"
	case TagLODChild:
		return "LODChild"
	case TagStateGroup:
		return "StateGroup"
	case TagCommands:
		return "Commands"
	case TagVertexIndexDraw:
		return "VertexIndexDraw"
	case TagLight:
		return "Light"
	case TagEnd:
		return "End"
	case TagBindPipeline:
		return "BindPipeline"
	case TagBindDescriptorSet:
		return "BindDescriptorSet"
	case TagBindVertexBuffers:
		return "BindVertexBuffers"
	case TagBindIndexBuffer:
		return "BindIndexBuffer"
	case TagDrawIndexed:
		return "DrawIndexed"
	default:
		return "Unknown"
	}
}

// IsBegin returns true if the tag opens a node.
func (t Tag) IsBegin() bool {
	return t >= TagGroup && t <= TagLight
}

// IsCommand returns true if the tag is a state or draw command.
func (t Tag) IsCommand() bool {
	return t >= TagBindPipeline && t <= TagDrawIndexed
}

// IsLeaf returns true for node kinds that never have children.
func (t Tag) IsLeaf() bool {
	return t == TagVertexIndexDraw || t == TagLight
}

// IsValid returns true for every defined tag.
func (t Tag) IsValid() bool {
	return t.IsBegin() || t == TagEnd || t.IsCommand()
}

// ArgCount returns the number of uint32 values the tag consumes from
// the argument stream. Returns -1 for undefined tags.
func (t Tag) ArgCount() int {
	switch t {
	case TagGroup, TagStateGroup, TagCommands, TagEnd:
		return 0
	case TagTransform, TagCullGroup, TagLOD, TagLODChild, TagVertexIndexDraw, TagLight:
		return 1
	case TagBindVertexBuffers, TagBindIndexBuffer, TagDrawIndexed:
		return 1
	case TagBindPipeline, TagBindDescriptorSet:
		return 2
	default:
		return -1
	}
}
