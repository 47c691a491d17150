package graph

import "fmt"

// Emitter writes nodes and commands into a Document while enforcing
// strict nesting.
//
// Errors are sticky: after the first misuse every further call is a
// no-op, and Err and Close report the error.
//
// Emitter is not safe for concurrent use.
type Emitter struct {
	doc   *Document
	open  []Tag
	stack []*Scope
	err   error
}

// Scope is an open node. End closes it; calling End again is a no-op.
type Scope struct {
	e     *Emitter
	tag   Tag
	ended bool
}

// NewEmitter creates an emitter that appends to doc.
func NewEmitter(doc *Document) *Emitter {
	return &Emitter{
		doc:   doc,
		open:  make([]Tag, 0, 16),
		stack: make([]*Scope, 0, 16),
	}
}

// Document returns the document being written.
func (e *Emitter) Document() *Document {
	return e.doc
}

// Err returns the first error recorded by the emitter.
func (e *Emitter) Err() error {
	return e.err
}

// Depth returns the number of open nodes.
func (e *Emitter) Depth() int {
	return len(e.stack)
}

// Close reports the first error, or ErrUnbalanced when nodes are still
// open. It does not close the open nodes.
func (e *Emitter) Close() error {
	if e.err != nil {
		return e.err
	}
	if len(e.stack) != 0 {
		return fmt.Errorf("%w: %d nodes left open, innermost %v", ErrUnbalanced, len(e.stack), e.open[len(e.open)-1])
	}
	return nil
}

func (e *Emitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *Emitter) begin(t Tag, args ...uint32) *Scope {
	s := &Scope{e: e, tag: t}
	if e.err != nil {
		s.ended = true
		return s
	}
	if err := checkParent(e.open, t); err != nil {
		e.fail(err)
		s.ended = true
		return s
	}
	e.doc.Stream.push(t, args...)
	e.open = append(e.open, t)
	e.stack = append(e.stack, s)
	return s
}

func (e *Emitter) command(t Tag, toStateGroup bool, args ...uint32) {
	if e.err != nil {
		return
	}
	if err := checkCommand(e.open, t, toStateGroup); err != nil {
		e.fail(err)
		return
	}
	e.doc.Stream.push(t, args...)
}

func (e *Emitter) nilRecord(t Tag) *Scope {
	e.fail(fmt.Errorf("graph: %v: nil record", t))
	return &Scope{e: e, tag: t, ended: true}
}

// Tag returns the node kind of the scope.
func (s *Scope) Tag() Tag {
	return s.tag
}

// End closes the node. It fails with ErrScopeOrder when a node opened
// later is still open.
func (s *Scope) End() error {
	if s.ended {
		return nil
	}
	e := s.e
	if e.err != nil {
		s.ended = true
		return e.err
	}
	top := len(e.stack) - 1
	if top < 0 {
		e.fail(fmt.Errorf("%w: %v ended twice", ErrUnbalanced, s.tag))
		return e.err
	}
	if e.stack[top] != s {
		e.fail(fmt.Errorf("%w: %v ended while %v is open", ErrScopeOrder, s.tag, e.open[top]))
		return e.err
	}
	s.ended = true
	e.stack = e.stack[:top]
	e.open = e.open[:top]
	e.doc.Stream.push(TagEnd)
	return nil
}

// ---------------------------------------------------------------------------
// Nodes
// ---------------------------------------------------------------------------

// BeginGroup opens a Group node.
func (e *Emitter) BeginGroup() *Scope {
	return e.begin(TagGroup)
}

// BeginTransform opens a Transform node.
func (e *Emitter) BeginTransform(d *TransformData) *Scope {
	if d == nil {
		return e.nilRecord(TagTransform)
	}
	return e.begin(TagTransform, uint32(e.doc.Pool.AddTransform(d)))
}

// BeginCullGroup opens a CullGroup node.
func (e *Emitter) BeginCullGroup(d *CullData) *Scope {
	if d == nil {
		return e.nilRecord(TagCullGroup)
	}
	return e.begin(TagCullGroup, uint32(e.doc.Pool.AddCull(d)))
}

// BeginLOD opens an LOD node bounded by d.
func (e *Emitter) BeginLOD(d *CullData) *Scope {
	if d == nil {
		return e.nilRecord(TagLOD)
	}
	return e.begin(TagLOD, uint32(e.doc.Pool.AddCull(d)))
}

// BeginLODChild opens one level of the enclosing LOD node.
func (e *Emitter) BeginLODChild(d *LODChildData) *Scope {
	if d == nil {
		return e.nilRecord(TagLODChild)
	}
	return e.begin(TagLODChild, uint32(e.doc.Pool.AddLODChild(d)))
}

// BeginStateGroup opens a StateGroup node.
func (e *Emitter) BeginStateGroup() *Scope {
	return e.begin(TagStateGroup)
}

// BeginCommands opens a Commands node.
func (e *Emitter) BeginCommands() *Scope {
	return e.begin(TagCommands)
}

// BeginVertexIndexDraw opens a VertexIndexDraw node.
func (e *Emitter) BeginVertexIndexDraw(d *VertexIndexDrawData) *Scope {
	if d == nil {
		return e.nilRecord(TagVertexIndexDraw)
	}
	return e.begin(TagVertexIndexDraw, uint32(e.doc.Pool.AddVertexIndexDraw(d)))
}

// BeginLight opens a Light node.
func (e *Emitter) BeginLight(d *LightData) *Scope {
	if d == nil {
		return e.nilRecord(TagLight)
	}
	return e.begin(TagLight, uint32(e.doc.Pool.AddLight(d)))
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

func flag(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// BindPipeline binds a pipeline. With toStateGroup set the command
// attaches to the innermost StateGroup; otherwise it must be issued
// inside a Commands node.
func (e *Emitter) BindPipeline(d *PipelineData, toStateGroup bool) {
	if d == nil {
		e.nilRecord(TagBindPipeline)
		return
	}
	e.command(TagBindPipeline, toStateGroup, uint32(e.doc.Pool.AddPipeline(d)), flag(toStateGroup))
}

// BindDescriptorSet binds a descriptor set, with the same placement
// rules as BindPipeline.
func (e *Emitter) BindDescriptorSet(d *DescriptorSetData, toStateGroup bool) {
	if d == nil {
		e.nilRecord(TagBindDescriptorSet)
		return
	}
	e.command(TagBindDescriptorSet, toStateGroup, uint32(e.doc.Pool.AddDescriptorSet(d)), flag(toStateGroup))
}

// BindVertexBuffers binds vertex streams inside a Commands node.
func (e *Emitter) BindVertexBuffers(d *VertexBuffersData) {
	if d == nil {
		e.nilRecord(TagBindVertexBuffers)
		return
	}
	e.command(TagBindVertexBuffers, false, uint32(e.doc.Pool.AddVertexBuffers(d)))
}

// BindIndexBuffer binds an index buffer inside a Commands node.
func (e *Emitter) BindIndexBuffer(d *IndexBufferData) {
	if d == nil {
		e.nilRecord(TagBindIndexBuffer)
		return
	}
	e.command(TagBindIndexBuffer, false, uint32(e.doc.Pool.AddIndexBuffer(d)))
}

// DrawIndexed issues an indexed draw inside a Commands node.
func (e *Emitter) DrawIndexed(d *DrawIndexedData) {
	if d == nil {
		e.nilRecord(TagDrawIndexed)
		return
	}
	e.command(TagDrawIndexed, false, uint32(e.doc.Pool.AddDrawIndexed(d)))
}
