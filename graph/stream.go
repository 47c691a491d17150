package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed streams.
var (
	// ErrUnbalanced is returned when a stream ends with open nodes or
	// closes a node that was never opened.
	ErrUnbalanced = errors.New("graph: unbalanced node stream")

	// ErrScopeOrder is returned when a scope is ended while a node opened
	// after it is still open.
	ErrScopeOrder = errors.New("graph: scope ended out of order")

	// ErrNoStateScope is returned when a command is issued outside the
	// node kind that accepts it.
	ErrNoStateScope = errors.New("graph: command outside of a state scope")

	// ErrInvalidParent is returned when a node is opened inside a node
	// kind that cannot contain it.
	ErrInvalidParent = errors.New("graph: node not allowed in parent")
)

// Stream holds the tag and argument streams of a document.
type Stream struct {
	tags []Tag
	args []uint32
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{
		tags: make([]Tag, 0, 256),
		args: make([]uint32, 0, 256),
	}
}

// Reset clears the stream for reuse without deallocating memory.
func (s *Stream) Reset() {
	s.tags = s.tags[:0]
	s.args = s.args[:0]
}

func (s *Stream) push(t Tag, args ...uint32) {
	s.tags = append(s.tags, t)
	s.args = append(s.args, args...)
}

// Len returns the number of tags in the stream.
func (s *Stream) Len() int {
	return len(s.tags)
}

// Tags returns the tag stream (read-only access for iteration).
func (s *Stream) Tags() []Tag {
	return s.tags
}

// Args returns the argument stream.
func (s *Stream) Args() []uint32 {
	return s.args
}

// Kinds returns the sequence of node and command tags, without the end
// markers. Two exports of the same scene produce equal sequences.
func (s *Stream) Kinds() []Tag {
	out := make([]Tag, 0, len(s.tags))
	for _, t := range s.tags {
		if t != TagEnd {
			out = append(out, t)
		}
	}
	return out
}

// Hash computes a 64-bit FNV-1a hash over the tag and argument streams.
// Records are identified by their refs, so the hash does not depend on
// the document id.
func (s *Stream) Hash() uint64 {
	const (
		fnvOffset = 14695981039346656037
		fnvPrime  = 1099511628211
	)

	hash := uint64(fnvOffset)

	for _, t := range s.tags {
		hash ^= uint64(t)
		hash *= fnvPrime
	}

	for _, v := range s.args {
		hash ^= uint64(v)
		hash *= fnvPrime
	}

	return hash
}

// Clone creates a deep copy of the stream.
func (s *Stream) Clone() *Stream {
	clone := &Stream{
		tags: make([]Tag, len(s.tags)),
		args: make([]uint32, len(s.args)),
	}
	copy(clone.tags, s.tags)
	copy(clone.args, s.args)
	return clone
}

// Validate checks that the stream is well nested and that every command
// appears where it is accepted. It returns nil for an empty stream.
func (s *Stream) Validate() error {
	var open []Tag
	argIdx := 0
	for pos, t := range s.tags {
		n := t.ArgCount()
		if n < 0 {
			return fmt.Errorf("graph: tag 0x%02x at %d: unknown tag", byte(t), pos)
		}
		if argIdx+n > len(s.args) {
			return fmt.Errorf("graph: %v at %d: argument stream truncated", t, pos)
		}
		args := s.args[argIdx : argIdx+n]
		argIdx += n

		switch {
		case t == TagEnd:
			if len(open) == 0 {
				return fmt.Errorf("%w: end at %d closes nothing", ErrUnbalanced, pos)
			}
			open = open[:len(open)-1]

		case t.IsBegin():
			if err := checkParent(open, t); err != nil {
				return fmt.Errorf("%w at %d", err, pos)
			}
			open = append(open, t)

		case t.IsCommand():
			toState := (t == TagBindPipeline || t == TagBindDescriptorSet) && args[1] != 0
			if err := checkCommand(open, t, toState); err != nil {
				return fmt.Errorf("%w at %d", err, pos)
			}
		}
	}
	if argIdx != len(s.args) {
		return fmt.Errorf("graph: %d trailing arguments", len(s.args)-argIdx)
	}
	if len(open) != 0 {
		return fmt.Errorf("%w: %d nodes left open", ErrUnbalanced, len(open))
	}
	return nil
}

// checkParent reports whether a node of kind t may open inside the
// innermost node of open.
func checkParent(open []Tag, t Tag) error {
	var parent Tag
	if len(open) > 0 {
		parent = open[len(open)-1]
	}
	switch {
	case parent.IsLeaf():
		return fmt.Errorf("%w: %v inside %v", ErrInvalidParent, t, parent)
	case parent == TagCommands:
		return fmt.Errorf("%w: %v inside Commands", ErrInvalidParent, t)
	case parent == TagLOD && t != TagLODChild:
		return fmt.Errorf("%w: %v inside LOD", ErrInvalidParent, t)
	case t == TagLODChild && parent != TagLOD:
		return fmt.Errorf("%w: LODChild outside LOD", ErrInvalidParent)
	}
	return nil
}

// checkCommand reports whether a command may be issued given the open
// nodes. State commands attach to the innermost StateGroup; all others
// must be issued directly inside a Commands node.
func checkCommand(open []Tag, t Tag, toStateGroup bool) error {
	if toStateGroup {
		for i := len(open) - 1; i >= 0; i-- {
			if open[i] == TagStateGroup {
				return nil
			}
		}
		return fmt.Errorf("%w: %v needs an open StateGroup", ErrNoStateScope, t)
	}
	if len(open) == 0 || open[len(open)-1] != TagCommands {
		return fmt.Errorf("%w: %v needs an enclosing Commands node", ErrNoStateScope, t)
	}
	return nil
}

// Stats summarizes a stream.
type Stats struct {
	// Counts holds the number of occurrences of each node and command tag.
	Counts   map[Tag]int
	Nodes    int
	Commands int
	MaxDepth int
}

// Stats counts the nodes and commands in the stream.
func (s *Stream) Stats() Stats {
	st := Stats{Counts: make(map[Tag]int)}
	depth := 0
	for _, t := range s.tags {
		switch {
		case t == TagEnd:
			depth--
		case t.IsBegin():
			st.Counts[t]++
			st.Nodes++
			depth++
			st.MaxDepth = max(st.MaxDepth, depth)
		case t.IsCommand():
			st.Counts[t]++
			st.Commands++
		}
	}
	return st
}
