package graph

import "testing"

func TestDecoderNil(t *testing.T) {
	if NewDecoder(nil) != nil {
		t.Error("NewDecoder(nil) should return nil")
	}
}

func TestDecoderWalk(t *testing.T) {
	e := newTestEmitter()
	xfData := &TransformData{Matrix: identityMatrix()}
	p := &PipelineData{ID: "pipe"}

	root := e.BeginGroup()
	xf := e.BeginTransform(xfData)
	sg := e.BeginStateGroup()
	e.BindPipeline(p, true)
	_ = sg.End()
	_ = xf.End()
	_ = root.End()
	doc := e.Document()

	type step struct {
		tag   Tag
		depth int
	}
	want := []step{
		{TagGroup, 0},
		{TagTransform, 1},
		{TagStateGroup, 2},
		{TagBindPipeline, 3},
		{TagEnd, 2},
		{TagEnd, 1},
		{TagEnd, 0},
	}

	dec := NewDecoder(doc.Stream)
	for i, w := range want {
		if !dec.Next() {
			t.Fatalf("Next() = false at %d", i)
		}
		if dec.Tag() != w.tag {
			t.Errorf("step %d: Tag() = %v, want %v", i, dec.Tag(), w.tag)
		}
		if dec.Depth() != w.depth {
			t.Errorf("step %d (%v): Depth() = %d, want %d", i, dec.Tag(), dec.Depth(), w.depth)
		}
		if dec.Position() != i+1 {
			t.Errorf("step %d: Position() = %d, want %d", i, dec.Position(), i+1)
		}
		switch dec.Tag() {
		case TagTransform:
			if got := doc.Pool.Transform(dec.TransformRef()); got != xfData {
				t.Errorf("Transform ref resolves to %p, want %p", got, xfData)
			}
		case TagBindPipeline:
			if got := doc.Pool.Pipeline(dec.PipelineRef()); got != p {
				t.Errorf("Pipeline ref resolves to %p, want %p", got, p)
			}
			if !dec.ToStateGroup() {
				t.Error("ToStateGroup() = false, want true")
			}
		}
	}
	if dec.Next() {
		t.Error("Next() = true past end")
	}
	if dec.HasMore() {
		t.Error("HasMore() = true past end")
	}
}

func TestDecoderArgOutOfRange(t *testing.T) {
	s := NewStream()
	s.push(TagGroup)
	s.push(TagEnd)
	dec := NewDecoder(s)
	dec.Next()
	if got := dec.Arg(0); got != InvalidRef {
		t.Errorf("Arg(0) = %d, want InvalidRef", got)
	}
	if got := dec.Peek(); got != TagEnd {
		t.Errorf("Peek() = %v, want End", got)
	}
}

func TestDecoderReset(t *testing.T) {
	s := NewStream()
	s.push(TagGroup)
	s.push(TagEnd)
	dec := NewDecoder(s)
	for dec.Next() {
	}
	dec.Reset(s)
	if !dec.Next() || dec.Tag() != TagGroup {
		t.Error("Reset did not rewind the decoder")
	}
}

func TestPoolRefs(t *testing.T) {
	p := NewPool()
	a := &LightData{Type: LightSpot}
	b := &LightData{Type: LightPoint}
	ra := p.AddLight(a)
	rb := p.AddLight(b)
	if ra == rb {
		t.Fatal("distinct records share a ref")
	}
	if p.AddLight(a) != ra {
		t.Error("re-adding a record returned a new ref")
	}
	if p.Light(rb) != b {
		t.Error("Light(ref) returned the wrong record")
	}
	if p.Light(LightRef(99)) != nil {
		t.Error("out of range ref should resolve to nil")
	}
	if got := p.Counts().Lights; got != 2 {
		t.Errorf("Lights = %d, want 2", got)
	}
	p.Clear()
	if got := p.Counts().Lights; got != 0 {
		t.Errorf("Lights after Clear = %d, want 0", got)
	}
}
