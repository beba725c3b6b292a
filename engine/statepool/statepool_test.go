package statepool

import "testing"

func TestAcquireDefaults(t *testing.T) {
	p := NewStatePool()
	s := p.Acquire()
	if !s.DepthTest || !s.DepthWrite || !s.ColorWrite {
		t.Errorf("Acquire() = %+v, want depth test, depth write and color write enabled", *s)
	}
	if s.Blend || s.BlendMode != BlendNone || s.CullFace != CullBack {
		t.Errorf("Acquire() = %+v, want no blending and back-face culling", *s)
	}
}

func TestResetReusesStates(t *testing.T) {
	p := NewStatePool()
	a := p.Acquire()
	b := p.Acquire()
	a.Blend = true
	a.Tag = "mesh"

	if got := p.InUse(); got != 2 {
		t.Fatalf("InUse() = %d, want 2", got)
	}

	p.Reset()
	if got := p.InUse(); got != 0 {
		t.Errorf("InUse() after Reset = %d, want 0", got)
	}
	if got := p.Frame(); got != 1 {
		t.Errorf("Frame() = %d, want 1", got)
	}

	c := p.Acquire()
	d := p.Acquire()
	if (c != a && c != b) || (d != a && d != b) || c == d {
		t.Error("Acquire() after Reset did not reuse released states")
	}
	for _, s := range []*State{c, d} {
		if s.Blend || s.Tag != nil {
			t.Errorf("reused state = %+v, want defaults", *s)
		}
	}
	if got := p.Allocated(); got != 2 {
		t.Errorf("Allocated() = %d, want 2", got)
	}
}

func TestAllocatedGrowsOnlyWhenFreeListEmpty(t *testing.T) {
	p := NewStatePool()
	for frame := 0; frame < 5; frame++ {
		for i := 0; i < 3; i++ {
			p.Acquire()
		}
		p.Reset()
	}
	if got := p.Allocated(); got != 3 {
		t.Errorf("Allocated() = %d, want 3", got)
	}
	p.Acquire()
	p.Acquire()
	p.Acquire()
	p.Acquire()
	if got := p.Allocated(); got != 4 {
		t.Errorf("Allocated() = %d, want 4", got)
	}
}
