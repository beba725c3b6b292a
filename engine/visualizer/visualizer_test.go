package visualizer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
)

type fakeView struct{ id int }

func (v *fakeView) ID() int                     { return v.id }
func (v *fakeView) Name() string                { return "view" }
func (v *fakeView) Aspect() float32             { return 1 }
func (v *fakeView) CameraWorldPos() common.Vec3 { return common.Vec3{} }

func ordinals(list []Visualizer) []int {
	out := make([]int, len(list))
	for i, v := range list {
		out[i] = v.Ordinal()
	}
	return out
}

func TestInsertKeepsDescendingOrder(t *testing.T) {
	a := NewBase(1)
	b := NewBase(5)
	c := NewBase(3)
	d := NewBase(3)

	var list []Visualizer
	for _, v := range []Visualizer{a, b, c, d} {
		var ok bool
		list, ok = Insert(list, v)
		if !ok {
			t.Fatalf("Insert(%d) = false, want true", v.Ordinal())
		}
	}

	want := []int{5, 3, 3, 1}
	got := ordinals(list)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordinals = %v, want %v", got, want)
		}
	}
	if list[1] != c || list[2] != d {
		t.Error("equal ordinals did not keep insertion order")
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	v := NewBase(2)
	list, _ := Insert(nil, v)
	list, ok := Insert(list, v)
	if ok {
		t.Error("second Insert() = true, want false")
	}
	if len(list) != 1 {
		t.Errorf("len = %d, want 1", len(list))
	}
}

func TestBaseTracksViewports(t *testing.T) {
	b := NewBase(0)
	v1 := &fakeView{id: 1}
	v2 := &fakeView{id: 2}

	b.OnAddViewport(v1)
	b.OnAddViewport(v2)
	b.OnAddViewport(v1)
	if got := len(b.Viewports()); got != 2 {
		t.Fatalf("len(Viewports()) = %d, want 2", got)
	}

	b.OnRemoveViewport(v1)
	got := b.Viewports()
	if len(got) != 1 || got[0] != v2 {
		t.Errorf("Viewports() = %v, want [v2]", got)
	}
}
