package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

type fakeView struct{ aspect float32 }

func (v *fakeView) ID() int                     { return 1 }
func (v *fakeView) Name() string                { return "view" }
func (v *fakeView) Aspect() float32             { return v.aspect }
func (v *fakeView) CameraWorldPos() common.Vec3 { return common.Vec3{} }

type probe struct {
	radius float32
	calls  int
	view   scene.View
	node   *scene.Node
}

func (p *probe) Render(view scene.View, _ scene.Entity, n *scene.Node, _ *renderqueue.Manager) {
	p.calls++
	p.view = view
	p.node = n
}

func (p *probe) BoundingRadius() float32 { return p.radius }

func newTestScene(t *testing.T) (root *scene.Node, cam Camera) {
	t.Helper()
	root = scene.NewNode("root")
	cam = NewCameraNode("cam", WithFov(math.Pi/2), WithTarget(0, 0, 0))
	cam.SetPosition(0, 0, 10)
	root.AddChild(cam.Node())
	return root, cam
}

func TestFillRenderQueuesCulls(t *testing.T) {
	root, cam := newTestScene(t)
	view := &fakeView{aspect: 1}
	cam.OnSetViewport(view)

	inside := &probe{radius: 1}
	behind := &probe{radius: 1}
	unbounded := &probe{radius: -1}
	hidden := &probe{radius: 1}

	insideNode := scene.NewNode("inside", scene.WithEntities(inside))
	root.AddChild(insideNode)
	root.AddChild(scene.NewNode("behind", scene.WithPosition(0, 0, 50), scene.WithEntities(behind)))
	root.AddChild(scene.NewNode("unbounded", scene.WithPosition(0, 0, 50), scene.WithEntities(unbounded)))
	root.AddChild(scene.NewNode("hidden", scene.WithEnabled(false), scene.WithEntities(hidden)))

	cam.FillRenderQueues(renderqueue.NewManager(), statepool.NewStatePool())

	if inside.calls != 1 {
		t.Errorf("inside.calls = %d, want 1", inside.calls)
	}
	if inside.view != view || inside.node != insideNode {
		t.Error("Render did not receive the viewport and the entity's node")
	}
	if behind.calls != 0 {
		t.Errorf("behind.calls = %d, want 0", behind.calls)
	}
	if unbounded.calls != 1 {
		t.Errorf("unbounded.calls = %d, want 1", unbounded.calls)
	}
	if hidden.calls != 0 {
		t.Errorf("hidden.calls = %d, want 0", hidden.calls)
	}
	if got := cam.Culled(); got != 1 {
		t.Errorf("Culled() = %d, want 1", got)
	}
	// inside, unbounded and the camera itself
	if got := cam.Visible(); got != 3 {
		t.Errorf("Visible() = %d, want 3", got)
	}
}

func TestFillRenderQueuesWithoutViewport(t *testing.T) {
	root, cam := newTestScene(t)
	p := &probe{radius: -1}
	root.AddEntity(p)

	cam.FillRenderQueues(renderqueue.NewManager(), statepool.NewStatePool())
	if p.calls != 0 {
		t.Errorf("calls = %d, want 0 without a viewport", p.calls)
	}
}

func TestAspectFollowsViewport(t *testing.T) {
	cam := NewCameraNode("cam")
	if got := cam.Aspect(); got != 1 {
		t.Errorf("Aspect() without viewport = %v, want 1", got)
	}

	cam.OnSetViewport(&fakeView{aspect: 2})
	if !cam.AutoAspect() {
		t.Error("AutoAspect() = false, want true")
	}
	if got := cam.Aspect(); got != 2 {
		t.Errorf("Aspect() = %v, want 2", got)
	}

	cam.SetAspect(1.5)
	if got := cam.Aspect(); got != 1.5 {
		t.Errorf("Aspect() = %v, want 1.5", got)
	}

	cam.SetAspect(0)
	if got := cam.Aspect(); got != 2 {
		t.Errorf("Aspect() after reset = %v, want 2", got)
	}
}

func TestWorldPos(t *testing.T) {
	detached := NewCamera("detached")
	if got := detached.WorldPos(); got != (common.Vec3{}) {
		t.Errorf("WorldPos() = %v, want origin", got)
	}

	parent := scene.NewNode("rig", scene.WithPosition(1, 2, 3))
	cam := NewCameraNode("cam")
	parent.AddChild(cam.Node())
	cam.SetPosition(1, 0, 0)
	if got := cam.WorldPos(); got != (common.Vec3{2, 2, 3}) {
		t.Errorf("WorldPos() = %v, want (2,2,3)", got)
	}
}

func TestAttachToMovesEntity(t *testing.T) {
	cam := NewCameraNode("cam")
	old := cam.Node()
	n := scene.NewNode("other")

	cam.AttachTo(n)

	if cam.Node() != n {
		t.Error("Node() is not the new node")
	}
	if len(old.Entities()) != 0 {
		t.Error("old node still holds the camera")
	}
	if len(n.Entities()) != 1 {
		t.Errorf("new node has %d entities, want 1", len(n.Entities()))
	}
}
