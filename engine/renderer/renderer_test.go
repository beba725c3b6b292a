package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
	"github.com/Carmen-Shannon/oxy-view/engine/viewport"
	"github.com/Carmen-Shannon/oxy-view/engine/visualizer"
)

type draw struct {
	name       string
	lights     int
	depthWrite bool
	blend      bool
}

type testScene struct {
	mgr   *viewport.Manager
	view  viewport.Viewport
	r     Renderer
	root  *scene.Node
	draws []draw
}

func newTestScene(t *testing.T) *testScene {
	t.Helper()
	l := loader.NewLoader()
	t.Cleanup(l.Close)

	ts := &testScene{r: NewForwardRenderer()}
	ts.mgr = viewport.NewManager(viewport.NewFixedCanvas(800, 600), gpu.NewRecorder(), viewport.WithLoader(l))
	t.Cleanup(ts.mgr.Close)
	ts.view = ts.mgr.CreateViewport(viewport.WithRenderer(ts.r))
	ts.root = ts.view.Camera().(camera.Camera).Node()
	return ts
}

func (ts *testScene) addMesh(name string, z float32, transparent bool) {
	m := mesh.NewMesh(name, mesh.WithTransparent(transparent), mesh.WithDrawFunc(
		func(job *mesh.MeshJob, state *statepool.State, lights []*light.LightJob) {
			ts.draws = append(ts.draws, draw{
				name:       job.Mesh().Name(),
				lights:     len(lights),
				depthWrite: state.DepthWrite,
				blend:      state.Blend,
			})
		}))
	ts.root.AddChild(scene.NewNode(name, scene.WithPosition(0, 0, z), scene.WithEntities(m)))
}

func (ts *testScene) addLight(l light.Light, z float32) {
	ts.root.AddChild(scene.NewNode("light", scene.WithPosition(0, 0, z), scene.WithEntities(l)))
}

func TestForwardRendererDrawOrder(t *testing.T) {
	ts := newTestScene(t)
	ts.addMesh("opaque-far", -8, false)
	ts.addMesh("transparent-near", -3, true)
	ts.addMesh("opaque-near", -3, false)
	ts.addMesh("transparent-far", -8, true)
	ts.addLight(light.NewLight(light.LightTypePoint, light.WithRange(20)), -5)

	ts.mgr.RenderFrame(0)

	want := []string{"opaque-near", "opaque-far", "transparent-far", "transparent-near"}
	if len(ts.draws) != len(want) {
		t.Fatalf("drew %d meshes, want %d", len(ts.draws), len(want))
	}
	for i, d := range ts.draws {
		if d.name != want[i] {
			t.Errorf("draw %d = %q, want %q", i, d.name, want[i])
		}
		if d.lights != 1 {
			t.Errorf("%s saw %d lights, want 1", d.name, d.lights)
		}
		transparent := i >= 2
		if d.blend != transparent || d.depthWrite == transparent {
			t.Errorf("%s state blend=%v depthWrite=%v, want blend=%v depthWrite=%v", d.name, d.blend, d.depthWrite, transparent, !transparent)
		}
	}

	if got, want := ts.r.Stats(), (Stats{Jobs: 5, Lights: 1, Meshes: 4}); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
	if got := ts.r.RQManager().Len(); got != 0 {
		t.Errorf("queues hold %d jobs after Render, want 0", got)
	}
	if got := len(ts.r.Lights()); got != 0 {
		t.Errorf("Lights() after Render = %d, want 0", got)
	}
}

func TestForwardRendererSkipsDisabledLights(t *testing.T) {
	ts := newTestScene(t)
	ts.addMesh("cube", -4, false)
	ts.addLight(light.NewDirectionalLight([3]float32{1, 1, 1}, [3]float32{0, -1, 0}), 0)
	ts.addLight(light.NewLight(light.LightTypePoint, light.WithEnabled(false)), -4)

	ts.mgr.RenderFrame(0)

	if len(ts.draws) != 1 || ts.draws[0].lights != 1 {
		t.Fatalf("draws = %+v, want one draw with one light", ts.draws)
	}
	if got := ts.r.Stats(); got.Lights != 1 || got.Jobs != 3 {
		t.Errorf("Stats() = %+v, want 1 light out of 3 jobs", got)
	}
}

type overlayVisualizer struct {
	*visualizer.Base
	applied int
	job     *countingJob
}

func (v *overlayVisualizer) Apply(rq *renderqueue.Manager, _ *statepool.StatePool) {
	v.applied++
	rq.Push(renderqueue.Overlay, v.job)
}

type countingJob struct{ drawn int }

func (j *countingJob) Draw(renderqueue.Renderer, *statepool.StatePool) { j.drawn++ }

func TestForwardRendererAppliesVisualizers(t *testing.T) {
	ts := newTestScene(t)
	vz := &overlayVisualizer{Base: visualizer.NewBase(1), job: &countingJob{}}
	ts.view.AddVisualizer(vz)

	ts.mgr.RenderFrame(0)
	ts.mgr.RenderFrame(0)

	if vz.applied != 2 {
		t.Errorf("Apply called %d times, want 2", vz.applied)
	}
	if vz.job.drawn != 2 {
		t.Errorf("overlay job drawn %d times, want 2", vz.job.drawn)
	}
}

func TestWithSortMode(t *testing.T) {
	r := NewForwardRenderer(WithQueueCount(6), WithSortMode(renderqueue.Opaque, renderqueue.SortNone), WithSortMode(5, renderqueue.SortBackToFront))
	rq := r.RQManager()
	if got := len(rq.Queues()); got != 6 {
		t.Fatalf("len(Queues()) = %d, want 6", got)
	}
	if got := rq.Queue(renderqueue.Opaque).SortMode(); got != renderqueue.SortNone {
		t.Errorf("Opaque sort mode = %v, want none", got)
	}
	if got := rq.Queue(5).SortMode(); got != renderqueue.SortBackToFront {
		t.Errorf("queue 5 sort mode = %v, want back-to-front", got)
	}
}

func TestRegister(t *testing.T) {
	l := loader.NewLoader()
	t.Cleanup(l.Close)
	Register(l)
	if !l.Registered(viewport.DefaultRendererName) {
		t.Errorf("Register did not bind %q", viewport.DefaultRendererName)
	}
}
