package viewport

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

type fakeRenderer struct {
	rq      *renderqueue.Manager
	renders []Viewport
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{rq: renderqueue.NewManager()}
}

func (r *fakeRenderer) RQManager() *renderqueue.Manager { return r.rq }

func (r *fakeRenderer) Render(view Viewport, _ *statepool.StatePool) {
	r.renders = append(r.renders, view)
	r.rq.Clear()
}

// fakeLoader records Load requests and lets the test complete them by hand.
type fakeLoader struct {
	loads     []string
	callbacks []loader.Callback
}

var _ loader.Loader = &fakeLoader{}

func (l *fakeLoader) Register(string, loader.Factory) {}
func (l *fakeLoader) Registered(string) bool         { return true }
func (l *fakeLoader) Pump() int                      { return 0 }
func (l *fakeLoader) Pending() int                   { return len(l.callbacks) }
func (l *fakeLoader) Close()                         {}

func (l *fakeLoader) Load(name string, cb loader.Callback) *loader.Future {
	l.loads = append(l.loads, name)
	l.callbacks = append(l.callbacks, cb)
	return nil
}

func (l *fakeLoader) resolve(i int, value any, err error) {
	l.callbacks[i](value, err)
}

type fixture struct {
	canvas *FixedCanvas
	dev    *gpu.Recorder
	loader *fakeLoader
	mgr    *Manager
}

func newFixture(t *testing.T, opts ...ManagerBuilderOption) *fixture {
	t.Helper()
	f := &fixture{
		canvas: NewFixedCanvas(800, 600),
		dev:    gpu.NewRecorder(),
		loader: &fakeLoader{},
	}
	f.mgr = NewManager(f.canvas, f.dev, append([]ManagerBuilderOption{WithLoader(f.loader)}, opts...)...)
	t.Cleanup(f.mgr.Close)
	return f
}

func ops(cmds []gpu.Command) []gpu.Op {
	out := make([]gpu.Op, len(cmds))
	for i, c := range cmds {
		out[i] = c.Op
	}
	return out
}

func approx(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}
