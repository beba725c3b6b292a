// Package renderer implements the forward renderer viewports draw with by default.
//
// The forward renderer drains its render queues in index order. The light
// queue comes first, so by the time opaque and transparent meshes are drawn
// the lights visible in the viewport are known and passed to each mesh.
package renderer

import (
	"context"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/mesh"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
	"github.com/Carmen-Shannon/oxy-view/engine/viewport"
)

// ModuleName is the loader module name the forward renderer registers under.
const ModuleName = viewport.DefaultRendererName

// Stats counts the work done by the last Render call.
type Stats struct {
	Jobs   int
	Lights int
	Meshes int
}

// Renderer defines the interface of the forward renderer.
type Renderer interface {
	viewport.Renderer
	light.Drawer
	mesh.Drawer

	// Lights returns the enabled lights drained so far in the current Render call.
	//
	// Returns:
	//   - []*light.LightJob: a copy of the frame's light list
	Lights() []*light.LightJob

	// Stats returns the counters of the last completed Render call.
	//
	// Returns:
	//   - Stats: jobs, lights and meshes drawn
	Stats() Stats
}

type forwardRenderer struct {
	mu *sync.Mutex

	rq          *renderqueue.Manager
	queueOpts   []renderqueue.ManagerBuilderOption
	sortModes   map[int]renderqueue.SortMode
	frameLights []*light.LightJob
	current     Stats
	last        Stats
}

var _ Renderer = &forwardRenderer{}

// NewForwardRenderer creates a forward renderer with its own render queues.
//
// Parameters:
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
func NewForwardRenderer(options ...RendererBuilderOption) Renderer {
	r := &forwardRenderer{
		mu:        &sync.Mutex{},
		sortModes: make(map[int]renderqueue.SortMode),
	}
	for _, option := range options {
		option(r)
	}
	r.rq = renderqueue.NewManager(r.queueOpts...)
	for idx, mode := range r.sortModes {
		if idx >= 0 && idx < len(r.rq.Queues()) {
			r.rq.Queue(idx).SetSortMode(mode)
		}
	}
	return r
}

// Register binds the forward renderer factory to ModuleName on l. Every load
// produces a new renderer configured with options.
//
// Parameters:
//   - l: the loader
//   - options: options applied to every renderer the factory creates
func Register(l loader.Loader, options ...RendererBuilderOption) {
	l.Register(ModuleName, func(context.Context) (any, error) {
		return NewForwardRenderer(options...), nil
	})
}

func (r *forwardRenderer) RQManager() *renderqueue.Manager {
	return r.rq
}

func (r *forwardRenderer) Render(view viewport.Viewport, sp *statepool.StatePool) {
	for _, vz := range view.Visualizers() {
		vz.Apply(r.rq, sp)
	}

	r.mu.Lock()
	r.frameLights = r.frameLights[:0]
	r.current = Stats{}
	r.mu.Unlock()

	for _, q := range r.rq.Queues() {
		q.Sort()
		for _, job := range q.Jobs() {
			job.Draw(r, sp)
			r.mu.Lock()
			r.current.Jobs++
			r.mu.Unlock()
		}
	}
	r.rq.Clear()

	r.mu.Lock()
	r.last = r.current
	clear(r.frameLights)
	r.frameLights = r.frameLights[:0]
	r.mu.Unlock()
}

func (r *forwardRenderer) DrawLight(job *light.LightJob, _ *statepool.StatePool) {
	if !job.Light().Enabled() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameLights = append(r.frameLights, job)
	r.current.Lights++
}

func (r *forwardRenderer) DrawMesh(job *mesh.MeshJob, sp *statepool.StatePool) {
	m := job.Mesh()
	state := sp.Acquire()
	state.Tag = job
	if m.Transparent() {
		state.DepthWrite = false
		state.Blend = true
		state.BlendMode = statepool.BlendAlpha
	}

	lights := r.Lights()
	if draw := m.DrawFunc(); draw != nil {
		draw(job, state, lights)
	}

	r.mu.Lock()
	r.current.Meshes++
	r.mu.Unlock()
}

func (r *forwardRenderer) Lights() []*light.LightJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.frameLights)
}

func (r *forwardRenderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
