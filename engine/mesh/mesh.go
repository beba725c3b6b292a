// Package mesh implements drawable geometry entities.
//
// A Mesh does not own GPU resources itself. It carries a DrawFunc that the
// renderer calls with the render state and the lights gathered for the frame,
// which keeps the mesh independent of the device backend in use.
package mesh

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// DrawFunc issues the draw calls of a mesh.
//
// Parameters:
//   - job: the mesh job being drawn
//   - state: the render state chosen by the renderer
//   - lights: the light jobs drained before geometry in the current frame
type DrawFunc func(job *MeshJob, state *statepool.State, lights []*light.LightJob)

// Mesh is a drawable scene entity.
type Mesh interface {
	scene.Entity

	Name() string

	// Transparent reports whether the mesh is drawn in the transparent queue with blending.
	Transparent() bool
	SetTransparent(transparent bool)

	// QueueIndex returns the queue the mesh pushes into. Without an explicit
	// index it is renderqueue.Opaque or renderqueue.Transparent.
	QueueIndex() int

	// SetQueueIndex overrides the queue. A negative index restores automatic selection.
	SetQueueIndex(idx int)

	SetBoundingRadius(radius float32)
	DrawFunc() DrawFunc
	SetDrawFunc(fn DrawFunc)
}

type meshImpl struct {
	mu          *sync.RWMutex
	name        string
	transparent bool
	queueIndex  int
	radius      float32
	draw        DrawFunc
}

var _ Mesh = &meshImpl{}

// NewMesh creates an opaque mesh with a unit bounding radius.
//
// Parameters:
//   - name: the mesh name
//   - opts: optional configuration
//
// Returns:
//   - Mesh: the mesh
func NewMesh(name string, opts ...MeshBuilderOption) Mesh {
	m := &meshImpl{
		mu:         &sync.RWMutex{},
		name:       name,
		queueIndex: -1,
		radius:     1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Render pushes one MeshJob whose distance is measured from the viewport camera to the node.
func (m *meshImpl) Render(view scene.View, e scene.Entity, n *scene.Node, rq *renderqueue.Manager) {
	job := &MeshJob{
		mesh:   m,
		entity: e,
		node:   n,
		view:   view,
	}
	job.SetDistance(common.Distance(view.CameraWorldPos(), n.WorldPosition()))
	rq.Push(m.QueueIndex(), job)
}

func (m *meshImpl) BoundingRadius() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.radius
}

func (m *meshImpl) SetBoundingRadius(radius float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.radius = radius
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) Transparent() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.transparent
}

func (m *meshImpl) SetTransparent(transparent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transparent = transparent
}

func (m *meshImpl) QueueIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.queueIndex >= 0:
		return m.queueIndex
	case m.transparent:
		return renderqueue.Transparent
	default:
		return renderqueue.Opaque
	}
}

func (m *meshImpl) SetQueueIndex(idx int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueIndex = max(idx, -1)
}

func (m *meshImpl) DrawFunc() DrawFunc {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.draw
}

func (m *meshImpl) SetDrawFunc(fn DrawFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draw = fn
}
