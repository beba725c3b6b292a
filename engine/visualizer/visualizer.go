// Package visualizer defines render passes that viewports attach to adjust
// queued work before the renderer drains it (debug overlays, wireframe
// forcing, bounding volume display and the like).
package visualizer

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// Visualizer is attached to one or more viewports. Viewports keep their
// visualizers sorted by descending Ordinal and the renderer applies them in that order.
type Visualizer interface {
	// Ordinal returns the sort key. Higher ordinals run first.
	Ordinal() int

	// OnAddViewport is called after the visualizer was added to a viewport.
	OnAddViewport(view scene.View)

	// OnRemoveViewport is called after the visualizer was removed from a viewport.
	OnRemoveViewport(view scene.View)

	// Viewports returns the viewports the visualizer is attached to.
	Viewports() []scene.View

	// Apply runs before the renderer drains its queues for a viewport.
	//
	// Parameters:
	//   - rq: the renderer's queue manager, filled for the current viewport
	//   - sp: the state pool for the current frame
	Apply(rq *renderqueue.Manager, sp *statepool.StatePool)
}

// Base implements viewport tracking and a no-op Apply. Embed it and override Apply.
type Base struct {
	mu        sync.Mutex
	ordinal   int
	viewports []scene.View
}

var _ Visualizer = &Base{}

// NewBase creates a Base with the given ordinal.
func NewBase(ordinal int) *Base {
	return &Base{ordinal: ordinal}
}

func (b *Base) Ordinal() int {
	return b.ordinal
}

func (b *Base) OnAddViewport(view scene.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.viewports, view) {
		b.viewports = append(b.viewports, view)
	}
}

func (b *Base) OnRemoveViewport(view scene.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := slices.Index(b.viewports, view); i >= 0 {
		b.viewports = slices.Delete(b.viewports, i, i+1)
	}
}

func (b *Base) Viewports() []scene.View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.viewports)
}

func (b *Base) Apply(*renderqueue.Manager, *statepool.StatePool) {}

// Insert places vz into list keeping descending ordinal order. Equal ordinals
// keep insertion order. It returns the list unchanged when vz is already present.
//
// Parameters:
//   - list: a list sorted by descending ordinal
//   - vz: the visualizer to insert
//
// Returns:
//   - []Visualizer: the updated list
//   - bool: true if vz was inserted
func Insert(list []Visualizer, vz Visualizer) ([]Visualizer, bool) {
	if slices.Contains(list, vz) {
		return list, false
	}
	i := slices.IndexFunc(list, func(o Visualizer) bool {
		return o.Ordinal() < vz.Ordinal()
	})
	if i < 0 {
		return append(list, vz), true
	}
	return slices.Insert(list, i, vz), true
}
