// Package renderqueue buckets per-frame draw jobs into indexed queues.
//
// Entities visible to a camera push jobs into the queues of the renderer's
// Manager. The renderer later sorts each queue and drains them in index order,
// which is what gives lights precedence over opaque geometry and opaque
// geometry precedence over transparent geometry and overlays.
package renderqueue

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// Well-known queue indices, drained in ascending order.
const (
	Light = iota
	Opaque
	Transparent
	Overlay

	// Count is the number of queues a Manager creates by default.
	Count
)

// Renderer is the minimal renderer contract jobs are drawn against.
// Job implementations type-assert it to richer interfaces for the draw calls they need.
type Renderer interface {
	RQManager() *Manager
}

// Job is one unit of draw work for the current frame.
type Job interface {
	// Draw performs the job against the renderer.
	//
	// Parameters:
	//   - r: the renderer draining the queue
	//   - sp: the state pool for the current frame
	Draw(r Renderer, sp *statepool.StatePool)
}

// Distancer is implemented by jobs that know their distance to the camera.
// The boolean reports whether the distance has been computed.
type Distancer interface {
	Distance() (float32, bool)
}

// SortMode selects how a RenderQueue orders its jobs before draining.
type SortMode int

const (
	SortNone SortMode = iota
	SortFrontToBack
	SortBackToFront
)

func (m SortMode) String() string {
	switch m {
	case SortFrontToBack:
		return "front-to-back"
	case SortBackToFront:
		return "back-to-front"
	default:
		return "none"
	}
}

// RenderQueue is an ordered list of jobs for one bucket.
type RenderQueue struct {
	jobs []Job
	mode SortMode
}

// NewRenderQueue creates an empty queue with the given sort mode.
func NewRenderQueue(mode SortMode) *RenderQueue {
	return &RenderQueue{mode: mode}
}

func (q *RenderQueue) Push(job Job) {
	q.jobs = append(q.jobs, job)
}

// Jobs returns the queued jobs. The slice is owned by the queue and only valid until the next Clear.
func (q *RenderQueue) Jobs() []Job {
	return q.jobs
}

func (q *RenderQueue) Len() int {
	return len(q.jobs)
}

// Clear drops all jobs while keeping the backing storage.
func (q *RenderQueue) Clear() {
	clear(q.jobs)
	q.jobs = q.jobs[:0]
}

func (q *RenderQueue) SortMode() SortMode {
	return q.mode
}

func (q *RenderQueue) SetSortMode(mode SortMode) {
	q.mode = mode
}

// Sort orders the jobs according to the queue's sort mode.
// Jobs without a known distance keep their relative order after all jobs that have one.
func (q *RenderQueue) Sort() {
	if q.mode == SortNone || len(q.jobs) < 2 {
		return
	}
	backToFront := q.mode == SortBackToFront
	slices.SortStableFunc(q.jobs, func(a, b Job) int {
		da, okA := jobDistance(a)
		db, okB := jobDistance(b)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		if backToFront {
			da, db = db, da
		}
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
}

func jobDistance(j Job) (float32, bool) {
	if d, ok := j.(Distancer); ok {
		return d.Distance()
	}
	return 0, false
}
