package renderer

import "github.com/Carmen-Shannon/oxy-view/engine/renderqueue"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewForwardRenderer.
type RendererBuilderOption func(*forwardRenderer)

// WithQueueCount sets the number of render queues. Values below renderqueue.Count are raised to it.
//
// Parameters:
//   - n: the number of queues
//
// Returns:
//   - RendererBuilderOption: a function that applies the queue count to a renderer
func WithQueueCount(n int) RendererBuilderOption {
	return func(r *forwardRenderer) {
		r.queueOpts = append(r.queueOpts, renderqueue.WithQueueCount(n))
	}
}

// WithSortMode overrides the sort mode of one queue.
//
// Parameters:
//   - idx: the queue index
//   - mode: the sort mode
//
// Returns:
//   - RendererBuilderOption: a function that applies the sort mode to a renderer
func WithSortMode(idx int, mode renderqueue.SortMode) RendererBuilderOption {
	return func(r *forwardRenderer) {
		r.sortModes[idx] = mode
	}
}
