package renderqueue

import "fmt"

// ManagerBuilderOption is a function that configures a Manager during construction.
type ManagerBuilderOption func(*managerConfig)

type managerConfig struct {
	count int
}

// WithQueueCount sets the number of queues, which is never lower than Count.
//
// Parameters:
//   - n: the number of queues
//
// Returns:
//   - ManagerBuilderOption: a function that applies the queue count
func WithQueueCount(n int) ManagerBuilderOption {
	return func(c *managerConfig) {
		c.count = max(n, Count)
	}
}

// Manager owns the indexed set of render queues of one renderer.
type Manager struct {
	queues []*RenderQueue
}

// NewManager creates a Manager with Count queues. Opaque sorts front to back and
// Transparent back to front; every other queue keeps submission order.
//
// Parameters:
//   - opts: optional configuration
//
// Returns:
//   - *Manager: the manager
func NewManager(opts ...ManagerBuilderOption) *Manager {
	cfg := &managerConfig{count: Count}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manager{queues: make([]*RenderQueue, cfg.count)}
	for i := range m.queues {
		mode := SortNone
		switch i {
		case Opaque:
			mode = SortFrontToBack
		case Transparent:
			mode = SortBackToFront
		}
		m.queues[i] = NewRenderQueue(mode)
	}
	return m
}

// Push appends a job to the queue at idx. It panics when idx is out of range.
func (m *Manager) Push(idx int, job Job) {
	m.Queue(idx).Push(job)
}

// Queue returns the queue at idx. It panics when idx is out of range.
func (m *Manager) Queue(idx int) *RenderQueue {
	if idx < 0 || idx >= len(m.queues) {
		panic(fmt.Sprintf("renderqueue: queue index %d out of range [0,%d)", idx, len(m.queues)))
	}
	return m.queues[idx]
}

// Queues returns all queues in drain order.
func (m *Manager) Queues() []*RenderQueue {
	return m.queues
}

// Clear empties every queue.
func (m *Manager) Clear() {
	for _, q := range m.queues {
		q.Clear()
	}
}

// Len returns the total number of queued jobs.
func (m *Manager) Len() int {
	n := 0
	for _, q := range m.queues {
		n += q.Len()
	}
	return n
}
