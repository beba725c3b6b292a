package loader

import (
	"context"
	"sync"
)

// State is the lifecycle state of a Future.
type State int

const (
	StatePending State = iota
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Future is a handle on the result of a Load.
type Future struct {
	mu    sync.Mutex
	name  string
	state State
	value any
	err   error
	done  chan struct{}
}

func newFuture(name string) *Future {
	return &Future{name: name, done: make(chan struct{})}
}

func (f *Future) resolve(value any, err error) {
	f.mu.Lock()
	f.value, f.err = value, err
	if err != nil {
		f.state = StateFailed
	} else {
		f.state = StateResolved
	}
	f.mu.Unlock()
	close(f.done)
}

// Name returns the module name the future was created for.
func (f *Future) Name() string {
	return f.name
}

func (f *Future) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the value and error. Both are zero while the future is pending.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Wait blocks until the future resolves or ctx is done.
//
// Parameters:
//   - ctx: bounds the wait
//
// Returns:
//   - any: the module value
//   - error: the load error, or ctx.Err() when the wait was abandoned
func (f *Future) Wait(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
