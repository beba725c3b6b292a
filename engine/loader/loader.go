// Package loader resolves named modules (renderers and other pluggable
// components) asynchronously.
//
// Factories run on a worker pool so a slow module never stalls a frame. Their
// completion callbacks do not run on the worker: they are queued and executed
// by Pump, which the host loop calls between frames. Everything a callback
// touches is therefore only ever mutated from the render goroutine.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-view/common"
)

// ErrUnknownModule is returned for names that were never registered.
var ErrUnknownModule = errors.New("loader: unknown module")

// ErrClosed is returned for loads requested after Close.
var ErrClosed = errors.New("loader: closed")

// Factory produces a module value. The context is cancelled when the loader closes.
type Factory func(ctx context.Context) (any, error)

// Callback receives the result of a load on the goroutine that calls Pump.
type Callback func(value any, err error)

// Loader defines the interface for asynchronous named-module loading.
type Loader interface {
	// Register binds a factory to a module name, replacing any previous one.
	//
	// Parameters:
	//   - name: the module name
	//   - f: the factory
	Register(name string, f Factory)

	// Registered reports whether a factory exists for name.
	Registered(name string) bool

	// Load runs the factory registered for name on the worker pool. When it
	// finishes, cb is queued and runs during a later Pump. Unknown names fail
	// with ErrUnknownModule through the same path.
	//
	// Parameters:
	//   - name: the module name
	//   - cb: optional completion callback
	//
	// Returns:
	//   - *Future: a handle on the pending result
	Load(name string, cb Callback) *Future

	// Pump runs every queued completion callback on the calling goroutine.
	//
	// Returns:
	//   - int: the number of callbacks run
	Pump() int

	// Pending returns the number of loads whose callbacks have not run yet.
	Pending() int

	// Close cancels running factories and stops the worker pool. Later loads fail with ErrClosed.
	Close()
}

type loader struct {
	mu *sync.Mutex

	pool   worker.DynamicWorkerPool
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	workers     int
	queueSize   int
	idleTimeout time.Duration

	factories   map[string]Factory
	completions []func()
	pending     atomic.Int64
	nextTaskID  int
}

var _ Loader = &loader{}

// NewLoader creates a Loader backed by a dynamic worker pool of two workers unless configured otherwise.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:          &sync.Mutex{},
		workers:     2,
		queueSize:   64,
		idleTimeout: time.Second,
		factories:   make(map[string]Factory),
	}
	for _, option := range options {
		option(l)
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, l.idleTimeout)
	return l
}

func (l *loader) Register(name string, f Factory) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.factories[name] = f
}

func (l *loader) Registered(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.factories[name]
	return ok
}

func (l *loader) Load(name string, cb Callback) *Future {
	fut := newFuture(name)
	l.pending.Add(1)

	l.mu.Lock()
	f, ok := l.factories[name]
	closed := l.closed
	id := l.nextTaskID
	l.nextTaskID++
	l.mu.Unlock()

	switch {
	case closed:
		l.complete(fut, cb, nil, fmt.Errorf("failed to load %s: %w", name, ErrClosed))
		return fut
	case !ok:
		l.complete(fut, cb, nil, fmt.Errorf("failed to load %s: %w", name, ErrUnknownModule))
		return fut
	}

	common.Logger().Debug("loading module", "name", name)
	l.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: name,
		Do: func() (any, error) {
			value, err := f(l.ctx)
			if err != nil {
				err = fmt.Errorf("failed to load %s: %w", name, err)
			}
			l.complete(fut, cb, value, err)
			return value, err
		},
	})
	return fut
}

// complete queues the callback before resolving the future so that a waiter
// that observed Done always finds the callback in the next Pump.
func (l *loader) complete(fut *Future, cb Callback, value any, err error) {
	l.mu.Lock()
	l.completions = append(l.completions, func() {
		defer l.pending.Add(-1)
		if cb != nil {
			cb(value, err)
		}
	})
	l.mu.Unlock()
	fut.resolve(value, err)
}

func (l *loader) Pump() int {
	l.mu.Lock()
	queued := l.completions
	l.completions = nil
	l.mu.Unlock()

	for _, fn := range queued {
		fn()
	}
	return len(queued)
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	l.mu.Unlock()

	l.cancel()
	l.pool.Stop()
}
