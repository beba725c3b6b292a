package loader

import "time"

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers sets the maximum number of worker goroutines running factories.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithQueueSize sets the capacity of the pending task queue. Load blocks while the queue is full.
//
// Parameters:
//   - n: the queue capacity
//
// Returns:
//   - LoaderBuilderOption: a function that applies the queue size
func WithQueueSize(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.queueSize = max(n, 1)
	}
}

// WithIdleTimeout sets how long idle workers are kept around.
//
// Parameters:
//   - d: the idle timeout
//
// Returns:
//   - LoaderBuilderOption: a function that applies the timeout
func WithIdleTimeout(d time.Duration) LoaderBuilderOption {
	return func(l *loader) {
		l.idleTimeout = d
	}
}

// WithFactory registers a module factory at construction time.
//
// Parameters:
//   - name: the module name
//   - f: the factory
//
// Returns:
//   - LoaderBuilderOption: a function that registers the factory
func WithFactory(name string, f Factory) LoaderBuilderOption {
	return func(l *loader) {
		l.factories[name] = f
	}
}
