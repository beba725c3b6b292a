package engine

import (
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/viewport"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Values <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickRate(fps)
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameLimit(fps)
	}
}

// WithWindow sets a pre-configured window instead of letting the engine create one.
//
// Parameters:
//   - w: the window to present into
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithWindowOptions configures the window the engine creates. Ignored when WithWindow
// or WithDevice is used.
//
// Parameters:
//   - options: window builder options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowOptions(options ...window.WindowBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.windowOptions = append(e.windowOptions, options...)
	}
}

// WithDevice renders through the given device. Without a window this makes the
// engine headless; pair it with WithCanvas to set the pixel size.
//
// Parameters:
//   - d: the frame device
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDevice(d gpu.FrameDevice) EngineBuilderOption {
	return func(e *engine) {
		e.device = d
	}
}

// WithDeviceOptions configures the WebGPU device the engine creates. Ignored when WithDevice is used.
//
// Parameters:
//   - options: device builder options such as gpu.WithVSync
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDeviceOptions(options ...gpu.WGPUDeviceBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.deviceOptions = append(e.deviceOptions, options...)
	}
}

// WithCanvas sets the canvas viewports are laid out on. Defaults to the window.
//
// Parameters:
//   - c: the canvas
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCanvas(c viewport.Canvas) EngineBuilderOption {
	return func(e *engine) {
		e.canvas = c
	}
}

// WithLoader shares an existing loader. The forward renderer is registered on it
// and the engine leaves closing it to the caller.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLoader(l loader.Loader) EngineBuilderOption {
	return func(e *engine) {
		e.loader = l
	}
}
