// Package engine drives the window, the GPU device and the viewport manager.
// A fixed-rate tick goroutine produces ticks that the render goroutine runs
// between frames before rendering every viewport.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/profiler"
	"github.com/Carmen-Shannon/oxy-view/engine/renderer"
	"github.com/Carmen-Shannon/oxy-view/engine/viewport"
	"github.com/Carmen-Shannon/oxy-view/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, render and window threads.
type engine struct {
	mu *sync.Mutex

	tickRateChannel chan time.Duration

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	windowOptions []window.WindowBuilderOption
	deviceOptions []gpu.WGPUDeviceBuilderOption
	window        window.Window
	canvas        viewport.Canvas
	device        gpu.FrameDevice
	loader        loader.Loader
	ownLoader     bool
	viewports     *viewport.Manager

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	pendingTicks   []float32
	spareTicks     []float32
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration
	pollInterval     time.Duration
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the render loop and window management.
type Engine interface {
	// Window returns the native window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Device returns the device every viewport renders through.
	//
	// Returns:
	//   - gpu.FrameDevice: the frame device
	Device() gpu.FrameDevice

	// Viewports returns the viewport manager.
	//
	// Returns:
	//   - *viewport.Manager: the manager owning every viewport
	Viewports() *viewport.Manager

	// Loader returns the module loader renderers are loaded through.
	//
	// Returns:
	//   - loader.Loader: the loader
	Loader() loader.Loader

	// EnableProfiler enables performance profiling output to the engine logger.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called once per engine tick.
	// Ticks run on the render goroutine between frames; use this for game logic
	// and scene or viewport mutation.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called on the render goroutine
	// before the viewports of each frame are rendered.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Resize propagates a new canvas size to the device and marks every viewport dirty.
	// The window's resize callback calls it; headless engines call it directly.
	//
	// Parameters:
	//   - width, height: the new canvas size in pixels
	Resize(width, height int)

	// Run starts the engine and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

const maxPendingTicks = 8

// resizableCanvas is a canvas whose size is set by the engine rather than a window.
type resizableCanvas interface {
	SetSize(width, height int)
}

// releaser is implemented by devices holding native resources.
type releaser interface {
	Release()
}

// NewEngine creates an Engine. Without WithDevice the engine opens a window and a WebGPU
// device on it, so it must then be called from the main thread.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
//   - error: error if the device could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		mu:              &sync.Mutex{},
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(time.Second),
		engineTickRate:  time.Second / 60,
		pollInterval:    time.Second / 240,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.device == nil {
		if e.window == nil {
			e.window = window.NewWindow(e.windowOptions...)
		}
		dev, err := gpu.NewWGPUDevice(e.window.SurfaceDescriptor(), e.window.Width(), e.window.Height(), e.deviceOptions...)
		if err != nil {
			_ = e.window.Close()
			return nil, fmt.Errorf("engine: failed to create device: %w", err)
		}
		e.device = dev
	}
	if e.canvas == nil {
		if e.window != nil {
			e.canvas = e.window
		} else {
			e.canvas = viewport.NewFixedCanvas(1280, 720)
		}
	}

	if e.loader == nil {
		e.loader = loader.NewLoader()
		e.ownLoader = true
	}
	renderer.Register(e.loader)

	e.viewports = viewport.NewManager(e.canvas, e.device, viewport.WithLoader(e.loader))

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
	}

	common.Logger().Info("engine created",
		slog.Int("width", e.canvas.Width()),
		slog.Int("height", e.canvas.Height()),
		slog.Bool("headless", e.window == nil))

	return e, nil
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Device() gpu.FrameDevice {
	return e.device
}

func (e *engine) Viewports() *viewport.Manager {
	return e.viewports
}

func (e *engine) Loader() loader.Loader {
	return e.loader
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if rc, ok := e.canvas.(resizableCanvas); ok {
		rc.SetSize(width, height)
	}
	e.device.Resize(width, height)
	e.viewports.MarkAllDirty()
}

// Run launches the tick and render goroutines and pumps window events on the
// calling goroutine until the window closes or Quit is called.
func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()

	if e.window != nil {
		e.pumpWindow()
	} else {
		<-e.quitChannel
	}

	e.signalQuit()
	e.wg.Wait()
	e.shutdown()
}

// Quit signals all engine goroutines to stop.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// pumpWindow polls native events until the window closes or the engine quits.
// GLFW requires this to happen on the thread that created the window.
func (e *engine) pumpWindow() {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			if !e.window.ProcessMessages() {
				common.Logger().Info("window closed")
				return
			}
		}
	}
}

// shutdown releases the viewports, the device and the window after every goroutine exited.
func (e *engine) shutdown() {
	e.viewports.Close()
	if e.ownLoader {
		e.loader.Close()
	}
	if r, ok := e.device.(releaser); ok {
		r.Release()
	}
	if e.window != nil {
		_ = e.window.Close()
	}
	common.Logger().Info("engine stopped")
}

// handleEngine produces fixed-rate ticks until the quit channel is closed.
// The ticks are consumed by the render goroutine between frames.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	e.mu.Lock()
	rate := e.engineTickRate
	e.mu.Unlock()

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			e.queueTick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

// handleRender renders frames until the quit channel is closed. A panic inside
// a renderer stops the engine instead of crashing the process.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			common.Logger().Error("render goroutine recovered from panic", slog.Any("panic", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		frameStart := time.Now()
		dt := frameStart.Sub(lastRender).Seconds()
		lastRender = frameStart

		e.renderFrame(dt)

		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit > 0 {
			if remaining := limit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// queueTick records a tick for the render goroutine. Ticks beyond maxPendingTicks
// are merged into the last one so a stalled frame cannot build a backlog.
func (e *engine) queueTick(dt float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n := len(e.pendingTicks); n >= maxPendingTicks {
		e.pendingTicks[n-1] += dt
		return
	}
	e.pendingTicks = append(e.pendingTicks, dt)
}

// renderFrame renders one frame. Pending ticks and the render callback run
// first so that scene and viewport mutation happens between frames, then every
// viewport renders between BeginFrame and Present.
func (e *engine) renderFrame(dt float64) {
	e.mu.Lock()
	ticks := e.pendingTicks
	e.pendingTicks = e.spareTicks[:0]
	e.spareTicks = ticks
	tick := e.tickCallback
	cb := e.renderCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if tick != nil {
		for _, tdt := range ticks {
			tick(tdt)
		}
	}
	if cb != nil {
		cb(float32(dt))
	}

	if err := e.device.BeginFrame(); err != nil {
		common.Logger().Warn("frame dropped", slog.Any("error", err))
		return
	}
	e.viewports.RenderFrame(dt)
	e.device.Present()

	if profiling {
		e.profiler.Tick(
			slog.Int("viewports", len(e.viewports.Viewports())),
			slog.Int("enabled_viewports", e.viewports.EnabledViewportCount()),
		)
	}
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate. If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickRate(fps)

	e.mu.Lock()
	e.engineTickRate = newRate
	running := e.running
	e.mu.Unlock()

	if !running {
		return
	}
	// Replace any pending update that the tick loop has not consumed yet.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameLimit(fps)
}

func tickRate(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameLimit(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
