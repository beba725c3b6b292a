package viewport

import (
	"slices"
	"strconv"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// DefaultRendererName is the module a viewport without a renderer loads.
const DefaultRendererName = "forwardrenderer"

// FrameFlags are raised during a frame and cleared when it ends.
type FrameFlags uint32

const (
	// FrameViewportUpdated is raised when a viewport is enabled, disabled or
	// removed, which may leave stale device state behind for the others.
	FrameViewportUpdated FrameFlags = 1 << iota
)

// TieBreak decides where a viewport goes among viewports of equal zorder.
type TieBreak int

const (
	// TieBreakBefore inserts ahead of existing viewports with the same zorder,
	// so the newest of them renders first.
	TieBreakBefore TieBreak = iota

	// TieBreakAfter inserts behind them, so equal zorders render in creation order.
	TieBreakAfter
)

// Manager owns the viewports rendered into one canvas and the state they share:
// the device, the state pool, the module loader and the frame flags.
type Manager struct {
	mu *sync.Mutex

	canvas    Canvas
	device    gpu.Device
	loader    loader.Loader
	ownLoader bool
	statePool *statepool.StatePool

	viewports       []Viewport
	enabledCount    int
	defaultZOrder   int
	nextID          int
	frameFlags      FrameFlags
	defaultRenderer string
	tieBreak        TieBreak
}

// NewManager creates a viewport manager. Without WithLoader it creates its own
// loader, which Close shuts down.
//
// Parameters:
//   - canvas: the surface viewports are laid out on
//   - device: the device viewports issue state changes and clears to
//   - opts: optional configuration
//
// Returns:
//   - *Manager: the manager
func NewManager(canvas Canvas, device gpu.Device, opts ...ManagerBuilderOption) *Manager {
	if canvas == nil {
		panic("viewport: NewManager requires a non-nil Canvas")
	}
	if device == nil {
		panic("viewport: NewManager requires a non-nil Device")
	}

	m := &Manager{
		mu:              &sync.Mutex{},
		canvas:          canvas,
		device:          device,
		defaultRenderer: DefaultRendererName,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.loader == nil {
		m.loader = loader.NewLoader()
		m.ownLoader = true
	}
	if m.statePool == nil {
		m.statePool = statepool.NewStatePool()
	}
	return m
}

// CreateViewport creates a viewport and inserts it in zorder.
//
// Parameters:
//   - opts: viewport configuration
//
// Returns:
//   - Viewport: the new viewport
func (m *Manager) CreateViewport(opts ...ViewportBuilderOption) Viewport {
	cfg := defaultViewportConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m.mu.Lock()
	id := m.nextID
	m.nextID++
	z := m.defaultZOrder
	if cfg.zorder != nil {
		z = *cfg.zorder
	} else {
		m.defaultZOrder++
	}
	m.mu.Unlock()

	v := &viewportImpl{
		mu:         &sync.Mutex{},
		mgr:        m,
		id:         id,
		name:       common.Coalesce(cfg.name, "UnnamedViewport_"+strconv.Itoa(id)),
		zorder:     z,
		x:          cfg.x,
		y:          cfg.y,
		w:          cfg.w,
		h:          cfg.h,
		clearFlags: cfg.clearFlags,
		clearColor: cfg.clearColor,
		updated:    true,
	}
	if cfg.renderer != nil {
		v.renderer = cfg.renderer
		v.rendererState = RendererLoaded
	}

	cam := cfg.camera
	if cam == nil {
		cam = camera.NewCameraNode(v.name + "_DefaultCam")
	}
	v.SetCamera(cam)

	m.mu.Lock()
	m.viewports = slices.Insert(m.viewports, m.insertIndex(z), Viewport(v))
	m.mu.Unlock()

	v.Enable(cfg.enabled)
	return v
}

// insertIndex returns where a viewport with zorder z goes. Caller must hold the mutex.
func (m *Manager) insertIndex(z int) int {
	for i, o := range m.viewports {
		if m.tieBreak == TieBreakBefore && o.ZOrder() >= z {
			return i
		}
		if m.tieBreak == TieBreakAfter && o.ZOrder() > z {
			return i
		}
	}
	return len(m.viewports)
}

// RemoveViewport removes v and releases its camera, renderer and visualizers.
// Removed viewports no longer render and ignore Enable.
//
// Parameters:
//   - v: the viewport to remove
//
// Returns:
//   - bool: false if v did not belong to the manager
func (m *Manager) RemoveViewport(v Viewport) bool {
	m.mu.Lock()
	i := slices.Index(m.viewports, v)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.viewports = slices.Delete(m.viewports, i, i+1)
	if v.Enabled() {
		m.enabledCount--
	}
	m.frameFlags |= FrameViewportUpdated
	m.mu.Unlock()

	if impl, ok := v.(*viewportImpl); ok {
		impl.detach()
	}
	return true
}

// Viewports returns a snapshot of the viewports in render order (non-decreasing zorder).
func (m *Manager) Viewports() []Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.viewports)
}

// Viewport looks a viewport up by id.
func (m *Manager) Viewport(id int) (Viewport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.viewports {
		if v.ID() == id {
			return v, true
		}
	}
	return nil, false
}

// EnabledViewportCount returns how many registered viewports are enabled.
func (m *Manager) EnabledViewportCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabledCount
}

func (m *Manager) adjustEnabled(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabledCount += delta
	m.frameFlags |= FrameViewportUpdated
}

func (m *Manager) FrameFlags() FrameFlags {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameFlags
}

func (m *Manager) Canvas() Canvas {
	return m.canvas
}

func (m *Manager) Device() gpu.Device {
	return m.device
}

func (m *Manager) Loader() loader.Loader {
	return m.loader
}

func (m *Manager) StatePool() *statepool.StatePool {
	return m.statePool
}

func (m *Manager) DefaultRendererName() string {
	return m.defaultRenderer
}

// MarkAllDirty flags every viewport as updated, e.g. after the canvas was resized.
func (m *Manager) MarkAllDirty() {
	for _, v := range m.Viewports() {
		if impl, ok := v.(*viewportImpl); ok {
			impl.markDirty()
		}
	}
}

// RenderFrame renders one frame: it runs pending loader callbacks, recycles
// the state pool, renders every viewport in zorder and clears the frame flags.
// Viewports are skipped while the canvas has no area, e.g. a minimized window;
// the frame flags then survive until the next frame that renders.
//
// Parameters:
//   - dt: seconds since the previous frame
func (m *Manager) RenderFrame(dt float64) {
	m.loader.Pump()
	m.statePool.Reset()

	if m.canvas.Width() <= 0 || m.canvas.Height() <= 0 {
		return
	}

	for _, v := range m.Viewports() {
		v.Render(dt)
	}

	m.mu.Lock()
	m.frameFlags = 0
	m.mu.Unlock()
}

// Reset removes every viewport and restarts id and zorder assignment.
func (m *Manager) Reset() {
	for _, v := range m.Viewports() {
		m.RemoveViewport(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewports = nil
	m.enabledCount = 0
	m.defaultZOrder = 0
	m.nextID = 0
	m.frameFlags = 0
}

// Close resets the manager and shuts down the loader if the manager created it.
func (m *Manager) Close() {
	m.Reset()
	if m.ownLoader {
		m.loader.Close()
	}
}
