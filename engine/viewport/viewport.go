// Package viewport implements viewports and the per-frame render context that
// owns them.
//
// A Viewport is a normalized rectangle of the canvas rendered through one
// camera by one renderer. Several viewports share a single device, so each
// viewport re-establishes its clear color, scissor and viewport rectangle
// whenever another viewport may have changed them since its last frame.
package viewport

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/Carmen-Shannon/oxy-view/engine/loader"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
	"github.com/Carmen-Shannon/oxy-view/engine/visualizer"
	"github.com/cogentcore/webgpu/wgpu"
)

// Camera is the camera contract a viewport renders through.
type Camera interface {
	// FillRenderQueues lets the visible part of the scene push jobs into rq.
	FillRenderQueues(rq *renderqueue.Manager, sp *statepool.StatePool)

	// WorldPos returns the camera position in world space.
	WorldPos() common.Vec3

	// OnSetViewport is called with the new owner, or nil when the camera is released.
	OnSetViewport(view scene.View)

	// Viewport returns the current owner, or nil.
	Viewport() scene.View
}

// Renderer drains render queues for a viewport.
type Renderer interface {
	renderqueue.Renderer

	// Render draws everything queued for the viewport and empties the queues.
	//
	// Parameters:
	//   - view: the viewport being rendered
	//   - sp: the state pool for the current frame
	Render(view Viewport, sp *statepool.StatePool)
}

// RendererState tracks whether a viewport has its renderer yet.
type RendererState int

const (
	RendererUnloaded RendererState = iota
	RendererLoading
	RendererLoaded
)

func (s RendererState) String() string {
	switch s {
	case RendererLoading:
		return "loading"
	case RendererLoaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// Viewport is a rectangular region of the canvas with its own camera and renderer.
//
// Geometry is normalized to the canvas: x, y, width and height are fractions
// of the canvas size, with the origin in the lower left corner. Every setter
// marks the viewport dirty, even when the value does not change.
type Viewport interface {
	scene.View

	SetName(name string)

	// ZOrder returns the stacking key. Viewports render in ascending zorder.
	ZOrder() int

	X() float32
	SetX(x float32)
	Y() float32
	SetY(y float32)
	Width() float32
	SetWidth(w float32)
	Height() float32
	SetHeight(h float32)
	Pos() (x, y float32)
	SetPos(x, y float32)
	Size() (w, h float32)
	SetSize(w, h float32)
	Rect() (x, y, w, h float32)
	SetRect(x, y, w, h float32)

	ClearColor() wgpu.Color
	SetClearColor(c wgpu.Color)

	// SetClearColorRGB sets an opaque clear color.
	SetClearColorRGB(r, g, b float64)

	ClearFlags() gpu.ClearFlags
	SetClearFlags(flags gpu.ClearFlags)

	// Updated reports whether the viewport changed since it was last rendered.
	Updated() bool

	// Enable toggles the viewport. Changing state updates the enabled count of
	// the manager and raises FrameViewportUpdated; repeating the current state does nothing.
	//
	// Parameters:
	//   - enable: the requested state
	Enable(enable bool)
	Enabled() bool

	// Camera returns the camera the viewport renders through, or nil.
	Camera() Camera

	// SetCamera releases the current camera and takes cam. A camera owned by
	// another viewport is taken away from it first.
	//
	// Parameters:
	//   - cam: the new camera, or nil
	SetCamera(cam Camera)

	// AddVisualizer attaches vz, keeping the list in descending ordinal order.
	// Adding a visualizer that is already attached does nothing.
	AddVisualizer(vz visualizer.Visualizer)

	// RemoveVisualizer detaches vz. Unknown visualizers are ignored.
	RemoveVisualizer(vz visualizer.Visualizer)

	// Visualizers returns a copy of the attached visualizers in application order.
	Visualizers() []visualizer.Visualizer

	Renderer() Renderer

	// SetRenderer attaches r and marks the renderer loaded. nil detaches it so
	// that the next Render requests the default renderer again.
	SetRenderer(r Renderer)

	RendererState() RendererState

	// RendererLoad returns the handle of the most recent default renderer load,
	// or nil if the viewport never requested one.
	//
	// Returns:
	//   - *loader.Future: the load handle
	RendererLoad() *loader.Future

	// PixelRect returns the viewport rectangle in canvas pixels, rounded down.
	PixelRect() gpu.Rect

	// Render draws the viewport for the current frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	Render(dt float64)

	// LastFrameTime returns the dt of the last Render that reached the renderer.
	LastFrameTime() float64
}

type viewportImpl struct {
	mu  *sync.Mutex
	mgr *Manager

	id     int
	name   string
	zorder int

	x, y, w, h float32

	clearFlags gpu.ClearFlags
	clearColor wgpu.Color

	enabled bool
	updated bool
	removed bool

	camera        Camera
	renderer      Renderer
	rendererState RendererState
	rendererLoad  *loader.Future
	visualizers   []visualizer.Visualizer

	lastDt float64
}

var _ Viewport = &viewportImpl{}

func (v *viewportImpl) ID() int {
	return v.id
}

func (v *viewportImpl) Name() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.name
}

func (v *viewportImpl) SetName(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.name = name
	v.updated = true
}

func (v *viewportImpl) ZOrder() int {
	return v.zorder
}

func (v *viewportImpl) X() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x
}

func (v *viewportImpl) SetX(x float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x = x
	v.updated = true
}

func (v *viewportImpl) Y() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.y
}

func (v *viewportImpl) SetY(y float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.y = y
	v.updated = true
}

func (v *viewportImpl) Width() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w
}

func (v *viewportImpl) SetWidth(w float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.w = w
	v.updated = true
}

func (v *viewportImpl) Height() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.h
}

func (v *viewportImpl) SetHeight(h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.h = h
	v.updated = true
}

func (v *viewportImpl) Pos() (x, y float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x, v.y
}

func (v *viewportImpl) SetPos(x, y float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y = x, y
	v.updated = true
}

func (v *viewportImpl) Size() (w, h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.w, v.h
}

func (v *viewportImpl) SetSize(w, h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.w, v.h = w, h
	v.updated = true
}

func (v *viewportImpl) Rect() (x, y, w, h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.x, v.y, v.w, v.h
}

func (v *viewportImpl) SetRect(x, y, w, h float32) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.x, v.y, v.w, v.h = x, y, w, h
	v.updated = true
}

func (v *viewportImpl) ClearColor() wgpu.Color {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clearColor
}

func (v *viewportImpl) SetClearColor(c wgpu.Color) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clearColor = c
	v.updated = true
}

func (v *viewportImpl) SetClearColorRGB(r, g, b float64) {
	v.SetClearColor(wgpu.Color{R: r, G: g, B: b, A: 1})
}

func (v *viewportImpl) ClearFlags() gpu.ClearFlags {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clearFlags
}

func (v *viewportImpl) SetClearFlags(flags gpu.ClearFlags) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clearFlags = flags
	v.updated = true
}

func (v *viewportImpl) Updated() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updated
}

func (v *viewportImpl) markDirty() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.updated = true
}

func (v *viewportImpl) Enabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.enabled
}

func (v *viewportImpl) Enable(enable bool) {
	v.mu.Lock()
	if v.enabled == enable || v.removed {
		v.mu.Unlock()
		return
	}
	v.enabled = enable
	v.updated = true
	v.mu.Unlock()

	if enable {
		v.mgr.adjustEnabled(1)
	} else {
		v.mgr.adjustEnabled(-1)
	}
}

func (v *viewportImpl) Camera() Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera
}

func (v *viewportImpl) SetCamera(cam Camera) {
	if cam != nil {
		if owner, ok := cam.Viewport().(*viewportImpl); ok && owner != v {
			owner.releaseCamera(cam)
		}
	}

	v.mu.Lock()
	old := v.camera
	v.camera = cam
	v.updated = true
	v.mu.Unlock()

	if old == cam {
		if cam != nil {
			cam.OnSetViewport(v)
		}
		return
	}
	if old != nil {
		old.OnSetViewport(nil)
	}
	if cam != nil {
		cam.OnSetViewport(v)
	}
}

// releaseCamera drops cam if it is still the viewport's camera. The caller
// notifies the camera of its new owner.
func (v *viewportImpl) releaseCamera(cam Camera) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.camera == cam {
		v.camera = nil
		v.updated = true
	}
}

func (v *viewportImpl) CameraWorldPos() common.Vec3 {
	if cam := v.Camera(); cam != nil {
		return cam.WorldPos()
	}
	return common.Vec3{}
}

// Aspect returns (width * canvasWidth) / (height * canvasHeight).
// It panics when the canvas has no area.
func (v *viewportImpl) Aspect() float32 {
	canvas := v.mgr.Canvas()
	cw, ch := canvas.Width(), canvas.Height()
	if cw == 0 || ch == 0 {
		panic(fmt.Sprintf("viewport: Aspect requires a canvas with non-zero size, got %dx%d", cw, ch))
	}
	_, _, w, h := v.Rect()
	return (w * float32(cw)) / (h * float32(ch))
}

func (v *viewportImpl) AddVisualizer(vz visualizer.Visualizer) {
	if vz == nil {
		return
	}
	v.mu.Lock()
	list, inserted := visualizer.Insert(v.visualizers, vz)
	v.visualizers = list
	v.mu.Unlock()

	if inserted {
		vz.OnAddViewport(v)
	}
}

func (v *viewportImpl) RemoveVisualizer(vz visualizer.Visualizer) {
	v.mu.Lock()
	i := slices.Index(v.visualizers, vz)
	if i < 0 {
		v.mu.Unlock()
		return
	}
	v.visualizers = slices.Delete(v.visualizers, i, i+1)
	v.mu.Unlock()

	vz.OnRemoveViewport(v)
}

func (v *viewportImpl) Visualizers() []visualizer.Visualizer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.visualizers)
}

func (v *viewportImpl) Renderer() Renderer {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderer
}

func (v *viewportImpl) SetRenderer(r Renderer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer = r
	if r != nil {
		v.rendererState = RendererLoaded
	} else {
		v.rendererState = RendererUnloaded
	}
	v.updated = true
}

func (v *viewportImpl) RendererLoad() *loader.Future {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rendererLoad
}

func (v *viewportImpl) RendererState() RendererState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rendererState
}

func (v *viewportImpl) PixelRect() gpu.Rect {
	canvas := v.mgr.Canvas()
	cw, ch := canvas.Width(), canvas.Height()
	x, y, w, h := v.Rect()
	return gpu.Rect{
		X: common.FloorInt(x, cw),
		Y: common.FloorInt(y, ch),
		W: common.FloorInt(w, cw),
		H: common.FloorInt(h, ch),
	}
}

func (v *viewportImpl) Render(dt float64) {
	v.mu.Lock()
	if !v.enabled {
		v.mu.Unlock()
		return
	}
	if v.renderer == nil {
		if v.rendererState == RendererLoading {
			v.mu.Unlock()
			return
		}
		v.rendererState = RendererLoading
		v.mu.Unlock()
		v.requestRenderer()
		return
	}
	r := v.renderer
	cam := v.camera
	flags := v.clearFlags
	color := v.clearColor
	updated := v.updated
	v.lastDt = dt
	v.mu.Unlock()

	m := v.mgr
	dev := m.Device()
	needsSetup := m.EnabledViewportCount() > 1 || m.FrameFlags()&FrameViewportUpdated != 0 || updated
	if needsSetup {
		rect := v.PixelRect()
		if flags.Has(gpu.ClearColor) {
			dev.SetClearColor(color)
		}
		dev.SetScissor(rect)
		dev.SetViewport(rect)
	}
	if flags != 0 {
		dev.SetDepthMask(true)
		dev.Clear(flags)
	}

	sp := m.StatePool()
	if cam != nil {
		cam.FillRenderQueues(r.RQManager(), sp)
	}
	r.Render(v, sp)
	dev.Flush()

	v.mu.Lock()
	v.updated = false
	v.mu.Unlock()
}

func (v *viewportImpl) LastFrameTime() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastDt
}

// requestRenderer asks the manager's loader for the default renderer module.
// The callback runs during a later Pump on the render goroutine.
func (v *viewportImpl) requestRenderer() {
	name := v.mgr.DefaultRendererName()
	log := common.Logger().With("viewport", v.Name(), "module", name)
	log.Debug("no renderer set, loading default renderer")

	fut := v.mgr.Loader().Load(name, func(value any, err error) {
		if err == nil {
			r, ok := value.(Renderer)
			if ok {
				v.attachLoadedRenderer(r)
				log.Debug("renderer loaded")
				return
			}
			err = fmt.Errorf("viewport: module %s produced %T, not a Renderer", name, value)
		}
		log.Warn("renderer load failed, retrying next frame", "error", err)

		v.mu.Lock()
		defer v.mu.Unlock()
		if v.renderer == nil && v.rendererState == RendererLoading {
			v.rendererState = RendererUnloaded
		}
	})

	v.mu.Lock()
	v.rendererLoad = fut
	v.mu.Unlock()
}

// attachLoadedRenderer installs r unless a renderer was set while loading.
func (v *viewportImpl) attachLoadedRenderer(r Renderer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.renderer != nil || v.rendererState != RendererLoading {
		return
	}
	v.renderer = r
	v.rendererState = RendererLoaded
	v.updated = true
}

// detach releases everything the viewport references after it was removed from its manager.
func (v *viewportImpl) detach() {
	v.mu.Lock()
	cam := v.camera
	vis := v.visualizers
	v.camera = nil
	v.renderer = nil
	v.rendererState = RendererUnloaded
	v.visualizers = nil
	v.enabled = false
	v.removed = true
	v.mu.Unlock()

	if cam != nil {
		cam.OnSetViewport(nil)
	}
	for _, vz := range vis {
		vz.OnRemoveViewport(v)
	}
}
