// Package window provides the native GLFW window the engine presents into.
// The window doubles as the viewport canvas: its framebuffer size is the
// pixel space viewports are laid out in.
package window

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/engine/viewport"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a native window that WebGPU surfaces are created on.
type Window interface {
	viewport.Canvas

	// Title returns the title bar text.
	Title() string

	// SetResizeCallback sets the function called after the framebuffer was resized.
	//
	// Parameters:
	//   - callback: function receiving the new width and height in pixels, or nil
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns the platform surface descriptor for the window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil before the window exists
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// ProcessMessages polls pending window events without blocking.
	//
	// Returns:
	//   - bool: false once the window should close
	ProcessMessages() bool

	// Close destroys the window.
	//
	// Returns:
	//   - error: error if the window was never created
	Close() error
}

type engineWindow struct {
	mu *sync.Mutex

	title string

	width, height       int
	minWidth, minHeight int
	maxWidth, maxHeight int

	internalWindow any
	onResize       func(width, height int)
}

var _ Window = &engineWindow{}

func defaultWindow() *engineWindow {
	return &engineWindow{
		mu:        &sync.Mutex{},
		title:     "oxy-view",
		width:     1280,
		height:    720,
		minWidth:  320,
		minHeight: 200,
		maxWidth:  3840,
		maxHeight: 2160,
	}
}

// NewWindow creates and shows a window. It panics when the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
func NewWindow(options ...WindowBuilderOption) Window {
	w := defaultWindow()
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("window: failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) ProcessMessages() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// resized records the framebuffer size and notifies the resize callback.
// A minimized window reports an empty framebuffer; the last real size is kept.
func (w *engineWindow) resized(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.mu.Lock()
	w.width, w.height = width, height
	cb := w.onResize
	w.mu.Unlock()

	if cb != nil {
		cb(width, height)
	}
}
