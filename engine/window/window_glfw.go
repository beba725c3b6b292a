package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var errNotInitialized = errors.New("window: not initialized")

// glfwWindow is the native half of an engineWindow.
type glfwWindow struct {
	handle  *glfw.Window
	closing bool
}

func (g *glfwWindow) open() bool {
	return !g.closing && !g.handle.ShouldClose()
}

func (g *glfwWindow) requestClose() {
	g.closing = true
	g.handle.SetShouldClose(true)
}

func nativeOf(w *engineWindow) (*glfwWindow, bool) {
	g, ok := w.internalWindow.(*glfwWindow)
	return g, ok && g != nil
}

// newPlatformWindow opens a GLFW window without a client API, since WebGPU
// creates its own surface, and wires the framebuffer-size and Escape handlers.
// The calling goroutine is locked to its OS thread, which GLFW requires for
// every later event poll.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("window: create %q: %w", w.title, err)
	}
	native := &glfwWindow{handle: handle}
	w.internalWindow = native

	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			native.requestClose()
		}
	})
	// Viewports are laid out in framebuffer pixels, which differ from screen
	// coordinates on high-DPI displays.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})

	fbWidth, fbHeight := handle.GetFramebufferSize()
	w.mu.Lock()
	w.width, w.height = fbWidth, fbHeight
	w.mu.Unlock()
	return nil
}

func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	native, ok := nativeOf(w)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(native.handle)
}

func platformIsRunningCheck(w *engineWindow) bool {
	native, ok := nativeOf(w)
	return ok && native.open()
}

// platformCloseWindow destroys the window and shuts GLFW down. A second call returns errNotInitialized.
func platformCloseWindow(w *engineWindow) error {
	native, ok := nativeOf(w)
	if !ok {
		return errNotInitialized
	}
	native.requestClose()
	native.handle.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages drains pending GLFW events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	if _, ok := nativeOf(w); !ok {
		return false
	}
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
