//go:build js && wasm

package gpu

import (
	"fmt"
	"syscall/js"

	"github.com/cogentcore/webgpu/wgpu"
)

// WebGLDevice implements FrameDevice on a browser WebGL context. WebGL keeps
// clear color, scissor, viewport and depth mask as context state, so every
// call maps directly onto one GL call.
type WebGLDevice struct {
	canvas js.Value
	gl     js.Value

	colorBufferBit int
	depthBufferBit int
}

var _ FrameDevice = &WebGLDevice{}

// NewWebGLDevice obtains a WebGL context from the given canvas element and enables the scissor test.
//
// Parameters:
//   - canvas: the HTML canvas element
//
// Returns:
//   - *WebGLDevice: the device
//   - error: an error if the canvas does not provide a WebGL context
func NewWebGLDevice(canvas js.Value) (*WebGLDevice, error) {
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsUndefined() || gl.IsNull() {
		gl = canvas.Call("getContext", "webgl")
	}
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("gpu: canvas does not provide a WebGL context")
	}
	d := &WebGLDevice{
		canvas:         canvas,
		gl:             gl,
		colorBufferBit: gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit: gl.Get("DEPTH_BUFFER_BIT").Int(),
	}
	gl.Call("enable", gl.Get("SCISSOR_TEST"))
	gl.Call("enable", gl.Get("DEPTH_TEST"))
	return d, nil
}

// Width returns the canvas drawing buffer width in pixels.
func (d *WebGLDevice) Width() int {
	return d.canvas.Get("width").Int()
}

// Height returns the canvas drawing buffer height in pixels.
func (d *WebGLDevice) Height() int {
	return d.canvas.Get("height").Int()
}

func (d *WebGLDevice) SetClearColor(c wgpu.Color) {
	d.gl.Call("clearColor", c.R, c.G, c.B, c.A)
}

func (d *WebGLDevice) SetScissor(r Rect) {
	d.gl.Call("scissor", r.X, r.Y, r.W, r.H)
}

func (d *WebGLDevice) SetViewport(r Rect) {
	d.gl.Call("viewport", r.X, r.Y, r.W, r.H)
}

func (d *WebGLDevice) SetDepthMask(enabled bool) {
	d.gl.Call("depthMask", enabled)
}

func (d *WebGLDevice) Clear(flags ClearFlags) {
	mask := 0
	if flags.Has(ClearColor) {
		mask |= d.colorBufferBit
	}
	if flags.Has(ClearDepth) {
		mask |= d.depthBufferBit
	}
	if mask != 0 {
		d.gl.Call("clear", mask)
	}
}

func (d *WebGLDevice) Flush() {
	d.gl.Call("flush")
}

// BeginFrame is a no-op; the browser composites the drawing buffer after each animation frame.
func (d *WebGLDevice) BeginFrame() error {
	return nil
}

// Present is a no-op for the same reason as BeginFrame.
func (d *WebGLDevice) Present() {}

func (d *WebGLDevice) Resize(width, height int) {
	d.canvas.Set("width", width)
	d.canvas.Set("height", height)
}
