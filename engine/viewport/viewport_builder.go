package viewport

import (
	"github.com/Carmen-Shannon/oxy-view/engine/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ViewportBuilderOption is a function that configures a Viewport in Manager.CreateViewport.
type ViewportBuilderOption func(*viewportConfig)

type viewportConfig struct {
	name       string
	x, y, w, h float32
	zorder     *int
	camera     Camera
	enabled    bool
	renderer   Renderer
	clearColor wgpu.Color
	clearFlags gpu.ClearFlags
}

func defaultViewportConfig() *viewportConfig {
	return &viewportConfig{
		w:          1,
		h:          1,
		enabled:    true,
		clearColor: wgpu.Color{A: 1},
		clearFlags: gpu.ClearAll,
	}
}

// WithName sets the viewport name. Without it the viewport is named UnnamedViewport_<id>.
//
// Parameters:
//   - name: the viewport name
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithName(name string) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.name = name
	}
}

// WithRect sets the normalized viewport rectangle.
//
// Parameters:
//   - x, y: lower left corner as fractions of the canvas
//   - w, h: size as fractions of the canvas
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithRect(x, y, w, h float32) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.x, c.y, c.w, c.h = x, y, w, h
	}
}

// WithPos sets the normalized lower left corner.
//
// Parameters:
//   - x, y: position as fractions of the canvas
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithPos(x, y float32) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.x, c.y = x, y
	}
}

// WithSize sets the normalized size.
//
// Parameters:
//   - w, h: size as fractions of the canvas
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithSize(w, h float32) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.w, c.h = w, h
	}
}

// WithZOrder sets an explicit stacking key. Without it the manager assigns
// increasing zorders in creation order.
//
// Parameters:
//   - z: the zorder
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithZOrder(z int) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.zorder = &z
	}
}

// WithCamera sets the camera. Without it the viewport creates its own camera node.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithCamera(cam Camera) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.camera = cam
	}
}

// WithEnabled sets the initial enabled state.
//
// Parameters:
//   - enabled: the enabled state
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithEnabled(enabled bool) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.enabled = enabled
	}
}

// WithRenderer attaches a renderer up front instead of loading the default one on first render.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithRenderer(r Renderer) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.renderer = r
	}
}

// WithClearColor sets the clear color.
//
// Parameters:
//   - color: the RGBA clear color
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithClearColor(color wgpu.Color) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.clearColor = color
	}
}

// WithClearFlags selects which buffers are cleared at the start of the viewport's frame.
//
// Parameters:
//   - flags: the clear flags, 0 to clear nothing
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithClearFlags(flags gpu.ClearFlags) ViewportBuilderOption {
	return func(c *viewportConfig) {
		c.clearFlags = flags
	}
}
