// Package gpu defines the graphics command stream the viewport pipeline talks to
// and the device backends that implement it.
//
// The contract mirrors the small set of global device operations a viewport
// needs each frame: clear color, scissor rectangle, viewport rectangle, depth
// write mask, clear and flush. Everything that draws geometry goes through the
// renderer and is not part of this interface.
package gpu

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoFrame is returned when a frame operation is issued outside BeginFrame/Present.
var ErrNoFrame = errors.New("gpu: no frame in progress")

// ClearFlags selects which buffers a Clear affects.
type ClearFlags uint32

const (
	// ClearColor clears the color attachment to the current clear color.
	ClearColor ClearFlags = 1 << iota

	// ClearDepth clears the depth attachment to the far plane.
	ClearDepth

	// ClearAll clears both color and depth.
	ClearAll = ClearColor | ClearDepth
)

// Has reports whether every bit in o is set in f.
func (f ClearFlags) Has(o ClearFlags) bool {
	return f&o == o
}

func (f ClearFlags) String() string {
	switch f {
	case 0:
		return "none"
	case ClearColor:
		return "color"
	case ClearDepth:
		return "depth"
	case ClearAll:
		return "color|depth"
	default:
		return fmt.Sprintf("ClearFlags(%#x)", uint32(f))
	}
}

// Rect is a pixel rectangle with its origin at the lower left of the canvas.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Device is the global graphics state shared by every viewport in a frame.
// State set through it persists until changed, like a GL context.
type Device interface {
	// SetClearColor sets the color used by subsequent color clears.
	//
	// Parameters:
	//   - c: the RGBA clear color
	SetClearColor(c wgpu.Color)

	// SetScissor restricts clears and draws to the given pixel rectangle.
	//
	// Parameters:
	//   - r: the scissor rectangle in pixels
	SetScissor(r Rect)

	// SetViewport maps normalized device coordinates to the given pixel rectangle.
	//
	// Parameters:
	//   - r: the viewport rectangle in pixels
	SetViewport(r Rect)

	// SetDepthMask enables or disables writes to the depth buffer, including depth clears.
	//
	// Parameters:
	//   - enabled: true to allow depth writes
	SetDepthMask(enabled bool)

	// Clear clears the selected buffers inside the current scissor rectangle.
	//
	// Parameters:
	//   - flags: the buffers to clear
	Clear(flags ClearFlags)

	// Flush submits every command issued so far.
	Flush()
}

// FrameDevice is a Device that owns a presentable surface.
type FrameDevice interface {
	Device

	// BeginFrame acquires the next surface image. Device commands issued before
	// BeginFrame or after Present are dropped.
	//
	// Returns:
	//   - error: an error if the surface image could not be acquired
	BeginFrame() error

	// Present flushes outstanding work and presents the current surface image.
	Present()

	// Resize reconfigures the surface for a new pixel size.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)
}
