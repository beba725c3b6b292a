package viewport

import "sync"

// Canvas is the drawing surface viewports are laid out on. Sizes are in pixels.
type Canvas interface {
	Width() int
	Height() int
}

// FixedCanvas is a Canvas with an explicitly set size, used for offscreen
// rendering and by hosts that track the surface size themselves.
type FixedCanvas struct {
	mu     sync.RWMutex
	width  int
	height int
}

var _ Canvas = &FixedCanvas{}

// NewFixedCanvas creates a canvas of the given size.
func NewFixedCanvas(width, height int) *FixedCanvas {
	return &FixedCanvas{width: width, height: height}
}

func (c *FixedCanvas) Width() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.width
}

func (c *FixedCanvas) Height() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

func (c *FixedCanvas) SetSize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
}
