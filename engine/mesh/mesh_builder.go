package mesh

// MeshBuilderOption is a function that configures a Mesh during construction.
type MeshBuilderOption func(*meshImpl)

// WithTransparent marks the mesh as transparent.
//
// Parameters:
//   - transparent: true to draw the mesh blended in the transparent queue
//
// Returns:
//   - MeshBuilderOption: a function that applies the option
func WithTransparent(transparent bool) MeshBuilderOption {
	return func(m *meshImpl) {
		m.transparent = transparent
	}
}

// WithQueueIndex pins the mesh to a render queue.
//
// Parameters:
//   - idx: the render queue index
//
// Returns:
//   - MeshBuilderOption: a function that applies the option
func WithQueueIndex(idx int) MeshBuilderOption {
	return func(m *meshImpl) {
		m.queueIndex = idx
	}
}

// WithBoundingRadius sets the local bounding sphere radius used for frustum culling.
// Negative values disable culling.
//
// Parameters:
//   - radius: the radius
//
// Returns:
//   - MeshBuilderOption: a function that applies the option
func WithBoundingRadius(radius float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.radius = radius
	}
}

// WithDrawFunc sets the function that issues the mesh draw calls.
//
// Parameters:
//   - fn: the draw function
//
// Returns:
//   - MeshBuilderOption: a function that applies the option
func WithDrawFunc(fn DrawFunc) MeshBuilderOption {
	return func(m *meshImpl) {
		m.draw = fn
	}
}
