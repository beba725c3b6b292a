// Package camera implements the camera entity viewports render through.
//
// A camera lives on a scene node, which gives it its world position, and looks
// at a target point. Each frame the owning viewport asks it to fill the
// renderer's queues: the camera culls the scene graph against its frustum and
// lets every visible entity push its jobs.
package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
	"github.com/Carmen-Shannon/oxy-view/engine/scene"
	"github.com/Carmen-Shannon/oxy-view/engine/statepool"
)

// Camera defines the interface for a perspective camera entity.
type Camera interface {
	scene.Entity

	// Name returns the camera name.
	Name() string

	// Node returns the scene node the camera is attached to, or nil.
	Node() *scene.Node

	// AttachTo attaches the camera to n, detaching it from its previous node.
	//
	// Parameters:
	//   - n: the node to attach to
	AttachTo(n *scene.Node)

	// Viewport returns the viewport currently rendering through the camera, or nil.
	Viewport() scene.View

	// OnSetViewport is called by a viewport when it takes or releases the camera.
	//
	// Parameters:
	//   - view: the new owning viewport, or nil when released
	OnSetViewport(view scene.View)

	// WorldPos returns the world-space position of the camera node.
	//
	// Returns:
	//   - common.Vec3: the position, or the origin when the camera has no node
	WorldPos() common.Vec3

	// SetPosition moves the camera node relative to its parent.
	SetPosition(x, y, z float32)

	// Target returns the world-space point the camera looks at.
	Target() common.Vec3
	SetTarget(x, y, z float32)

	Up() common.Vec3
	SetUp(x, y, z float32)

	// Fov returns the vertical field of view in radians.
	Fov() float32
	SetFov(fov float32)
	Near() float32
	SetNear(near float32)
	Far() float32
	SetFar(far float32)

	// Aspect returns the explicit aspect ratio, or the owning viewport's when
	// the camera follows its viewport. Without a viewport it falls back to 1.
	Aspect() float32

	// SetAspect fixes the aspect ratio. Zero or negative values make the camera
	// follow its viewport again.
	SetAspect(aspect float32)

	// AutoAspect reports whether the aspect ratio follows the viewport.
	AutoAspect() bool

	ViewMatrix() common.Mat4
	ProjectionMatrix() common.Mat4
	ViewProjectionMatrix() common.Mat4

	// FillRenderQueues culls the scene the camera node belongs to and lets every
	// visible entity push its jobs. It does nothing while the camera has no viewport or node.
	//
	// Parameters:
	//   - rq: the renderer's queue manager
	//   - sp: the state pool for the current frame
	FillRenderQueues(rq *renderqueue.Manager, sp *statepool.StatePool)

	// Visible returns how many entities passed culling during the last FillRenderQueues.
	Visible() int

	// Culled returns how many entities were rejected during the last FillRenderQueues.
	Culled() int
}

type cameraImpl struct {
	mu *sync.Mutex

	name     string
	node     *scene.Node
	viewport scene.View

	target common.Vec3
	up     common.Vec3
	fov    float32
	aspect float32 // <= 0 follows the viewport
	near   float32
	far    float32

	viewMatrix           common.Mat4
	projectionMatrix     common.Mat4
	viewProjectionMatrix common.Mat4

	visible int
	culled  int
}

var _ Camera = &cameraImpl{}

// NewCamera creates a detached camera with a 45 degree vertical field of view,
// looking down -Z, whose aspect ratio follows its viewport.
//
// Parameters:
//   - name: the camera name
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(name string, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		name:                 name,
		target:               common.Vec3{0, 0, -1},
		up:                   common.Vec3{0, 1, 0},
		fov:                  45.0 * (math.Pi / 180.0),
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           common.IdentityMat4(),
		projectionMatrix:     common.IdentityMat4(),
		viewProjectionMatrix: common.IdentityMat4(),
	}
	for _, option := range options {
		option(c)
	}
	if c.node != nil {
		c.node.AddEntity(c)
	}
	return c
}

// NewCameraNode creates a camera together with its own node.
//
// Parameters:
//   - name: used for both the camera and the node
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the camera, attached to a fresh node
func NewCameraNode(name string, options ...CameraBuilderOption) Camera {
	return NewCamera(name, append([]CameraBuilderOption{WithNode(scene.NewNode(name))}, options...)...)
}

// Render is a no-op: cameras contribute no jobs of their own.
func (c *cameraImpl) Render(scene.View, scene.Entity, *scene.Node, *renderqueue.Manager) {}

// BoundingRadius is negative so culling never rejects the camera.
func (c *cameraImpl) BoundingRadius() float32 {
	return -1
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Node() *scene.Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.node
}

func (c *cameraImpl) AttachTo(n *scene.Node) {
	c.mu.Lock()
	old := c.node
	c.node = n
	c.mu.Unlock()

	if old == n {
		return
	}
	if old != nil {
		old.RemoveEntity(c)
	}
	if n != nil {
		n.AddEntity(c)
	}
}

func (c *cameraImpl) Viewport() scene.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) OnSetViewport(view scene.View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewport = view
}

func (c *cameraImpl) WorldPos() common.Vec3 {
	n := c.Node()
	if n == nil {
		return common.Vec3{}
	}
	return n.WorldPosition()
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	if n := c.Node(); n != nil {
		n.SetPosition(x, y, z)
	}
}

func (c *cameraImpl) Target() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = common.Vec3{x, y, z}
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = common.Vec3{x, y, z}
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	aspect, view := c.aspect, c.viewport
	c.mu.Unlock()

	if aspect > 0 {
		return aspect
	}
	if view != nil {
		return view.Aspect()
	}
	return 1
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) AutoAspect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect <= 0
}

func (c *cameraImpl) ViewMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Visible() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

func (c *cameraImpl) Culled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.culled
}

func (c *cameraImpl) FillRenderQueues(rq *renderqueue.Manager, sp *statepool.StatePool) {
	view := c.Viewport()
	node := c.Node()
	if view == nil || node == nil {
		return
	}

	c.updateMatrices(node.WorldPosition(), c.Aspect())
	frustum := common.ExtractFrustum(c.ViewProjectionMatrix())

	visible, culled := 0, 0
	node.Root().Walk(func(n *scene.Node) bool {
		entities := n.Entities()
		if len(entities) == 0 {
			return true
		}
		world := n.WorldMatrix()
		for _, e := range entities {
			r := e.BoundingRadius()
			if r >= 0 && !frustum.ContainsSphere(world.Translation(), r*world.MaxScale()) {
				culled++
				continue
			}
			visible++
			e.Render(view, e, n, rq)
		}
		return true
	})

	c.mu.Lock()
	c.visible, c.culled = visible, culled
	c.mu.Unlock()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
func (c *cameraImpl) updateMatrices(eye common.Vec3, aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viewMatrix = common.LookAt(eye, c.target, c.up)
	c.projectionMatrix = common.Perspective(c.fov, aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul(c.viewMatrix)
}
