// Package scene holds the node graph that cameras walk to fill render queues.
//
// A Node carries a local transform, child nodes and the entities attached to
// it. Entities (meshes, lights, cameras) do not know their own placement: the
// node they are attached to is passed back to them whenever they are asked to
// contribute work for a frame.
package scene

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/renderqueue"
)

// View is the part of a viewport that entities see while they fill render queues.
type View interface {
	// ID returns the viewport identifier, unique per viewport manager.
	ID() int

	// Name returns the viewport name.
	Name() string

	// Aspect returns the pixel aspect ratio of the viewport on its canvas.
	Aspect() float32

	// CameraWorldPos returns the world-space position of the viewport camera.
	CameraWorldPos() common.Vec3
}

// Entity is anything that can be attached to a Node and contribute draw jobs.
type Entity interface {
	// Render pushes the entity's jobs for the current frame.
	//
	// Parameters:
	//   - view: the viewport being rendered
	//   - e: the entity as attached to the node, which may wrap the receiver
	//   - n: the node the entity is attached to
	//   - rq: the renderer's queue manager
	Render(view View, e Entity, n *Node, rq *renderqueue.Manager)

	// BoundingRadius returns the local-space bounding sphere radius around the node origin.
	// A negative radius means the entity is never culled.
	//
	// Returns:
	//   - float32: the radius, or a negative value for unbounded entities
	BoundingRadius() float32
}
