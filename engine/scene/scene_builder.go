package scene

import "github.com/Carmen-Shannon/oxy-view/common"

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(n *Node)

// WithPosition sets the node position relative to its parent.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *Node) {
		n.position = common.Vec3{x, y, z}
	}
}

// WithRotation sets the node Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation around each axis
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(rx, ry, rz float32) NodeBuilderOption {
	return func(n *Node) {
		n.rotation = common.Vec3{rx, ry, rz}
	}
}

// WithScale sets the node scale.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(sx, sy, sz float32) NodeBuilderOption {
	return func(n *Node) {
		n.scale = common.Vec3{sx, sy, sz}
	}
}

// WithEnabled sets whether the node takes part in rendering.
//
// Parameters:
//   - enabled: the enabled flag
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithEnabled(enabled bool) NodeBuilderOption {
	return func(n *Node) {
		n.enabled = enabled
	}
}

// WithEntities attaches entities to the node.
//
// Parameters:
//   - entities: the entities to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithEntities(entities ...Entity) NodeBuilderOption {
	return func(n *Node) {
		n.entities = append(n.entities, entities...)
	}
}

// WithChildren attaches child nodes.
//
// Parameters:
//   - children: the child nodes
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...*Node) NodeBuilderOption {
	return func(n *Node) {
		for _, c := range children {
			n.children = append(n.children, c)
			c.parent = n
		}
	}
}
