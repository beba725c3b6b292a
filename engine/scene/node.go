package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Node is a transform in the scene graph with attached entities.
type Node struct {
	mu       *sync.RWMutex
	name     string
	parent   *Node
	children []*Node
	entities []Entity
	position common.Vec3
	rotation common.Vec3
	scale    common.Vec3
	enabled  bool
}

// NewNode creates an enabled node at the origin with unit scale.
//
// Parameters:
//   - name: the node name
//   - opts: optional configuration
//
// Returns:
//   - *Node: the node
func NewNode(name string, opts ...NodeBuilderOption) *Node {
	n := &Node{
		mu:      &sync.RWMutex{},
		name:    name,
		scale:   common.Vec3{1, 1, 1},
		enabled: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.name
}

func (n *Node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

// Enabled reports whether the node and its subtree take part in rendering.
func (n *Node) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

func (n *Node) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

func (n *Node) Parent() *Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

// Root returns the topmost ancestor of n, or n itself.
func (n *Node) Root() *Node {
	root := n
	for p := root.Parent(); p != nil; p = root.Parent() {
		root = p
	}
	return root
}

// Children returns a copy of the node's children.
func (n *Node) Children() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.children)
}

// AddChild attaches c to n, detaching it from its previous parent first.
// Adding n itself or one of its ancestors is ignored.
//
// Parameters:
//   - c: the child node
func (n *Node) AddChild(c *Node) {
	if c == nil || n.hasAncestor(c) {
		return
	}
	if old := c.Parent(); old != nil {
		if old == n {
			return
		}
		old.RemoveChild(c)
	}

	n.mu.Lock()
	n.children = append(n.children, c)
	n.mu.Unlock()

	c.mu.Lock()
	c.parent = n
	c.mu.Unlock()
}

// hasAncestor reports whether a is n or one of its ancestors.
func (n *Node) hasAncestor(a *Node) bool {
	for p := n; p != nil; p = p.Parent() {
		if p == a {
			return true
		}
	}
	return false
}

// RemoveChild detaches c from n. Nodes that are not children of n are ignored.
//
// Parameters:
//   - c: the child node
func (n *Node) RemoveChild(c *Node) {
	n.mu.Lock()
	i := slices.Index(n.children, c)
	if i < 0 {
		n.mu.Unlock()
		return
	}
	n.children = slices.Delete(n.children, i, i+1)
	n.mu.Unlock()

	c.mu.Lock()
	c.parent = nil
	c.mu.Unlock()
}

// AddEntity attaches e to the node. Attaching the same entity twice is a no-op.
func (n *Node) AddEntity(e Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if slices.Contains(n.entities, e) {
		return
	}
	n.entities = append(n.entities, e)
}

func (n *Node) RemoveEntity(e Entity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if i := slices.Index(n.entities, e); i >= 0 {
		n.entities = slices.Delete(n.entities, i, i+1)
	}
}

// Entities returns a copy of the attached entities in attachment order.
func (n *Node) Entities() []Entity {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.entities)
}

func (n *Node) Position() common.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *Node) SetPosition(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = common.Vec3{x, y, z}
}

// Rotation returns the Euler rotation in radians.
func (n *Node) Rotation() common.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *Node) SetRotation(rx, ry, rz float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = common.Vec3{rx, ry, rz}
}

func (n *Node) Scale() common.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *Node) SetScale(sx, sy, sz float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = common.Vec3{sx, sy, sz}
}

// LocalMatrix returns the node transform relative to its parent.
func (n *Node) LocalMatrix() common.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return common.ModelMatrix(n.position, n.rotation, n.scale)
}

// WorldMatrix returns the node transform in world space.
func (n *Node) WorldMatrix() common.Mat4 {
	local := n.LocalMatrix()
	if p := n.Parent(); p != nil {
		return p.WorldMatrix().Mul(local)
	}
	return local
}

// WorldPosition returns the world-space position of the node origin.
func (n *Node) WorldPosition() common.Vec3 {
	return n.WorldMatrix().Translation()
}

// Walk visits n and its enabled descendants depth-first, parents before children.
// Disabled nodes are skipped together with their subtrees. Returning false from
// fn skips the children of the visited node.
//
// Parameters:
//   - fn: the visitor
func (n *Node) Walk(fn func(*Node) bool) {
	if !n.Enabled() {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}
