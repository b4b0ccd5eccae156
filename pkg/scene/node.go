package scene

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/taigrr/dimenshift/pkg/math4d"
	"github.com/taigrr/dimenshift/pkg/models"
	"github.com/taigrr/dimenshift/pkg/physics"
)

// DefaultColor is the tint given to new entities.
var DefaultColor = color.RGBA{0, 255, 0, 255}

// Node is an element of the scene tree. A node with a Mesh is drawn; a node
// with a Body is simulated.
type Node struct {
	ID        uuid.UUID
	Name      string
	Transform Transform
	Parent    *Node

	// Visible hides the node and its subtree from rendering and picking.
	// Hidden nodes keep updating.
	Visible bool

	Mesh        *models.Mesh
	Color       color.RGBA
	Body        *physics.RigidBody
	Highlighted bool

	children []*Node

	world math4d.Mat5
	dirty bool

	// generation increases on every world recompute; parentGen records the
	// parent generation the cached world matrix was built from.
	generation uint64
	parentGen  uint64
}

// NewNode creates an empty visible node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		ID:        uuid.New(),
		Name:      name,
		Transform: NewTransform(),
		Visible:   true,
		Color:     DefaultColor,
		world:     math4d.Identity5(),
		dirty:     true,
	}
}

// NewEntity creates a node that draws mesh.
func NewEntity(name string, mesh *models.Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// AddChild appends child to this node's children. A child that already has
// a parent is detached from it first.
// Panics on a nil child or if child is n or one of its ancestors.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	child.dirty = true
}

// RemoveChild detaches child and reports whether it was a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	if child == nil || child.Parent != n {
		return false
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	child.dirty = true
	return true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestor reports whether a is n or one of n's ancestors.
func isAncestor(a, n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == a {
			return true
		}
	}
	return false
}

// SetPosition sets the local position.
func (n *Node) SetPosition(p math4d.Vec4) {
	n.Transform.Position = p
	n.dirty = true
}

// SetScale sets the local scale.
func (n *Node) SetScale(s math4d.Vec4) {
	n.Transform.Scale = s
	n.dirty = true
}

// SetRotation sets the local rotation.
func (n *Node) SetRotation(r math4d.Rotor) {
	n.Transform.Rotation = r
	n.dirty = true
}

// Translate moves the node by delta in its parent's space.
func (n *Node) Translate(delta math4d.Vec4) {
	n.Transform.Position = n.Transform.Position.Add(delta)
	n.dirty = true
}

// MarkDirty flags the cached world matrix for recompute. Needed after
// writing Transform fields directly.
func (n *Node) MarkDirty() {
	n.dirty = true
}

// Dirty reports whether the node itself is flagged for recompute.
// A clean node can still be stale when an ancestor moved; Update handles both.
func (n *Node) Dirty() bool {
	return n.dirty
}

// Generation returns the number of times the world matrix was recomputed.
func (n *Node) Generation() uint64 {
	return n.generation
}

// Update refreshes world matrices top-down. A node recomputes when it is
// dirty or when its parent recomputed since the node was last composed.
// Every child is visited regardless.
func (n *Node) Update(dt float32) {
	if n.stale() {
		n.updateWorldMatrix()
	}
	for _, child := range n.children {
		child.Update(dt)
	}
}

func (n *Node) stale() bool {
	if n.dirty {
		return true
	}
	return n.Parent != nil && n.Parent.generation != n.parentGen
}

func (n *Node) updateWorldMatrix() {
	local := n.Transform.Matrix()
	if n.Parent != nil {
		n.world = n.Parent.world.Mul(local)
		n.parentGen = n.Parent.generation
	} else {
		n.world = local
		n.parentGen = 0
	}
	n.generation++
	n.dirty = false
}

// WorldMatrix returns the cached world matrix from the last Update.
func (n *Node) WorldMatrix() math4d.Mat5 {
	return n.world
}

// WorldPosition returns the translation part of the world matrix.
func (n *Node) WorldPosition() math4d.Vec4 {
	return n.world.Translation()
}

// WorldBounds returns the world-space bounding box of the node's mesh.
// It is recomputed on every call. Nodes without a mesh return an empty box.
func (n *Node) WorldBounds() physics.AABB {
	if n.Mesh == nil {
		return physics.EmptyAABB()
	}
	return n.Mesh.WorldBounds(n.world)
}

// Walk visits n and its descendants depth-first, parents before children.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// Find returns the first node named name in depth-first order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
