package canopy

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// --- ID counter ---

// nodeIDCounter is a plain counter; canopy is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is a scene graph element as seen by the view-state engine. The render
// pipeline owns what a node looks like; canopy only reads and, between
// ApplyNodeStates and RevertNodeStates, writes the Visible and Material fields.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local transform relative to Parent.
	Transform mgl64.Mat4

	// Bounds is the node's own local-space bounding box, used to size the
	// selection box. An empty box means the node has no geometry.
	Bounds Box3

	// Intrinsic visual defaults
	Visible bool
	Opacity float64

	// Material is nil for pure grouping nodes.
	Material *Material

	// Metadata
	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Transform = mgl64.Ident4()
	n.Bounds = Box3{Min: mgl64.Vec3{1, 1, 1}, Max: mgl64.Vec3{-1, -1, -1}}
	n.Visible = true
	n.Opacity = 1
}

// NewGroup creates a node with no geometry and no material.
func NewGroup(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewMeshNode creates a node with the given material and local bounds.
func NewMeshNode(name string, m *Material, bounds Box3) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	n.Material = m
	n.Bounds = bounds
	return n
}

// --- Tree manipulation ---

// AddChild makes child the last child of n, detaching it from its current
// parent. Panics on a nil child or when n lies inside child's subtree.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("canopy: AddChild: nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic(fmt.Sprintf("canopy: AddChild: %q is %q or one of its ancestors", child.Name, n.Name))
	}
	if old := child.Parent; old != nil {
		old.detachChild(child)
	}
	n.children = append(n.children, child)
	child.Parent = n
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("canopy: child's parent is not this node")
	}
	n.detachChild(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// Traverse visits n and all of its descendants in depth-first pre-order.
// Returning false from fn skips the visited node's subtree. An explicit stack
// is used so deep hierarchies cannot overflow the goroutine stack.
func (n *Node) Traverse(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
}

// Root returns the topmost ancestor of n (n itself if it has no parent).
func (n *Node) Root() *Node {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	var all []*Node
	n.Traverse(func(d *Node) bool {
		all = append(all, d)
		return true
	})
	for _, d := range all {
		d.disposed = true
		d.ID = 0
		d.Parent = nil
		d.children = nil
		d.Material = nil
		d.UserData = nil
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node itself or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detachChild drops child from the child list. child.Parent is left alone.
func (n *Node) detachChild(child *Node) {
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
}
