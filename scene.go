package canopy

// NodeReplacedEvent is fired after Old has been swapped for New in the tree.
type NodeReplacedEvent struct {
	Old, New *Node
}

// NodeUpdatedEvent is fired after a node's geometry or material changed.
type NodeUpdatedEvent struct {
	Node *Node
}

// NodeRemovingEvent is fired just before a node is detached from the tree.
type NodeRemovingEvent struct {
	Node *Node
}

// NodeInsertedEvent is fired after a node has been attached under Parent.
type NodeInsertedEvent struct {
	Node   *Node
	Parent *Node
}

// Scene owns a node tree and announces structural changes to it. Edits made
// directly through Node.AddChild are not announced; use the Scene methods
// when a ViewStateManager is attached.
type Scene struct {
	root *Node

	nextID   uint32
	replaced handlerList[NodeReplacedEvent]
	updated  handlerList[NodeUpdatedEvent]
	removing handlerList[NodeRemovingEvent]
	inserted handlerList[NodeInsertedEvent]
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	return NewSceneWithRoot(NewGroup("root"))
}

// NewSceneWithRoot creates a scene around an existing tree.
func NewSceneWithRoot(root *Node) *Scene {
	s := &Scene{root: root}
	s.replaced.nextID = &s.nextID
	s.updated.nextID = &s.nextID
	s.removing.nextID = &s.nextID
	s.inserted.nextID = &s.nextID
	return s
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Contains reports whether n is the root or one of its descendants.
func (s *Scene) Contains(n *Node) bool {
	return n != nil && !n.disposed && isAncestor(s.root, n)
}

// Insert attaches child under parent and announces it.
func (s *Scene) Insert(parent, child *Node) {
	parent.AddChild(child)
	s.inserted.emit(NodeInsertedEvent{Node: child, Parent: parent})
}

// Replace swaps old for replacement at the same position under old's parent,
// moving old's children over, and announces it. Replacing the root makes
// replacement the new root.
func (s *Scene) Replace(old, replacement *Node) {
	if old == replacement {
		return
	}
	if replacement.Parent != nil {
		replacement.Parent.detachChild(replacement)
	}
	if p := old.Parent; p != nil {
		for i, c := range p.children {
			if c == old {
				p.children[i] = replacement
				break
			}
		}
		replacement.Parent = p
		old.Parent = nil
	} else if old == s.root {
		s.root = replacement
		replacement.Parent = nil
	}
	for _, c := range old.children {
		c.Parent = replacement
	}
	replacement.children = append(replacement.children, old.children...)
	old.children = nil
	s.replaced.emit(NodeReplacedEvent{Old: old, New: replacement})
}

// Update announces that n's geometry or material changed in place.
func (s *Scene) Update(n *Node) {
	s.updated.emit(NodeUpdatedEvent{Node: n})
}

// Remove announces n is about to go, then detaches it from its parent.
func (s *Scene) Remove(n *Node) {
	s.removing.emit(NodeRemovingEvent{Node: n})
	n.RemoveFromParent()
}

// OnNodeReplaced registers a callback fired after Replace.
func (s *Scene) OnNodeReplaced(fn func(NodeReplacedEvent)) CallbackHandle {
	return s.replaced.add(fn)
}

// OnNodeUpdated registers a callback fired by Update.
func (s *Scene) OnNodeUpdated(fn func(NodeUpdatedEvent)) CallbackHandle {
	return s.updated.add(fn)
}

// OnNodeRemoving registers a callback fired before Remove detaches a node.
func (s *Scene) OnNodeRemoving(fn func(NodeRemovingEvent)) CallbackHandle {
	return s.removing.add(fn)
}

// OnNodeInserted registers a callback fired after Insert.
func (s *Scene) OnNodeInserted(fn func(NodeInsertedEvent)) CallbackHandle {
	return s.inserted.add(fn)
}
