package canopy

// NodeState is the view-state record of one node. A record only exists while
// the node deviates from its default look in some way; see needed.
type NodeState struct {
	node *Node

	visible    bool
	hasVisible bool

	selected         bool
	ancestorSelected bool

	opacity                  float64
	hasOpacity               bool
	ancestorOverridesOpacity bool

	tintColor            Color
	hasTintColor         bool
	ancestorTintColor    Color
	hasAncestorTintColor bool

	boundingBox *OverlayBox
	material    *Material

	// Stash written by ApplyNodeStates and consumed by RevertNodeStates.
	originalMaterial *Material
	originalVisible  bool
	applied          bool

	needsMaterialUpdate bool
}

// Node returns the node this record belongs to.
func (s *NodeState) Node() *Node { return s.node }

// Visible returns the explicit visibility override, if any.
func (s *NodeState) Visible() (visible, ok bool) { return s.visible, s.hasVisible }

// Selected reports whether the node itself is selected.
func (s *NodeState) Selected() bool { return s.selected }

// AncestorSelected reports whether a strict ancestor is selected.
func (s *NodeState) AncestorSelected() bool { return s.ancestorSelected }

// Highlighted reports whether the node is selected or under a selected ancestor.
func (s *NodeState) Highlighted() bool { return s.selected || s.ancestorSelected }

// Opacity returns the explicit opacity override, if any.
func (s *NodeState) Opacity() (float64, bool) { return s.opacity, s.hasOpacity }

// AncestorOverridesOpacity reports whether this node or an ancestor has an
// opacity override.
func (s *NodeState) AncestorOverridesOpacity() bool { return s.ancestorOverridesOpacity }

// TintColor returns the explicit tint override, if any.
func (s *NodeState) TintColor() (Color, bool) { return s.tintColor, s.hasTintColor }

// AncestorTintColor returns the tint inherited from the nearest tinted strict ancestor.
func (s *NodeState) AncestorTintColor() (Color, bool) {
	return s.ancestorTintColor, s.hasAncestorTintColor
}

// EffectiveTintColor returns the own tint if set, else the inherited one.
func (s *NodeState) EffectiveTintColor() (Color, bool) {
	if s.hasTintColor {
		return s.tintColor, true
	}
	return s.ancestorTintColor, s.hasAncestorTintColor
}

// BoundingBox returns the selection box, or nil.
func (s *NodeState) BoundingBox() *OverlayBox { return s.boundingBox }

// Material returns the private material clone, or nil.
func (s *NodeState) Material() *Material { return s.material }

// NeedsMaterialUpdate reports whether the material rebuild pass has not yet
// consumed this record.
func (s *NodeState) NeedsMaterialUpdate() bool { return s.needsMaterialUpdate }

// needed is the existence predicate: a record that fails it carries no
// information and is dropped by prune.
func (s *NodeState) needed() bool {
	return s.hasVisible ||
		s.selected ||
		s.ancestorSelected ||
		s.hasTintColor ||
		s.hasAncestorTintColor ||
		s.hasOpacity ||
		s.ancestorOverridesOpacity
}

// intrinsicVisible returns the node's own visibility, looking through an
// applied override.
func (s *NodeState) intrinsicVisible() bool {
	if s.applied {
		return s.originalVisible
	}
	return s.node.Visible
}

// originalNodeMaterial returns the node's own material, looking through an
// applied override.
func (s *NodeState) originalNodeMaterial() *Material {
	if s.applied {
		return s.originalMaterial
	}
	return s.node.Material
}

// effectiveVisible returns the override if present, else the intrinsic value.
func (s *NodeState) effectiveVisible() bool {
	if s.hasVisible {
		return s.visible
	}
	return s.intrinsicVisible()
}

// --- Store ---

// nodeStateStore is the sparse map from node to NodeState. It owns every
// record and the resources hanging off them.
type nodeStateStore struct {
	states    map[*Node]*NodeState
	dirty     []*NodeState
	materials *MaterialCache
	overlay   *BoundingBoxOverlay

	// applied is set between ApplyNodeStates and RevertNodeStates. Records
	// created meanwhile stash their node and write to it live.
	applied bool
}

func newNodeStateStore(materials *MaterialCache, overlay *BoundingBoxOverlay) *nodeStateStore {
	return &nodeStateStore{
		states:    make(map[*Node]*NodeState),
		materials: materials,
		overlay:   overlay,
	}
}

// get returns the record for n, allocating a default one when create is set.
func (s *nodeStateStore) get(n *Node, create bool) *NodeState {
	if st, ok := s.states[n]; ok {
		return st
	}
	if !create {
		return nil
	}
	st := &NodeState{node: n}
	if s.applied {
		st.originalMaterial = n.Material
		st.originalVisible = n.Visible
		st.applied = true
	}
	s.states[n] = st
	return st
}

// lookup is get(n, false) shaped for worldOpacity.
func (s *nodeStateStore) lookup(n *Node) *NodeState {
	return s.states[n]
}

// markDirty flags st for the next material rebuild pass.
func (s *nodeStateStore) markDirty(st *NodeState) {
	if st.needsMaterialUpdate {
		return
	}
	st.needsMaterialUpdate = true
	s.dirty = append(s.dirty, st)
}

// takeDirty returns and resets the dirty list.
func (s *nodeStateStore) takeDirty() []*NodeState {
	d := s.dirty
	s.dirty = nil
	return d
}

// forEach calls fn for every record. Order is not significant.
func (s *nodeStateStore) forEach(fn func(*NodeState)) {
	for _, st := range s.states {
		fn(st)
	}
}

func (s *nodeStateStore) len() int {
	return len(s.states)
}

// prune drops every record that no longer satisfies needed, releasing its
// material and selection box. A node still carrying applied overrides gets
// its stash written back first. Returns the number of dropped records.
func (s *nodeStateStore) prune() int {
	removed := 0
	for n, st := range s.states {
		if st.needed() {
			continue
		}
		s.release(st)
		delete(s.states, n)
		removed++
	}
	if removed > 0 {
		s.compactDirty()
	}
	return removed
}

// drop releases and forgets n's record regardless of what it carries.
// Reports whether there was one. Callers compact the dirty list afterwards.
func (s *nodeStateStore) drop(n *Node) bool {
	st, ok := s.states[n]
	if !ok {
		return false
	}
	s.release(st)
	delete(s.states, n)
	return true
}

// compactDirty removes dirty entries whose record is gone.
func (s *nodeStateStore) compactDirty() {
	kept := s.dirty[:0]
	for _, st := range s.dirty {
		if s.states[st.node] == st {
			kept = append(kept, st)
		}
	}
	clear(s.dirty[len(kept):])
	s.dirty = kept
}

// release frees everything st owns and restores an applied node.
func (s *nodeStateStore) release(st *NodeState) {
	if st.applied {
		st.node.Material = st.originalMaterial
		st.node.Visible = st.originalVisible
		st.originalMaterial = nil
		st.applied = false
	}
	if st.material != nil {
		s.materials.Release(st.material)
		st.material = nil
	}
	if st.boundingBox != nil {
		s.overlay.remove(st.boundingBox)
		st.boundingBox = nil
	}
	st.needsMaterialUpdate = false
}

// clear drops every record.
func (s *nodeStateStore) clear() {
	for _, st := range s.states {
		s.release(st)
	}
	s.states = make(map[*Node]*NodeState)
	s.dirty = nil
	s.applied = false
}
