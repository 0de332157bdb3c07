package canopy

import "go.uber.org/zap"

// ViewStateController is the public surface of the view-state engine.
// Every operation runs to completion, including its change notification,
// before returning. Node arguments must be live nodes of the attached scene;
// this is not checked outside debug mode.
type ViewStateController interface {
	VisibilityState(n *Node) bool
	SetVisibilityState(nodes []*Node, visible, recursive, force bool)
	SetVisibilityStates(nodes []*Node, visible []bool, recursive, force bool)
	ResetVisibility()
	VisibleNodes() []*Node
	HiddenNodes() []*Node

	SelectionState(n *Node) bool
	SetSelectionState(nodes []*Node, selected, recursive, blockNotification bool)
	SetSelectionStates(selected, unselected []*Node, recursive, blockNotification bool)
	SelectedNodes() []*Node
	SelectedNodeIDs() []uint32

	OutliningState(n *Node) bool
	SetOutliningState(nodes []*Node, outlined, recursive bool)
	SetOutliningStates(outlined, unoutlined []*Node, recursive bool)
	OutlinedNodes() []*Node
	OutlinedNodeIDs() []uint32
	SetOutlineColor(c Color)
	OutlineColor() Color
	SetOutlineWidth(w float64)
	OutlineWidth() float64

	Opacity(n *Node) (float64, bool)
	WorldOpacity(n *Node) float64
	SetOpacity(nodes []*Node, opacity float64, recursive bool)
	SetOpacities(nodes []*Node, opacity []float64, recursive bool)
	ClearOpacity(nodes []*Node, recursive bool)

	TintColor(n *Node) (Color, bool)
	TintColorABGR(n *Node) (uint32, bool)
	SetTintColor(nodes []*Node, c Color, recursive bool)
	SetTintColors(nodes []*Node, c []Color, recursive bool)
	SetTintColorABGR(nodes []*Node, abgr uint32, recursive bool)
	SetTintColorCSS(nodes []*Node, css string, recursive bool) error
	ClearTintColor(nodes []*Node, recursive bool)

	SetHighlightColor(c Color)
	SetHighlightColorCSS(css string) error
	HighlightColor() Color

	SetShowSelectionBoundingBox(show bool)
	ShowSelectionBoundingBox() bool

	ApplyNodeStates()
	RevertNodeStates()
}

var _ ViewStateController = (*ViewStateManager)(nil)

// ViewStateManager tracks the visual state of every node of one scene:
// visibility, selection, outlining, opacity and tint overrides. State is
// stored sparsely; nodes at their defaults have no record.
type ViewStateManager struct {
	scene        *Scene
	sceneHandles []CallbackHandle

	store     *nodeStateStore
	materials *MaterialCache
	overlay   *BoundingBoxOverlay
	selected  nodeSet
	outlined  nodeSet
	handlers  viewStateHandlers

	highlightColor     Color
	outlineColor       Color
	outlineWidth       float64
	showBoundingBox    bool
	recursiveSelection bool

	log   *zap.Logger
	debug bool
}

// New creates a manager with no scene attached.
func New(opts Options) *ViewStateManager {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := &ViewStateManager{
		materials:          &MaterialCache{},
		overlay:            NewBoundingBoxOverlay(opts.HighlightColor),
		selected:           make(nodeSet),
		outlined:           make(nodeSet),
		highlightColor:     opts.HighlightColor,
		outlineColor:       opts.OutlineColor,
		outlineWidth:       opts.OutlineWidth,
		showBoundingBox:    opts.ShowSelectionBoundingBox,
		recursiveSelection: opts.RecursiveSelection,
		log:                log,
	}
	m.store = newNodeStateStore(m.materials, m.overlay)
	m.handlers.init()
	if opts.Debug {
		m.SetDebugMode(true)
	}
	return m
}

// --- Lifecycle ---

// AttachScene drops all state, subscribes to s, and fires a
// VisibilityChanged describing s's intrinsic visible/hidden partition.
// Attaching nil just detaches.
func (m *ViewStateManager) AttachScene(s *Scene) {
	m.detachScene()
	if s == nil {
		return
	}
	m.scene = s
	m.sceneHandles = append(m.sceneHandles,
		s.OnNodeReplaced(m.handleNodeReplaced),
		s.OnNodeUpdated(m.handleNodeUpdated),
		s.OnNodeRemoving(m.handleNodeRemoving),
		s.OnNodeInserted(m.handleNodeInserted),
	)
	var ev VisibilityChangedEvent
	s.root.Traverse(func(n *Node) bool {
		if n.Visible {
			ev.Visible = append(ev.Visible, n)
		} else {
			ev.Hidden = append(ev.Hidden, n)
		}
		return true
	})
	m.log.Debug("scene attached",
		zap.Int("visible", len(ev.Visible)), zap.Int("hidden", len(ev.Hidden)))
	m.handlers.visibility.emit(ev)
}

// Scene returns the attached scene, or nil.
func (m *ViewStateManager) Scene() *Scene {
	return m.scene
}

// Close detaches from the scene, restores any applied nodes, and drops every
// registered callback.
func (m *ViewStateManager) Close() {
	m.detachScene()
	m.handlers.clear()
}

func (m *ViewStateManager) detachScene() {
	for _, h := range m.sceneHandles {
		h.Remove()
	}
	m.sceneHandles = m.sceneHandles[:0]
	m.store.clear()
	m.overlay.clear()
	clear(m.selected)
	clear(m.outlined)
	m.scene = nil
}

// State returns the record for n, or nil when n is at its defaults. The
// record is owned by the manager and must not be retained across calls.
func (m *ViewStateManager) State(n *Node) *NodeState {
	return m.store.get(n, false)
}

// StateCount returns the number of live records.
func (m *ViewStateManager) StateCount() int {
	return m.store.len()
}

// Materials returns the cache private material clones come from.
func (m *ViewStateManager) Materials() *MaterialCache {
	return m.materials
}

// Overlay returns the selection box overlay scene.
func (m *ViewStateManager) Overlay() *BoundingBoxOverlay {
	return m.overlay
}

// --- Visibility ---

// VisibilityState returns the effective visibility of n.
func (m *ViewStateManager) VisibilityState(n *Node) bool {
	return m.visibility(n)
}

// SetVisibilityState gives every node the same visibility. With recursive
// set, whole subtrees are affected. With force set, making a node visible
// also makes all its ancestors visible.
func (m *ViewStateManager) SetVisibilityState(nodes []*Node, visible, recursive, force bool) {
	m.SetVisibilityStates(nodes, repeat(visible, len(nodes)), recursive, force)
}

// SetVisibilityStates is SetVisibilityState with a value per node. When a
// node appears more than once after expansion, its first value wins.
func (m *ViewStateManager) SetVisibilityStates(nodes []*Node, visible []bool, recursive, force bool) {
	if len(nodes) == 0 {
		return
	}
	m.debugCheckNodes("SetVisibilityStates", nodes)
	shown, hidden := m.applyVisibility(nodes, visible, recursive, force)
	pruned := m.store.prune()
	m.log.Debug("set visibility",
		zap.Int("shown", len(shown)), zap.Int("hidden", len(hidden)), zap.Int("pruned", pruned))
	if len(shown) > 0 || len(hidden) > 0 {
		m.handlers.visibility.emit(VisibilityChangedEvent{Visible: shown, Hidden: hidden})
	}
}

// ResetVisibility clears every visibility override.
func (m *ViewStateManager) ResetVisibility() {
	var ev VisibilityChangedEvent
	m.store.forEach(func(st *NodeState) {
		if !st.hasVisible {
			return
		}
		if st.visible != st.intrinsicVisible() {
			if st.visible {
				ev.Hidden = append(ev.Hidden, st.node)
			} else {
				ev.Visible = append(ev.Visible, st.node)
			}
		}
		st.hasVisible = false
		st.visible = false
		if st.applied {
			st.node.Visible = st.originalVisible
		}
	})
	sortByID(ev.Visible)
	sortByID(ev.Hidden)
	pruned := m.store.prune()
	m.log.Debug("reset visibility",
		zap.Int("shown", len(ev.Visible)), zap.Int("hidden", len(ev.Hidden)), zap.Int("pruned", pruned))
	if len(ev.Visible) > 0 || len(ev.Hidden) > 0 {
		m.handlers.visibility.emit(ev)
	}
}

// VisibleNodes returns every effectively visible node of the scene in pre-order.
func (m *ViewStateManager) VisibleNodes() []*Node {
	return m.collect(func(n *Node) bool { return m.visibility(n) })
}

// HiddenNodes returns every effectively hidden node of the scene in pre-order.
func (m *ViewStateManager) HiddenNodes() []*Node {
	return m.collect(func(n *Node) bool { return !m.visibility(n) })
}

func (m *ViewStateManager) collect(keep func(*Node) bool) []*Node {
	if m.scene == nil {
		return nil
	}
	var out []*Node
	m.scene.root.Traverse(func(n *Node) bool {
		if keep(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// --- Selection ---

// SelectionState reports whether n itself is selected.
func (m *ViewStateManager) SelectionState(n *Node) bool {
	return m.selected.has(n)
}

// SetSelectionState selects or deselects nodes. With blockNotification set,
// no SelectionChanged is fired.
func (m *ViewStateManager) SetSelectionState(nodes []*Node, selected, recursive, blockNotification bool) {
	if selected {
		m.SetSelectionStates(nodes, nil, recursive, blockNotification)
	} else {
		m.SetSelectionStates(nil, nodes, recursive, blockNotification)
	}
}

// SetSelectionStates selects one list and deselects the other in one batch.
func (m *ViewStateManager) SetSelectionStates(selected, unselected []*Node, recursive, blockNotification bool) {
	if len(selected) == 0 && len(unselected) == 0 {
		return
	}
	m.debugCheckNodes("SetSelectionStates", selected)
	m.debugCheckNodes("SetSelectionStates", unselected)
	sel, unsel := m.applySelection(selected, unselected, recursive)
	m.finishSelection(sel, unsel, blockNotification)
}

func (m *ViewStateManager) finishSelection(sel, unsel []*Node, blockNotification bool) {
	rebuilt := m.rebuildMaterials()
	pruned := m.store.prune()
	m.log.Debug("set selection",
		zap.Int("selected", len(sel)), zap.Int("unselected", len(unsel)),
		zap.Int("rebuilt", rebuilt), zap.Int("pruned", pruned),
		zap.Bool("blocked", blockNotification))
	if blockNotification || (len(sel) == 0 && len(unsel) == 0) {
		return
	}
	m.handlers.selection.emit(SelectionChangedEvent{Selected: sel, Unselected: unsel})
}

// SelectedNodes returns the selected nodes ordered by ID.
func (m *ViewStateManager) SelectedNodes() []*Node {
	return m.selected.sorted()
}

// SelectedNodeIDs returns the selected node IDs in ascending order.
func (m *ViewStateManager) SelectedNodeIDs() []uint32 {
	return m.selected.ids()
}

// SetRecursiveSelection controls whether deselecting a node also deselects
// its ancestors.
func (m *ViewStateManager) SetRecursiveSelection(enabled bool) {
	m.recursiveSelection = enabled
}

// RecursiveSelection reports the recursive selection mode.
func (m *ViewStateManager) RecursiveSelection() bool {
	return m.recursiveSelection
}

// --- Outlining ---

// OutliningState reports whether n is outlined.
func (m *ViewStateManager) OutliningState(n *Node) bool {
	return m.outlined.has(n)
}

// SetOutliningState outlines or un-outlines nodes.
func (m *ViewStateManager) SetOutliningState(nodes []*Node, outlined, recursive bool) {
	if outlined {
		m.SetOutliningStates(nodes, nil, recursive)
	} else {
		m.SetOutliningStates(nil, nodes, recursive)
	}
}

// SetOutliningStates outlines one list and un-outlines the other. A node in
// both lists ends up outlined.
func (m *ViewStateManager) SetOutliningStates(outlined, unoutlined []*Node, recursive bool) {
	if len(outlined) == 0 && len(unoutlined) == 0 {
		return
	}
	m.debugCheckNodes("SetOutliningStates", outlined)
	m.debugCheckNodes("SetOutliningStates", unoutlined)
	add := expandNodes(outlined, recursive)
	keep := make(nodeSet, len(add))
	var ev OutliningChangedEvent
	for _, n := range add {
		keep.add(n)
		if m.outlined.add(n) {
			ev.Outlined = append(ev.Outlined, n)
		}
	}
	for _, n := range expandNodes(unoutlined, recursive) {
		if !keep.has(n) && m.outlined.remove(n) {
			ev.Unoutlined = append(ev.Unoutlined, n)
		}
	}
	m.log.Debug("set outlining",
		zap.Int("outlined", len(ev.Outlined)), zap.Int("unoutlined", len(ev.Unoutlined)))
	if len(ev.Outlined) > 0 || len(ev.Unoutlined) > 0 {
		m.handlers.outlining.emit(ev)
	}
}

// OutlinedNodes returns the outlined nodes ordered by ID.
func (m *ViewStateManager) OutlinedNodes() []*Node {
	return m.outlined.sorted()
}

// OutlinedNodeIDs returns the outlined node IDs in ascending order.
func (m *ViewStateManager) OutlinedNodeIDs() []uint32 {
	return m.outlined.ids()
}

// SetOutlineColor sets the color renderers draw outlines with.
func (m *ViewStateManager) SetOutlineColor(c Color) {
	if c == m.outlineColor {
		return
	}
	m.outlineColor = c
	m.log.Debug("set outline color", zap.String("color", c.CSS()))
	m.handlers.outlineColor.emit(OutlineColorChangedEvent{Color: c, ABGR: c.ABGR()})
}

// OutlineColor returns the outline color.
func (m *ViewStateManager) OutlineColor() Color {
	return m.outlineColor
}

// SetOutlineWidth sets the outline width. Negative widths are clamped to 0.
func (m *ViewStateManager) SetOutlineWidth(w float64) {
	w = max(w, 0)
	if w == m.outlineWidth {
		return
	}
	m.outlineWidth = w
	m.log.Debug("set outline width", zap.Float64("width", w))
	m.handlers.outlineWidth.emit(OutlineWidthChangedEvent{Width: w})
}

// OutlineWidth returns the outline width.
func (m *ViewStateManager) OutlineWidth() float64 {
	return m.outlineWidth
}

// --- Opacity ---

// Opacity returns n's own opacity override, if any.
func (m *ViewStateManager) Opacity(n *Node) (float64, bool) {
	if st := m.store.get(n, false); st != nil && st.hasOpacity {
		return st.opacity, true
	}
	return 0, false
}

// WorldOpacity returns the product of the effective opacities of n and all
// its ancestors.
func (m *ViewStateManager) WorldOpacity(n *Node) float64 {
	return worldOpacity(n, m.store.lookup)
}

// SetOpacity overrides the opacity of nodes. Values are clamped to [0, 1].
func (m *ViewStateManager) SetOpacity(nodes []*Node, opacity float64, recursive bool) {
	m.SetOpacities(nodes, repeat(opacity, len(nodes)), recursive)
}

// SetOpacities is SetOpacity with a value per node.
func (m *ViewStateManager) SetOpacities(nodes []*Node, opacity []float64, recursive bool) {
	if len(nodes) == 0 {
		return
	}
	m.debugCheckNodes("SetOpacities", nodes)
	changed := m.applyOpacity(nodes, opacity, recursive, true)
	ev := OpacityChangedEvent{
		Changed: make([]*Node, len(changed)),
		Opacity: make([]float64, len(changed)),
	}
	for i, it := range changed {
		ev.Changed[i] = it.node
		ev.Opacity[i] = it.value
	}
	m.finishOpacity(ev)
}

// ClearOpacity removes opacity overrides from nodes.
func (m *ViewStateManager) ClearOpacity(nodes []*Node, recursive bool) {
	if len(nodes) == 0 {
		return
	}
	m.debugCheckNodes("ClearOpacity", nodes)
	changed := m.applyOpacity(nodes, make([]float64, len(nodes)), recursive, false)
	ev := OpacityChangedEvent{Changed: make([]*Node, len(changed)), Cleared: true}
	for i, it := range changed {
		ev.Changed[i] = it.node
	}
	m.finishOpacity(ev)
}

func (m *ViewStateManager) finishOpacity(ev OpacityChangedEvent) {
	rebuilt := m.rebuildMaterials()
	pruned := m.store.prune()
	m.log.Debug("set opacity",
		zap.Int("changed", len(ev.Changed)), zap.Bool("cleared", ev.Cleared),
		zap.Int("rebuilt", rebuilt), zap.Int("pruned", pruned))
	if len(ev.Changed) > 0 {
		m.handlers.opacity.emit(ev)
	}
}

// --- Tint ---

// TintColor returns the effective tint of n: its own, else the one inherited
// from the nearest tinted ancestor.
func (m *ViewStateManager) TintColor(n *Node) (Color, bool) {
	if st := m.store.get(n, false); st != nil {
		return st.EffectiveTintColor()
	}
	return Color{}, false
}

// TintColorABGR is TintColor packed as 0xAABBGGRR.
func (m *ViewStateManager) TintColorABGR(n *Node) (uint32, bool) {
	c, ok := m.TintColor(n)
	if !ok {
		return 0, false
	}
	return c.ABGR(), true
}

// SetTintColor tints nodes. The tint's alpha is the blend weight.
func (m *ViewStateManager) SetTintColor(nodes []*Node, c Color, recursive bool) {
	m.SetTintColors(nodes, repeat(c, len(nodes)), recursive)
}

// SetTintColorABGR tints nodes with a packed 0xAABBGGRR color.
func (m *ViewStateManager) SetTintColorABGR(nodes []*Node, abgr uint32, recursive bool) {
	m.SetTintColor(nodes, ColorFromABGR(abgr), recursive)
}

// SetTintColorCSS tints nodes with a CSS color string.
func (m *ViewStateManager) SetTintColorCSS(nodes []*Node, css string, recursive bool) error {
	c, err := ParseColor(css)
	if err != nil {
		return err
	}
	m.SetTintColor(nodes, c, recursive)
	return nil
}

// SetTintColors is SetTintColor with a color per node.
func (m *ViewStateManager) SetTintColors(nodes []*Node, c []Color, recursive bool) {
	if len(nodes) == 0 {
		return
	}
	m.debugCheckNodes("SetTintColors", nodes)
	changed := m.applyTint(nodes, c, recursive, true)
	ev := TintColorChangedEvent{
		Changed:       make([]*Node, len(changed)),
		TintColor:     make([]Color, len(changed)),
		TintColorABGR: make([]uint32, len(changed)),
	}
	for i, it := range changed {
		ev.Changed[i] = it.node
		ev.TintColor[i] = it.value
		ev.TintColorABGR[i] = it.value.ABGR()
	}
	m.finishTint(ev)
}

// ClearTintColor removes tint overrides from nodes. Descendants fall back to
// the next tinted ancestor, if any.
func (m *ViewStateManager) ClearTintColor(nodes []*Node, recursive bool) {
	if len(nodes) == 0 {
		return
	}
	m.debugCheckNodes("ClearTintColor", nodes)
	changed := m.applyTint(nodes, make([]Color, len(nodes)), recursive, false)
	ev := TintColorChangedEvent{Changed: make([]*Node, len(changed)), Cleared: true}
	for i, it := range changed {
		ev.Changed[i] = it.node
	}
	m.finishTint(ev)
}

func (m *ViewStateManager) finishTint(ev TintColorChangedEvent) {
	rebuilt := m.rebuildMaterials()
	pruned := m.store.prune()
	m.log.Debug("set tint color",
		zap.Int("changed", len(ev.Changed)), zap.Bool("cleared", ev.Cleared),
		zap.Int("rebuilt", rebuilt), zap.Int("pruned", pruned))
	if len(ev.Changed) > 0 {
		m.handlers.tintColor.emit(ev)
	}
}

// --- Highlight ---

// SetHighlightColor sets the color blended into highlighted nodes and
// selection boxes, and rebuilds every highlighted material.
func (m *ViewStateManager) SetHighlightColor(c Color) {
	if c == m.highlightColor {
		return
	}
	m.highlightColor = c
	m.overlay.setColor(c)
	m.store.forEach(func(st *NodeState) {
		if st.Highlighted() {
			m.store.markDirty(st)
		}
	})
	rebuilt := m.rebuildMaterials()
	m.log.Debug("set highlight color", zap.String("color", c.CSS()), zap.Int("rebuilt", rebuilt))
	m.handlers.highlightColor.emit(HighlightColorChangedEvent{Color: c, ABGR: c.ABGR()})
}

// SetHighlightColorCSS is SetHighlightColor with a CSS color string.
func (m *ViewStateManager) SetHighlightColorCSS(css string) error {
	c, err := ParseColor(css)
	if err != nil {
		return err
	}
	m.SetHighlightColor(c)
	return nil
}

// HighlightColor returns the highlight color.
func (m *ViewStateManager) HighlightColor() Color {
	return m.highlightColor
}

// --- Bounding boxes ---

// SetShowSelectionBoundingBox creates or drops the overlay box of every
// selected node.
func (m *ViewStateManager) SetShowSelectionBoundingBox(show bool) {
	if show == m.showBoundingBox {
		return
	}
	m.showBoundingBox = show
	m.log.Debug("set selection bounding box", zap.Bool("show", show), zap.Int("selected", len(m.selected)))
	for _, n := range m.selected.sorted() {
		st := m.store.get(n, false)
		if st == nil {
			continue
		}
		if show && st.boundingBox == nil {
			st.boundingBox = m.overlay.add(n)
		} else if !show && st.boundingBox != nil {
			m.overlay.remove(st.boundingBox)
			st.boundingBox = nil
		}
	}
}

// ShowSelectionBoundingBox reports whether selection boxes are kept.
func (m *ViewStateManager) ShowSelectionBoundingBox() bool {
	return m.showBoundingBox
}

// --- Apply / revert ---

// ApplyNodeStates writes the effective visibility and material of every
// recorded node onto the node itself, stashing the node's own values first.
// Until RevertNodeStates, every later change is written onto its node as it
// happens, including changes that create new records.
func (m *ViewStateManager) ApplyNodeStates() {
	m.rebuildMaterials()
	m.store.applied = true
	applied := 0
	m.store.forEach(func(st *NodeState) {
		n := st.node
		if !st.applied {
			st.originalMaterial = n.Material
			st.originalVisible = n.Visible
			st.applied = true
		}
		n.Visible = st.effectiveVisible()
		if st.material != nil {
			n.Material = st.material
		} else {
			n.Material = st.originalMaterial
		}
		applied++
	})
	m.log.Debug("applied node states", zap.Int("nodes", applied))
}

// RevertNodeStates writes the stashed values back. Calling it again without
// an ApplyNodeStates in between does nothing.
func (m *ViewStateManager) RevertNodeStates() {
	m.store.applied = false
	reverted := 0
	m.store.forEach(func(st *NodeState) {
		if !st.applied {
			return
		}
		st.node.Material = st.originalMaterial
		st.node.Visible = st.originalVisible
		st.originalMaterial = nil
		st.originalVisible = false
		st.applied = false
		reverted++
	})
	m.log.Debug("reverted node states", zap.Int("nodes", reverted))
}

// --- Scene signals ---

// handleNodeReplaced carries the selection over to the replacement and
// forgets old, which no longer takes part in the hierarchy.
func (m *ViewStateManager) handleNodeReplaced(ev NodeReplacedEvent) {
	var sel, unsel []*Node
	if m.selected.has(ev.Old) {
		if m.deselectNode(ev.Old) {
			unsel = append(unsel, ev.Old)
		}
		if m.selectNode(ev.New) {
			sel = append(sel, ev.New)
		}
	}
	m.outlined.remove(ev.Old)
	if m.store.drop(ev.Old) {
		m.store.compactDirty()
	}
	m.reconcileSubtree(ev.New)
	m.finishSelection(sel, unsel, false)
}

// handleNodeUpdated rebuilds the selection box of a selected node against
// its new geometry without changing the logical selection, and recomputes
// the private material of any recorded node from its current original.
func (m *ViewStateManager) handleNodeUpdated(ev NodeUpdatedEvent) {
	if m.selected.has(ev.Node) {
		m.deselectNode(ev.Node)
		m.selectNode(ev.Node)
	}
	if st := m.store.get(ev.Node, false); st != nil {
		m.store.markDirty(st)
	}
	m.finishSelection(nil, nil, true)
}

// handleNodeRemoving forgets a subtree on its way out: every record under it
// is released and its nodes leave the selection and outline sets. No
// notification is sent: the nodes are already gone for downstream consumers.
func (m *ViewStateManager) handleNodeRemoving(ev NodeRemovingEvent) {
	dropped := m.dropSubtree(ev.Node)
	rebuilt := m.rebuildMaterials()
	pruned := m.store.prune()
	m.log.Debug("node removing",
		zap.Uint32("node", ev.Node.ID), zap.Int("dropped", dropped),
		zap.Int("rebuilt", rebuilt), zap.Int("pruned", pruned))
}

// handleNodeInserted lets a newly attached subtree inherit selection, tint
// and opacity from its new ancestors.
func (m *ViewStateManager) handleNodeInserted(ev NodeInsertedEvent) {
	m.reconcileSubtree(ev.Node)
	rebuilt := m.rebuildMaterials()
	pruned := m.store.prune()
	m.log.Debug("node inserted",
		zap.Uint32("node", ev.Node.ID), zap.Int("rebuilt", rebuilt), zap.Int("pruned", pruned))
}
