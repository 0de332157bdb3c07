package canopy

// --- Target expansion ---

// nodeValue pairs a node with the value an operation wants to give it.
type nodeValue[T any] struct {
	node  *Node
	value T
}

// expand pairs each input node with its value. With recursive set, every
// input node expands to its whole subtree in pre-order, all sharing the
// node's value. Nil nodes are skipped.
func expand[T any](nodes []*Node, values []T, recursive bool) []nodeValue[T] {
	if len(values) != len(nodes) {
		panic("canopy: values must be parallel to nodes")
	}
	out := make([]nodeValue[T], 0, len(nodes))
	for i, n := range nodes {
		if n == nil {
			continue
		}
		v := values[i]
		if !recursive {
			out = append(out, nodeValue[T]{n, v})
			continue
		}
		n.Traverse(func(d *Node) bool {
			out = append(out, nodeValue[T]{d, v})
			return true
		})
	}
	return out
}

// dedupFirst drops repeated nodes, keeping the first occurrence's value.
func dedupFirst[T any](items []nodeValue[T]) []nodeValue[T] {
	if len(items) < 2 {
		return items
	}
	seen := make(map[*Node]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		if _, ok := seen[it.node]; ok {
			continue
		}
		seen[it.node] = struct{}{}
		out = append(out, it)
	}
	return out
}

// expandNodes is expand+dedupFirst for operations without a per-node value.
func expandNodes(nodes []*Node, recursive bool) []*Node {
	items := dedupFirst(expand(nodes, make([]struct{}, len(nodes)), recursive))
	out := make([]*Node, len(items))
	for i, it := range items {
		out[i] = it.node
	}
	return out
}

// coveredBy reports whether a strict ancestor of n is in set.
func coveredBy(n *Node, set nodeSet) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if set.has(p) {
			return true
		}
	}
	return false
}

func repeat[T any](v T, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// --- Visibility ---

// visibility returns the effective visibility of n.
func (m *ViewStateManager) visibility(n *Node) bool {
	if st := m.store.get(n, false); st != nil {
		return st.effectiveVisible()
	}
	return n.Visible
}

// applyVisibility computes the full target set and diff, then mutates.
func (m *ViewStateManager) applyVisibility(nodes []*Node, visible []bool, recursive, force bool) (shown, hidden []*Node) {
	items := expand(nodes, visible, recursive)
	if force {
		requested := len(items)
		for i := 0; i < requested; i++ {
			if !items[i].value {
				continue
			}
			for p := items[i].node.Parent; p != nil; p = p.Parent {
				items = append(items, nodeValue[bool]{p, true})
			}
		}
	}
	items = dedupFirst(items)

	changes := items[:0]
	for _, it := range items {
		if m.visibility(it.node) != it.value {
			changes = append(changes, it)
		}
	}

	for _, c := range changes {
		st := m.store.get(c.node, true)
		if c.value == st.intrinsicVisible() {
			st.hasVisible = false
			st.visible = false
		} else {
			st.visible = c.value
			st.hasVisible = true
		}
		if st.applied {
			c.node.Visible = c.value
		}
		if c.value {
			shown = append(shown, c.node)
		} else {
			hidden = append(hidden, c.node)
		}
	}
	return shown, hidden
}

// --- Selection ---

// selectNode marks n selected. Reports whether anything changed.
func (m *ViewStateManager) selectNode(n *Node) bool {
	st := m.store.get(n, true)
	if st.selected {
		return false
	}
	wasHighlighted := st.Highlighted()
	st.selected = true
	m.selected.add(n)
	if m.showBoundingBox {
		st.boundingBox = m.overlay.add(n)
	}
	if !wasHighlighted {
		m.store.markDirty(st)
	}
	if !st.ancestorSelected {
		m.markAncestorSelected(n, true)
	}
	return true
}

// deselectNode clears n's own selection. Reports whether anything changed.
func (m *ViewStateManager) deselectNode(n *Node) bool {
	st := m.store.get(n, false)
	if st == nil || !st.selected {
		return false
	}
	st.selected = false
	m.selected.remove(n)
	if st.boundingBox != nil {
		m.overlay.remove(st.boundingBox)
		st.boundingBox = nil
	}
	if !st.ancestorSelected {
		m.store.markDirty(st)
		m.markAncestorSelected(n, false)
	}
	return true
}

// markAncestorSelected sets ancestorSelected on the descendants of root. The
// walk sets the flag on an explicitly selected descendant but does not go
// below it: that subtree already answers to the descendant's own selection.
// Clearing never allocates records but keeps walking past missing ones.
func (m *ViewStateManager) markAncestorSelected(root *Node, v bool) {
	stack := append([]*Node(nil), root.children...)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := m.store.get(c, v)
		if st != nil {
			if st.ancestorSelected != v {
				st.ancestorSelected = v
				if !st.selected {
					m.store.markDirty(st)
				}
			}
			if st.selected {
				continue
			}
		}
		stack = append(stack, c.children...)
	}
}

// applySelection deselects then selects. A node in both lists is selected.
func (m *ViewStateManager) applySelection(selected, unselected []*Node, recursive bool) (sel, unsel []*Node) {
	toSelect := expandNodes(selected, recursive)
	keep := make(nodeSet, len(toSelect))
	for _, n := range toSelect {
		keep.add(n)
	}
	for _, n := range expandNodes(unselected, recursive) {
		if keep.has(n) {
			continue
		}
		if m.deselectNode(n) {
			unsel = append(unsel, n)
		}
		if !m.recursiveSelection {
			continue
		}
		for p := n.Parent; p != nil; p = p.Parent {
			if keep.has(p) {
				continue
			}
			if m.deselectNode(p) {
				unsel = append(unsel, p)
			}
		}
	}
	for _, n := range toSelect {
		if m.selectNode(n) {
			sel = append(sel, n)
		}
	}
	return sel, unsel
}

// --- Opacity ---

// hasOpacityAbove reports whether a strict ancestor of n has an opacity override.
func (m *ViewStateManager) hasOpacityAbove(n *Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if st := m.store.get(p, false); st != nil && st.hasOpacity {
			return true
		}
	}
	return false
}

// markOpacitySubtree recomputes ancestorOverridesOpacity for root and its
// descendants and flags every visited record for a material rebuild.
// inherited is whether a strict ancestor of root has an override.
func (m *ViewStateManager) markOpacitySubtree(root *Node, inherited bool) {
	type item struct {
		n    *Node
		flag bool
	}
	stack := []item{{root, inherited}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		st := m.store.get(it.n, it.flag)
		flag := it.flag
		if st != nil {
			flag = flag || st.hasOpacity
			st.ancestorOverridesOpacity = flag
			m.store.markDirty(st)
		}
		for _, c := range it.n.children {
			stack = append(stack, item{c, flag})
		}
	}
}

// applyOpacity sets (set=true) or clears the own opacity override of the
// expanded targets. Returns the targets that were reported as changed.
func (m *ViewStateManager) applyOpacity(nodes []*Node, values []float64, recursive, set bool) []nodeValue[float64] {
	items := dedupFirst(expand(nodes, values, recursive))
	changed := items[:0]
	for _, it := range items {
		if set {
			st := m.store.get(it.node, true)
			st.opacity = clamp01(it.value)
			st.hasOpacity = true
			it.value = st.opacity
		} else {
			st := m.store.get(it.node, false)
			if st == nil || !st.hasOpacity {
				continue
			}
			st.hasOpacity = false
			st.opacity = 0
		}
		changed = append(changed, it)
	}
	roots := make(nodeSet, len(changed))
	for _, it := range changed {
		roots.add(it.node)
	}
	for _, it := range changed {
		if coveredBy(it.node, roots) {
			continue
		}
		m.markOpacitySubtree(it.node, m.hasOpacityAbove(it.node))
	}
	return changed
}

// --- Tint ---

// propagateTint pushes root's effective tint into its descendants'
// ancestorTintColor. The walk passes through descendants in changed, whose
// own tint was just set or cleared, and stops below any other descendant
// with its own tint.
func (m *ViewStateManager) propagateTint(root *Node, changed nodeSet) {
	type item struct {
		n    *Node
		tint Color
		has  bool
	}
	var start item
	if st := m.store.get(root, false); st != nil {
		start.tint, start.has = st.EffectiveTintColor()
	}
	stack := make([]item, 0, len(root.children))
	for _, c := range root.children {
		stack = append(stack, item{c, start.tint, start.has})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next := it
		if st := m.store.get(it.n, it.has); st != nil {
			if !it.has {
				it.tint = Color{}
			}
			st.ancestorTintColor, st.hasAncestorTintColor = it.tint, it.has
			if st.hasTintColor {
				if !changed.has(it.n) {
					continue
				}
				next.tint, next.has = st.tintColor, true
			} else {
				m.store.markDirty(st)
			}
		}
		for _, c := range it.n.children {
			stack = append(stack, item{c, next.tint, next.has})
		}
	}
}

// applyTint sets (set=true) or clears the own tint of the expanded targets.
// Propagation runs once per target no other target's walk reaches.
func (m *ViewStateManager) applyTint(nodes []*Node, values []Color, recursive, set bool) []nodeValue[Color] {
	items := dedupFirst(expand(nodes, values, recursive))
	changed := items[:0]
	for _, it := range items {
		var st *NodeState
		if set {
			st = m.store.get(it.node, true)
			st.tintColor = it.value
			st.hasTintColor = true
		} else {
			st = m.store.get(it.node, false)
			if st == nil || !st.hasTintColor {
				continue
			}
			st.hasTintColor = false
			st.tintColor = Color{}
		}
		m.store.markDirty(st)
		changed = append(changed, it)
	}
	roots := make(nodeSet, len(changed))
	for _, it := range changed {
		roots.add(it.node)
	}
	for _, it := range changed {
		if m.tintReached(it.node, roots) {
			continue
		}
		m.propagateTint(it.node, roots)
	}
	return changed
}

// tintReached reports whether propagateTint from some other node in changed
// passes through n: the nearest ancestor that is either in changed or keeps
// its own tint must be in changed.
func (m *ViewStateManager) tintReached(n *Node, changed nodeSet) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if changed.has(p) {
			return true
		}
		if st := m.store.get(p, false); st != nil && st.hasTintColor {
			return false
		}
	}
	return false
}

// --- Inheritance repair ---

// reconcileSubtree recomputes every inherited flag in root's subtree from
// root's parent chain. Used when a subtree is attached or swapped in, since
// none of the incremental walks above ran for it.
func (m *ViewStateManager) reconcileSubtree(root *Node) {
	type item struct {
		n       *Node
		sel     bool
		tint    Color
		hasTint bool
		opacity bool
	}
	start := item{n: root}
	if p := root.Parent; p != nil {
		if pst := m.store.get(p, false); pst != nil {
			start.sel = pst.Highlighted()
			start.tint, start.hasTint = pst.EffectiveTintColor()
			start.opacity = pst.hasOpacity || pst.ancestorOverridesOpacity
		}
	}
	stack := []item{start}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		next := item{sel: it.sel, tint: it.tint, hasTint: it.hasTint, opacity: it.opacity}
		st := m.store.get(it.n, it.sel || it.hasTint || it.opacity)
		if st != nil {
			if !it.hasTint {
				it.tint = Color{}
			}
			overrides := it.opacity || st.hasOpacity
			changed := (st.ancestorSelected != it.sel && !st.selected) ||
				st.hasAncestorTintColor != it.hasTint ||
				st.ancestorTintColor != it.tint ||
				st.ancestorOverridesOpacity != overrides
			st.ancestorSelected = it.sel
			st.ancestorTintColor, st.hasAncestorTintColor = it.tint, it.hasTint
			st.ancestorOverridesOpacity = overrides
			if changed || overrides {
				m.store.markDirty(st)
			}
			next.sel = st.Highlighted()
			next.tint, next.hasTint = st.EffectiveTintColor()
			next.opacity = st.ancestorOverridesOpacity
		}
		for _, c := range it.n.children {
			ci := next
			ci.n = c
			stack = append(stack, ci)
		}
	}
}

// --- Detach ---

// dropSubtree forgets root and its descendants. Their records are released
// and they leave the selection and outline sets without notification.
// Returns the number of released records.
func (m *ViewStateManager) dropSubtree(root *Node) int {
	dropped := 0
	root.Traverse(func(n *Node) bool {
		m.selected.remove(n)
		m.outlined.remove(n)
		if m.store.drop(n) {
			dropped++
		}
		return true
	})
	if dropped > 0 {
		m.store.compactDirty()
	}
	return dropped
}

// --- Material rebuild ---

// rebuildMaterials consumes the dirty list. Cost is proportional to the
// number of dirty records, not to the scene size.
func (m *ViewStateManager) rebuildMaterials() int {
	dirty := m.store.takeDirty()
	for _, st := range dirty {
		if st.needsMaterialUpdate {
			m.updateMaterial(st)
		}
	}
	return len(dirty)
}

// updateMaterial recomputes st's private material from the node's original.
func (m *ViewStateManager) updateMaterial(st *NodeState) {
	st.needsMaterialUpdate = false
	orig := st.originalNodeMaterial()
	tint, tinted := st.EffectiveTintColor()
	highlight := st.Highlighted() && m.highlightColor.A != 0
	opacity := st.hasOpacity || st.ancestorOverridesOpacity

	if orig == nil || (!tinted && !highlight && !opacity) {
		if st.material != nil {
			m.materials.Release(st.material)
			st.material = nil
		}
		if st.applied {
			st.node.Material = orig
		}
		return
	}

	if st.material == nil {
		st.material = m.materials.Acquire(orig)
	} else {
		st.material.copyFrom(orig)
	}
	mat := st.material
	if tinted {
		mat.Color = blendRGB(mat.Color, tint, tint.A)
	}
	if highlight {
		hl := m.highlightColor
		mat.Color = blendRGB(mat.Color, hl, hl.A)
		mat.Emissive = blendRGB(mat.Emissive, hl, hl.A)
	}
	mat.Opacity = orig.Opacity * worldOpacity(st.node, m.store.lookup)
	mat.Transparent = orig.Transparent || mat.Opacity < 1
	if st.applied {
		st.node.Material = mat
	}
}
