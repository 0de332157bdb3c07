package canopy

// --- Change notifications ---

// VisibilityChangedEvent lists nodes whose effective visibility flipped.
type VisibilityChangedEvent struct {
	Visible []*Node
	Hidden  []*Node
}

// SelectionChangedEvent lists nodes whose own selected flag flipped.
type SelectionChangedEvent struct {
	Selected   []*Node
	Unselected []*Node
}

// OutliningChangedEvent lists nodes whose outlined flag flipped.
type OutliningChangedEvent struct {
	Outlined   []*Node
	Unoutlined []*Node
}

// OpacityChangedEvent lists nodes whose opacity override was set or cleared.
// When Cleared is false, Opacity is parallel to Changed.
type OpacityChangedEvent struct {
	Changed []*Node
	Opacity []float64
	Cleared bool
}

// TintColorChangedEvent lists nodes whose tint override was set or cleared.
// When Cleared is false, TintColor and TintColorABGR are parallel to Changed.
type TintColorChangedEvent struct {
	Changed       []*Node
	TintColor     []Color
	TintColorABGR []uint32
	Cleared       bool
}

// OutlineColorChangedEvent carries the new outline color.
type OutlineColorChangedEvent struct {
	Color Color
	ABGR  uint32
}

// OutlineWidthChangedEvent carries the new outline width.
type OutlineWidthChangedEvent struct {
	Width float64
}

// HighlightColorChangedEvent carries the new highlight color.
type HighlightColorChangedEvent struct {
	Color Color
	ABGR  uint32
}

// --- Handler registry ---

type handler[E any] struct {
	id uint32
	fn func(E)
}

// handlerList is an ordered list of callbacks for one event type. Handlers are
// invoked synchronously in registration order.
type handlerList[E any] struct {
	handlers []handler[E]
	nextID   *uint32
}

func (l *handlerList[E]) add(fn func(E)) CallbackHandle {
	*l.nextID++
	id := *l.nextID
	l.handlers = append(l.handlers, handler[E]{id: id, fn: fn})
	return CallbackHandle{id: id, remove: l.remove}
}

// remove drops the entry from the slice to avoid nil iteration waste.
func (l *handlerList[E]) remove(id uint32) {
	for i := range l.handlers {
		if l.handlers[i].id == id {
			copy(l.handlers[i:], l.handlers[i+1:])
			l.handlers[len(l.handlers)-1] = handler[E]{}
			l.handlers = l.handlers[:len(l.handlers)-1]
			return
		}
	}
}

// emit calls every handler with e. A handler removed during dispatch still
// sees the current event.
func (l *handlerList[E]) emit(e E) {
	if len(l.handlers) == 0 {
		return
	}
	hs := make([]handler[E], len(l.handlers))
	copy(hs, l.handlers)
	for _, h := range hs {
		h.fn(e)
	}
}

func (l *handlerList[E]) clear() {
	l.handlers = nil
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	remove func(uint32)
}

// Remove unregisters this callback so it no longer fires. Removing twice,
// or removing the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove(h.id)
}

// viewStateHandlers holds the outbound notification lists of a ViewStateManager.
type viewStateHandlers struct {
	nextID         uint32
	visibility     handlerList[VisibilityChangedEvent]
	selection      handlerList[SelectionChangedEvent]
	outlining      handlerList[OutliningChangedEvent]
	opacity        handlerList[OpacityChangedEvent]
	tintColor      handlerList[TintColorChangedEvent]
	outlineColor   handlerList[OutlineColorChangedEvent]
	outlineWidth   handlerList[OutlineWidthChangedEvent]
	highlightColor handlerList[HighlightColorChangedEvent]
}

func (h *viewStateHandlers) init() {
	h.visibility.nextID = &h.nextID
	h.selection.nextID = &h.nextID
	h.outlining.nextID = &h.nextID
	h.opacity.nextID = &h.nextID
	h.tintColor.nextID = &h.nextID
	h.outlineColor.nextID = &h.nextID
	h.outlineWidth.nextID = &h.nextID
	h.highlightColor.nextID = &h.nextID
}

func (h *viewStateHandlers) clear() {
	h.visibility.clear()
	h.selection.clear()
	h.outlining.clear()
	h.opacity.clear()
	h.tintColor.clear()
	h.outlineColor.clear()
	h.outlineWidth.clear()
	h.highlightColor.clear()
}

// OnVisibilityChanged registers a callback for visibility changes.
func (m *ViewStateManager) OnVisibilityChanged(fn func(VisibilityChangedEvent)) CallbackHandle {
	return m.handlers.visibility.add(fn)
}

// OnSelectionChanged registers a callback for selection changes.
func (m *ViewStateManager) OnSelectionChanged(fn func(SelectionChangedEvent)) CallbackHandle {
	return m.handlers.selection.add(fn)
}

// OnOutliningChanged registers a callback for outlining changes.
func (m *ViewStateManager) OnOutliningChanged(fn func(OutliningChangedEvent)) CallbackHandle {
	return m.handlers.outlining.add(fn)
}

// OnOpacityChanged registers a callback for opacity override changes.
func (m *ViewStateManager) OnOpacityChanged(fn func(OpacityChangedEvent)) CallbackHandle {
	return m.handlers.opacity.add(fn)
}

// OnTintColorChanged registers a callback for tint override changes.
func (m *ViewStateManager) OnTintColorChanged(fn func(TintColorChangedEvent)) CallbackHandle {
	return m.handlers.tintColor.add(fn)
}

// OnOutlineColorChanged registers a callback for outline color changes.
func (m *ViewStateManager) OnOutlineColorChanged(fn func(OutlineColorChangedEvent)) CallbackHandle {
	return m.handlers.outlineColor.add(fn)
}

// OnOutlineWidthChanged registers a callback for outline width changes.
func (m *ViewStateManager) OnOutlineWidthChanged(fn func(OutlineWidthChangedEvent)) CallbackHandle {
	return m.handlers.outlineWidth.add(fn)
}

// OnHighlightColorChanged registers a callback for highlight color changes.
func (m *ViewStateManager) OnHighlightColorChanged(fn func(HighlightColorChangedEvent)) CallbackHandle {
	return m.handlers.highlightColor.add(fn)
}
