package canopy

import "github.com/go-gl/mathgl/mgl64"

// OverlayBox is the highlight box drawn around one selected node.
type OverlayBox struct {
	ID uint32

	// Target is the node the box surrounds. The overlay does not own it.
	Target *Node

	// Corners are the target's local bounds in world space, indexed as in
	// Box3.Corners.
	Corners [8]mgl64.Vec3

	node *Node
}

// Node returns the overlay-scene node carrying the box geometry.
func (b *OverlayBox) Node() *Node { return b.node }

// BoundingBoxOverlay is a side scene holding one box node per selected node.
// Renderers draw Root() on top of the main scene.
type BoundingBoxOverlay struct {
	root   *Node
	boxes  map[uint32]*OverlayBox
	nextID uint32
	color  Color
}

// NewBoundingBoxOverlay creates an empty overlay whose boxes use color.
func NewBoundingBoxOverlay(color Color) *BoundingBoxOverlay {
	return &BoundingBoxOverlay{
		root:  NewGroup("selection-boxes"),
		boxes: make(map[uint32]*OverlayBox),
		color: color,
	}
}

// Root returns the overlay scene root.
func (o *BoundingBoxOverlay) Root() *Node {
	return o.root
}

// Len returns the number of live boxes.
func (o *BoundingBoxOverlay) Len() int {
	return len(o.boxes)
}

// Box returns the box with the given ID, or nil.
func (o *BoundingBoxOverlay) Box(id uint32) *OverlayBox {
	return o.boxes[id]
}

// add creates a box sized to target's oriented bounds. The box node has no
// parent in the main scene, so its own world transform is target's.
func (o *BoundingBoxOverlay) add(target *Node) *OverlayBox {
	o.nextID++
	bounds := selectionBounds(target)
	bn := NewMeshNode("bbox", &Material{Name: "bbox"}, bounds)
	paintBox(bn.Material, o.color)
	bn.Transform = target.WorldTransform()
	o.root.AddChild(bn)
	b := &OverlayBox{
		ID:      o.nextID,
		Target:  target,
		Corners: orientedCorners(bn),
		node:    bn,
	}
	o.boxes[b.ID] = b
	return b
}

// remove deletes b from the overlay scene.
func (o *BoundingBoxOverlay) remove(b *OverlayBox) {
	if _, ok := o.boxes[b.ID]; !ok {
		return
	}
	delete(o.boxes, b.ID)
	b.node.RemoveFromParent()
	b.node = nil
	b.Target = nil
}

// setColor recolors every box.
func (o *BoundingBoxOverlay) setColor(c Color) {
	o.color = c
	for _, b := range o.boxes {
		paintBox(b.node.Material, c)
	}
}

// paintBox puts c's alpha into the material opacity so ColorScale does not
// apply it twice.
func paintBox(m *Material, c Color) {
	m.Color = Color{R: c.R, G: c.G, B: c.B, A: 1}
	m.Opacity = c.A
	m.Transparent = c.A < 1
}

// clear deletes every box.
func (o *BoundingBoxOverlay) clear() {
	for _, b := range o.boxes {
		b.node.RemoveFromParent()
		b.node = nil
		b.Target = nil
	}
	o.boxes = make(map[uint32]*OverlayBox)
}
