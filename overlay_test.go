package canopy

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestOverlayAddRemove(t *testing.T) {
	o := NewBoundingBoxOverlay(Color{R: 1, A: 1})
	target := NewMeshNode("target", nil, unitBox())
	target.SetPosition(5, 0, 0)

	b := o.add(target)
	if o.Len() != 1 || o.Box(b.ID) != b {
		t.Fatal("box should be registered")
	}
	if b.Target != target {
		t.Error("box Target should be the selected node")
	}
	if b.Node().Parent != o.Root() {
		t.Error("box node should live under the overlay root")
	}
	assertVec(t, "corner 0", b.Corners[0], mgl64.Vec3{4, -1, -1})
	assertVec(t, "corner 7", b.Corners[7], mgl64.Vec3{6, 1, 1})

	o.remove(b)
	if o.Len() != 0 || o.Root().NumChildren() != 0 {
		t.Error("remove should drop the box and its node")
	}
	o.remove(b) // second remove is a no-op
}

func TestOverlayUniqueIDs(t *testing.T) {
	o := NewBoundingBoxOverlay(ColorWhite)
	n := NewMeshNode("n", nil, unitBox())
	a := o.add(n)
	b := o.add(n)
	if a.ID == b.ID {
		t.Error("box IDs should be unique")
	}
}

func TestOverlayPaint(t *testing.T) {
	o := NewBoundingBoxOverlay(Color{R: 1, A: 0.5})
	b := o.add(NewMeshNode("n", nil, unitBox()))
	mat := b.Node().Material

	if mat.Color != (Color{R: 1, A: 1}) {
		t.Errorf("box Color = %v, want opaque red", mat.Color)
	}
	assertNear(t, "box opacity", mat.Opacity, 0.5)
	if !mat.Transparent {
		t.Error("half-alpha box should be transparent")
	}

	o.setColor(Color{G: 1, A: 1})
	if mat.Color != (Color{G: 1, A: 1}) || mat.Opacity != 1 || mat.Transparent {
		t.Errorf("recolored box = %+v", *mat)
	}
}

func TestOverlayClear(t *testing.T) {
	o := NewBoundingBoxOverlay(ColorWhite)
	o.add(NewGroup("a"))
	o.add(NewGroup("b"))
	o.clear()
	if o.Len() != 0 || o.Root().NumChildren() != 0 {
		t.Error("clear should drop every box")
	}
}
