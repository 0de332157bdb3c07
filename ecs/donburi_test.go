package ecs

import (
	"testing"

	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
)

func newTestManager() (*canopy.ViewStateManager, *canopy.Node) {
	scene := canopy.NewScene()
	n := canopy.NewMeshNode("part", canopy.NewMaterial("m", canopy.ColorWhite), canopy.Box3{})
	scene.Insert(scene.Root(), n)
	m := canopy.New(canopy.DefaultOptions())
	m.AttachScene(scene)
	return m, n
}

func TestNewDonburiBridge(t *testing.T) {
	m, _ := newTestManager()
	b := NewDonburiBridge(donburi.NewWorld(), m)
	if b == nil {
		t.Fatal("NewDonburiBridge returned nil")
	}
	b.Close()
}

func TestBridge_PublishesSelection(t *testing.T) {
	world := donburi.NewWorld()
	m, n := newTestManager()
	b := NewDonburiBridge(world, m)
	defer b.Close()

	var received []canopy.SelectionChangedEvent
	SelectionChangedEventType.Subscribe(world, func(w donburi.World, e canopy.SelectionChangedEvent) {
		received = append(received, e)
	})

	m.SetSelectionState([]*canopy.Node{n}, true, false, false)
	m.SetSelectionState([]*canopy.Node{n}, false, false, false)

	// Events are queued until processed.
	SelectionChangedEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if len(received[0].Selected) != 1 || received[0].Selected[0] != n {
		t.Errorf("event 0: %+v", received[0])
	}
	if len(received[1].Unselected) != 1 || received[1].Unselected[0] != n {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestBridge_PublishesVisibilityOpacityTint(t *testing.T) {
	world := donburi.NewWorld()
	m, n := newTestManager()
	b := NewDonburiBridge(world, m)
	defer b.Close()

	var vis, op, tint, outl int
	VisibilityChangedEventType.Subscribe(world, func(w donburi.World, e canopy.VisibilityChangedEvent) { vis++ })
	OpacityChangedEventType.Subscribe(world, func(w donburi.World, e canopy.OpacityChangedEvent) { op++ })
	TintColorChangedEventType.Subscribe(world, func(w donburi.World, e canopy.TintColorChangedEvent) { tint++ })
	OutliningChangedEventType.Subscribe(world, func(w donburi.World, e canopy.OutliningChangedEvent) { outl++ })

	nodes := []*canopy.Node{n}
	m.SetVisibilityState(nodes, false, false, false)
	m.SetOpacity(nodes, 0.5, false)
	m.SetTintColor(nodes, canopy.Color{R: 1, A: 1}, false)
	m.SetOutliningState(nodes, true, false)

	VisibilityChangedEventType.ProcessEvents(world)
	OpacityChangedEventType.ProcessEvents(world)
	TintColorChangedEventType.ProcessEvents(world)
	OutliningChangedEventType.ProcessEvents(world)

	if vis != 1 || op != 1 || tint != 1 || outl != 1 {
		t.Errorf("counts: visibility=%d opacity=%d tint=%d outlining=%d, want 1 each", vis, op, tint, outl)
	}
}

func TestBridge_CloseStopsPublishing(t *testing.T) {
	world := donburi.NewWorld()
	m, n := newTestManager()
	b := NewDonburiBridge(world, m)

	count := 0
	SelectionChangedEventType.Subscribe(world, func(w donburi.World, e canopy.SelectionChangedEvent) { count++ })

	b.Close()
	m.SetSelectionState([]*canopy.Node{n}, true, false, false)
	SelectionChangedEventType.ProcessEvents(world)

	if count != 0 {
		t.Errorf("expected no events after Close, got %d", count)
	}
}
