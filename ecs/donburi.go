package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Donburi event types for canopy change notifications. Subscribe to these in
// your ECS systems and drain them with ProcessEvents.
var (
	VisibilityChangedEventType = events.NewEventType[canopy.VisibilityChangedEvent]()
	SelectionChangedEventType  = events.NewEventType[canopy.SelectionChangedEvent]()
	OutliningChangedEventType  = events.NewEventType[canopy.OutliningChangedEvent]()
	OpacityChangedEventType    = events.NewEventType[canopy.OpacityChangedEvent]()
	TintColorChangedEventType  = events.NewEventType[canopy.TintColorChangedEvent]()
)

// Bridge republishes a ViewStateManager's notifications into a Donburi world.
type Bridge struct {
	world   donburi.World
	handles []canopy.CallbackHandle
}

// NewDonburiBridge subscribes to m and publishes each notification to world.
func NewDonburiBridge(world donburi.World, m *canopy.ViewStateManager) *Bridge {
	b := &Bridge{world: world}
	b.handles = []canopy.CallbackHandle{
		m.OnVisibilityChanged(func(e canopy.VisibilityChangedEvent) {
			VisibilityChangedEventType.Publish(b.world, e)
		}),
		m.OnSelectionChanged(func(e canopy.SelectionChangedEvent) {
			SelectionChangedEventType.Publish(b.world, e)
		}),
		m.OnOutliningChanged(func(e canopy.OutliningChangedEvent) {
			OutliningChangedEventType.Publish(b.world, e)
		}),
		m.OnOpacityChanged(func(e canopy.OpacityChangedEvent) {
			OpacityChangedEventType.Publish(b.world, e)
		}),
		m.OnTintColorChanged(func(e canopy.TintColorChangedEvent) {
			TintColorChangedEventType.Publish(b.world, e)
		}),
	}
	return b
}

// Close stops republishing.
func (b *Bridge) Close() {
	for _, h := range b.handles {
		h.Remove()
	}
	b.handles = nil
}
