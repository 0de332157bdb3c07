// Package ecs provides ECS adapters for canopy's change notifications.
//
// The primary adapter is [NewDonburiBridge], which republishes a
// ViewStateManager's visibility, selection, outlining, opacity and tint
// notifications into a [Donburi] world as typed events. Subscribe to the
// matching event type in your ECS systems to receive them.
//
// Usage:
//
//	bridge := ecs.NewDonburiBridge(world, vsm)
//	defer bridge.Close()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
