// Package ecs provides ECS adapters for arbor's pointer interaction engine.
//
// The primary adapter is [NewDonburiStore], which bridges the pointer events
// a Stage dispatches to nodes with a non-zero EntityID into a [Donburi] world
// as typed events. Subscribe to [InteractionEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	stage.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
