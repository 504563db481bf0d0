// Package ecs provides ECS adapters for confetti's burst events.
//
// The primary adapter is [NewDonburiSink], which bridges burst attach and
// detach events into a [Donburi] world as typed events and mirrors every
// live burst as an entity carrying a [Burst] component. Subscribe to
// [BurstEventType] in your ECS systems to receive the events.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	controller, err := confetti.NewBurstController(assets, sched, confetti.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
