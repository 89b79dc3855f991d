// Package ecs provides ECS adapters for greenflag's runtime event system.
//
// The primary adapter is [NewDonburiStore], which bridges greenflag runtime
// events (thread started, completed and stopped, green flag, key, click,
// broadcast, clone) into a [Donburi] world as typed events. Subscribe to
// [RuntimeEventType] in your ECS systems to receive them. Live threads are
// also mirrored as entities carrying [ThreadComponent].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	rt.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
