// Package ecs provides ECS adapters for glint's cursor events.
//
// [NewDonburiSink] bridges cursor lifecycle events (show, hide, press,
// release, burst) into a [Donburi] world as typed events. Subscribe to
// [EventType] in your ECS systems to receive them. [SyncCursor] mirrors the
// cursor's pointer state into a singleton [CursorState] component for
// systems that poll instead.
//
// Usage:
//
//	host.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
