// Package ecs provides ECS adapters for tiltcard's sequencer events.
//
// The primary adapter is [NewDonburiSink], which bridges card events
// (transition start, content advance, pop-in end, transition end, ignored
// interactions) into a [Donburi] world as typed events. Subscribe to
// [CardEventType] in your ECS systems to receive them.
//
// Usage:
//
//	card, err := tiltcard.NewCard(cfg, tiltcard.WithEventSink(ecs.NewDonburiSink(world)))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
