package ecs

import (
	"github.com/phanxgames/tiltcard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CardEventType is the Donburi event type for card sequencer events.
// Subscribe to this in your ECS systems to follow transitions.
var CardEventType = events.NewEventType[tiltcard.CardEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Card events are published to CardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) tiltcard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event tiltcard.CardEvent) {
	CardEventType.Publish(s.world, event)
}
