package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/tiltcard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []tiltcard.CardEvent
	CardEventType.Subscribe(world, func(w donburi.World, e tiltcard.CardEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(tiltcard.CardEvent{
		Type:          tiltcard.EventTransitionStart,
		Source:        tiltcard.TriggerInteractive,
		Transitioning: true,
		At:            100 * time.Millisecond,
	})
	sink.EmitEvent(tiltcard.CardEvent{
		Type:  tiltcard.EventContentAdvance,
		Index: 1,
		At:    500 * time.Millisecond,
	})

	// Events are queued until processed.
	CardEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != tiltcard.EventTransitionStart || e.Source != tiltcard.TriggerInteractive || !e.Transitioning {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != tiltcard.EventContentAdvance || e.Index != 1 || e.At != 500*time.Millisecond {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_FromSequencer(t *testing.T) {
	world := donburi.NewWorld()
	sched := tiltcard.NewScheduler()
	seq := tiltcard.NewSequencer(sched, 3)
	seq.SetEventSink(NewDonburiSink(world))

	var types []tiltcard.EventType
	CardEventType.Subscribe(world, func(w donburi.World, e tiltcard.CardEvent) {
		types = append(types, e.Type)
	})

	seq.HandleInteraction()
	seq.HandleInteraction() // ignored by the guard
	sched.Advance(tiltcard.TransitionDuration)
	events.ProcessAllEvents(world)

	want := []tiltcard.EventType{
		tiltcard.EventTransitionStart,
		tiltcard.EventInteractionIgnored,
		tiltcard.EventContentAdvance,
		tiltcard.EventPopInEnd,
		tiltcard.EventTransitionEnd,
	}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	CardEventType.Subscribe(world, func(w donburi.World, e tiltcard.CardEvent) {
		count1++
	})
	CardEventType.Subscribe(world, func(w donburi.World, e tiltcard.CardEvent) {
		count2++
	})

	sink.EmitEvent(tiltcard.CardEvent{Type: tiltcard.EventTransitionEnd})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
