package tiltcard

import "time"

// Timing of one transition cycle, measured from the trigger.
const (
	DefaultAutoPlayInterval = 5000 * time.Millisecond
	InitialDelay            = 100 * time.Millisecond // first automatic trigger after Start
	SwapDelay               = 400 * time.Millisecond // content advances, pop-in begins
	TransitionDuration      = 800 * time.Millisecond // pop-in cleared, transitioning cleared
)

// Tilt tuning.
const (
	TiltSensitivity = 15.0   // degrees at the edge of the card bounds
	TiltDuration    = 0.3    // seconds to ease toward a new pointer target
	TiltPerspective = 1000.0 // distance from the viewer to the card plane
	TiltDepth       = 30.0   // forward translation while the tilt is active
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Phase is the visual state of the dynamic card elements (item, widget and
// icons), derived from the time elapsed since the most recent trigger.
type Phase uint8

const (
	PhaseVisible   Phase = iota // fully shown, no emphasis
	PhaseFadingOut              // hidden while the old content is on screen
	PhasePoppingIn              // new content revealed with emphasis
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseVisible:
		return "visible"
	case PhaseFadingOut:
		return "fading-out"
	case PhasePoppingIn:
		return "popping-in"
	default:
		return "unknown"
	}
}

// TriggerSource identifies what started a transition. Only interactive
// triggers respect the transitioning guard.
type TriggerSource uint8

const (
	TriggerInitial     TriggerSource = iota // the one-shot trigger shortly after Start
	TriggerPeriodic                         // the auto-play interval
	TriggerInteractive                      // a click on the card
)

// String returns the trigger source name.
func (s TriggerSource) String() string {
	switch s {
	case TriggerInitial:
		return "initial"
	case TriggerPeriodic:
		return "periodic"
	case TriggerInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// EventType identifies a card lifecycle event.
type EventType uint8

const (
	EventTransitionStart     EventType = iota // a trigger was accepted
	EventContentAdvance                       // the index moved to the next slice
	EventPopInEnd                             // pop-in emphasis cleared
	EventTransitionEnd                        // transitioning flag cleared
	EventInteractionIgnored                   // interactive trigger rejected by the guard
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventTransitionStart:
		return "transition-start"
	case EventContentAdvance:
		return "content-advance"
	case EventPopInEnd:
		return "pop-in-end"
	case EventTransitionEnd:
		return "transition-end"
	case EventInteractionIgnored:
		return "interaction-ignored"
	default:
		return "unknown"
	}
}

// CardEvent describes one state change of a Sequencer.
type CardEvent struct {
	Type          EventType
	Source        TriggerSource
	Index         int
	Transitioning bool
	At            time.Duration // scheduler time of the change
}

// EventSink is the interface for optional event forwarding.
// When set on a Sequencer, every state change is reported to it.
type EventSink interface {
	EmitEvent(event CardEvent)
}
