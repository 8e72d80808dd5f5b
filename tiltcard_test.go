package tiltcard

import "testing"

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"top edge", 50, 20, true},
		{"bottom edge", 50, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
		{"far outside", 999, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectCenterAndEmpty(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	if c := r.Center(); c != (Vec2{60, 45}) {
		t.Errorf("Center = %v, want {60 45}", c)
	}
	if r.Empty() {
		t.Error("non-empty rect reported empty")
	}
	for _, e := range []Rect{{}, {Width: 10}, {Height: 10}, {Width: -1, Height: 5}} {
		if !e.Empty() {
			t.Errorf("Rect%v should be empty", e)
		}
	}
}

// --- Enum names ---

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{PhaseVisible.String(), "visible"},
		{PhaseFadingOut.String(), "fading-out"},
		{PhasePoppingIn.String(), "popping-in"},
		{Phase(99).String(), "unknown"},
		{TriggerInitial.String(), "initial"},
		{TriggerPeriodic.String(), "periodic"},
		{TriggerInteractive.String(), "interactive"},
		{TriggerSource(99).String(), "unknown"},
		{EventTransitionStart.String(), "transition-start"},
		{EventContentAdvance.String(), "content-advance"},
		{EventPopInEnd.String(), "pop-in-end"},
		{EventTransitionEnd.String(), "transition-end"},
		{EventInteractionIgnored.String(), "interaction-ignored"},
		{EventType(99).String(), "unknown"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
