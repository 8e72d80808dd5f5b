package tiltcard

import "testing"

func TestInjectClick(t *testing.T) {
	c := newTestCard(t, testConfig())
	center := c.Bounds().Center()

	var clicked bool
	c.input.OnClick(func(PointerContext) { clicked = true })

	c.InjectClick(center.X, center.Y)
	if c.PendingInjected() != 2 {
		t.Fatalf("expected 2 queued events, got %d", c.PendingInjected())
	}

	// Frame 1: press
	c.UpdateDelta(0)
	if c.PendingInjected() != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", c.PendingInjected())
	}
	if clicked {
		t.Error("click should not fire on press frame")
	}

	// Frame 2: release → click fires
	c.UpdateDelta(0)
	if c.PendingInjected() != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", c.PendingInjected())
	}
	if !clicked {
		t.Error("click should fire on release frame")
	}
}

func TestInjectSweep(t *testing.T) {
	c := newTestCard(t, testConfig())
	var xs []float64
	c.input.OnPointerMove(func(p PointerContext) { xs = append(xs, p.X) })

	b := c.Bounds()
	c.InjectSweep(b.X, b.Y+10, b.X+100, b.Y+10, 4)
	if c.PendingInjected() != 4 {
		t.Fatalf("expected 4 queued events, got %d", c.PendingInjected())
	}
	for c.PendingInjected() > 0 {
		c.UpdateDelta(0)
	}

	want := []float64{b.X + 25, b.X + 50, b.X + 75, b.X + 100}
	if len(xs) != len(want) {
		t.Fatalf("moves = %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("move %d x = %v, want %v", i, xs[i], want[i])
		}
	}
}

func TestInjectSweepClampsFrames(t *testing.T) {
	c := newTestCard(t, testConfig())
	c.InjectSweep(0, 0, 10, 10, 0)
	if c.PendingInjected() != 1 {
		t.Errorf("expected 1 queued event, got %d", c.PendingInjected())
	}
}

func TestInjectPressRelease(t *testing.T) {
	c := newTestCard(t, testConfig())
	var clicks int
	c.input.OnClick(func(PointerContext) { clicks++ })

	b := c.Bounds()
	c.InjectPress(b.X+10, b.Y+10)
	c.InjectMove(b.X+20, b.Y+20) // a move with the button up releases
	c.InjectRelease(b.X+20, b.Y+20)
	for c.PendingInjected() > 0 {
		c.UpdateDelta(0)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}
