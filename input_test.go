package tiltcard

import "testing"

type pointerLog struct {
	moves  []PointerContext
	clicks []PointerContext
}

func newLoggedInput(bounds Rect) (*pointerInput, *pointerLog) {
	in := &pointerInput{bounds: bounds}
	log := &pointerLog{}
	in.OnPointerMove(func(p PointerContext) { log.moves = append(log.moves, p) })
	in.OnClick(func(p PointerContext) { log.clicks = append(log.clicks, p) })
	return in, log
}

func TestPointerMoveInsideBounds(t *testing.T) {
	bounds := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	in, log := newLoggedInput(bounds)

	in.processPointer(10, 10, false)
	in.processPointer(10, 10, false) // unchanged position
	in.processPointer(20, 30, false)

	if len(log.moves) != 2 {
		t.Fatalf("moves = %d, want 2", len(log.moves))
	}
	if log.moves[1].X != 20 || log.moves[1].Y != 30 {
		t.Errorf("second move = %+v, want (20, 30)", log.moves[1])
	}
	if log.moves[1].Bounds != bounds {
		t.Errorf("Bounds = %+v, want %+v", log.moves[1].Bounds, bounds)
	}
}

func TestPointerMoveOutsideBoundsIgnored(t *testing.T) {
	in, log := newLoggedInput(Rect{X: 100, Y: 100, Width: 50, Height: 50})
	in.processPointer(10, 10, false)
	in.processPointer(200, 120, false)
	if len(log.moves) != 0 {
		t.Errorf("moves = %d, want 0", len(log.moves))
	}
}

func TestPointerClick(t *testing.T) {
	tests := []struct {
		name       string
		downX      float64
		upX        float64
		wantClicks int
	}{
		{"press and release inside", 50, 60, 1},
		{"released outside", 50, 150, 0},
		{"pressed outside", 150, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, log := newLoggedInput(Rect{Width: 100, Height: 100})
			in.processPointer(tt.downX, 50, true)
			if len(log.clicks) != 0 {
				t.Fatal("click fired on press")
			}
			in.processPointer(tt.upX, 50, false)
			if len(log.clicks) != tt.wantClicks {
				t.Errorf("clicks = %d, want %d", len(log.clicks), tt.wantClicks)
			}
		})
	}
}

func TestPointerHeldDoesNotRepeatClick(t *testing.T) {
	in, log := newLoggedInput(Rect{Width: 100, Height: 100})
	for range 5 {
		in.processPointer(50, 50, true)
	}
	in.processPointer(50, 50, false)
	in.processPointer(50, 50, false)
	if len(log.clicks) != 1 {
		t.Errorf("clicks = %d, want 1", len(log.clicks))
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	in := &pointerInput{bounds: Rect{Width: 100, Height: 100}}
	var a, b int
	ha := in.OnPointerMove(func(PointerContext) { a++ })
	in.OnPointerMove(func(PointerContext) { b++ })

	in.processPointer(1, 1, false)
	ha.Remove()
	ha.Remove() // second remove is a no-op
	in.processPointer(2, 2, false)

	if a != 1 || b != 2 {
		t.Errorf("calls = (%d, %d), want (1, 2)", a, b)
	}
	CallbackHandle{}.Remove()
}

func TestPointerInputReset(t *testing.T) {
	in, log := newLoggedInput(Rect{Width: 100, Height: 100})
	in.processPointer(50, 50, true)
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{screenX: 1, screenY: 1})
	in.reset()

	if in.state != (pointerState{}) {
		t.Errorf("state = %+v, want zero", in.state)
	}
	if len(in.injectQueue) != 0 {
		t.Error("inject queue not cleared")
	}
	in.processPointer(60, 60, false)
	if len(log.moves) != 1 || len(log.clicks) != 0 {
		t.Errorf("after reset: moves %d clicks %d, want handlers gone", len(log.moves), len(log.clicks))
	}

	h := in.OnClick(func(PointerContext) {})
	if h.id <= 2 {
		t.Errorf("handle id = %d, want ids to keep increasing across reset", h.id)
	}
}
