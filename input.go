package tiltcard

import "github.com/hajimehoshi/ebiten/v2"

// inputEvent identifies a kind of pointer callback.
type inputEvent uint8

const (
	inputPointerMove inputEvent = iota
	inputClick
)

// PointerContext describes one pointer sample delivered to a callback, in
// screen coordinates.
type PointerContext struct {
	X, Y   float64
	Bounds Rect // the card bounds the sample was tested against
}

// --- Per-pointer state ---

type pointerState struct {
	down       bool
	downInside bool // press started inside the bounds
	lastX      float64
	lastY      float64
	seen       bool // lastX/lastY hold a real sample
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type handlerRegistry struct {
	pointerMove []pointerHandler
	click       []pointerHandler
	nextID      uint32
}

// CallbackHandle allows removing a registered pointer callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event inputEvent
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case inputPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case inputClick:
		h.reg.click = removePointerHandler(h.reg.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i, h := range s {
		if h.id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// pointerInput turns mouse, touch and injected samples into pointer-move
// and click callbacks scoped to the card bounds. Moves outside the bounds
// are not delivered. A click is a press and a release both inside the
// bounds.
type pointerInput struct {
	bounds      Rect
	state       pointerState
	handlers    handlerRegistry
	injectQueue []syntheticPointerEvent
	touchIDs    []ebiten.TouchID
}

// OnPointerMove registers fn for pointer moves inside the bounds.
func (in *pointerInput) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	in.handlers.nextID++
	id := in.handlers.nextID
	in.handlers.pointerMove = append(in.handlers.pointerMove, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &in.handlers, event: inputPointerMove}
}

// OnClick registers fn for clicks inside the bounds.
func (in *pointerInput) OnClick(fn func(PointerContext)) CallbackHandle {
	in.handlers.nextID++
	id := in.handlers.nextID
	in.handlers.click = append(in.handlers.click, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &in.handlers, event: inputClick}
}

// poll consumes one injected event if any are queued, otherwise it samples
// the mouse and the first active touch.
func (in *pointerInput) poll() {
	if in.processInjected() {
		return
	}
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(in.touchIDs[0])
		in.processPointer(float64(tx), float64(ty), true)
		return
	}
	mx, my := ebiten.CursorPosition()
	in.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processPointer runs the pointer state machine for one sample.
func (in *pointerInput) processPointer(x, y float64, pressed bool) {
	ps := &in.state
	inside := in.bounds.Contains(x, y)
	moved := !ps.seen || x != ps.lastX || y != ps.lastY

	if moved && inside {
		in.fire(in.handlers.pointerMove, x, y)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.downInside = inside
	case !pressed && ps.down:
		if ps.downInside && inside {
			in.fire(in.handlers.click, x, y)
		}
		ps.down = false
		ps.downInside = false
	}

	ps.lastX = x
	ps.lastY = y
	ps.seen = true
}

func (in *pointerInput) fire(handlers []pointerHandler, x, y float64) {
	ctx := PointerContext{X: x, Y: y, Bounds: in.bounds}
	for _, h := range handlers {
		h.fn(ctx)
	}
}

// reset drops the pointer state and every callback.
func (in *pointerInput) reset() {
	in.state = pointerState{}
	in.handlers = handlerRegistry{nextID: in.handlers.nextID}
	in.injectQueue = in.injectQueue[:0]
}
