package tiltcard

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, processed exactly like real mouse input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectMove queues a pointer move to the given screen coordinates with the
// button up. The event is consumed on the next update.
func (c *Card) InjectMove(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectPress queues a pointer press at the given screen coordinates.
func (c *Card) InjectPress(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Card) InjectRelease(x, y float64) {
	c.input.injectQueue = append(c.input.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two updates.
func (c *Card) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectSweep queues pointer moves from (fromX, fromY) to (toX, toY) spread
// over frames updates, the last one landing exactly on the end point.
func (c *Card) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjected returns the number of queued synthetic events.
func (c *Card) PendingInjected() int {
	return len(c.input.injectQueue)
}

// processInjected pops one event from the inject queue and feeds it through
// processPointer. Returns true if an event was consumed, in which case real
// input is skipped for this update.
func (in *pointerInput) processInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	in.processPointer(evt.screenX, evt.screenY, evt.pressed)
	return true
}
