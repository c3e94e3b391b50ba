package honeycomb

// syntheticPointerEvent is one queued pointer update in logical surface
// coordinates. leave marks the pointer as gone instead of moving it.
type syntheticPointerEvent struct {
	x, y  float64
	leave bool
}

// InjectMove queues a pointer move to (x, y). Queued events are consumed one
// per frame, and while any are pending the real cursor is ignored.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectLeave queues the pointer leaving the surface.
func (e *Engine) InjectLeave() {
	e.injectQueue = append(e.injectQueue, syntheticPointerEvent{leave: true})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY) spread over frames frames, both endpoints included. Minimum
// frames is 2.
func (e *Engine) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		e.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// ReleasePointer drops pending injected events and hands the pointer back
// to the device.
func (e *Engine) ReleasePointer() {
	e.injectQueue = e.injectQueue[:0]
	e.viewport.ReleaseInjection()
}

// processInjectedInput pops one event from the inject queue and applies it
// to the viewport. Returns true if an event was consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	if evt.leave {
		e.viewport.InjectLeave()
	} else {
		e.viewport.InjectPointer(evt.x, evt.y)
	}
	return true
}
