package honeycomb

// FrameID identifies a scheduled frame callback.
type FrameID uint64

// FrameScheduler is the host's per-frame scheduling primitive: a callback
// requested now runs once, on the next frame.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// FrameQueue is a FrameScheduler pumped by the host. Callbacks requested
// while a frame is running are deferred to the next RunFrame.
type FrameQueue struct {
	pending []queuedFrame
	running []queuedFrame
	nextID  FrameID
}

type queuedFrame struct {
	id FrameID
	fn func()
}

// RequestFrame implements FrameScheduler.
func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.nextID++
	q.pending = append(q.pending, queuedFrame{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame implements FrameScheduler. Unknown or already run IDs are
// ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.running {
		if q.running[i].id == id {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs every callback requested before this call and returns how
// many ran.
func (q *FrameQueue) RunFrame() int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			q.running[i].fn = nil
			fn()
			ran++
		}
	}
	q.running = q.running[:0]
	return ran
}

// AnimationDriver runs one callback per frame until stopped. At most one
// loop is active per driver: Start supersedes any earlier loop.
type AnimationDriver struct {
	sched   FrameScheduler
	pending FrameID
	active  bool
	gen     uint64
	frames  uint64
}

// NewAnimationDriver creates a driver on the given scheduler.
func NewAnimationDriver(sched FrameScheduler) *AnimationDriver {
	return &AnimationDriver{sched: sched}
}

// Start cancels any running loop and schedules fn every frame.
func (d *AnimationDriver) Start(fn func()) {
	d.Stop()
	d.active = true
	gen := d.gen

	var loop func()
	loop = func() {
		if !d.active || d.gen != gen {
			return
		}
		d.frames++
		fn()
		// fn may have stopped or restarted the driver.
		if d.active && d.gen == gen {
			d.pending = d.sched.RequestFrame(loop)
		}
	}
	d.pending = d.sched.RequestFrame(loop)
}

// Stop cancels the next scheduled callback. Safe to call repeatedly and
// when no loop is running.
func (d *AnimationDriver) Stop() {
	if d.active {
		d.sched.CancelFrame(d.pending)
	}
	d.active = false
	d.pending = 0
	d.gen++
}

// Active reports whether a loop is scheduled.
func (d *AnimationDriver) Active() bool {
	return d.active
}

// Frames returns the number of callbacks run since the driver was created.
func (d *AnimationDriver) Frames() uint64 {
	return d.frames
}
