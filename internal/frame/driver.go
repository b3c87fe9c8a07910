package frame

import (
	"sync"
	"time"
)

const DefaultFPS = 60

// State of a Driver.
type State int

const (
	Idle State = iota
	Running
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Driver runs step then draw once per frame while Running.
//
// step and draw run with the driver's lock held and must not call back
// into the driver.
type Driver struct {
	mu      sync.Mutex
	src     Source
	step    func()
	draw    func()
	state   State
	pending Handle
	frames  uint64
	last    time.Time
}

func NewDriver(src Source, step, draw func()) *Driver {
	if step == nil {
		step = func() {}
	}
	if draw == nil {
		draw = func() {}
	}
	return &Driver{src: src, step: step, draw: draw}
}

// Start moves Idle to Running and requests the first frame. It reports
// false if the driver was not Idle.
func (d *Driver) Start() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Idle {
		return false
	}
	d.state = Running
	d.pending = d.src.Request(d.tick)
	return true
}

// Cancel stops the loop. It waits for an in-flight frame to finish, so
// after it returns no step or draw will run again. Calling it more than
// once, or before Start, is safe.
func (d *Driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == Cancelled {
		return
	}
	d.state = Cancelled
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
}

func (d *Driver) tick(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != Running {
		return
	}
	d.pending = nil
	d.step()
	d.draw()
	d.frames++
	d.last = now
	d.pending = d.src.Request(d.tick)
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frames returns the number of completed frames.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// LastFrame returns the timestamp of the most recent frame.
func (d *Driver) LastFrame() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
