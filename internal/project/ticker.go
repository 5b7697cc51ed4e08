package project

import "time"

// ticker runs fn on the event loop every period while started. Every start and stop bumps
// the generation, so a tick that was already queued when the ticker stopped is dropped.
// All methods must be called on the event loop.
type ticker struct {
	clock  Clock
	post   func(func())
	period time.Duration
	fn     func()

	gen    uint64
	active bool
	timer  Timer
}

func (t *ticker) start() {
	if t.active {
		return
	}
	t.gen++
	t.active = true
	t.arm(t.gen)
}

func (t *ticker) stop() {
	if !t.active {
		return
	}
	t.gen++
	t.active = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *ticker) arm(gen uint64) {
	t.timer = t.clock.AfterFunc(t.period, func() {
		t.post(func() { t.fire(gen) })
	})
}

func (t *ticker) fire(gen uint64) {
	if !t.active || gen != t.gen {
		return
	}
	t.fn()
	// fn may have stopped the ticker
	if t.active && gen == t.gen {
		t.arm(gen)
	}
}
