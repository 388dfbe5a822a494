package gallery

import (
	"sync"
	"time"
)

// Debounced wraps a callback so that a burst of calls results in a single
// invocation with the last value, once the delay passes with no new call.
type Debounced[T any] struct {
	sched Scheduler
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   Timer
	gen     uint64 // bumped on every Call/Cancel/Flush; stale timers compare against it
	pending bool
	value   T
}

// NewDebounced returns a trailing-edge debouncer around fn.
func NewDebounced[T any](sched Scheduler, delay time.Duration, fn func(T)) *Debounced[T] {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Debounced[T]{sched: sched, delay: delay, fn: fn}
}

// Call records v and (re)starts the delay.
func (d *Debounced[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.timer = d.sched.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending call, if any.
func (d *Debounced[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	d.pending = false
	var zero T
	d.value = zero
}

// Flush runs the pending call immediately on the caller's goroutine.
func (d *Debounced[T]) Flush() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.stopLocked()
	d.gen++
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

// Pending reports whether a call is waiting for its delay to pass.
func (d *Debounced[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debounced[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	v := d.take()
	d.mu.Unlock()

	d.fn(v)
}

func (d *Debounced[T]) take() T {
	v := d.value
	var zero T
	d.value = zero
	d.pending = false
	return v
}

func (d *Debounced[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
