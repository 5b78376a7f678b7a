package editor

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Debouncer delivers the most recently scheduled value once the wait period
// elapses without another Schedule call. At most one value is pending.
type Debouncer[T any] struct {
	clock clockwork.Clock
	wait  time.Duration
	fn    func(T)

	mu         sync.Mutex
	timer      clockwork.Timer
	pending    T
	hasPending bool
	generation uint64
}

func NewDebouncer[T any](clock clockwork.Clock, wait time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		clock: clock,
		wait:  wait,
		fn:    fn,
	}
}

// Schedule replaces the pending value and restarts the wait period.
func (d *Debouncer[T]) Schedule(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.pending = value
	d.hasPending = true
	d.generation++

	generation := d.generation
	d.timer = d.clock.AfterFunc(d.wait, func() {
		d.fire(generation)
	})
}

// Flush delivers the pending value immediately. It reports whether a value
// was delivered.
func (d *Debouncer[T]) Flush() bool {
	value, ok := d.take()
	if !ok {
		return false
	}

	d.fn(value)

	return true
}

func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.hasPending
}

func (d *Debouncer[T]) fire(generation uint64) {
	d.mu.Lock()
	if generation != d.generation || !d.hasPending {
		d.mu.Unlock()

		return
	}

	value := d.pending
	d.clearLocked()
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}

func (d *Debouncer[T]) take() (T, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	value, ok := d.pending, d.hasPending
	d.clearLocked()
	d.generation++

	return value, ok
}

func (d *Debouncer[T]) clearLocked() {
	var zero T

	d.pending = zero
	d.hasPending = false
}

func (d *Debouncer[T]) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
