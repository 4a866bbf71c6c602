package config

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of calls: fn runs once the duration has passed
// without a newer call.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		duration: duration,
	}
}

// Debounce schedules fn, replacing any call still pending.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel cancels any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate executes the function immediately and cancels any pending call
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

// DefaultReloadDebounce batches the several write events editors emit on save.
const DefaultReloadDebounce = 250 * time.Millisecond
