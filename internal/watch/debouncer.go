package watch

import "time"

// Debouncer coalesces bursts of events into a single firing of C.
// It is owned by one goroutine and needs no locking: the loop calls Trigger
// and selects on C itself, so a debounced pass still runs on the loop.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
}

// NewDebouncer creates a debouncer that fires after interval of quiet.
// A zero interval disables debouncing.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Enabled reports whether events should be routed through the debouncer.
func (d *Debouncer) Enabled() bool {
	return d.interval > 0
}

// Trigger records an event and restarts the quiet period.
func (d *Debouncer) Trigger() {
	if d.timer == nil {
		d.timer = time.NewTimer(d.interval)
		return
	}

	d.timer.Reset(d.interval)
}

// C delivers once per quiet period following a Trigger. It is nil, and so
// blocks forever in a select, until the first Trigger.
func (d *Debouncer) C() <-chan time.Time {
	if d.timer == nil {
		return nil
	}

	return d.timer.C
}

// Stop cancels any pending firing.
func (d *Debouncer) Stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
