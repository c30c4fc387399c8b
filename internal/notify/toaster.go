// Package notify shows transient messages: a timed toaster and a flash
// store that carries a message across a redirect.
package notify

import (
	"sync/atomic"
	"time"
)

// DefaultDuration is how long a notification stays visible.
const DefaultDuration = 3 * time.Second

// Toaster displays one message for a fixed duration and then calls the
// dismissal callback supplied by the caller.
type Toaster struct {
	Duration time.Duration
}

func NewToaster(d time.Duration) Toaster {
	if d <= 0 {
		d = DefaultDuration
	}
	return Toaster{Duration: d}
}

// Show schedules onClose after the toaster's duration. The returned stop
// cancels the dismissal; calling it after onClose ran is a no-op.
func (t Toaster) Show(message string, onClose func(message string)) (stop func()) {
	d := t.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	var done atomic.Bool
	timer := time.AfterFunc(d, func() {
		if done.CompareAndSwap(false, true) && onClose != nil {
			onClose(message)
		}
	})
	return func() {
		timer.Stop()
		done.Store(true)
	}
}

// Millis is the duration in milliseconds, for the page script.
func (t Toaster) Millis() int64 {
	if t.Duration <= 0 {
		return DefaultDuration.Milliseconds()
	}
	return t.Duration.Milliseconds()
}
