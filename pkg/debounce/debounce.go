// Package debounce provides a single-owned, replaceable delay timer.
// Each Trigger cancels the previous pending timer before arming a new one,
// so at most one timer is live at any moment.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays invocations of fn until delay has elapsed since the most
// recent Trigger. The callback runs on a timer goroutine; callers that need
// it on a specific thread must marshal it themselves.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		delay: delay,
		fn:    fn,
	}
}

// Trigger restarts the delay. Any previously pending invocation is canceled.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending invocation without scheduling a new one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Debounce wraps fn so that rapid calls coalesce into a single invocation
// after the debounce period.
func Debounce(delay time.Duration, fn func()) func() {
	d := New(delay, fn)
	return d.Trigger
}
