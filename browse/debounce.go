package browse

import (
	"sync"
	"time"
)

// Default settle delay of text-query inputs
const DefaultDebounce = 150 * time.Millisecond

//
// Debouncer - cancellable delayed task, last write wins
//
// Every Trigger cancels the previously scheduled function, so out of a burst
// of keystrokes only the final one reaches the server.
//
type Debouncer struct {
	mtx		sync.Mutex
	delay	time.Duration
	timer	*time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}

	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the settle delay, cancelling any
// previously scheduled function that has not fired yet
func (d *Debouncer) Trigger(fn func()) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending function, if any
func (d *Debouncer) Stop() {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
