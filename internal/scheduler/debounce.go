package scheduler

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultQuiet is how long edits must pause before a regeneration fires
const DefaultQuiet = 300 * time.Millisecond

// Debouncer collapses a burst of Notify calls into a single callback that
// fires once the burst has been quiet for the configured period. It is
// trailing-edge only: the first Notify of a burst never fires on its own.
type Debouncer struct {
	mu    sync.Mutex
	clock clock.Clock
	quiet time.Duration
	fn    func()

	timer *clock.Timer
	// gen identifies the live timer. A timer whose expiry races with a newer
	// Notify sees a stale generation and does nothing.
	gen uint64
}

// New returns an idle debouncer. A nil clock means the wall clock.
func New(quiet time.Duration, clk clock.Clock, fn func()) *Debouncer {
	if clk == nil {
		clk = clock.New()
	}
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{
		clock: clk,
		quiet: quiet,
		fn:    fn,
	}
}

// Notify cancels any pending timer and starts a fresh quiet period
func (d *Debouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = d.clock.AfterFunc(d.quiet, func() { d.fire(gen) })
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Pending reports whether a timer is waiting to fire
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels the pending timer, if any, without firing it
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Quiet returns the configured quiet period
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}
