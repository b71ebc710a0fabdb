package gameclock

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Interval owns a single repeating callback source. Start replaces any
// running interval before launching a new one, so at most one ticker
// goroutine is ever live per Interval. Ticks from a stopped or replaced
// epoch are discarded, which keeps a cancellation from racing an
// already-in-flight tick.
//
// In production construct it with clockwork.NewRealClock(); tests inject a
// FakeClock and drive ticks explicitly.
type Interval struct {
	clock clockwork.Clock

	mu      sync.Mutex
	epoch   uint64
	stopCh  chan struct{}
	running bool
}

// NewInterval creates an Interval on the given clock.
func NewInterval(clock clockwork.Clock) *Interval {
	return &Interval{clock: clock}
}

// Start begins invoking onTick every period. If the interval is already
// running it is stopped first; callers changing periods rely on this. The
// ticker is registered with the clock before Start returns, so a fake-clock
// Advance issued right after Start always reaches the new epoch.
func (i *Interval) Start(period time.Duration, onTick func()) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.stopLocked()
	i.epoch++
	i.running = true
	i.stopCh = make(chan struct{})

	ticker := i.clock.NewTicker(period)
	go i.run(i.epoch, ticker, i.stopCh, onTick)
}

func (i *Interval) run(epoch uint64, ticker clockwork.Ticker, stopCh chan struct{}, onTick func()) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			if !i.tickAllowed(epoch) {
				return
			}
			onTick()
		}
	}
}

// tickAllowed reports whether a tick scheduled under the given epoch may
// still be delivered.
func (i *Interval) tickAllowed(epoch uint64) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running && i.epoch == epoch
}

// Stop cancels any pending tick. Safe to call when not running. There is no
// garbage-collected cleanup: owners must call Stop before discarding the
// Interval or the ticker goroutine leaks.
func (i *Interval) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopLocked()
}

func (i *Interval) stopLocked() {
	if !i.running {
		return
	}
	i.running = false
	i.epoch++
	close(i.stopCh)
	i.stopCh = nil
}

// Running reports whether the interval currently has a live ticker.
func (i *Interval) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}
