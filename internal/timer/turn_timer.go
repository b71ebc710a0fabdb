package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/skirmish/internal/gameclock"
)

// TickPeriod is the wire cadence of both game timers. Clients display the
// countdown second by second, so this is fixed at one second.
const TickPeriod = time.Second

// TurnTimer bounds the movement/action phase of a single turn. Every tick it
// reports the remaining seconds through onTick; once the countdown has
// reached zero the next tick fires onExpire exactly once and the timer stops
// itself.
//
// Every Start, Resume, Stop and Halt bumps an epoch. Ticks carry the epoch
// of the countdown they belong to and are discarded when it no longer
// matches, so a tick in flight across a restart can never touch the new
// countdown. The expiry callback receives the expired countdown's epoch;
// consumers that queue expiries compare it against the epoch the matching
// Start returned and drop the event on a mismatch.
type TurnTimer struct {
	interval *gameclock.Interval
	onTick   func(remaining int)
	onExpire func(epoch uint64)

	mu        sync.Mutex
	epoch     uint64
	remaining int
	running   bool
}

// NewTurnTimer creates a stopped turn timer. Callbacks are invoked from the
// timer's own goroutine; they must hand off to the room loop rather than
// mutate session state directly.
func NewTurnTimer(clock clockwork.Clock, onTick func(remaining int), onExpire func(epoch uint64)) *TurnTimer {
	return &TurnTimer{
		interval: gameclock.NewInterval(clock),
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start begins a countdown from the given number of seconds and returns its
// epoch. A running countdown is cancelled first, so restarting never leaves
// a duplicate ticker behind.
func (t *TurnTimer) Start(seconds int) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.remaining = seconds
	t.running = true
	epoch := t.epoch
	t.interval.Start(TickPeriod, func() { t.tick(epoch) })
	return epoch
}

// Resume restarts the countdown from wherever Stop left it and returns the
// new epoch. Used when a suspended turn continues after combat.
func (t *TurnTimer) Resume() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.running = true
	epoch := t.epoch
	t.interval.Start(TickPeriod, func() { t.tick(epoch) })
	return epoch
}

func (t *TurnTimer) tick(epoch uint64) {
	t.mu.Lock()
	if !t.running || epoch != t.epoch {
		t.mu.Unlock()
		return
	}
	if t.remaining > 0 {
		t.remaining--
		remaining := t.remaining
		t.mu.Unlock()
		t.onTick(remaining)
		return
	}
	// The previous tick already broadcast zero; this one signals expiry.
	t.running = false
	t.interval.Stop()
	t.mu.Unlock()
	t.onExpire(epoch)
}

// Stop cancels the countdown and reports the value it stopped at so
// observers reconcile their display. Remaining time is preserved for Resume.
// No-op when not running.
func (t *TurnTimer) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.epoch++
	t.running = false
	t.interval.Stop()
	remaining := t.remaining
	t.mu.Unlock()
	t.onTick(remaining)
}

// Halt cancels the countdown without broadcasting. Used on terminal
// teardown, where the game-over event supersedes any display reconcile.
func (t *TurnTimer) Halt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.running = false
	t.interval.Stop()
}

// Remaining returns the seconds left on the countdown.
func (t *TurnTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Running reports whether the countdown is live.
func (t *TurnTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
