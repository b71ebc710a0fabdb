package timer

import (
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/skirmish/internal/gameclock"
)

// CombatTimer bounds one combat round. It picks its duration from two fixed
// settings depending on whether the defender may still attempt an escape:
// the longer one while fleeing is possible, the shorter one once it is not.
// Reaching zero emits the zero tick, then the following tick fires
// onRoundOver so the session branches into attack resolution instead of turn
// advance.
//
// Rounds are epoch-guarded the same way as TurnTimer: Start returns the
// round's epoch, onRoundOver reports it back, and ticks from a cancelled or
// replaced round are discarded.
type CombatTimer struct {
	interval     *gameclock.Interval
	escapeSecs   int
	noEscapeSecs int
	onTick       func(remaining int)
	onRoundOver  func(epoch uint64)

	mu        sync.Mutex
	epoch     uint64
	remaining int
	running   bool
}

// NewCombatTimer creates a stopped combat timer with the two round
// durations. Callbacks run on the timer goroutine and must hand off to the
// room loop.
func NewCombatTimer(clock clockwork.Clock, escapeSecs, noEscapeSecs int, onTick func(remaining int), onRoundOver func(epoch uint64)) *CombatTimer {
	return &CombatTimer{
		interval:     gameclock.NewInterval(clock),
		escapeSecs:   escapeSecs,
		noEscapeSecs: noEscapeSecs,
		onTick:       onTick,
		onRoundOver:  onRoundOver,
	}
}

// Start begins a round countdown and returns its epoch. hasEscape selects
// the duration: true while the defender retains the right to flee, false
// once that window has closed. A running countdown is cancelled first.
func (t *CombatTimer) Start(hasEscape bool) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	if hasEscape {
		t.remaining = t.escapeSecs
	} else {
		t.remaining = t.noEscapeSecs
	}
	t.running = true
	epoch := t.epoch
	t.interval.Start(TickPeriod, func() { t.tick(epoch) })
	return epoch
}

func (t *CombatTimer) tick(epoch uint64) {
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
	t.running = false
	t.interval.Stop()
	t.mu.Unlock()
	t.onRoundOver(epoch)
}

// Reset cancels any running countdown and broadcasts the current value
// without restarting. Used when the round ends outside the timer's own
// expiry path, such as an attack resolving or a player being eliminated
// before the round timer fires.
func (t *CombatTimer) Reset() {
	t.mu.Lock()
	t.epoch++
	t.running = false
	t.interval.Stop()
	remaining := t.remaining
	t.mu.Unlock()
	t.onTick(remaining)
}

// Halt cancels the countdown without broadcasting. Used on terminal
// teardown.
func (t *CombatTimer) Halt() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.running = false
	t.interval.Stop()
}

// Remaining returns the seconds left in the round.
func (t *CombatTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Running reports whether a round countdown is live.
func (t *CombatTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
