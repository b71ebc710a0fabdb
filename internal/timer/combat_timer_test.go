package timer

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCombatFixture(t *testing.T) (*clockwork.FakeClock, *tickLog, *CombatTimer) {
	t.Helper()
	fc := clockwork.NewFakeClock()
	log := &tickLog{}
	ct := NewCombatTimer(fc, 5, 3, log.onTick, log.onExpire)
	return fc, log, ct
}

func runDown(t *testing.T, fc *clockwork.FakeClock, log *tickLog, seconds int) {
	t.Helper()
	base := log.tickCount()
	for i := 1; i <= seconds; i++ {
		fc.BlockUntil(1)
		fc.Advance(TickPeriod)
		want := base + i
		require.Eventually(t, func() bool { return log.tickCount() == want },
			time.Second, time.Millisecond)
	}
	expiries := log.expiryCount()
	fc.BlockUntil(1)
	fc.Advance(TickPeriod)
	require.Eventually(t, func() bool { return log.expiryCount() == expiries+1 },
		time.Second, time.Millisecond)
}

func TestCombatTimer_DurationDependsOnEscapeWindow(t *testing.T) {
	fc, log, ct := newCombatFixture(t)

	// While the defender can still flee the round runs the long duration.
	ct.Start(true)
	require.Equal(t, 5, ct.Remaining())
	runDown(t, fc, log, 5)
	assert.Equal(t, []int{4, 3, 2, 1, 0}, log.snapshot())
	assert.False(t, ct.Running())

	// Once fleeing is off the table rounds run the short duration.
	ct.Start(false)
	require.Equal(t, 3, ct.Remaining())
	runDown(t, fc, log, 3)
	assert.Equal(t, []int{4, 3, 2, 1, 0, 2, 1, 0}, log.snapshot())
	assert.Equal(t, 2, log.expiryCount())
}

func TestCombatTimer_ResetBroadcastsWithoutRestarting(t *testing.T) {
	fc, log, ct := newCombatFixture(t)

	ct.Start(true)
	for i := 1; i <= 2; i++ {
		fc.BlockUntil(1)
		fc.Advance(TickPeriod)
		want := i
		require.Eventually(t, func() bool { return log.tickCount() == want },
			time.Second, time.Millisecond)
	}

	ct.Reset()
	assert.False(t, ct.Running())
	assert.Equal(t, []int{4, 3, 3}, log.snapshot())

	// A reset round is over; time passing must not revive it.
	fc.Advance(10 * TickPeriod)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 3, log.tickCount())
	assert.Zero(t, log.expiryCount())
}

func TestCombatTimer_TickFromReplacedRoundIsDiscarded(t *testing.T) {
	_, log, ct := newCombatFixture(t)

	first := ct.Start(true)
	second := ct.Start(false)
	require.NotEqual(t, first, second)

	ct.tick(first)
	assert.Equal(t, 3, ct.Remaining())
	assert.Zero(t, log.tickCount())

	ct.tick(second)
	assert.Equal(t, 2, ct.Remaining())
	ct.Halt()
}

func TestCombatTimer_ResetKillsPendingRound(t *testing.T) {
	_, log, ct := newCombatFixture(t)

	started := ct.Start(true)
	ct.Reset()

	// The reset round's ticks are dead; only the reconcile broadcast shows.
	ct.tick(started)
	assert.Equal(t, []int{5}, log.snapshot())
	assert.Equal(t, 5, ct.Remaining())
}

func TestCombatTimer_ResetOnStoppedTimerStillReconciles(t *testing.T) {
	_, log, ct := newCombatFixture(t)

	ct.Reset()
	assert.Equal(t, []int{0}, log.snapshot())
}
