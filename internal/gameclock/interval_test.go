package gameclock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterval_TicksAtPeriod(t *testing.T) {
	fc := clockwork.NewFakeClock()
	iv := NewInterval(fc)
	var ticks atomic.Int64

	iv.Start(time.Second, func() { ticks.Add(1) })
	defer iv.Stop()

	for i := 1; i <= 3; i++ {
		fc.BlockUntil(1)
		fc.Advance(time.Second)
		want := int64(i)
		require.Eventually(t, func() bool { return ticks.Load() == want },
			time.Second, time.Millisecond)
	}
	assert.True(t, iv.Running())
}

func TestInterval_StopCancelsPendingTicks(t *testing.T) {
	fc := clockwork.NewFakeClock()
	iv := NewInterval(fc)
	var ticks atomic.Int64

	iv.Start(time.Second, func() { ticks.Add(1) })
	fc.BlockUntil(1)
	iv.Stop()
	assert.False(t, iv.Running())

	// Time passing after Stop must not deliver anything.
	fc.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), ticks.Load())
}

func TestInterval_StopWhenNotRunningIsSafe(t *testing.T) {
	iv := NewInterval(clockwork.NewFakeClock())
	iv.Stop()
	iv.Stop()
	assert.False(t, iv.Running())
}

func TestInterval_RestartReplacesPriorInterval(t *testing.T) {
	fc := clockwork.NewFakeClock()
	iv := NewInterval(fc)
	var first, second atomic.Int64

	iv.Start(time.Second, func() { first.Add(1) })
	fc.BlockUntil(1)
	iv.Start(time.Second, func() { second.Add(1) })
	defer iv.Stop()

	// Start registers the replacement ticker before returning, so every
	// advance from here lands on the new epoch even while the old ticker
	// goroutine is still winding down.
	for i := 1; i <= 3; i++ {
		fc.Advance(time.Second)
		want := int64(i)
		require.Eventually(t, func() bool { return second.Load() == want },
			time.Second, time.Millisecond)
	}
	// The replaced epoch never delivers, even if its ticker fired in flight.
	assert.Equal(t, int64(0), first.Load())
}

func TestInterval_RestartChangesPeriod(t *testing.T) {
	fc := clockwork.NewFakeClock()
	iv := NewInterval(fc)
	var ticks atomic.Int64

	iv.Start(time.Minute, func() { ticks.Add(1) })
	fc.BlockUntil(1)
	iv.Start(time.Second, func() { ticks.Add(1) })
	defer iv.Stop()

	// Well short of the original minute period; the second-period ticker is
	// already registered when Start returns.
	fc.Advance(time.Second)
	require.Eventually(t, func() bool { return ticks.Load() == 1 },
		time.Second, time.Millisecond)
}
