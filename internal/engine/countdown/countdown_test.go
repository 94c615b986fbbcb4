package countdown_test

import (
	"testing"
	"testing/synctest"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/engine/countdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnce_AlternatesAndRearms(t *testing.T) {
	t.Parallel()

	var o countdown.Once
	got := []bool{o.Remains(), o.Remains(), o.Remains(), o.Remains()}
	assert.Equal(t, []bool{true, false, true, false}, got)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	calls := 0
	f := countdown.Func(func() bool {
		calls++
		return calls < 3
	})

	assert.True(t, f.Remains())
	assert.True(t, f.Remains())
	assert.False(t, f.Remains())
}

func TestTimer_Iterations(t *testing.T) {
	t.Parallel()

	timer := countdown.NewTimer(domain.Countdown{Iterations: 3}, clockwork.NewFakeClock())

	granted := 0
	for timer.Remains() {
		granted++
		require.LessOrEqual(t, granted, 3)
	}
	assert.Equal(t, 3, granted)

	// A new cycle starts after exhaustion.
	assert.True(t, timer.Remains())
	assert.Equal(t, 1, timer.Passes())
}

func TestTimer_Total(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{Total: time.Minute}, clock)

	require.True(t, timer.Remains())
	clock.Advance(30 * time.Second)
	require.True(t, timer.Remains())
	clock.Advance(30 * time.Second)
	assert.False(t, timer.Remains())
	assert.Equal(t, 2, timer.Passes())
}

func TestTimer_StartsOnFirstPoll(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{Total: time.Minute}, clock)

	// Time spent before the first poll does not count.
	clock.Advance(time.Hour)
	assert.True(t, timer.Remains())
}

func TestTimer_End(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{End: clock.Now().Add(10 * time.Second)}, clock)

	require.True(t, timer.Remains())
	clock.Advance(9 * time.Second)
	require.True(t, timer.Remains())
	clock.Advance(time.Second)
	assert.False(t, timer.Remains())
}

func TestTimer_EndInThePast(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{End: clock.Now().Add(-time.Second)}, clock)

	assert.False(t, timer.Remains())
}

func TestTimer_FirstLimitWins(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{Total: time.Hour, Iterations: 2}, clock)

	assert.True(t, timer.Remains())
	assert.True(t, timer.Remains())
	assert.False(t, timer.Remains())
}

func TestTimer_NoLimitIsSinglePass(t *testing.T) {
	t.Parallel()

	timer := countdown.NewTimer(domain.Countdown{}, nil)

	assert.True(t, timer.Remains())
	assert.False(t, timer.Remains())
	assert.True(t, timer.Remains())
}

func TestTimer_String(t *testing.T) {
	t.Parallel()

	timer := countdown.NewTimer(domain.Countdown{Total: 90 * time.Second, Iterations: 4}, nil)
	assert.Equal(t, "Countdown -- time: 1m30s, iterations: 4", timer.String())

	assert.Equal(t, "Countdown -- single pass", countdown.NewTimer(domain.Countdown{}, nil).String())
}

func TestRearm(t *testing.T) {
	t.Parallel()

	var o countdown.Once
	require.True(t, o.Remains())
	o.Rearm()
	assert.True(t, o.Remains())

	clock := clockwork.NewFakeClock()
	timer := countdown.NewTimer(domain.Countdown{Total: time.Minute}, clock)
	require.True(t, timer.Remains())
	clock.Advance(2 * time.Minute)
	timer.Rearm()
	assert.True(t, timer.Remains())
	assert.Equal(t, 1, timer.Passes())
}

func TestTimer_RealClockInBubble(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		timer := countdown.NewTimer(domain.Countdown{Total: time.Minute}, nil)

		passes := 0
		for timer.Remains() {
			passes++
			time.Sleep(20 * time.Second)
		}

		assert.Equal(t, 3, passes)
		assert.Equal(t, 3, timer.Passes())
	})
}
