package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_GoRunsFirstStepImmediately(t *testing.T) {
	s := New()
	ran := 0

	s.Go("first", func(*Routine) (time.Duration, Step) {
		ran++
		return time.Second, func(*Routine) (time.Duration, Step) {
			ran++
			return 0, nil
		}
	})

	assert.Equal(t, 1, ran, "first step must run synchronously")
	assert.Equal(t, 1, s.Live())

	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, ran, "wait not elapsed yet")

	s.Advance(500 * time.Millisecond)
	assert.Equal(t, 2, ran)
	assert.Equal(t, 0, s.Live())
}

func TestScheduler_After(t *testing.T) {
	s := New()
	fired := false
	s.After("timer", 100*time.Millisecond, func() { fired = true })

	s.Advance(99 * time.Millisecond)
	assert.False(t, fired)

	s.Advance(time.Millisecond)
	assert.True(t, fired)
}

func TestScheduler_Every(t *testing.T) {
	s := New()
	count := 0
	r := s.Every("tick", 100*time.Millisecond, func() bool {
		count++
		return true
	})

	require.Equal(t, 1, count)

	for range 10 {
		s.Advance(50 * time.Millisecond)
	}
	assert.Equal(t, 6, count, "1 immediate + 5 over 500ms")

	r.Stop()
	s.Advance(time.Second)
	assert.Equal(t, 6, count, "stopped routine must not resume")
}

func TestScheduler_EveryEndsWhenFnReturnsFalse(t *testing.T) {
	s := New()
	count := 0
	r := s.Every("limited", 10*time.Millisecond, func() bool {
		count++
		return count < 3
	})

	for range 10 {
		s.Advance(10 * time.Millisecond)
	}
	assert.Equal(t, 3, count)
	assert.False(t, r.Running())
}

func TestScheduler_OrderByWakeThenInsertion(t *testing.T) {
	s := New()
	var order []string

	s.After("b", 20*time.Millisecond, func() { order = append(order, "b") })
	s.After("a", 10*time.Millisecond, func() { order = append(order, "a") })
	s.After("c", 20*time.Millisecond, func() { order = append(order, "c") })

	s.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestScheduler_ContinuationQueuedDuringTickWaitsForNextTick(t *testing.T) {
	s := New()
	var order []string

	s.After("outer", 10*time.Millisecond, func() {
		order = append(order, "outer")
		s.Go("inner", func(*Routine) (time.Duration, Step) {
			order = append(order, "inner-first")
			return 0, func(*Routine) (time.Duration, Step) {
				order = append(order, "inner-second")
				return 0, nil
			}
		})
	})

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"outer", "inner-first"}, order)

	s.Advance(time.Millisecond)
	assert.Equal(t, []string{"outer", "inner-first", "inner-second"}, order)
}

func TestRoutine_StopIsIdempotentAndNilSafe(t *testing.T) {
	s := New()
	r := s.Every("loop", time.Millisecond, func() bool { return true })

	r.Stop()
	r.Stop()
	assert.False(t, r.Running())
	assert.Equal(t, 0, s.Live())

	var nilRoutine *Routine
	assert.NotPanics(t, func() { nilRoutine.Stop() })
	assert.False(t, nilRoutine.Running())
}

func TestRoutine_StopFromAnotherRoutine(t *testing.T) {
	s := New()
	victimRuns := 0
	victim := s.Every("victim", 10*time.Millisecond, func() bool {
		victimRuns++
		return true
	})

	// killer wakes before victim in the same tick
	s.After("killer", 5*time.Millisecond, func() {
		victim.Stop()
		victim.Stop()
	})

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, victimRuns, "only the immediate run")
	assert.False(t, victim.Running())
}

func TestRoutine_StopSelfInsideStep(t *testing.T) {
	s := New()
	runs := 0
	s.Go("self", func(r *Routine) (time.Duration, Step) {
		runs++
		r.Stop()
		return time.Millisecond, func(*Routine) (time.Duration, Step) {
			runs++
			return 0, nil
		}
	})

	s.Advance(time.Second)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 0, s.Live())
}

func TestScheduler_Now(t *testing.T) {
	s := New()
	s.Advance(20 * time.Millisecond)
	s.Advance(30 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, s.Now())
}
