// Package scheduler runs cooperative routines on a single goroutine.
//
// A routine is a chain of steps. Each step returns how long to wait and which
// step to run next, so long-running behaviour (spawn loops, pursuit, transient
// timers) suspends only at explicit waits. Time is virtual: it moves only when
// Advance is called, once per frame.
package scheduler

import (
	"container/heap"
	"log/slog"
	"time"
)

// Step is one resumable piece of a routine.
// Returning nil next ends the routine.
type Step func(r *Routine) (wait time.Duration, next Step)

// Scheduler holds pending continuations ordered by (wake time, insertion order).
// Not safe for concurrent use: the owner calls every method from one goroutine.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	nextID  uint64
	queue   taskQueue
	ticking bool
	live    int
}

// New creates scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns number of queued continuations (cancelled ones included
// until they are drained).
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// Live returns number of routines that have not finished or been stopped.
func (s *Scheduler) Live() int {
	return s.live
}

// Go starts routine and runs its first step immediately, up to the first wait.
func (s *Scheduler) Go(name string, first Step) *Routine {
	s.nextID++
	r := &Routine{id: s.nextID, name: name, sched: s}
	s.live++
	s.run(r, first)
	return r
}

// After runs fn once after delay. The returned routine can be stopped to
// cancel it.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) *Routine {
	return s.Go(name, func(*Routine) (time.Duration, Step) {
		return delay, func(*Routine) (time.Duration, Step) {
			fn()
			return 0, nil
		}
	})
}

// Every runs fn immediately and then every interval until fn returns false or
// the routine is stopped.
func (s *Scheduler) Every(name string, interval time.Duration, fn func() bool) *Routine {
	var step Step
	step = func(*Routine) (time.Duration, Step) {
		if !fn() {
			return 0, nil
		}
		return interval, step
	}
	return s.Go(name, step)
}

// Advance moves virtual time forward by dt and resumes every continuation
// whose wake time has passed. Continuations queued during this call run no
// earlier than the next call.
func (s *Scheduler) Advance(dt time.Duration) {
	if s.ticking {
		slog.Warn("scheduler: re-entrant Advance ignored")
		return
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	s.now += dt
	barrier := s.seq

	for s.queue.Len() > 0 {
		top := s.queue[0]
		if top.wake > s.now || top.seq > barrier {
			break
		}
		heap.Pop(&s.queue)

		if top.routine.done {
			continue
		}
		s.run(top.routine, top.step)
	}
}

// run executes step of r and queues its continuation.
func (s *Scheduler) run(r *Routine, step Step) {
	wait, next := step(r)
	if r.done {
		return
	}
	if next == nil {
		r.finish()
		return
	}
	s.push(r, next, wait)
}

func (s *Scheduler) push(r *Routine, step Step, wait time.Duration) {
	s.seq++
	heap.Push(&s.queue, &task{
		wake:    s.now + wait,
		seq:     s.seq,
		routine: r,
		step:    step,
	})
}
