package scheduler

import "time"

// Routine is a handle to a running chain of steps.
type Routine struct {
	id    uint64
	name  string
	sched *Scheduler
	done  bool
}

// ID returns routine ID (unique per scheduler).
func (r *Routine) ID() uint64 {
	return r.id
}

// Name returns routine name given at start.
func (r *Routine) Name() string {
	return r.name
}

// Running reports whether routine is still scheduled.
// Nil routine is never running.
func (r *Routine) Running() bool {
	return r != nil && !r.done
}

// Stop cancels routine. Safe on nil, safe to call twice and safe to call from
// inside any step, including the routine's own.
func (r *Routine) Stop() {
	if r == nil || r.done {
		return
	}
	r.finish()
}

func (r *Routine) finish() {
	r.done = true
	r.sched.live--
}

// task is one queued continuation.
type task struct {
	wake    time.Duration
	seq     uint64
	routine *Routine
	step    Step
}

// taskQueue is a min-heap on (wake, seq).
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].wake != q[j].wake {
		return q[i].wake < q[j].wake
	}
	return q[i].seq < q[j].seq
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) {
	*q = append(*q, x.(*task))
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
