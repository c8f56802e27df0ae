package spawn

import (
	"slices"
	"time"

	"github.com/udisondev/hordesim/internal/scheduler"
)

// StartSpawning (re)starts the spawn loop. Any loop already running is
// cancelled first, so calling it twice never doubles the spawn rate.
func (m *Manager) StartSpawning() {
	m.StopSpawning()
	m.spawning = true

	var loop scheduler.Step
	loop = func(r *scheduler.Routine) (time.Duration, scheduler.Step) {
		if !m.spawning {
			return 0, nil
		}
		n := m.batchCount()
		if n == 0 {
			return m.cfg.BatchDelay, loop
		}
		return m.batchStep(n, m.cfg.BatchDelay, loop)(r)
	}

	m.spawnLoop = m.sched.Go("horde-spawn", loop)
}

// StopSpawning disables and cancels the spawn loop and every batch still
// in flight. No-op when stopped.
func (m *Manager) StopSpawning() {
	m.spawning = false
	m.spawnLoop.Stop()
	m.spawnLoop = nil

	for i, r := range m.batches {
		r.Stop()
		m.batches[i] = nil
	}
	m.batches = m.batches[:0]
}

// SpawnBatch spawns up to BatchSize zombies without exceeding TargetCount.
// The first appears immediately, the rest one SpawnInterval apart.
// Returns nil when the roster is already full.
func (m *Manager) SpawnBatch() *scheduler.Routine {
	n := m.batchCount()
	if n == 0 {
		return nil
	}
	m.batches = slices.DeleteFunc(m.batches, func(r *scheduler.Routine) bool {
		return !r.Running()
	})
	r := m.sched.Go("horde-batch", m.batchStep(n, 0, nil))
	m.batches = append(m.batches, r)
	return r
}

// batchStep spawns n zombies paced by SpawnInterval, then waits after and
// continues with then (nil ends the routine).
func (m *Manager) batchStep(n int, after time.Duration, then scheduler.Step) scheduler.Step {
	remaining := n
	var step scheduler.Step
	step = func(*scheduler.Routine) (time.Duration, scheduler.Step) {
		m.spawnOne()
		remaining--
		if remaining > 0 {
			return m.cfg.SpawnInterval, step
		}
		if then == nil {
			return 0, nil
		}
		return m.cfg.SpawnInterval + after, then
	}
	return step
}
