// Package fx tracks transient visual effects. Rendering is out of scope:
// effects are records with a lifetime that a renderer or a test can inspect.
package fx

import (
	"log/slog"
	"time"

	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/scheduler"
)

// Kind identifies effect prefab.
type Kind string

const (
	KindZombieHit   Kind = "zombie_hit"
	KindWallHit     Kind = "wall_hit"
	KindDamage      Kind = "damage"
	KindDeath       Kind = "death"
	KindLaser       Kind = "laser"
	KindEpisodeTint Kind = "episode_tint"
)

// Service spawns transient effects that expire on their own.
type Service interface {
	Spawn(kind Kind, at, normal geom.Vec3, ttl time.Duration)
}

// Effect is one live effect.
type Effect struct {
	ID      uint64
	Kind    Kind
	At      geom.Vec3
	Normal  geom.Vec3
	Expires time.Duration
}

// Tracker is the scheduler-backed Service implementation.
type Tracker struct {
	sched  *scheduler.Scheduler
	nextID uint64
	active map[uint64]Effect
	total  map[Kind]int
}

// NewTracker creates effect tracker.
func NewTracker(sched *scheduler.Scheduler) *Tracker {
	return &Tracker{
		sched:  sched,
		active: make(map[uint64]Effect),
		total:  make(map[Kind]int),
	}
}

// Spawn records effect and schedules its expiry.
func (t *Tracker) Spawn(kind Kind, at, normal geom.Vec3, ttl time.Duration) {
	t.nextID++
	e := Effect{
		ID:      t.nextID,
		Kind:    kind,
		At:      at,
		Normal:  normal,
		Expires: t.sched.Now() + ttl,
	}
	t.active[e.ID] = e
	t.total[kind]++

	slog.Debug("effect spawned", "kind", kind, "id", e.ID, "ttl", ttl)

	t.sched.After("fx-expire", ttl, func() {
		delete(t.active, e.ID)
	})
}

// Active returns number of live effects.
func (t *Tracker) Active() int {
	return len(t.active)
}

// ActiveOf returns number of live effects of kind.
func (t *Tracker) ActiveOf(kind Kind) int {
	n := 0
	for _, e := range t.active {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Total returns how many effects of kind were ever spawned.
func (t *Tracker) Total(kind Kind) int {
	return t.total[kind]
}
