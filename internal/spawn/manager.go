package spawn

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/udisondev/hordesim/internal/ai"
	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/placement"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

// AgentOrigin is where SpawnAgent puts the player.
var AgentOrigin = geom.V(0, 0.5, 0)

// Config holds population limits and pacing.
type Config struct {
	TargetCount         int
	BatchSize           int
	SpawnInterval       time.Duration // between spawns inside a batch
	BatchDelay          time.Duration // between batches
	MaintenanceInterval time.Duration
	CullDistance        float64
	Separation          float64
	SpawnPoints         []model.SpawnPoint
}

// Stats counts roster changes since creation.
type Stats struct {
	Spawned int
	Reaped  int // destroyed entries dropped by maintenance
	Culled  int // entries destroyed for being too far from the player
	Cleared int
}

// Manager owns the zombie roster: spawns in throttled batches, drops dead
// zombies and culls the ones that wandered too far from the player.
// All methods run on the scheduler goroutine.
type Manager struct {
	cfg        Config
	zombieCfg  ZombieConfig
	space      *world.Space
	sched      *scheduler.Scheduler
	effects    fx.Service
	aiRegistry *ai.Registry
	sampler    *placement.Sampler
	rng        *rand.Rand

	roster   []*Zombie
	spawning bool

	spawnLoop   *scheduler.Routine
	batches     []*scheduler.Routine // started by SpawnBatch
	maintenance *scheduler.Routine

	stats Stats
}

// NewManager creates population manager. Call Start to begin maintenance.
func NewManager(
	cfg Config,
	zombieCfg ZombieConfig,
	space *world.Space,
	sched *scheduler.Scheduler,
	effects fx.Service,
	aiRegistry *ai.Registry,
	sampler *placement.Sampler,
	rng *rand.Rand,
) *Manager {
	return &Manager{
		cfg:        cfg,
		zombieCfg:  zombieCfg,
		space:      space,
		sched:      sched,
		effects:    effects,
		aiRegistry: aiRegistry,
		sampler:    sampler,
		rng:        rng,
		roster:     make([]*Zombie, 0, cfg.TargetCount),
	}
}

// Start starts the maintenance loop. Idempotent.
func (m *Manager) Start() {
	if m.maintenance.Running() {
		return
	}
	m.maintenance = m.sched.Every("horde-maintenance", m.cfg.MaintenanceInterval, func() bool {
		m.Maintain()
		return true
	})

	slog.Info("horde manager started",
		"targetCount", m.cfg.TargetCount,
		"batchSize", m.cfg.BatchSize,
		"spawnPoints", len(m.cfg.SpawnPoints))
}

// Close stops spawning and maintenance. Roster is left intact.
func (m *Manager) Close() {
	m.StopSpawning()
	m.maintenance.Stop()
	m.maintenance = nil
}

// Roster returns copy of tracked zombies.
func (m *Manager) Roster() []*Zombie {
	return slices.Clone(m.roster)
}

// Count returns roster size.
func (m *Manager) Count() int {
	return len(m.roster)
}

// Spawning reports whether the spawn loop is enabled.
func (m *Manager) Spawning() bool {
	return m.spawning
}

// Stats returns roster counters.
func (m *Manager) Stats() Stats {
	return m.stats
}

// SpawnAgent teleports the player to the arena origin.
func (m *Manager) SpawnAgent() {
	agent := m.space.FindBody(model.TagAgent)
	if agent == nil {
		slog.Warn("spawn agent: no body tagged", "tag", model.TagAgent)
		return
	}
	agent.SetPosition(AgentOrigin)
}

// ClearAll stops spawning and destroys every zombie in the roster.
func (m *Manager) ClearAll() {
	m.StopSpawning()

	for i, z := range m.roster {
		m.release(z)
		m.roster[i] = nil
	}
	m.stats.Cleared += len(m.roster)
	m.roster = m.roster[:0]
}

// Maintain drops destroyed zombies, then culls the ones beyond cull distance
// from the player. Without a player only the first part runs.
func (m *Manager) Maintain() {
	before := len(m.roster)
	m.roster = slices.DeleteFunc(m.roster, func(z *Zombie) bool {
		if !z.Destroyed() {
			return false
		}
		m.aiRegistry.Unregister(z.ObjectID())
		return true
	})
	m.stats.Reaped += before - len(m.roster)

	player, ok := m.space.FindTagged(model.TagAgent)
	if !ok {
		return
	}

	limit := m.cfg.CullDistance * m.cfg.CullDistance
	before = len(m.roster)
	m.roster = slices.DeleteFunc(m.roster, func(z *Zombie) bool {
		if z.Position().DistanceSquared(player) <= limit {
			return false
		}
		m.release(z)
		return true
	})

	if culled := before - len(m.roster); culled > 0 {
		m.stats.Culled += culled
		slog.Debug("distant zombies culled", "count", culled, "remaining", len(m.roster))
	}
}

// release destroys zombie and forgets its AI.
func (m *Manager) release(z *Zombie) {
	m.aiRegistry.Unregister(z.ObjectID())
	z.Destroy()
}

// spawnOne places a single zombie. Skipped silently when there are no spawn
// points or the roster is full.
func (m *Manager) spawnOne() *Zombie {
	if len(m.cfg.SpawnPoints) == 0 {
		slog.Debug("spawn skipped: no spawn points")
		return nil
	}
	if len(m.roster) >= m.cfg.TargetCount {
		return nil
	}

	sp := m.cfg.SpawnPoints[m.rng.IntN(len(m.cfg.SpawnPoints))]

	existing := make([]geom.Vec3, 0, len(m.roster))
	for _, z := range m.roster {
		if !z.Destroyed() {
			existing = append(existing, z.Position())
		}
	}

	avoid, ok := m.space.FindTagged(model.TagAgent)
	if !ok {
		// no player: nothing to keep away from
		avoid = geom.V(math.Inf(1), 0, 0)
	}

	pos := m.sampler.SamplePosition(existing, avoid, m.cfg.Separation, sp.Bounds())

	z := newZombie(m.zombieCfg, pos, m.space, m.sched, m.effects)
	m.roster = append(m.roster, z)
	m.aiRegistry.Register(z.ObjectID(), z.ai)
	m.stats.Spawned++

	slog.Debug("zombie spawned",
		"objectID", z.ObjectID(),
		"spawnPoint", sp.Name,
		"position", pos,
		"roster", len(m.roster))

	return z
}

// batchCount returns how many zombies the next batch may add.
func (m *Manager) batchCount() int {
	return max(0, min(m.cfg.BatchSize, m.cfg.TargetCount-len(m.roster)))
}
