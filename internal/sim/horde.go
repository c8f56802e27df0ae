package sim

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/hordesim/internal/ai"
	"github.com/udisondev/hordesim/internal/config"
	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/game/combat"
	"github.com/udisondev/hordesim/internal/game/episode"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/placement"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/spawn"
	"github.com/udisondev/hordesim/internal/world"
)

// Horde is the zombie shooter arena.
type Horde struct {
	space    *world.Space
	sched    *scheduler.Scheduler
	effects  *fx.Tracker
	registry *ai.Registry
	manager  *spawn.Manager
	gun      *combat.Gun
	ctrl     *episode.Controller
	policy   episode.Policy
	results  *tally
}

// NewHorde builds the shooter arena: walls, agent, gun, zombie manager and
// episode controller driven by the heuristic policy.
func NewHorde(cfg config.Simulation, rng *rand.Rand, recorder episode.Recorder) *Horde {
	h := &Horde{
		space:    world.NewSpace(),
		sched:    scheduler.New(),
		registry: ai.NewRegistry(),
		results:  &tally{next: recorder},
	}
	h.effects = fx.NewTracker(h.sched)

	h.space.AddWalls(cfg.Arena.HalfExtent, cfg.Arena.WallThickness, cfg.Arena.WallHeight)
	agent := h.space.AddSphere(model.TagAgent, spawn.AgentOrigin, cfg.Agent.Radius, nil)

	h.manager = spawn.NewManager(
		spawn.Config(cfg.Horde),
		spawn.ZombieConfig(cfg.Zombie),
		h.space,
		h.sched,
		h.effects,
		h.registry,
		placement.NewSampler(rng, cfg.Placement.Attempts),
		rng,
	)

	h.gun = combat.NewGun(combat.GunConfig{
		Damage:        cfg.Gun.Damage,
		Spread:        cfg.Gun.Spread,
		Range:         cfg.Gun.Range,
		LaserDuration: cfg.Gun.LaserDuration,
		EffectTTL:     cfg.Gun.EffectTTL,
	}, h.space, h.effects, h.sched, rng)

	epCfg := episodeConfig(cfg)
	h.ctrl = episode.NewController(epCfg, h.space, agent, h.manager, h.gun, h.results)
	h.policy = episode.NewHeuristic(epCfg)

	return h
}

func episodeConfig(cfg config.Simulation) episode.Config {
	return episode.Config{
		Speed:           cfg.Agent.Speed,
		RotationSpeed:   cfg.Agent.RotationSpeed,
		DetectionRadius: cfg.Agent.DetectionRadius,
		MaxObserved:     cfg.Agent.MaxObserved,
		ShotCooldown:    cfg.Agent.ShotCooldown,
		ClearRadius:     cfg.Agent.ClearRadius,
		MaxSteps:        cfg.Agent.MaxSteps,
		MuzzleHeight:    cfg.Gun.MuzzleHeight,
		Rewards: episode.Rewards{
			Hit:       cfg.Agent.Rewards.Hit,
			Miss:      cfg.Agent.Rewards.Miss,
			ClearAll:  cfg.Agent.Rewards.ClearAll,
			Collision: cfg.Agent.Rewards.Collision,
		},
	}
}

// Name implements Scenario.
func (h *Horde) Name() string {
	return config.ScenarioHorde
}

// Start starts maintenance and the first episode.
func (h *Horde) Start() {
	h.manager.Start()
	h.ctrl.Begin()
}

// Tick implements Scenario.
func (h *Horde) Tick(dt float64) {
	action := h.policy.Act(h.ctrl.Observe())
	ended := h.ctrl.Step(action, dt)

	h.space.Step(dt)
	h.sched.Advance(seconds(dt))
	if !ended {
		h.checkContacts()
	}
}

// checkContacts reports the first agent collision to the controller.
func (h *Horde) checkContacts() {
	agent := h.ctrl.Agent()

	if len(h.space.Contacts(agent, model.TagWall)) > 0 {
		h.ctrl.OnCollision(model.TagWall)
		return
	}
	if len(h.space.Contacts(agent, model.TagZombie)) > 0 {
		h.ctrl.OnCollision(model.TagZombie)
	}
}

// Finished implements Scenario.
func (h *Horde) Finished() int {
	return h.results.n
}

// Close aborts the running episode and clears the arena.
func (h *Horde) Close() {
	h.ctrl.End(episode.EndAborted)
	h.manager.ClearAll()
	h.manager.Close()

	slog.Info("horde arena closed",
		"stats", h.manager.Stats(),
		"shots", h.gun.Shots(),
		"hits", h.gun.Hits())
}

// Manager returns zombie population manager.
func (h *Horde) Manager() *spawn.Manager {
	return h.manager
}

// Controller returns agent episode controller.
func (h *Horde) Controller() *episode.Controller {
	return h.ctrl
}

// Scheduler returns arena scheduler.
func (h *Horde) Scheduler() *scheduler.Scheduler {
	return h.sched
}

// Effects returns effect tracker.
func (h *Horde) Effects() *fx.Tracker {
	return h.effects
}
