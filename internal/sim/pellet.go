package sim

import (
	"math/rand/v2"

	"github.com/udisondev/hordesim/internal/config"
	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/game/episode"
	"github.com/udisondev/hordesim/internal/game/pellet"
	"github.com/udisondev/hordesim/internal/placement"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

// Pellet is the prey/hunter arena. Prey heads for the nearest pellet, hunter
// heads for the prey.
type Pellet struct {
	cfg     config.Pellet
	sched   *scheduler.Scheduler
	arena   *pellet.Arena
	results *tally
}

// NewPellet builds pellet arena.
func NewPellet(cfg config.Simulation, rng *rand.Rand, recorder episode.Recorder) *Pellet {
	p := &Pellet{
		cfg:     cfg.Pellet,
		sched:   scheduler.New(),
		results: &tally{next: recorder},
	}

	pc := cfg.Pellet
	p.arena = pellet.NewArena(pellet.Config{
		Count:         pc.Count,
		HalfExtent:    pc.HalfExtent,
		Height:        pc.Height,
		Separation:    pc.Separation,
		PickupRadius:  pc.PickupRadius,
		CatchRadius:   pc.CatchRadius,
		Speed:         pc.Speed,
		RotationSpeed: pc.RotationSpeed,
		EpisodeTime:   pc.EpisodeTime,
		Rewards:       pellet.Rewards(pc.Rewards),
	}, world.NewSpace(), p.sched, fx.NewTracker(p.sched), placement.NewSampler(rng, cfg.Placement.Attempts), rng, p.results)

	return p
}

// Name implements Scenario.
func (p *Pellet) Name() string {
	return config.ScenarioPellet
}

// Start begins the first episode.
func (p *Pellet) Start() {
	p.arena.Begin()
}

// Tick implements Scenario.
func (p *Pellet) Tick(dt float64) {
	a := p.arena
	prey := a.Prey().Position()

	var preyAct episode.Action
	if target, ok := nearest(prey, a.Pellets()); ok {
		preyAct = pellet.Seek(prey, a.PreyYaw(), target, p.cfg.RotationSpeed)
	}
	hunterAct := pellet.Seek(a.Hunter().Position(), a.HunterYaw(), prey, p.cfg.RotationSpeed)

	a.Step(preyAct, hunterAct, dt)
	p.sched.Advance(seconds(dt))
}

// Finished implements Scenario.
func (p *Pellet) Finished() int {
	return p.results.n
}

// Close implements Scenario.
func (p *Pellet) Close() {}

// Arena returns pellet arena.
func (p *Pellet) Arena() *pellet.Arena {
	return p.arena
}
