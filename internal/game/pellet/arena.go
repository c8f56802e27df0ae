// Package pellet runs the pellet arena: a prey agent collects pellets while a
// hunter agent tries to catch it before the episode timer runs out.
package pellet

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/game/episode"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/placement"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

const (
	agentRadius  = 0.25
	pelletRadius = 0.25
	wallMargin   = 1 // walls stand this far outside the spawn square
)

// Tint is the floor colour shown after an episode ends.
type Tint int32

const (
	TintNone Tint = iota
	TintCollected
	TintWall
	TintTimeout
	TintCaught
)

// String returns colour name.
func (t Tint) String() string {
	switch t {
	case TintCollected:
		return "green"
	case TintWall:
		return "red"
	case TintTimeout:
		return "blue"
	case TintCaught:
		return "yellow"
	default:
		return "none"
	}
}

// Rewards of the pellet arena.
type Rewards struct {
	Pellet       float64
	AllCollected float64
	Wall         float64
	HunterCatch  float64
	PreyCaught   float64
	HunterMissed float64
	Timeout      float64
}

// Config holds arena settings.
type Config struct {
	Count         int
	HalfExtent    float64
	Height        float64
	Separation    float64
	PickupRadius  float64
	CatchRadius   float64
	Speed         float64
	RotationSpeed float64
	EpisodeTime   time.Duration
	Rewards       Rewards
}

// Arena owns prey, hunter and pellets of one arena.
// Runs on the simulation goroutine.
type Arena struct {
	cfg      Config
	space    *world.Space
	sched    *scheduler.Scheduler
	effects  fx.Service
	sampler  *placement.Sampler
	rng      *rand.Rand
	recorder episode.Recorder

	prey      *world.Body
	hunter    *world.Body
	preyYaw   float64
	hunterYaw float64
	pellets   []*world.Body
	timer     *scheduler.Routine

	active       bool
	id           uuid.UUID
	preyReward   float64
	hunterReward float64
	collected    int
	steps        int
	elapsed      time.Duration
	startedAt    time.Time
	episodes     int
	tint         Tint

	now func() time.Time
}

// NewArena builds walls, prey and hunter in space. recorder may be nil.
func NewArena(
	cfg Config,
	space *world.Space,
	sched *scheduler.Scheduler,
	effects fx.Service,
	sampler *placement.Sampler,
	rng *rand.Rand,
	recorder episode.Recorder,
) *Arena {
	space.AddWalls(cfg.HalfExtent+wallMargin, 0.5, 1)

	return &Arena{
		cfg:      cfg,
		space:    space,
		sched:    sched,
		effects:  effects,
		sampler:  sampler,
		rng:      rng,
		recorder: recorder,
		prey:     space.AddSphere(model.TagAgent, geom.V(0, cfg.Height, 0), agentRadius, nil),
		hunter:   space.AddSphere(model.TagHunter, geom.V(0, cfg.Height, 0), agentRadius, nil),
		now:      time.Now,
	}
}

// Begin places prey, pellets and hunter and starts the episode timer.
func (a *Arena) Begin() {
	a.removePellets()
	a.sampler.Diagnostics().Reset()

	bounds := a.spawnBounds()

	preyPos := geom.V(
		bounds.Min.X+a.rng.Float64()*(bounds.Max.X-bounds.Min.X),
		a.cfg.Height,
		bounds.Min.Z+a.rng.Float64()*(bounds.Max.Z-bounds.Min.Z),
	)
	a.prey.SetPosition(preyPos)
	a.preyYaw = 0

	placed := make([]geom.Vec3, 0, a.cfg.Count)
	for range a.cfg.Count {
		p := a.sampler.SamplePosition(placed, preyPos, a.cfg.Separation, bounds)
		placed = append(placed, p)
		a.pellets = append(a.pellets, a.space.AddSphere(model.TagPellet, p, pelletRadius, nil))
	}

	a.hunter.SetPosition(a.sampler.SamplePosition(nil, preyPos, a.cfg.Separation, bounds))
	a.hunterYaw = 0

	a.active = true
	a.id = uuid.New()
	a.preyReward, a.hunterReward = 0, 0
	a.collected = 0
	a.steps = 0
	a.elapsed = 0
	a.startedAt = a.now()
	a.episodes++

	a.timer.Stop()
	a.timer = a.sched.After("pellet-episode-timer", a.cfg.EpisodeTime, func() {
		a.timer = nil
		a.timeout()
	})

	slog.Debug("pellet episode started",
		"episode", a.id,
		"pellets", len(a.pellets),
		"placementFailures", len(a.sampler.Diagnostics().Failed))
}

// spawnBounds is the square prey, hunter and pellets spawn in.
func (a *Arena) spawnBounds() geom.Box {
	h := a.cfg.HalfExtent
	return geom.Box{
		Min: geom.V(-h, a.cfg.Height, -h),
		Max: geom.V(h, a.cfg.Height, h),
	}
}

// Step moves both agents over dt seconds and resolves triggers. Returns true
// when the episode ended; the next one has already begun.
func (a *Arena) Step(prey, hunter episode.Action, dt float64) bool {
	if !a.active {
		a.Begin()
	}

	a.steps++
	a.elapsed += time.Duration(math.Round(dt * float64(time.Second)))

	a.preyYaw = a.move(a.prey, a.preyYaw, prey, dt)
	a.hunterYaw = a.move(a.hunter, a.hunterYaw, hunter, dt)

	for _, p := range a.reachable() {
		a.collect(p)
		if len(a.pellets) == 0 {
			a.preyReward += a.cfg.Rewards.AllCollected
			a.hunterReward += a.cfg.Rewards.HunterMissed
			a.end(episode.EndAllCollected, TintCollected)
			return true
		}
	}

	if len(a.space.Contacts(a.prey, model.TagWall)) > 0 {
		a.preyReward += a.cfg.Rewards.Wall
		a.end(episode.EndWallCollision, TintWall)
		return true
	}

	if a.prey.Position().Distance(a.hunter.Position()) <= a.cfg.CatchRadius {
		a.hunterReward += a.cfg.Rewards.HunterCatch
		a.preyReward += a.cfg.Rewards.PreyCaught
		a.end(episode.EndPreyCaught, TintCaught)
		return true
	}

	if len(a.space.Contacts(a.hunter, model.TagWall)) > 0 {
		a.hunterReward += a.cfg.Rewards.Wall
		a.end(episode.EndHunterWall, TintWall)
		return true
	}

	return false
}

func (a *Arena) move(b *world.Body, yaw float64, act episode.Action, dt float64) float64 {
	fwd := geom.YawForward(yaw)
	b.SetPosition(b.Position().Add(fwd.Scale(act.Forward * a.cfg.Speed * dt)))
	return yaw + act.Rotate*a.cfg.RotationSpeed
}

// reachable returns pellets within pickup radius of the prey.
func (a *Arena) reachable() []*world.Body {
	var out []*world.Body
	pos := a.prey.Position()
	for _, p := range a.pellets {
		if p.Position().Distance(pos) <= a.cfg.PickupRadius {
			out = append(out, p)
		}
	}
	return out
}

func (a *Arena) collect(p *world.Body) {
	for i, q := range a.pellets {
		if q == p {
			a.pellets = append(a.pellets[:i], a.pellets[i+1:]...)
			break
		}
	}
	a.space.Remove(p.ObjectID())
	a.collected++
	a.preyReward += a.cfg.Rewards.Pellet
}

func (a *Arena) timeout() {
	if !a.active {
		return
	}
	a.preyReward += a.cfg.Rewards.Timeout
	a.hunterReward += a.cfg.Rewards.Timeout
	a.end(episode.EndTimeout, TintTimeout)
}

// end publishes the result and begins the next episode.
func (a *Arena) end(reason episode.EndReason, tint Tint) {
	a.active = false
	a.timer.Stop()
	a.timer = nil
	a.removePellets()

	a.tint = tint
	a.effects.Spawn(fx.KindEpisodeTint, geom.Zero(), geom.V(0, 1, 0), time.Second)

	res := episode.Result{
		ID:             a.id,
		Scenario:       episode.ScenarioPellet,
		Reward:         a.preyReward,
		OpponentReward: a.hunterReward,
		Kills:          a.collected,
		Steps:          a.steps,
		EndReason:      reason,
		StartedAt:      a.startedAt,
		Duration:       a.elapsed,
	}

	slog.Info("pellet episode ended",
		"episode", res.ID,
		"reason", reason,
		"tint", tint,
		"prey", res.Reward,
		"hunter", res.OpponentReward)

	if a.recorder != nil {
		a.recorder.Record(res)
	}

	a.Begin()
}

func (a *Arena) removePellets() {
	for _, p := range a.pellets {
		a.space.Remove(p.ObjectID())
	}
	a.pellets = a.pellets[:0]
}

// Prey returns prey body.
func (a *Arena) Prey() *world.Body {
	return a.prey
}

// Hunter returns hunter body.
func (a *Arena) Hunter() *world.Body {
	return a.hunter
}

// PreyYaw returns prey facing in degrees.
func (a *Arena) PreyYaw() float64 {
	return a.preyYaw
}

// HunterYaw returns hunter facing in degrees.
func (a *Arena) HunterYaw() float64 {
	return a.hunterYaw
}

// Pellets returns positions of pellets left.
func (a *Arena) Pellets() []geom.Vec3 {
	out := make([]geom.Vec3, len(a.pellets))
	for i, p := range a.pellets {
		out[i] = p.Position()
	}
	return out
}

// Tint returns floor colour of the last finished episode.
func (a *Arena) Tint() Tint {
	return a.tint
}

// Episodes returns number of episodes begun.
func (a *Arena) Episodes() int {
	return a.episodes
}

// Rewards returns prey and hunter reward of the current episode.
func (a *Arena) Rewards() (prey, hunter float64) {
	return a.preyReward, a.hunterReward
}

// Diagnostics returns placement distances of the current layout.
func (a *Arena) Diagnostics() *placement.Diagnostics {
	return a.sampler.Diagnostics()
}

// Observe returns prey and hunter observations: their own positions.
func (a *Arena) Observe() (prey, hunter []float64) {
	p, h := a.prey.Position(), a.hunter.Position()
	return []float64{p.X, p.Y, p.Z}, []float64{h.X, h.Y, h.Z}
}

// Seek steers a body with yaw toward target: full speed ahead, turning at
// most one full input per step.
func Seek(from geom.Vec3, yaw float64, to geom.Vec3, rotationSpeed float64) episode.Action {
	local := geom.InverseYaw(to.Sub(from), yaw)
	angle := math.Atan2(local.X, local.Z) * 180 / math.Pi

	rotate := 1.0
	if rotationSpeed > 0 {
		rotate = math.Max(-1, math.Min(1, angle/rotationSpeed))
	}

	forward := 1.0
	if math.Abs(angle) > 90 {
		forward = 0
	}
	return episode.Action{Rotate: rotate, Forward: forward}
}
