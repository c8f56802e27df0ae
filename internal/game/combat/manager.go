package combat

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

// Raycaster is the physics query combat resolves shots against.
type Raycaster interface {
	Raycast(origin, dir geom.Vec3, maxDist float64) (world.Hit, bool)
}

// Damageable is implemented by anything a shot can hurt.
type Damageable interface {
	TakeDamage(amount float64) model.DamageOutcome
}

// Outcome of a shot.
type Outcome int32

const (
	Miss Outcome = iota
	Hit
)

// String returns human-readable outcome
func (o Outcome) String() string {
	if o == Hit {
		return "HIT"
	}
	return "MISS"
}

// HitResult is the result of one shot.
type HitResult struct {
	Outcome   Outcome
	Target    Damageable // set on Hit
	Body      *world.Body
	Point     geom.Vec3 // impact point, or range end on a clean miss
	Direction geom.Vec3 // direction after spread
	Damage    model.DamageOutcome
}

// IsHit reports whether the shot damaged a hostile entity.
func (r HitResult) IsHit() bool {
	return r.Outcome == Hit
}

// GunConfig holds weapon stats.
type GunConfig struct {
	Damage        float64
	Spread        float64
	Range         float64
	LaserDuration time.Duration
	EffectTTL     time.Duration
}

// Gun resolves hit-scan shots.
type Gun struct {
	cfg     GunConfig
	physics Raycaster
	effects fx.Service
	sched   *scheduler.Scheduler
	rng     *rand.Rand
	laser   Laser

	shots int
	hits  int

	// hitObserver observes every resolved shot (nil in production).
	hitObserver func(HitResult)
}

// NewGun creates gun.
func NewGun(cfg GunConfig, physics Raycaster, effects fx.Service, sched *scheduler.Scheduler, rng *rand.Rand) *Gun {
	return &Gun{
		cfg:     cfg,
		physics: physics,
		effects: effects,
		sched:   sched,
		rng:     rng,
	}
}

// SetHitObserver sets callback for observing shot results (for tests).
func (g *Gun) SetHitObserver(fn func(HitResult)) {
	g.hitObserver = fn
}

// Laser returns beam state.
func (g *Gun) Laser() *Laser {
	return &g.laser
}

// Shots returns number of shots fired.
func (g *Gun) Shots() int {
	return g.shots
}

// Hits returns number of shots that hit a zombie.
func (g *Gun) Hits() int {
	return g.hits
}

// Shoot fires along forward with configured range and spread.
func (g *Gun) Shoot(origin, forward geom.Vec3) HitResult {
	return g.ResolveShot(origin, forward, g.cfg.Range, g.cfg.Spread)
}

// ResolveShot casts a ray from origin and applies damage to the zombie it
// strikes. Walls absorb the shot (miss with impact effect). The laser beam is
// shown for every shot, hit or not.
func (g *Gun) ResolveShot(origin, direction geom.Vec3, maxRange, spread float64) HitResult {
	g.shots++

	dir := direction
	if spread > 0 {
		dir = dir.Add(geom.V(g.jitter(spread), g.jitter(spread), g.jitter(spread)))
	}
	dir = dir.Normalize()

	result := HitResult{Outcome: Miss, Direction: dir, Point: origin.Add(dir.Scale(maxRange))}

	hit, ok := g.physics.Raycast(origin, dir, maxRange)
	if ok {
		result.Body = hit.Body
		result.Point = hit.Point

		switch hit.Body.Tag() {
		case model.TagZombie:
			if target, isTarget := hit.Body.Data.(Damageable); isTarget {
				result.Outcome = Hit
				result.Target = target
				result.Damage = target.TakeDamage(g.cfg.Damage)
				g.hits++
				g.effects.Spawn(fx.KindZombieHit, hit.Point, hit.Normal, g.cfg.EffectTTL)
			}
		case model.TagWall:
			g.effects.Spawn(fx.KindWallHit, hit.Point, hit.Normal, g.cfg.EffectTTL)
		}
	}

	g.fireLaser(origin, result.Point)

	slog.Debug("shot resolved",
		"outcome", result.Outcome,
		"point", result.Point,
		"died", result.Damage.Died)

	if g.hitObserver != nil {
		g.hitObserver(result)
	}
	return result
}

func (g *Gun) jitter(spread float64) float64 {
	return (g.rng.Float64()*2 - 1) * spread
}
