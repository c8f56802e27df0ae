package spawn

import (
	"log/slog"
	"time"

	"github.com/udisondev/hordesim/internal/ai"
	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

// Tint is the visible colour state of a zombie.
type Tint int32

const (
	TintNormal Tint = iota
	TintDamaged
)

// ZombieConfig holds per-zombie stats and effect timings.
type ZombieConfig struct {
	MaxHealth        float64
	Speed            float64
	Radius           float64
	RetargetInterval time.Duration
	FlashDuration    time.Duration
	DeathGrace       time.Duration
	DamageEffectTTL  time.Duration
	DeathEffectTTL   time.Duration
}

// Zombie is a hostile entity: a physics body, a navigation agent, a pursuit
// AI and a health state machine. It never touches the roster; the Manager
// notices Destroyed() on its next maintenance pass.
type Zombie struct {
	body    *world.Body
	nav     *world.NavAgent
	ai      *ai.PursuitAI
	health  model.Health
	active  bool
	tint    Tint
	cfg     ZombieConfig
	space   *world.Space
	sched   *scheduler.Scheduler
	effects fx.Service

	flash   *scheduler.Routine
	removal *scheduler.Routine
}

func newZombie(
	cfg ZombieConfig,
	pos geom.Vec3,
	space *world.Space,
	sched *scheduler.Scheduler,
	effects fx.Service,
) *Zombie {
	z := &Zombie{
		health:  model.NewHealth(cfg.MaxHealth),
		active:  true,
		cfg:     cfg,
		space:   space,
		sched:   sched,
		effects: effects,
	}
	z.body = space.AddSphere(model.TagZombie, pos, cfg.Radius, z)
	z.nav = space.AddNavAgent(z.body, cfg.Speed)
	z.ai = ai.NewPursuitAI(z, z.nav, space, sched, cfg.RetargetInterval)
	return z
}

// ObjectID returns unique entity ID.
func (z *Zombie) ObjectID() uint32 {
	return z.body.ObjectID()
}

// Position returns current world position.
func (z *Zombie) Position() geom.Vec3 {
	return z.body.Position()
}

// Body returns physics body.
func (z *Zombie) Body() *world.Body {
	return z.body
}

// Nav returns navigation agent.
func (z *Zombie) Nav() *world.NavAgent {
	return z.nav
}

// AI returns pursuit controller.
func (z *Zombie) AI() *ai.PursuitAI {
	return z.ai
}

// Health returns current hit points.
func (z *Zombie) Health() float64 {
	return z.health.Current()
}

// State returns health lifecycle state.
func (z *Zombie) State() model.HealthState {
	return z.health.State()
}

// IsActive reports whether zombie still moves and retargets.
func (z *Zombie) IsActive() bool {
	return z.active && z.health.IsAlive()
}

// Destroyed reports whether zombie left the world.
func (z *Zombie) Destroyed() bool {
	return z.health.State() == model.HealthDestroyed
}

// Tint returns colour state.
func (z *Zombie) Tint() Tint {
	return z.tint
}

// SetActive pauses or resumes movement and pursuit.
func (z *Zombie) SetActive(active bool) {
	z.active = active
	z.nav.SetStopped(!active)
	if !active {
		z.ai.Stop()
	}
}

// TakeDamage applies damage, flashes the zombie and starts dying at zero.
func (z *Zombie) TakeDamage(amount float64) model.DamageOutcome {
	out := z.health.ApplyDamage(amount)
	if !out.Applied {
		return out
	}

	z.startFlash()

	if out.Died {
		z.die()
	}
	return out
}

// startFlash tints zombie for FlashDuration, then restores colour and spawns
// damage effect above it.
func (z *Zombie) startFlash() {
	z.flash.Stop()
	z.tint = TintDamaged
	z.flash = z.sched.After("zombie-flash", z.cfg.FlashDuration, func() {
		z.tint = TintNormal
		z.effects.Spawn(fx.KindDamage, z.Position().Add(geom.V(0, 1, 0)), geom.Zero(), z.cfg.DamageEffectTTL)
	})
}

func (z *Zombie) die() {
	z.effects.Spawn(fx.KindDeath, z.Position(), geom.Zero(), z.cfg.DeathEffectTTL)
	z.SetActive(false)
	z.nav.Disable()

	slog.Debug("zombie died", "objectID", z.ObjectID())

	z.removal = z.sched.After("zombie-removal", z.cfg.DeathGrace, z.Destroy)
}

// Destroy removes zombie from the world. Idempotent.
func (z *Zombie) Destroy() {
	if z.Destroyed() {
		return
	}
	z.health.MarkDestroyed()
	z.active = false
	z.ai.Stop()
	z.nav.Disable()
	z.flash.Stop()
	z.removal.Stop()
	z.space.Remove(z.ObjectID())
}
