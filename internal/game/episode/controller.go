package episode

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/hordesim/internal/ai"
	"github.com/udisondev/hordesim/internal/game/combat"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/world"
)

// Horde is the population the agent fights.
type Horde interface {
	ClearAll()
	StartSpawning()
	SpawnAgent()
}

// Shooter fires the agent's weapon.
type Shooter interface {
	Shoot(origin, forward geom.Vec3) combat.HitResult
}

// Action is one decision of the agent.
type Action struct {
	Rotate  float64 // [-1, 1], scaled by rotation speed (degrees per step)
	Forward float64 // [-1, 1], scaled by speed (units per second)
	Shoot   bool
}

// Rewards of the shooter agent.
type Rewards struct {
	Hit       float64
	Miss      float64
	ClearAll  float64
	Collision float64
}

// Config holds agent settings.
type Config struct {
	Speed           float64
	RotationSpeed   float64
	DetectionRadius float64
	MaxObserved     int
	ShotCooldown    int // steps
	ClearRadius     float64
	MaxSteps        int // 0 = unlimited
	MuzzleHeight    float64
	Rewards         Rewards
}

// Controller drives the shooter agent through consecutive episodes.
// Not safe for concurrent use; runs on the simulation goroutine.
type Controller struct {
	cfg      Config
	space    *world.Space
	agent    *world.Body
	horde    Horde
	gun      Shooter
	recorder Recorder

	yaw      float64
	velocity geom.Vec3

	hasShot  bool
	cooldown int

	active    bool
	id        uuid.UUID
	reward    float64
	shots     int
	hits      int
	kills     int
	steps     int
	elapsed   time.Duration
	startedAt time.Time
	episodes  int

	now func() time.Time
}

// NewController creates controller for the agent body. recorder may be nil.
func NewController(cfg Config, space *world.Space, agent *world.Body, horde Horde, gun Shooter, recorder Recorder) *Controller {
	return &Controller{
		cfg:      cfg,
		space:    space,
		agent:    agent,
		horde:    horde,
		gun:      gun,
		recorder: recorder,
		now:      time.Now,
	}
}

// Begin resets the arena and starts a new episode.
func (c *Controller) Begin() {
	c.hasShot = false
	c.cooldown = 0
	c.yaw = 0
	c.velocity = geom.Zero()

	c.horde.ClearAll()
	c.horde.StartSpawning()
	c.horde.SpawnAgent()

	c.active = true
	c.id = uuid.New()
	c.reward = 0
	c.shots, c.hits, c.kills, c.steps = 0, 0, 0, 0
	c.elapsed = 0
	c.startedAt = c.now()
	c.episodes++

	slog.Debug("episode started", "episode", c.id, "n", c.episodes)
}

// Step applies one action over dt seconds. Returns true when the action ended
// the episode; a new one has already begun by then.
func (c *Controller) Step(a Action, dt float64) bool {
	if !c.active {
		c.Begin()
	}

	c.steps++
	c.elapsed += time.Duration(math.Round(dt * float64(time.Second)))

	before := c.agent.Position()
	after := before.Add(c.Forward().Scale(a.Forward * c.cfg.Speed * dt))
	c.agent.SetPosition(after)
	if dt > 0 {
		c.velocity = after.Sub(before).Scale(1 / dt)
	}
	c.yaw += a.Rotate * c.cfg.RotationSpeed

	ended := false
	if a.Shoot && !c.hasShot {
		ended = c.fire()
	}

	if c.hasShot {
		c.cooldown--
		if c.cooldown <= 0 {
			c.hasShot = false
		}
	}

	if !ended && c.cfg.MaxSteps > 0 && c.steps >= c.cfg.MaxSteps {
		c.End(EndMaxSteps)
		ended = true
	}
	return ended
}

// fire shoots once and scores the shot. Returns true when the arena is clear.
func (c *Controller) fire() bool {
	origin := c.agent.Position().Add(geom.V(0, c.cfg.MuzzleHeight, 0))
	res := c.gun.Shoot(origin, c.Forward())

	c.cooldown = c.cfg.ShotCooldown
	c.hasShot = true
	c.shots++

	if !res.IsHit() {
		c.reward += c.cfg.Rewards.Miss
		return false
	}

	c.hits++
	c.reward += c.cfg.Rewards.Hit
	if res.Damage.Died {
		c.kills++
	}

	if ai.IsDebugEnabled() {
		slog.Debug("agent hit", "episode", c.id, "died", res.Damage.Died, "remaining", res.Damage.Remaining)
	}

	if c.arenaClear() {
		c.reward += c.cfg.Rewards.ClearAll
		c.End(EndCleared)
		return true
	}
	return false
}

// arenaClear reports whether no living zombie is within clear radius.
// Dying zombies keep their bodies until removed and are ignored.
func (c *Controller) arenaClear() bool {
	for _, b := range c.space.Overlap(c.agent.Position(), c.cfg.ClearRadius, model.TagZombie) {
		if h, ok := b.Data.(healthReporter); ok && h.State() != model.HealthAlive {
			continue
		}
		return false
	}
	return true
}

type healthReporter interface {
	State() model.HealthState
}

// OnCollision handles the agent touching a body. Walls and zombies end the
// episode with a penalty; other tags are ignored.
func (c *Controller) OnCollision(tag model.Tag) {
	if !c.active {
		return
	}

	switch tag {
	case model.TagWall:
		c.reward += c.cfg.Rewards.Collision
		c.End(EndWallCollision)
	case model.TagZombie:
		c.reward += c.cfg.Rewards.Collision
		c.End(EndZombieCollision)
	}
}

// End finishes the current episode, publishes its result and begins the next.
func (c *Controller) End(reason EndReason) {
	if !c.active {
		return
	}
	c.active = false

	res := Result{
		ID:        c.id,
		Scenario:  ScenarioHorde,
		Reward:    c.reward,
		Shots:     c.shots,
		Hits:      c.hits,
		Kills:     c.kills,
		Steps:     c.steps,
		EndReason: reason,
		StartedAt: c.startedAt,
		Duration:  c.elapsed,
	}

	slog.Info("episode ended",
		"episode", res.ID,
		"reason", reason,
		"reward", res.Reward,
		"steps", res.Steps,
		"hits", res.Hits,
		"shots", res.Shots)

	if c.recorder != nil {
		c.recorder.Record(res)
	}

	if reason != EndAborted {
		c.Begin()
	}
}

// Forward returns the agent's horizontal facing.
func (c *Controller) Forward() geom.Vec3 {
	return geom.YawForward(c.yaw)
}

// Yaw returns facing in degrees.
func (c *Controller) Yaw() float64 {
	return c.yaw
}

// Agent returns agent body.
func (c *Controller) Agent() *world.Body {
	return c.agent
}

// Active reports whether an episode is running.
func (c *Controller) Active() bool {
	return c.active
}

// ID returns current episode ID.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// Reward returns reward accumulated in the current episode.
func (c *Controller) Reward() float64 {
	return c.reward
}

// Episodes returns number of episodes begun.
func (c *Controller) Episodes() int {
	return c.episodes
}

// CanShoot reports whether the gun is off cooldown.
func (c *Controller) CanShoot() bool {
	return !c.hasShot
}
