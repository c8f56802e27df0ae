package combat

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/scheduler"
	"github.com/udisondev/hordesim/internal/world"
)

type dummy struct {
	health model.Health
	hits   int
}

func (d *dummy) TakeDamage(amount float64) model.DamageOutcome {
	d.hits++
	return d.health.ApplyDamage(amount)
}

func testGun(t *testing.T) (*Gun, *world.Space, *fx.Tracker, *scheduler.Scheduler) {
	t.Helper()
	sched := scheduler.New()
	space := world.NewSpace()
	tracker := fx.NewTracker(sched)
	cfg := GunConfig{
		Damage:        25,
		Spread:        0.02,
		Range:         600,
		LaserDuration: 50 * time.Millisecond,
		EffectTTL:     time.Second,
	}
	return NewGun(cfg, space, tracker, sched, rand.New(rand.NewPCG(1, 2))), space, tracker, sched
}

func TestResolveShot_MissStillShowsLaser(t *testing.T) {
	gun, _, tracker, sched := testGun(t)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 600, 0)

	assert.Equal(t, Miss, res.Outcome)
	assert.Nil(t, res.Target)
	assert.InDelta(t, 600.0, res.Point.Z, 1e-9, "beam ends at max range")
	assert.True(t, gun.Laser().Enabled())
	assert.Equal(t, 1, tracker.ActiveOf(fx.KindLaser))

	sched.Advance(50 * time.Millisecond)
	assert.False(t, gun.Laser().Enabled(), "laser self-disables")
}

func TestResolveShot_HitAppliesDamage(t *testing.T) {
	gun, space, tracker, _ := testGun(t)
	target := &dummy{health: model.NewHealth(100)}
	space.AddSphere(model.TagZombie, geom.V(0, 1, 10), 0.5, target)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 600, 0)

	require.True(t, res.IsHit())
	assert.Same(t, target, res.Target)
	assert.Equal(t, 75.0, target.health.Current())
	assert.Equal(t, 1, tracker.Total(fx.KindZombieHit))
	assert.InDelta(t, 9.5, res.Point.Z, 1e-9)
	assert.Equal(t, 1, gun.Hits())
	assert.Equal(t, 1, gun.Shots())
}

func TestResolveShot_WallBlocksShot(t *testing.T) {
	gun, space, tracker, _ := testGun(t)
	target := &dummy{health: model.NewHealth(100)}
	space.AddBox(model.TagWall, geom.BoxAround(geom.V(0, 1, 5), geom.V(10, 10, 1)), nil)
	space.AddSphere(model.TagZombie, geom.V(0, 1, 10), 0.5, target)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 600, 0)

	assert.Equal(t, Miss, res.Outcome)
	assert.Equal(t, 0, target.hits)
	assert.Equal(t, 1, tracker.Total(fx.KindWallHit))
	assert.Equal(t, 0, tracker.Total(fx.KindZombieHit))
	assert.True(t, gun.Laser().Enabled())
}

func TestResolveShot_OutOfRange(t *testing.T) {
	gun, space, _, _ := testGun(t)
	target := &dummy{health: model.NewHealth(100)}
	space.AddSphere(model.TagZombie, geom.V(0, 1, 10), 0.5, target)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 5, 0)

	assert.Equal(t, Miss, res.Outcome)
	assert.Equal(t, 0, target.hits)
}

func TestResolveShot_UntaggedBodyIsMissWithoutEffect(t *testing.T) {
	gun, space, tracker, _ := testGun(t)
	space.AddSphere(model.TagPellet, geom.V(0, 1, 10), 0.5, nil)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 600, 0)

	assert.Equal(t, Miss, res.Outcome)
	require.NotNil(t, res.Body)
	assert.Equal(t, 0, tracker.Total(fx.KindWallHit)+tracker.Total(fx.KindZombieHit))
}

func TestResolveShot_ZombieTagWithoutTargetIsMissWithoutEffect(t *testing.T) {
	gun, space, tracker, _ := testGun(t)
	space.AddSphere(model.TagZombie, geom.V(0, 1, 10), 0.5, nil)

	res := gun.ResolveShot(geom.V(0, 1, 0), geom.V(0, 0, 1), 600, 0)

	assert.Equal(t, Miss, res.Outcome)
	assert.Nil(t, res.Target)
	assert.Equal(t, 0, tracker.Total(fx.KindZombieHit))
	assert.Equal(t, 0, gun.Hits())
}

func TestResolveShot_SpreadJittersDirection(t *testing.T) {
	gun, _, _, _ := testGun(t)
	forward := geom.V(0, 0, 1)

	for range 100 {
		res := gun.ResolveShot(geom.Zero(), forward, 600, 0.02)
		assert.InDelta(t, 1.0, res.Direction.Len(), 1e-9)
		assert.InDelta(t, 1.0, res.Direction.Dot(forward), 0.002)
	}

	res := gun.ResolveShot(geom.Zero(), forward, 600, 0)
	assert.Equal(t, forward, res.Direction)
}

func TestGun_FourShotsKill(t *testing.T) {
	gun, space, _, _ := testGun(t)
	target := &dummy{health: model.NewHealth(100)}
	space.AddSphere(model.TagZombie, geom.V(0, 1, 10), 0.5, target)

	shots, last := ShootUntilDead(gun, geom.V(0, 1, 0), geom.V(0, 0, 1), 10)

	assert.Equal(t, 4, shots)
	assert.True(t, last.Damage.Died)
	assert.Equal(t, 0.0, target.health.Current())
}

func TestLaser_RefireRestartsTimer(t *testing.T) {
	gun, _, _, sched := testGun(t)

	gun.ResolveShot(geom.Zero(), geom.V(0, 0, 1), 600, 0)
	sched.Advance(40 * time.Millisecond)
	gun.ResolveShot(geom.Zero(), geom.V(0, 0, 1), 600, 0)
	sched.Advance(20 * time.Millisecond)

	assert.True(t, gun.Laser().Enabled(), "first timer cancelled by second shot")
	sched.Advance(30 * time.Millisecond)
	assert.False(t, gun.Laser().Enabled())
	assert.Equal(t, 2, gun.Laser().Fired())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "HIT", Hit.String())
	assert.Equal(t, "MISS", Miss.String())
}
