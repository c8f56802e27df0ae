package episode

import (
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Observation layout.
const (
	obsPosition  = 0
	obsForward   = 3
	obsVelocity  = 6
	obsHasShot   = 9
	obsCooldown  = 10
	obsObserved  = 11
	obsZombies   = 12
	obsPerZombie = 3
)

// ObservationSize returns vector length for maxObserved zombies.
func ObservationSize(maxObserved int) int {
	return obsZombies + obsPerZombie*maxObserved
}

// Observe collects the agent's sensor vector: position, forward, velocity,
// gun state, observed ratio and up to MaxObserved zombie offsets in the
// agent's frame divided by detection radius. Missing zombies are zero-padded.
// Zombies are not sorted.
func (c *Controller) Observe() []float64 {
	obs := make([]float64, ObservationSize(c.cfg.MaxObserved))

	pos := c.agent.Position()
	putVec(obs, obsPosition, pos)
	putVec(obs, obsForward, c.Forward())
	putVec(obs, obsVelocity, c.velocity)

	if c.hasShot {
		obs[obsHasShot] = 1
	}
	if c.cfg.ShotCooldown > 0 {
		obs[obsCooldown] = float64(c.cooldown) / float64(c.cfg.ShotCooldown)
	}

	if c.cfg.MaxObserved == 0 {
		return obs
	}

	zombies := c.space.Overlap(pos, c.cfg.DetectionRadius, model.TagZombie)
	n := min(len(zombies), c.cfg.MaxObserved)
	obs[obsObserved] = float64(n) / float64(c.cfg.MaxObserved)

	for i := range n {
		rel := geom.InverseYaw(zombies[i].Position().Sub(pos), c.yaw)
		putVec(obs, obsZombies+i*obsPerZombie, rel.Scale(1/c.cfg.DetectionRadius))
	}
	return obs
}

func putVec(obs []float64, at int, v geom.Vec3) {
	obs[at] = v.X
	obs[at+1] = v.Y
	obs[at+2] = v.Z
}
