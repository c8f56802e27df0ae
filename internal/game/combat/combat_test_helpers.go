package combat

import (
	"github.com/udisondev/hordesim/internal/geom"
)

// ShootUntilDead fires at direction until a shot reports the target's death.
// Returns number of shots and the killing result.
func ShootUntilDead(g *Gun, origin, direction geom.Vec3, maxShots int) (int, HitResult) {
	var last HitResult
	g.SetHitObserver(func(r HitResult) { last = r })
	defer g.SetHitObserver(nil)

	for shot := range maxShots {
		g.ResolveShot(origin, direction, g.cfg.Range, 0)
		if last.Damage.Died {
			return shot + 1, last
		}
	}
	return maxShots, last
}
