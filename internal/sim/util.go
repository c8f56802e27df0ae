package sim

import (
	"math"
	"time"

	"github.com/udisondev/hordesim/internal/geom"
)

// nearest returns the point of pts closest to from.
func nearest(from geom.Vec3, pts []geom.Vec3) (geom.Vec3, bool) {
	best := math.Inf(1)
	var out geom.Vec3
	for _, p := range pts {
		if d := p.DistanceSquared(from); d < best {
			best, out = d, p
		}
	}
	return out, len(pts) > 0
}

// seconds converts a step length in seconds to a duration.
func seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}
