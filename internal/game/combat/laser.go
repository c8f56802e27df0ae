package combat

import (
	"github.com/udisondev/hordesim/internal/fx"
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/scheduler"
)

// Laser is the beam drawn for every shot.
type Laser struct {
	enabled bool
	from    geom.Vec3
	to      geom.Vec3
	off     *scheduler.Routine
	fired   int
}

// Enabled reports whether beam is visible.
func (l *Laser) Enabled() bool {
	return l.enabled
}

// Segment returns beam endpoints.
func (l *Laser) Segment() (geom.Vec3, geom.Vec3) {
	return l.from, l.to
}

// Fired returns how many times beam was shown.
func (l *Laser) Fired() int {
	return l.fired
}

// fireLaser shows beam and schedules it off. A new shot restarts the timer.
func (g *Gun) fireLaser(from, to geom.Vec3) {
	l := &g.laser
	l.enabled = true
	l.from, l.to = from, to
	l.fired++

	g.effects.Spawn(fx.KindLaser, from, to.Sub(from).Normalize(), g.cfg.LaserDuration)

	l.off.Stop()
	l.off = g.sched.After("laser-off", g.cfg.LaserDuration, func() {
		l.enabled = false
	})
}
