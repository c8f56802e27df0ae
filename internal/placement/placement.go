// Package placement finds spawn positions that keep a minimum distance from
// already placed objects.
package placement

import (
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/hordesim/internal/geom"
)

// DefaultAttempts is retry budget per sampled position.
const DefaultAttempts = 10

// Diagnostics collects every distance check made by a Sampler.
// Succeeded holds distances that satisfied the separation, Failed the rest.
type Diagnostics struct {
	Succeeded []float64
	Failed    []float64
	Exhausted int // positions returned after running out of attempts
}

// Reset clears collected distances.
func (d *Diagnostics) Reset() {
	d.Succeeded = d.Succeeded[:0]
	d.Failed = d.Failed[:0]
	d.Exhausted = 0
}

// Sampler draws positions by rejection sampling.
type Sampler struct {
	rng      *rand.Rand
	attempts int
	diag     Diagnostics
}

// NewSampler creates sampler. attempts <= 0 falls back to DefaultAttempts.
func NewSampler(rng *rand.Rand, attempts int) *Sampler {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Sampler{rng: rng, attempts: attempts}
}

// Diagnostics returns distances recorded since the last Reset.
func (s *Sampler) Diagnostics() *Diagnostics {
	return &s.diag
}

// SamplePosition returns a random point inside bounds at least minSeparation
// away from every existing point and from avoid. When the retry budget runs
// out the last sampled point is returned even if it violates the separation.
func (s *Sampler) SamplePosition(existing []geom.Vec3, avoid geom.Vec3, minSeparation float64, bounds geom.Box) geom.Vec3 {
	var p geom.Vec3
	for range s.attempts {
		p = s.uniform(bounds)
		if s.fits(p, existing, avoid, minSeparation) {
			return p
		}
	}

	s.diag.Exhausted++
	slog.Debug("placement retry budget exhausted",
		"attempts", s.attempts,
		"minSeparation", minSeparation,
		"existing", len(existing))
	return p
}

// fits checks p against every point. All checks are recorded, no early exit,
// so diagnostics reflect the full layout.
func (s *Sampler) fits(p geom.Vec3, existing []geom.Vec3, avoid geom.Vec3, minSeparation float64) bool {
	ok := true
	for _, e := range existing {
		if !s.check(p, e, minSeparation) {
			ok = false
		}
	}
	if !s.check(p, avoid, minSeparation) {
		ok = false
	}
	return ok
}

func (s *Sampler) check(a, b geom.Vec3, minSeparation float64) bool {
	d := a.Distance(b)
	if d >= minSeparation {
		s.diag.Succeeded = append(s.diag.Succeeded, d)
		return true
	}
	s.diag.Failed = append(s.diag.Failed, d)
	return false
}

func (s *Sampler) uniform(b geom.Box) geom.Vec3 {
	return geom.V(
		b.Min.X+s.rng.Float64()*(b.Max.X-b.Min.X),
		b.Min.Y+s.rng.Float64()*(b.Max.Y-b.Min.Y),
		b.Min.Z+s.rng.Float64()*(b.Max.Z-b.Min.Z),
	)
}
