package episode

import (
	"math"
)

// Policy picks an action from an observation.
type Policy interface {
	Act(obs []float64) Action
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(obs []float64) Action

// Act calls f(obs).
func (f PolicyFunc) Act(obs []float64) Action {
	return f(obs)
}

// Heuristic turns toward the nearest observed zombie and shoots once aimed.
// With nothing in sight it spins in place.
type Heuristic struct {
	MaxObserved   int
	RotationSpeed float64 // degrees per step at full input
	AimTolerance  float64 // degrees
}

// NewHeuristic creates heuristic policy for the agent config.
func NewHeuristic(cfg Config) Heuristic {
	return Heuristic{
		MaxObserved:   cfg.MaxObserved,
		RotationSpeed: cfg.RotationSpeed,
		AimTolerance:  3,
	}
}

// Act implements Policy.
func (h Heuristic) Act(obs []float64) Action {
	n := 0
	if h.MaxObserved > 0 && len(obs) > obsObserved {
		n = int(math.Round(obs[obsObserved] * float64(h.MaxObserved)))
	}

	best := -1
	bestDist := math.Inf(1)
	for i := range n {
		at := obsZombies + i*obsPerZombie
		if at+2 >= len(obs) {
			break
		}
		d := obs[at]*obs[at] + obs[at+2]*obs[at+2]
		if d < bestDist {
			best, bestDist = at, d
		}
	}

	if best < 0 {
		return Action{Rotate: 1}
	}

	angle := math.Atan2(obs[best], obs[best+2]) * 180 / math.Pi

	rotate := 1.0
	if h.RotationSpeed > 0 {
		rotate = math.Max(-1, math.Min(1, angle/h.RotationSpeed))
	}

	return Action{
		Rotate: rotate,
		Shoot:  math.Abs(angle) <= h.AimTolerance,
	}
}
