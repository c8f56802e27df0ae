// Package sim wires the arenas together and drives them in fixed steps.
package sim

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/hordesim/internal/config"
	"github.com/udisondev/hordesim/internal/game/episode"
)

// Scenario is one arena advanced in fixed steps by a Runner.
type Scenario interface {
	Name() string
	Start()
	// Tick advances the arena by dt seconds: policies act, agents move,
	// scheduled routines run, contacts resolve.
	Tick(dt float64)
	// Finished returns number of episodes completed so far.
	Finished() int
	Close()
}

// NewScenario builds scenario selected in cfg. recorder may be nil.
func NewScenario(cfg config.Simulation, rng *rand.Rand, recorder episode.Recorder) (Scenario, error) {
	switch cfg.Scenario {
	case config.ScenarioHorde:
		return NewHorde(cfg, rng, recorder), nil
	case config.ScenarioPellet:
		return NewPellet(cfg, rng, recorder), nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}
}

// tally counts results before passing them on.
type tally struct {
	next episode.Recorder
	n    int
}

func (t *tally) Record(r episode.Result) {
	t.n++
	if t.next != nil {
		t.next.Record(r)
	}
}
