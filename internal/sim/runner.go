package sim

import (
	"context"
	"log/slog"
	"time"
)

// Runner advances a scenario on a fixed-step wall-clock ticker.
type Runner struct {
	scenario    Scenario
	tick        time.Duration
	maxEpisodes int
	steps       int
}

// NewRunner creates runner. maxEpisodes <= 0 runs until cancelled.
func NewRunner(scenario Scenario, tick time.Duration, maxEpisodes int) *Runner {
	return &Runner{
		scenario:    scenario,
		tick:        tick,
		maxEpisodes: maxEpisodes,
	}
}

// Run starts the scenario and steps it every tick until ctx is cancelled or
// the episode limit is reached. The scenario is closed on return.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.scenario.Start()
	defer r.scenario.Close()

	slog.Info("simulation started",
		"scenario", r.scenario.Name(),
		"tick", r.tick,
		"maxEpisodes", r.maxEpisodes)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "steps", r.steps, "episodes", r.scenario.Finished())
			return ctx.Err()

		case <-ticker.C:
			r.Step()
			if r.done() {
				slog.Info("episode limit reached", "steps", r.steps, "episodes", r.scenario.Finished())
				return nil
			}
		}
	}
}

// Step advances the scenario by one tick without waiting.
func (r *Runner) Step() {
	r.scenario.Tick(r.tick.Seconds())
	r.steps++
}

// Steps returns number of ticks run.
func (r *Runner) Steps() int {
	return r.steps
}

func (r *Runner) done() bool {
	return r.maxEpisodes > 0 && r.scenario.Finished() >= r.maxEpisodes
}
