package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/hordesim/internal/model"
	"github.com/udisondev/hordesim/internal/scheduler"
)

// DefaultRetargetInterval is how often a zombie re-resolves its target.
const DefaultRetargetInterval = 100 * time.Millisecond

// PursuitAI periodically sends its owner toward the player.
//
// The player is looked up again on every tick.
type PursuitAI struct {
	owner    Owner
	nav      Navigator
	locator  TargetLocator
	target   model.Tag
	sched    *scheduler.Scheduler
	interval time.Duration

	routine   *scheduler.Routine
	intention model.Intention
	ticks     int
	misses    int
}

// NewPursuitAI creates pursuit controller bound to the player tag.
func NewPursuitAI(
	owner Owner,
	nav Navigator,
	locator TargetLocator,
	sched *scheduler.Scheduler,
	interval time.Duration,
) *PursuitAI {
	if interval <= 0 {
		interval = DefaultRetargetInterval
	}
	return &PursuitAI{
		owner:    owner,
		nav:      nav,
		locator:  locator,
		target:   model.TagAgent,
		sched:    sched,
		interval: interval,
	}
}

// Start begins retarget loop. Restarting cancels the previous loop.
func (ai *PursuitAI) Start() {
	ai.routine.Stop()
	ai.intention = model.IntentionFollow
	ai.routine = ai.sched.Every("pursuit", ai.interval, func() bool {
		ai.Tick()
		return ai.intention == model.IntentionFollow
	})

	if IsDebugEnabled() {
		slog.Debug("pursuit AI started",
			"objectID", ai.owner.ObjectID(),
			"interval", ai.interval)
	}
}

// Stop cancels retarget loop. Idempotent.
func (ai *PursuitAI) Stop() {
	ai.routine.Stop()
	ai.routine = nil
	ai.intention = model.IntentionIdle
}

// CurrentIntention returns current AI intention
func (ai *PursuitAI) CurrentIntention() model.Intention {
	return ai.intention
}

// Ticks returns number of retargets issued.
func (ai *PursuitAI) Ticks() int {
	return ai.ticks
}

// Misses returns number of ticks skipped because the player was missing.
func (ai *PursuitAI) Misses() int {
	return ai.misses
}

// Tick re-resolves the player and issues a move command.
// Deactivated owner ends the loop; a missing player only skips the tick.
func (ai *PursuitAI) Tick() {
	if ai.intention != model.IntentionFollow {
		return
	}
	if !ai.owner.IsActive() {
		ai.Stop()
		return
	}

	dest, ok := ai.locator.FindTagged(ai.target)
	if !ok {
		ai.misses++
		slog.Warn("pursuit: no target found",
			"objectID", ai.owner.ObjectID(),
			"tag", ai.target)
		return
	}

	if !ai.nav.IsActiveAndEnabled() {
		return
	}

	ai.nav.SetDestination(dest)
	ai.ticks++

	if IsDebugEnabled() {
		slog.Debug("pursuit retarget",
			"objectID", ai.owner.ObjectID(),
			"destination", dest)
	}
}
