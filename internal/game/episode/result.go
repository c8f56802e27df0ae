// Package episode runs the shooter agent's training episodes: it moves the
// agent, fires the gun, scores actions and restarts the arena when an episode
// ends. The trainer is replaced by a Policy.
package episode

import (
	"time"

	"github.com/google/uuid"
)

// Scenario names stored with results.
const (
	ScenarioHorde  = "horde"
	ScenarioPellet = "pellet"
)

// EndReason tells why an episode finished.
type EndReason string

const (
	EndCleared         EndReason = "cleared"
	EndWallCollision   EndReason = "wall_collision"
	EndZombieCollision EndReason = "zombie_collision"
	EndMaxSteps        EndReason = "max_steps"
	EndAborted         EndReason = "aborted"

	EndAllCollected EndReason = "all_collected"
	EndPreyCaught   EndReason = "prey_caught"
	EndHunterWall   EndReason = "hunter_wall"
	EndTimeout      EndReason = "timeout"
)

// Result summarises one finished episode.
type Result struct {
	ID             uuid.UUID
	Scenario       string
	Reward         float64
	OpponentReward float64 // hunter in the pellet arena, zero otherwise
	Shots          int
	Hits           int
	Kills          int
	Steps          int
	EndReason      EndReason
	StartedAt      time.Time
	Duration       time.Duration // simulated time
}

// Recorder receives finished episodes.
type Recorder interface {
	Record(Result)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(Result)

// Record calls f(r).
func (f RecorderFunc) Record(r Result) {
	f(r)
}

// ChanRecorder forwards results to a buffered channel. When the channel is
// full the result is dropped and counted.
type ChanRecorder struct {
	ch      chan<- Result
	dropped int
}

// NewChanRecorder creates recorder writing to ch.
func NewChanRecorder(ch chan<- Result) *ChanRecorder {
	return &ChanRecorder{ch: ch}
}

// Record sends r without blocking.
func (c *ChanRecorder) Record(r Result) {
	select {
	case c.ch <- r:
	default:
		c.dropped++
	}
}

// Dropped returns number of results lost to a full channel.
func (c *ChanRecorder) Dropped() int {
	return c.dropped
}
