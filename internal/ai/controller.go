package ai

import (
	"github.com/udisondev/hordesim/internal/geom"
	"github.com/udisondev/hordesim/internal/model"
)

// Controller represents AI controller interface for hostile entities
type Controller interface {
	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// CurrentIntention returns current AI intention
	CurrentIntention() model.Intention

	// Tick performs one AI decision
	Tick()
}

// Navigator is the movement service an AI steers.
type Navigator interface {
	SetDestination(p geom.Vec3)
	IsActiveAndEnabled() bool
}

// TargetLocator resolves a tagged body to its current position.
type TargetLocator interface {
	FindTagged(tag model.Tag) (geom.Vec3, bool)
}

// Owner is the entity a controller drives.
type Owner interface {
	ObjectID() uint32
	IsActive() bool
}
