package ai

import (
	"fmt"
	"log/slog"
)

// Registry keeps AI controllers of live entities by objectID.
type Registry struct {
	controllers map[uint32]Controller
}

// NewRegistry creates empty registry
func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[uint32]Controller),
	}
}

// Register starts controller and tracks it. Re-registering an objectID stops
// the previous controller first.
func (r *Registry) Register(objectID uint32, controller Controller) {
	if prev, ok := r.controllers[objectID]; ok {
		prev.Stop()
	}
	r.controllers[objectID] = controller
	controller.Start()

	if IsDebugEnabled() {
		slog.Debug("AI controller registered",
			"objectID", objectID,
			"intention", controller.CurrentIntention())
	}
}

// Unregister stops and forgets controller. Unknown IDs are ignored.
func (r *Registry) Unregister(objectID uint32) {
	controller, ok := r.controllers[objectID]
	if !ok {
		return
	}
	delete(r.controllers, objectID)
	controller.Stop()

	if IsDebugEnabled() {
		slog.Debug("AI controller unregistered", "objectID", objectID)
	}
}

// Count returns number of registered controllers
func (r *Registry) Count() int {
	return len(r.controllers)
}

// GetController returns controller for entity
func (r *Registry) GetController(objectID uint32) (Controller, error) {
	c, ok := r.controllers[objectID]
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return c, nil
}
