package world

import "github.com/udisondev/hordesim/internal/geom"

// NavAgent steers a body toward its destination in a straight line.
// It stands in for a navigation mesh: no obstacle avoidance.
type NavAgent struct {
	body           *Body
	speed          float64
	destination    geom.Vec3
	hasDestination bool
	stopped        bool
	enabled        bool
}

// AddNavAgent attaches navigation to body. Agents advance in Space.Step.
func (s *Space) AddNavAgent(body *Body, speed float64) *NavAgent {
	a := &NavAgent{body: body, speed: speed, enabled: true}
	s.agents = append(s.agents, a)
	return a
}

// SetDestination sets target point. Ignored when agent is disabled.
func (a *NavAgent) SetDestination(p geom.Vec3) {
	if !a.enabled {
		return
	}
	a.destination = p
	a.hasDestination = true
}

// Destination returns current target and whether one is set.
func (a *NavAgent) Destination() (geom.Vec3, bool) {
	return a.destination, a.hasDestination
}

// IsActiveAndEnabled reports whether agent accepts destinations.
func (a *NavAgent) IsActiveAndEnabled() bool {
	return a.enabled && a.body.enabled
}

// SetStopped halts or resumes movement without clearing destination.
func (a *NavAgent) SetStopped(stopped bool) {
	a.stopped = stopped
}

// Stopped reports whether movement is halted.
func (a *NavAgent) Stopped() bool {
	return a.stopped
}

// Disable stops agent permanently.
func (a *NavAgent) Disable() {
	a.enabled = false
	a.stopped = true
	a.hasDestination = false
}

// Step moves every active agent toward its destination. Height is kept.
func (s *Space) Step(dt float64) {
	for _, a := range s.agents {
		if !a.IsActiveAndEnabled() || a.stopped || !a.hasDestination {
			continue
		}
		pos := a.body.position
		target := a.destination.WithY(pos.Y)
		a.body.SetPosition(pos.MoveTowards(target, a.speed*dt))
	}
}
