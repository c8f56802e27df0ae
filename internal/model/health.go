package model

// HealthState is the lifecycle stage of a hostile entity.
type HealthState int32

const (
	// HealthAlive - health above zero, entity reacts to damage
	HealthAlive HealthState = iota
	// HealthDying - health reached zero, removal pending after grace delay
	HealthDying
	// HealthDestroyed - terminal, entity gone from the world
	HealthDestroyed
)

// String returns human-readable state name
func (s HealthState) String() string {
	switch s {
	case HealthAlive:
		return "ALIVE"
	case HealthDying:
		return "DYING"
	case HealthDestroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN"
	}
}

// DamageOutcome reports what ApplyDamage did.
// Callers react to Died instead of the health state calling back into owners.
type DamageOutcome struct {
	Applied   bool    // false when entity was already dying or destroyed
	Died      bool    // true exactly once, on the Alive → Dying transition
	Remaining float64 // health after the hit
}

// Health tracks hit points of a single hostile entity.
type Health struct {
	current float64
	max     float64
	state   HealthState
}

// NewHealth creates full health.
func NewHealth(max float64) Health {
	return Health{current: max, max: max, state: HealthAlive}
}

// Current returns current hit points.
func (h *Health) Current() float64 {
	return h.current
}

// Max returns maximum hit points.
func (h *Health) Max() float64 {
	return h.max
}

// State returns lifecycle state.
func (h *Health) State() HealthState {
	return h.state
}

// IsAlive reports whether entity still takes damage.
func (h *Health) IsAlive() bool {
	return h.state == HealthAlive
}

// ApplyDamage subtracts amount. No-op once the entity left the Alive state,
// so health never changes after reaching zero.
func (h *Health) ApplyDamage(amount float64) DamageOutcome {
	if h.state != HealthAlive {
		return DamageOutcome{Remaining: h.current}
	}

	h.current -= amount
	if h.current > 0 {
		return DamageOutcome{Applied: true, Remaining: h.current}
	}

	h.state = HealthDying
	return DamageOutcome{Applied: true, Died: true, Remaining: h.current}
}

// MarkDestroyed moves to terminal state. Idempotent.
func (h *Health) MarkDestroyed() {
	h.state = HealthDestroyed
}
