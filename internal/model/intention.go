package model

// Intention represents AI state of a hostile entity
type Intention int32

const (
	// IntentionIdle - not moving, pursuit loop stopped
	IntentionIdle Intention = iota
	// IntentionFollow - periodically retargeting toward the player
	IntentionFollow
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionFollow:
		return "FOLLOW"
	default:
		return "UNKNOWN"
	}
}
