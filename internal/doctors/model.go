// Package doctors manages the specialist roster and its availability state.
package doctors

import "time"

// State is the derived availability of a doctor.
type State string

const (
	StateActive State = "active"
	StatePaused State = "paused"
	StateOff    State = "off"
)

// Pause bounds in hours.
const (
	MinPauseHours     = 1
	MaxPauseHours     = 12
	DefaultPauseHours = 1
)

// Schedule is the weekly working pattern stored as jsonb.
type Schedule struct {
	Days []string `json:"days"`
}

// Doctor is a roster row from doctors_config.
type Doctor struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	ServiceLetters []string   `json:"services_letters"`
	Schedule       Schedule   `json:"schedule"`
	IsActive       bool       `json:"is_active"`
	PausedUntil    *time.Time `json:"paused_until,omitempty"`
}

// StateAt derives the availability state at the given instant. A pause that
// has expired counts as active; the row is lazily cleaned on the next write.
func (d Doctor) StateAt(now time.Time) State {
	if !d.IsActive {
		return StateOff
	}
	if d.PausedUntil != nil && d.PausedUntil.After(now) {
		return StatePaused
	}
	return StateActive
}
