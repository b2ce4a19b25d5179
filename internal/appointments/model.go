// Package appointments maintains the read-mostly appointment snapshot and the
// mutation paths that write through to the webhook backend.
package appointments

import (
	"sort"
	"strings"
	"time"

	"github.com/dentalspace/clinic-admin-api/internal/webhook"
)

// Appointment statuses as stored by the backend.
const (
	StatusAgendada     = "Agendada"
	StatusReprogramada = "Reprogramada"
	StatusCancelada    = "Cancelada"
	// StatusPendiente is the display value for records with no status. It is
	// never written back.
	StatusPendiente = "Pendiente"
)

// Appointment sources.
const (
	SourceManual = "manual"
	SourceAI     = "ai"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Duration is fixed: every appointment occupies a single half-hour slot, so
// end is always start + Duration.
const Duration = 30 * time.Minute

// DisplayStatus maps an empty backend status to the pending display value.
func DisplayStatus(status string) string {
	if status == "" {
		return StatusPendiente
	}
	return status
}

// Matches reports whether an appointment passes the dashboard filters: a
// case-insensitive substring match on the patient name OR a raw substring
// match on the phone, AND an exact status match (or StatusAll).
func Matches(apt webhook.Appointment, search, status string) bool {
	if search != "" {
		nameHit := strings.Contains(strings.ToLower(apt.Title), strings.ToLower(search))
		phoneHit := apt.Resource.Phone != "" && strings.Contains(apt.Resource.Phone, search)
		if !nameHit && !phoneHit {
			return false
		}
	}
	if status != "" && status != StatusAll && apt.Resource.Status != status {
		return false
	}
	return true
}

// SortByStartDesc orders appointments most recent first. The sort is stable so
// records sharing a start time keep their backend order.
func SortByStartDesc(list []webhook.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Start.Time.After(list[j].Start.Time)
	})
}
