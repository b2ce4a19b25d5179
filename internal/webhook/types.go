package webhook

import (
	"fmt"
	"strings"
	"time"
)

// Time is a timestamp as the webhook backend emits it. The backend has been
// seen to send RFC3339 with and without fractional seconds, plus bare
// datetime-local strings, so unmarshalling tries each in turn.
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("webhook: unrecognized timestamp %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// Resource carries the appointment fields the backend nests under "resource".
type Resource struct {
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Status  string `json:"status,omitempty"`
	Source  string `json:"source,omitempty"`
	Doctor  string `json:"doctor,omitempty"`
	EventID string `json:"eventId,omitempty"`
}

// Appointment is an appointment record as returned by the list endpoint.
type Appointment struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Start    Time     `json:"start"`
	End      Time     `json:"end"`
	Resource Resource `json:"resource"`
}

// ListResponse is the body of GET /get-appointments. BotActive is optional;
// when present it is the authoritative scheduling-bot state.
type ListResponse struct {
	Data      []Appointment `json:"data"`
	BotActive *bool         `json:"botActive,omitempty"`
}

// ActionType selects the mutation performed by POST /dashboard-action.
type ActionType string

const (
	ActionCreate     ActionType = "create"
	ActionUpdate     ActionType = "update"
	ActionDelete     ActionType = "delete"
	ActionHardDelete ActionType = "hard_delete"
)

// ActionData is the data payload of a dashboard action. Create/update carry
// the full field set; delete carries id+eventId; hard_delete carries id only.
type ActionData struct {
	ID      string     `json:"id,omitempty"`
	EventID string     `json:"eventId,omitempty"`
	Title   string     `json:"title,omitempty"`
	Phone   string     `json:"phone,omitempty"`
	Service string     `json:"service,omitempty"`
	Status  string     `json:"status,omitempty"`
	Doctor  string     `json:"doctor,omitempty"`
	Start   *time.Time `json:"start,omitempty"`
	End     *time.Time `json:"end,omitempty"`
}

// ActionRequest is the body of POST /dashboard-action.
type ActionRequest struct {
	Action ActionType `json:"action"`
	Data   ActionData `json:"data"`
}

// ToggleRequest is the body of POST /toggle-bot.
type ToggleRequest struct {
	Active bool `json:"active"`
}
