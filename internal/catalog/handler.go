package catalog

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// RosterNames supplies the live specialist names for the doctor dropdown.
type RosterNames interface {
	Names(ctx context.Context) ([]string, error)
}

// Handler serves the form catalogs consumed by the dashboard.
type Handler struct {
	roster RosterNames
	logger *logging.Logger
}

// NewHandler creates the catalog handler. roster may be nil; the static
// doctor list is used then.
func NewHandler(roster RosterNames, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{roster: roster, logger: logger}
}

// Routes returns the catalog router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

type catalogView struct {
	Services  []ServiceGroup `json:"services"`
	TimeSlots []TimeSlot     `json:"time_slots"`
	Statuses  []string       `json:"statuses"`
	Doctors   []string       `json:"doctors"`
}

// Get returns all form catalogs in one response. Doctor names come from the
// live roster; when the roster is unavailable or empty the static list keeps
// the form usable.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	doctors := LegacyDoctorOptions()
	if h.roster != nil {
		names, err := h.roster.Names(r.Context())
		if err != nil {
			h.logger.Warn("roster names unavailable, using static list", "error", err)
		} else if len(names) > 0 {
			doctors = names
		}
	}

	view := catalogView{
		Services:  ServiceGroups(),
		TimeSlots: TimeSlots(),
		Statuses:  Statuses(),
		Doctors:   doctors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(view)
}
