package doctors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Roster is the repository surface the handler uses.
type Roster interface {
	List(ctx context.Context) ([]Doctor, error)
	Get(ctx context.Context, id int64) (Doctor, error)
	SetAvailability(ctx context.Context, id int64, isActive bool, pausedUntil *time.Time) error
}

// Handler serves the roster endpoints.
type Handler struct {
	repo   Roster
	logger *logging.Logger
	now    func() time.Time
}

// NewHandler creates the doctors handler.
func NewHandler(repo Roster, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Routes returns the doctors router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/{id}/activate", h.Activate)
	r.Post("/{id}/pause", h.Pause)
	r.Post("/{id}/shutdown", h.Shutdown)
	return r
}

type doctorView struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ServiceLetters []string `json:"services_letters"`
	Schedule       Schedule `json:"schedule"`
	State          State    `json:"state"`
	PausedUntil    string   `json:"paused_until,omitempty"`
}

func (h *Handler) toView(d Doctor) doctorView {
	v := doctorView{
		ID:             d.ID,
		Name:           d.Name,
		ServiceLetters: d.ServiceLetters,
		Schedule:       d.Schedule,
		State:          d.StateAt(h.now()),
	}
	if v.State == StatePaused && d.PausedUntil != nil {
		v.PausedUntil = d.PausedUntil.UTC().Format(time.RFC3339)
	}
	return v
}

// List returns the roster with derived availability states.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("roster list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo cargar el equipo médico.")
		return
	}

	views := make([]doctorView, 0, len(list))
	for _, d := range list {
		views = append(views, h.toView(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": views})
}

// Activate turns a doctor on and clears any pending pause.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, true, nil)
}

// PauseRequest is the body for pausing a doctor.
type PauseRequest struct {
	Hours int `json:"hours"`
}

// Pause makes a doctor unavailable for a bounded number of hours. The row
// stays active; availability resumes when the pause expires.
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	req := PauseRequest{Hours: DefaultPauseHours}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Cuerpo de solicitud inválido.")
			return
		}
	}
	if req.Hours < MinPauseHours || req.Hours > MaxPauseHours {
		writeError(w, http.StatusBadRequest, "Las horas de pausa deben estar entre 1 y 12.")
		return
	}

	until := h.now().Add(time.Duration(req.Hours) * time.Hour)
	h.applyAvailability(w, r, id, true, &until)
}

// Shutdown turns a doctor off until explicitly reactivated.
func (h *Handler) Shutdown(w http.ResponseWriter, r *http.Request) {
	h.setAvailability(w, r, false, nil)
}

func (h *Handler) setAvailability(w http.ResponseWriter, r *http.Request, isActive bool, pausedUntil *time.Time) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	h.applyAvailability(w, r, id, isActive, pausedUntil)
}

func (h *Handler) applyAvailability(w http.ResponseWriter, r *http.Request, id int64, isActive bool, pausedUntil *time.Time) {
	if err := h.repo.SetAvailability(r.Context(), id, isActive, pausedUntil); err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			writeError(w, http.StatusNotFound, "Doctor no encontrado.")
			return
		}
		h.logger.Error("roster update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo actualizar el doctor.")
		return
	}

	d, err := h.repo.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("roster reload failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo actualizar el doctor.")
		return
	}
	writeJSON(w, http.StatusOK, h.toView(d))
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador inválido.")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
