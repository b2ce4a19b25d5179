package appointments

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dentalspace/clinic-admin-api/internal/webhook"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Submitter performs dashboard mutations against the webhook backend.
type Submitter interface {
	SubmitAction(ctx context.Context, action webhook.ActionRequest) error
}

// Handler serves the appointment endpoints.
type Handler struct {
	cache  *Cache
	client Submitter
	logger *logging.Logger
}

// NewHandler creates the appointments handler.
func NewHandler(cache *Cache, client Submitter, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		cache:  cache,
		client: client,
		logger: logger,
	}
}

// Routes returns the appointment router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/refresh", h.Refresh)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/cancel", h.Cancel)
	r.Delete("/{id}", h.HardDelete)
	return r
}

// SaveRequest is the body for creating or rescheduling an appointment.
type SaveRequest struct {
	Title   string       `json:"title"`
	Phone   string       `json:"phone"`
	Service string       `json:"service"`
	Doctor  string       `json:"doctor"`
	Status  string       `json:"status"`
	Start   webhook.Time `json:"start"`
}

type appointmentView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service,omitempty"`
	Status  string `json:"status"`
	Source  string `json:"source,omitempty"`
	Doctor  string `json:"doctor"`
	EventID string `json:"eventId,omitempty"`
}

type listView struct {
	Data        []appointmentView `json:"data"`
	BotActive   bool              `json:"botActive"`
	RefreshedAt string            `json:"refreshedAt,omitempty"`
	Stale       bool              `json:"stale"`
	LastError   string            `json:"lastError,omitempty"`
}

func toView(apt webhook.Appointment) appointmentView {
	doctor := apt.Resource.Doctor
	if doctor == "" {
		doctor = "Sin asignar"
	}
	return appointmentView{
		ID:      apt.ID,
		Title:   apt.Title,
		Start:   apt.Start.UTC().Format(time.RFC3339),
		End:     apt.End.UTC().Format(time.RFC3339),
		Phone:   apt.Resource.Phone,
		Service: apt.Resource.Service,
		Status:  DisplayStatus(apt.Resource.Status),
		Source:  apt.Resource.Source,
		Doctor:  doctor,
		EventID: apt.Resource.EventID,
	}
}

// List serves the cached appointment list, filtered by the search and status
// query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	status := r.URL.Query().Get("status")

	list, lastErr, refreshedAt := h.cache.Snapshot(search, status)

	views := make([]appointmentView, 0, len(list))
	for _, apt := range list {
		views = append(views, toView(apt))
	}

	resp := listView{
		Data:      views,
		BotActive: h.cache.BotActive(),
		Stale:     lastErr != nil,
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}
	if !refreshedAt.IsZero() {
		resp.RefreshedAt = refreshedAt.UTC().Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Refresh forces an immediate cache refresh and serves the unfiltered list.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "No se pudieron cargar las citas.")
		return
	}
	h.List(w, r)
}

// Create submits a new appointment to the backend and refreshes the cache.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}

	start := req.Start.Time
	end := start.Add(Duration)
	status := req.Status
	if status == "" {
		status = StatusAgendada
	}

	action := webhook.ActionRequest{
		Action: webhook.ActionCreate,
		Data: webhook.ActionData{
			Title:   req.Title,
			Phone:   req.Phone,
			Service: req.Service,
			Doctor:  req.Doctor,
			Status:  status,
			Start:   &start,
			End:     &end,
		},
	}

	if err := h.client.SubmitAction(r.Context(), action); err != nil {
		h.logger.Error("appointment create failed", "error", err)
		writeError(w, http.StatusBadGateway, "Error al guardar.")
		return
	}

	h.refreshAfterWrite(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Cita guardada."})
}

// Update reschedules an existing appointment. The calendar event id is taken
// from the cached record; the caller never supplies it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, found := h.cache.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, "Cita no encontrada.")
		return
	}

	req, ok := h.decodeSave(w, r)
	if !ok {
		return
	}

	start := req.Start.Time
	end := start.Add(Duration)
	status := req.Status
	if status == "" {
		status = StatusReprogramada
	}

	action := webhook.ActionRequest{
		Action: webhook.ActionUpdate,
		Data: webhook.ActionData{
			ID:      id,
			EventID: apt.Resource.EventID,
			Title:   req.Title,
			Phone:   req.Phone,
			Service: req.Service,
			Doctor:  req.Doctor,
			Status:  status,
			Start:   &start,
			End:     &end,
		},
	}

	if err := h.client.SubmitAction(r.Context(), action); err != nil {
		h.logger.Error("appointment update failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "Error al guardar.")
		return
	}

	h.refreshAfterWrite(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cita actualizada."})
}

// Cancel marks an appointment cancelled. The record stays in the list and the
// calendar event is removed by the backend.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, found := h.cache.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, "Cita no encontrada.")
		return
	}
	if apt.Resource.Status == StatusCancelada {
		writeError(w, http.StatusConflict, "La cita ya está cancelada.")
		return
	}

	action := webhook.ActionRequest{
		Action: webhook.ActionDelete,
		Data: webhook.ActionData{
			ID:      id,
			EventID: apt.Resource.EventID,
		},
	}

	if err := h.client.SubmitAction(r.Context(), action); err != nil {
		h.logger.Error("appointment cancel failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "No se pudo cancelar.")
		return
	}

	h.refreshAfterWrite(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cita cancelada."})
}

// HardDelete permanently removes a cancelled appointment.
func (h *Handler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	apt, found := h.cache.Get(id)
	if !found {
		writeError(w, http.StatusNotFound, "Cita no encontrada.")
		return
	}
	if apt.Resource.Status != StatusCancelada {
		writeError(w, http.StatusConflict, "Solo se pueden eliminar citas canceladas.")
		return
	}

	action := webhook.ActionRequest{
		Action: webhook.ActionHardDelete,
		Data:   webhook.ActionData{ID: id},
	}

	if err := h.client.SubmitAction(r.Context(), action); err != nil {
		h.logger.Error("appointment hard delete failed", "id", id, "error", err)
		writeError(w, http.StatusBadGateway, "No se pudo eliminar.")
		return
	}

	h.refreshAfterWrite(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cita eliminada."})
}

func (h *Handler) decodeSave(w http.ResponseWriter, r *http.Request) (SaveRequest, bool) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de solicitud inválido.")
		return req, false
	}
	if req.Title == "" || req.Service == "" {
		writeError(w, http.StatusBadRequest, "Nombre y servicio son obligatorios.")
		return req, false
	}
	if req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "La fecha y hora son obligatorias.")
		return req, false
	}
	return req, true
}

// refreshAfterWrite pulls the list once so the next read reflects the
// mutation without waiting for the poller. A failure here is non-fatal; the
// poller catches up on its next tick.
func (h *Handler) refreshAfterWrite(ctx context.Context) {
	if err := h.cache.Refresh(ctx); err != nil {
		h.logger.Warn("post-write refresh failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
