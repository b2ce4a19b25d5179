package bot

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Handler serves the bot state endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates the bot handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes returns the bot router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Set)
	return r
}

type stateView struct {
	Active bool `json:"active"`
}

// Get reports the current bot state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateView{Active: h.service.Active()})
}

// Set flips the bot state.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	var req stateView
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Cuerpo de solicitud inválido."})
		return
	}

	if err := h.service.SetActive(r.Context(), req.Active); err != nil {
		h.logger.Error("bot toggle failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "Error de conexión al cambiar estado del bot."})
		return
	}

	writeJSON(w, http.StatusOK, stateView{Active: h.service.Active()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
