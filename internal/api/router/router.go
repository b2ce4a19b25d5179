// Package router wires the HTTP surface of the admin API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dentalspace/clinic-admin-api/internal/appointments"
	"github.com/dentalspace/clinic-admin-api/internal/auth"
	"github.com/dentalspace/clinic-admin-api/internal/bot"
	"github.com/dentalspace/clinic-admin-api/internal/catalog"
	"github.com/dentalspace/clinic-admin-api/internal/doctors"
	httpmiddleware "github.com/dentalspace/clinic-admin-api/internal/http/middleware"
	"github.com/dentalspace/clinic-admin-api/internal/session"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	Sessions            *session.Service
	AuthHandler         *auth.Handler
	AppointmentsHandler *appointments.Handler
	BotHandler          *bot.Handler
	DoctorsHandler      *doctors.Handler
	CatalogHandler      *catalog.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Login rate limiting, per IP.
	LoginRateLimit float64
	LoginRateBurst int
}

// New creates the Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		public.Route("/auth", func(r chi.Router) {
			limit := cfg.LoginRateLimit
			if limit <= 0 {
				limit = 1
			}
			burst := cfg.LoginRateBurst
			if burst <= 0 {
				burst = 5
			}
			r.With(httpmiddleware.RateLimit(limit, burst)).Post("/login", cfg.AuthHandler.Login)
			r.Get("/session", cfg.AuthHandler.Session)
			r.Post("/logout", cfg.AuthHandler.Logout)
		})
	})

	// Everything else requires a session.
	r.Group(func(private chi.Router) {
		private.Use(httpmiddleware.RequireSession(cfg.Sessions))
		private.Mount("/appointments", cfg.AppointmentsHandler.Routes())
		private.Mount("/bot", cfg.BotHandler.Routes())
		if cfg.DoctorsHandler != nil {
			private.Mount("/doctors", cfg.DoctorsHandler.Routes())
		}
		private.Mount("/catalog", cfg.CatalogHandler.Routes())
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
