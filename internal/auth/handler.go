// Package auth implements the dashboard login flow. There is a single admin
// account configured by environment; the password is checked against a
// bcrypt hash, never stored in clear.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalspace/clinic-admin-api/internal/session"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

// Credential errors are deliberately identical for a wrong email and a wrong
// password.
const errCredentials = "Credenciales incorrectas"

// Handler serves login, logout, and session introspection.
type Handler struct {
	sessions     *session.Service
	adminEmail   string
	passwordHash string
	secureCookie bool
	logger       *logging.Logger
}

// NewHandler creates the auth handler. passwordHash is a bcrypt hash of the
// admin password. secureCookie should be true everywhere except local dev.
func NewHandler(sessions *session.Service, adminEmail, passwordHash string, secureCookie bool, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sessions:     sessions,
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Routes returns the auth router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Get("/session", h.Session)
	r.Post("/logout", h.Logout)
	return r
}

// LoginRequest is the login body. Remember defaults to true, matching the
// dashboard checkbox.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember *bool  `json:"remember"`
}

// Login verifies credentials and sets the session cookie. With remember the
// cookie persists for the long session TTL; without it the cookie is
// session-scoped and dies with the browser.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo de solicitud inválido.")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password))
	if !emailOK || passErr != nil {
		h.logger.Warn("login rejected", "email", req.Email)
		writeError(w, http.StatusUnauthorized, errCredentials)
		return
	}

	remember := req.Remember == nil || *req.Remember
	sess, err := h.sessions.Issue(r.Context(), req.Email, remember)
	if err != nil {
		h.logger.Error("session issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "No se pudo iniciar sesión.")
		return
	}

	cookie := &http.Cookie{
		Name:     session.CookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = int(sess.TTL.Seconds())
	}
	http.SetCookie(w, cookie)

	h.logger.Info("login succeeded", "remember", remember)
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

// Session reports whether the request carries a valid session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token := tokenFromRequest(r)
	if token == "" {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	if _, err := h.sessions.Validate(r.Context(), token); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

// Logout revokes the session server-side and expires the cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := tokenFromRequest(r); token != "" {
		if err := h.sessions.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("session revoke failed", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	const prefix = "Bearer "
	if auth := r.Header.Get("Authorization"); len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
