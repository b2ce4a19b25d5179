package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dentalspace/clinic-admin-api/internal/session"
)

// RequireSession rejects requests that lack a valid session. The token is
// read from the session cookie or, for non-browser clients, a bearer header.
func RequireSession(sessions *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				unauthorized(w)
				return
			}
			if _, err := sessions.Validate(r.Context(), token); err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(session.CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Sesión no válida."})
}
