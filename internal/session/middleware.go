package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Require admits requests carrying a valid marker for role and stores its subject
// on the request context. Others get 401 with the role's login path.
func (m *Manager) Require(role Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := m.Subject(r, role)
		if err != nil {
			slog.Debug("Session rejected", "role", role, "path", r.URL.Path, "err", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":    "login required",
				"redirect": role.LoginPath(),
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), role, subject)))
	})
}
