package middleware

import (
	"encoding/json"
	"net/http"

	"gitea.com/go-chi/session"
)

// KeyIsAdmin is the session key set to true after successful credential
// verification. It is the only claim the authorization gate inspects.
const KeyIsAdmin = "is_admin"

// IsAdmin reports whether the request's session carries admin rights
func IsAdmin(r *http.Request) bool {
	sess := session.GetSession(r)
	if sess == nil {
		return false
	}
	isAdmin, _ := sess.Get(KeyIsAdmin).(bool)
	return isAdmin
}

// RequireAdmin rejects any request whose session is not an admin session.
// It runs before handler logic, so a rejected request performs no side
// effects. CSRF mismatches and missing sessions share the same status class
// to avoid giving probes an oracle.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError sends the generic JSON failure payload used by all gate
// middleware. Internals never leak into the message.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
