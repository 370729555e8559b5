package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"logpanel/auth"
	"logpanel/middleware"
	"logpanel/repositories"
	"logpanel/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth *AuthController
	Logs *LogsController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services, verifier *auth.Verifier, csrf *middleware.CSRFGuard, failRedirectURL string) *Controllers {
	return &Controllers{
		Auth: NewAuthController(services, verifier, csrf, failRedirectURL),
		Logs: NewLogsController(services),
	}
}

// writeJSON renders v as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// writeFailure renders the JSON failure payload of the error taxonomy
func writeFailure(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}

// writeStoreError maps a log store error onto the response taxonomy: a
// missing id is an explicit not-found, anything else is a generic 500 with
// the detail kept in the server log
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		writeFailure(w, http.StatusNotFound, "log entry not found")
		return
	}
	log.Printf("Log store error: %v", err)
	writeFailure(w, http.StatusInternalServerError, "internal error")
}
