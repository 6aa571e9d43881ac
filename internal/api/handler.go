// Package api provides HTTP response helpers and service-level endpoints.
package api

import (
	"encoding/json"
	"net/http"
	"time"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// StatusHandler reports service liveness for uptime checks.
type StatusHandler struct {
	service string
}

// NewStatusHandler creates a status handler for the named service.
func NewStatusHandler(service string) *StatusHandler {
	return &StatusHandler{service: service}
}

// Status returns the liveness payload.
func (h *StatusHandler) Status(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "online",
		"service": h.service,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
