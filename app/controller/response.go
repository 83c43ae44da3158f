package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"outfit-studio/service"
)

// errorResponse is the JSON body of every failed API call
type errorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

// writeJSON encodes v as the response body with the given status
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps a service error to its HTTP status.
// Upstream failures are reported as 502 and flagged as retryable.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var upstream *service.UpstreamError
	switch {
	case errors.As(err, &upstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: upstream.Error(), Retryable: true})
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
