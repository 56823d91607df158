// Package handler contains the HTTP handlers. Handlers decode and
// validate requests, call services, and translate domain errors into
// RFC 9457 problem responses.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forkcast/forkcast/internal/domain"
	"github.com/forkcast/forkcast/pkg/problem"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps domain errors onto problem responses. fallback
// is the 500 detail shown when the error is not a known domain error.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Write(w)
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("Resource not found").Write(w)
	case errors.Is(err, domain.ErrConflict):
		problem.Conflict(err.Error()).Write(w)
	case errors.Is(err, domain.ErrProviderUnavailable):
		problem.New(http.StatusServiceUnavailable, "service-unavailable",
			"Service Unavailable", "This feature requires an external provider that is not configured.").Write(w)
	default:
		problem.InternalError(fallback).Write(w)
	}
}
