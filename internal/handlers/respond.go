package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"docchat/internal/approach"
	"docchat/internal/contextutil"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeApproachError maps approach errors to HTTP status codes: validation
// failures are the caller's fault, upstream failures map to a gateway
// error, everything else is internal.
func writeApproachError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "approach error", "error", err)

	var validationErr *approach.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}
	if errors.Is(err, approach.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if errors.Is(err, approach.ErrExternalService) || errors.Is(err, approach.ErrUpstreamParse) {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}
	writeError(w, http.StatusInternalServerError, defaultMsg)
}
