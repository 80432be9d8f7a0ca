package handler

import (
	"encoding/json"
	"net/http"

	"kart-pricing/internal/middleware"
	"kart-pricing/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code. An encode
// failure is logged; the status line is already on the wire, so nothing
// more can be sent to the client.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response body")
	}
}

// writeError writes a standardised error response. The request ID set by the
// middleware rides along as the correlation ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	logger.Error().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: correlationID,
	}, logger)
}
