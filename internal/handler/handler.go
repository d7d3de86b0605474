package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"shopfront/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// statusForDomainError maps a domain error to an HTTP status code.
func statusForDomainError(err *model.DomainError) int {
	switch err.Code {
	case model.ErrCodeItemNotFound, model.ErrCodeWishlistNotFound:
		return http.StatusNotFound
	case model.ErrCodeSyncFailed:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
