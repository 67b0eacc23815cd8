package handler

import (
	"encoding/json"
	"net/http"

	"foodexpress/internal/model"

	"github.com/rs/zerolog"
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

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a domain error to a 4xx response, or falls back
// to a generic 500 for anything else.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	if derr, ok := err.(*model.DomainError); ok {
		status := http.StatusBadRequest
		if derr.Code == model.ErrCodeUnauthorised {
			status = http.StatusUnauthorized
		}
		if derr.Code == model.ErrCodeDuplicateOrderKey {
			status = http.StatusConflict
		}
		writeError(w, status, derr.Code, derr.Message, logger)
		return
	}
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}
