package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"quillpad/app/apperrors"
)

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse acknowledges deletes and other bodiless successes.
type messageResponse struct {
	Message string `json:"message"`
}

func sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// statusForError maps the error taxonomy onto HTTP status codes. Anything
// outside the taxonomy is treated as an internal failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// sendError writes the JSON error body for err. Internal failures are
// logged and their detail replaced with a generic message so storage
// internals never leak to clients.
func sendError(w http.ResponseWriter, log *slog.Logger, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", slog.String("error", err.Error()))
		msg = "Internal server error"
	}
	sendJSON(w, status, errorResponse{Error: msg})
}
