package handler

// RESPONSE HELPERS:
// Every JSON response in the API goes through these functions so the shape
// stays uniform: errors always carry `error`, `timestamp` and an optional
// `details`; successes produced by writeSuccess carry `success`, `message`,
// `data` and `timestamp`. The dashboard's fetch wrapper relies on exactly
// these fields.
//
// writeError is also the single place domain errors become HTTP status
// codes. Services return apperror sentinels; nothing below the handler
// layer knows what a 429 is.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/legalforensics/leadcapture/internal/apperror"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
	Details   any    `json:"details,omitempty"`
}

// SuccessResponse is the standard enveloped success payload, used where the
// caller expects a confirmation rather than a resource (deletion, empty
// export).
type SuccessResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write; keep that order here and nowhere else.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone; logging is all that's left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeSuccess sends the enveloped success payload.
func writeSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// writeError maps a domain error to its HTTP status and sends the standard
// error payload.
//
// Duplicate maps to 400 rather than 409 — the dashboard treats it as a
// form-validation failure, and changing the status would break its error
// handling. Unknown errors become an opaque 500: raw error strings can leak
// paths and internals and never reach the client.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message

		switch {
		case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrDuplicate):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrRateLimited):
			status = http.StatusTooManyRequests
		case errors.Is(err, apperror.ErrConfig), errors.Is(err, apperror.ErrStorage):
			status = http.StatusInternalServerError
		default:
			// Upstream errors are normally absorbed by the service layer;
			// one reaching here is a bug, reported as a plain 500.
			message = "Internal server error"
		}
	}

	resp := ErrorResponse{
		Error:     message,
		Timestamp: timestamp(),
	}
	if appErr != nil && appErr.Field != "" {
		resp.Details = map[string]string{"field": appErr.Field}
	}

	writeJSON(w, status, resp)
}
