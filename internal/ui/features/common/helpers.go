// Package common provides shared response helpers for UI features.
package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/leapstack-labs/pins/pkg/core"
)

// MaxBodyBytes caps the size of JSON request bodies.
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned when a request body exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes {"ok": true} merged with fields.
func WriteOK(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	WriteJSON(w, http.StatusOK, body)
}

// WriteFail writes {"ok": false, "error": msg}.
func WriteFail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{OK: false, Error: msg})
}

// WriteError maps err onto a status code. Validation errors are echoed back,
// anything else is logged and reported as an internal error.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, core.ErrMalformedInput):
		WriteFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrBodyTooLarge):
		WriteFail(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, core.ErrPermissionDenied):
		WriteFail(w, http.StatusForbidden, "forbidden")
	default:
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		WriteFail(w, http.StatusInternalServerError, "internal error")
	}
}
