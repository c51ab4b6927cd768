package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/asset-inventory/internal/repo"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// Stable machine-readable error kinds returned alongside the message.
const (
	KindNotFound            = "not_found"
	KindAlreadyExists       = "already_exists"
	KindInvalidReference    = "invalid_reference"
	KindConstraintViolation = "constraint_violation"
	KindValidationError     = "validation_error"
	KindUpstreamUnavailable = "upstream_unavailable"
	KindInternal            = "internal"
)

// JSONError sends a JSON error response with a stable "kind" and a human-readable "error".
func JSONError(w http.ResponseWriter, kind, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"kind": kind, "error": message})
}

// JSONValidationError sends a validation error with optional field-level details.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"kind": KindValidationError, "error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// StoreError maps a store-layer error onto the error taxonomy and writes it.
// entity names the resource for not-found / already-exists messages.
func StoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		JSONError(w, KindNotFound, entity+" not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrAlreadyExists):
		JSONError(w, KindAlreadyExists, entity+" already exists", http.StatusBadRequest)
	case errors.Is(err, repo.ErrInvalidReference):
		JSONError(w, KindInvalidReference, "referenced entity is missing or still in use", http.StatusBadRequest)
	case errors.Is(err, repo.ErrConstraintViolation):
		JSONError(w, KindConstraintViolation, "uniqueness constraint violated", http.StatusConflict)
	default:
		slog.Error("store error", "entity", entity, "error", err)
		JSONError(w, KindInternal, ErrMessageInternal, http.StatusInternalServerError)
	}
}
