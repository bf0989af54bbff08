package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/userdir-server/internal/model"
)

// handleError maps a service error to its HTTP response. Anything not in
// the taxonomy becomes a 500 carrying the request trace ID, mirroring
// the body shape of the outer recovery middleware.
func (h *Users) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		h.writeMessage(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		h.writeMessage(w, http.StatusNotFound, "user not found")
	case errors.Is(err, model.ErrDuplicateEmail):
		h.writeMessage(w, http.StatusConflict, "email already exists")
	case errors.Is(err, model.ErrStoreUnavailable), errors.Is(err, model.ErrStoreWriteFailed):
		h.writeMessage(w, http.StatusServiceUnavailable, "user store unavailable")
	default:
		traceID, _ := h.contextManager.GetTraceID(r.Context())
		h.logger.Error("unexpected handler error",
			"trace_id", traceID,
			"path", r.URL.Path,
			"error", err.Error())
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "internal server error",
			"traceId": traceID,
			"path":    r.URL.Path,
		})
	}
}

// writeMessage writes the standard {"message": ...} error body.
func (h *Users) writeMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}

func (h *Users) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err.Error())
	}
}
