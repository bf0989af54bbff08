package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/userdir-server/internal/logger"
	"github.com/dtroode/userdir-server/internal/model"
)

// Recover is the outermost pipeline stage. It assigns every request a
// trace ID and converts any panic escaping the inner stages into a
// well-formed 500 response carrying that trace ID.
type Recover struct {
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewRecover creates a new Recover middleware.
func NewRecover(contextManager model.ContextManager, logger *logger.Logger) *Recover {
	return &Recover{contextManager: contextManager, logger: logger}
}

// Handle wraps next with trace ID assignment and the panic backstop.
func (m *Recover) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.NewString()
		r = r.WithContext(m.contextManager.SetTraceID(r.Context(), traceID))

		defer func() {
			if rec := recover(); rec != nil {
				m.logger.Error("panic recovered",
					"trace_id", traceID,
					"path", r.URL.Path,
					"panic", rec)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error":   "internal server error",
					"traceId": traceID,
					"path":    r.URL.Path,
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
