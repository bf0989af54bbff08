package reqcontext

import "context"

type contextKey string

// traceIDKey is the context key under which the request trace ID is stored.
const traceIDKey contextKey = "trace_id"

// Manager sets and retrieves per-request values from a request context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetTraceID returns a new context carrying the trace ID.
func (m *Manager) SetTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context. The boolean
// reports whether one was set.
func (m *Manager) GetTraceID(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(traceIDKey).(string)
	if !ok || traceID == "" {
		return "", false
	}
	return traceID, true
}
