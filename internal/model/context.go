package model

import "context"

// ContextManager sets and retrieves the per-request trace ID.
type ContextManager interface {
	SetTraceID(ctx context.Context, traceID string) context.Context
	GetTraceID(ctx context.Context) (string, bool)
}
