package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no user exists with the requested ID.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when another user already holds the
	// email, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrStoreUnavailable is returned when the backing file cannot be
	// read or decoded.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStoreWriteFailed is returned when persisting the collection to
	// the backing file fails.
	ErrStoreWriteFailed = errors.New("store write failed")
)

// FieldError describes a single violated validation rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries the full list of violated rules for one payload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
