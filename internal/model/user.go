package model

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, params UserParams) (User, error)
	Update(ctx context.Context, id uuid.UUID, params UserParams) (User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user record.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// UserParams contains the mutable fields of a user. The store assigns
// the ID on create and never changes it on update.
type UserParams struct {
	FirstName string
	LastName  string
	Email     string
}

// UserPage represents one page of the user collection.
type UserPage struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
	Items      []User
}
