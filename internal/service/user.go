package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/userdir-server/internal/logger"
	"github.com/dtroode/userdir-server/internal/model"
)

// Users implements business operations over the user store.
type Users struct {
	store  model.UserStore
	logger *logger.Logger
}

// NewUsers creates a new Users service.
func NewUsers(store model.UserStore, logger *logger.Logger) *Users {
	return &Users{
		store:  store,
		logger: logger,
	}
}

// List returns one page of the user collection. Pagination is applied
// after the full list is fetched; the store itself does not paginate.
func (s *Users) List(ctx context.Context, page, pageSize int) (model.UserPage, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return model.UserPage{}, fmt.Errorf("failed to list users: %w", err)
	}

	total := len(users)
	totalPages := (total + pageSize - 1) / pageSize

	offset := (page - 1) * pageSize
	if offset > total {
		offset = total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}

	return model.UserPage{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		Items:      users[offset:end],
	}, nil
}

// Get returns the user with the given ID.
func (s *Users) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// Create validates params and stores a new user.
func (s *Users) Create(ctx context.Context, params model.UserParams) (model.User, error) {
	if err := validateUserParams(params); err != nil {
		return model.User{}, err
	}

	user, err := s.store.Create(ctx, params)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("user created", "user_id", user.ID)

	return user, nil
}

// Update validates params and replaces the fields of an existing user.
func (s *Users) Update(ctx context.Context, id uuid.UUID, params model.UserParams) (model.User, error) {
	if err := validateUserParams(params); err != nil {
		return model.User{}, err
	}

	user, err := s.store.Update(ctx, id, params)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Debug("user updated", "user_id", user.ID)

	return user, nil
}

// Delete removes the user with the given ID.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debug("user deleted", "user_id", id)

	return nil
}
