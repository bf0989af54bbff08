package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dtroode/userdir-server/internal/logger"
	"github.com/dtroode/userdir-server/internal/model"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 200
)

// UserService defines business operations for user management.
type UserService interface {
	List(ctx context.Context, page, pageSize int) (model.UserPage, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Create(ctx context.Context, params model.UserParams) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, params model.UserParams) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Users handles HTTP endpoints for user management.
type Users struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUsers creates a new Users handler.
func NewUsers(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *Users {
	return &Users{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// userPayload is the request body for create and update.
type userPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (p userPayload) toParams() model.UserParams {
	return model.UserParams{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}
}

// userResponse is the response body for a single user.
type userResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// listUsersResponse is the response body for the list endpoint.
type listUsersResponse struct {
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Items      []userResponse `json:"items"`
}

// List returns one page of users.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		h.writeMessage(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	pageSize, err := queryInt(r, "pageSize", defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		h.writeMessage(w, http.StatusBadRequest, fmt.Sprintf("pageSize must be between 1 and %d", maxPageSize))
		return
	}

	result, err := h.userService.List(r.Context(), page, pageSize)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	items := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, toUserResponse(u))
	}

	h.writeJSON(w, http.StatusOK, listUsersResponse{
		Page:       result.Page,
		PageSize:   result.PageSize,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Items:      items,
	})
}

// Get returns a single user by ID.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, toUserResponse(user))
}

// Create stores a new user and points at it with a Location header.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Create(r.Context(), payload.toParams())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/users/"+user.ID.String())
	h.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Update replaces the fields of an existing user.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.userService.Update(r.Context(), id, payload.toParams()); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a user by ID.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeMessage(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health reports process liveness. Served without authentication.
func (h *Users) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
