package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/userdir-server/internal/api/http/reqcontext"
	"github.com/dtroode/userdir-server/internal/model"
	"github.com/dtroode/userdir-server/internal/testutil"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, page, pageSize int) (model.UserPage, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).(model.UserPage), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, params model.UserParams) (model.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, params model.UserParams) (model.User, error) {
	args := m.Called(ctx, id, params)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestHandler(svc UserService) http.Handler {
	h := NewUsers(svc, reqcontext.NewManager(), testutil.MakeNoopLogger())

	mux := chi.NewRouter()
	mux.Get("/users", h.List)
	mux.Post("/users", h.Create)
	mux.Get("/users/{id}", h.Get)
	mux.Put("/users/{id}", h.Update)
	mux.Delete("/users/{id}", h.Delete)
	mux.Get("/health", h.Health)
	return mux
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestUsers_List_QueryValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK},
		{name: "zero page", query: "?page=0", wantStatus: http.StatusBadRequest},
		{name: "negative page", query: "?page=-1", wantStatus: http.StatusBadRequest},
		{name: "non-numeric page", query: "?page=abc", wantStatus: http.StatusBadRequest},
		{name: "zero page size", query: "?pageSize=0", wantStatus: http.StatusBadRequest},
		{name: "page size above cap", query: "?pageSize=201", wantStatus: http.StatusBadRequest},
		{name: "page size at cap", query: "?pageSize=200", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUserService)
			svc.On("List", mock.Anything, mock.Anything, mock.Anything).
				Return(model.UserPage{Page: 1, PageSize: 50, Items: []model.User{}}, nil).Maybe()

			rec := httptest.NewRecorder()
			newTestHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Contains(t, decodeBody(t, rec), "message")
			}
		})
	}
}

func TestUsers_List_Body(t *testing.T) {
	t.Parallel()

	users := []model.User{
		{ID: uuid.New(), FirstName: "Ana", LastName: "Li", Email: "ana@x.com"},
		{ID: uuid.New(), FirstName: "Bo", LastName: "Chen", Email: "bo@x.com"},
	}

	svc := new(MockUserService)
	svc.On("List", mock.Anything, 2, 3).Return(model.UserPage{
		Page:       2,
		PageSize:   3,
		Total:      10,
		TotalPages: 4,
		Items:      users,
	}, nil)

	rec := httptest.NewRecorder()
	newTestHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users?page=2&pageSize=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["pageSize"])
	assert.Equal(t, float64(10), body["total"])
	assert.Equal(t, float64(4), body["totalPages"])
	assert.Len(t, body["items"], 2)
}

func TestUsers_Get(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	user := model.User{ID: id, FirstName: "Ana", LastName: "Li", Email: "ana@x.com"}

	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{name: "found", target: "/users/" + id.String(), wantStatus: http.StatusOK},
		{name: "absent", target: "/users/" + id.String(), serviceErr: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store unavailable", target: "/users/" + id.String(), serviceErr: model.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "malformed id", target: "/users/not-a-uuid", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUserService)
			if tt.serviceErr != nil {
				svc.On("Get", mock.Anything, id).Return(model.User{}, fmt.Errorf("failed to get user by id: %w", tt.serviceErr))
			} else {
				svc.On("Get", mock.Anything, id).Return(user, nil).Maybe()
			}

			rec := httptest.NewRecorder()
			newTestHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				body := decodeBody(t, rec)
				assert.Equal(t, id.String(), body["id"])
				assert.Equal(t, "ana@x.com", body["email"])
			}
		})
	}
}

func TestUsers_Create(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	params := model.UserParams{FirstName: "Ana", LastName: "Li", Email: "ana@x.com"}
	payload := `{"firstName":"Ana","lastName":"Li","email":"ana@x.com"}`

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "created", body: payload, wantStatus: http.StatusCreated},
		{name: "malformed body", body: "{", wantStatus: http.StatusBadRequest},
		{name: "validation failure", body: payload, serviceErr: &model.ValidationError{Fields: []model.FieldError{{Field: "email", Message: "is required"}}}, wantStatus: http.StatusBadRequest},
		{name: "duplicate email", body: payload, serviceErr: model.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "store write failed", body: payload, serviceErr: model.ErrStoreWriteFailed, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUserService)
			if tt.serviceErr != nil {
				svc.On("Create", mock.Anything, params).Return(model.User{}, fmt.Errorf("failed to create user: %w", tt.serviceErr))
			} else {
				created := model.User{ID: id, FirstName: "Ana", LastName: "Li", Email: "ana@x.com"}
				svc.On("Create", mock.Anything, params).Return(created, nil).Maybe()
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			newTestHandler(svc).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "/users/"+id.String(), rec.Header().Get("Location"))
				body := decodeBody(t, rec)
				assert.Equal(t, id.String(), body["id"])
			} else {
				assert.Contains(t, decodeBody(t, rec), "message")
			}
		})
	}
}

func TestUsers_Update(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	params := model.UserParams{FirstName: "Ana", LastName: "Lee", Email: "ana@x.com"}
	payload := `{"firstName":"Ana","lastName":"Lee","email":"ana@x.com"}`

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "updated", wantStatus: http.StatusNoContent},
		{name: "not found", serviceErr: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "duplicate email", serviceErr: model.ErrDuplicateEmail, wantStatus: http.StatusConflict},
		{name: "store unavailable", serviceErr: model.ErrStoreUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected failure", serviceErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUserService)
			if tt.serviceErr != nil {
				svc.On("Update", mock.Anything, id, params).Return(model.User{}, fmt.Errorf("failed to update user: %w", tt.serviceErr))
			} else {
				svc.On("Update", mock.Anything, id, params).Return(model.User{ID: id}, nil)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/users/"+id.String(), strings.NewReader(payload))
			newTestHandler(svc).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusInternalServerError {
				body := decodeBody(t, rec)
				assert.Contains(t, body, "error")
				assert.Contains(t, body, "traceId")
				assert.Equal(t, "/users/"+id.String(), body["path"])
			}
		})
	}
}

func TestUsers_Delete(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusNoContent},
		{name: "absent", serviceErr: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "store write failed", serviceErr: model.ErrStoreWriteFailed, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockUserService)
			if tt.serviceErr != nil {
				svc.On("Delete", mock.Anything, id).Return(fmt.Errorf("failed to delete user: %w", tt.serviceErr))
			} else {
				svc.On("Delete", mock.Anything, id).Return(nil)
			}

			rec := httptest.NewRecorder()
			newTestHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/"+id.String(), nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestUsers_Health(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestHandler(new(MockUserService)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}
