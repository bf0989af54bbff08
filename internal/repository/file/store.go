package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/userdir-server/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore persists the user collection as a single JSON file. All
// operations serialize on one mutex, so every load-mutate-persist
// sequence is atomic with respect to every other operation.
type UserStore struct {
	path string

	mu     sync.Mutex
	users  []model.User
	loaded bool
}

// NewUserStore creates a store backed by the file at path. The file is
// not touched until the first operation.
func NewUserStore(path string) *UserStore {
	return &UserStore{
		path: path,
	}
}

// load populates the cache from the backing file on first access. A
// missing or empty file is an empty collection. Once loaded, the file
// is never re-read; the cache is authoritative for the process lifetime.
func (s *UserStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.users = []model.User{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("%w: failed to read %s: %v", model.ErrStoreUnavailable, s.path, err)
	}

	if len(data) == 0 {
		s.users = []model.User{}
		s.loaded = true
		return nil
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", model.ErrStoreUnavailable, s.path, err)
	}

	s.users = users
	s.loaded = true
	return nil
}

// persist writes the whole collection to the backing file and swaps the
// cache only after the write succeeds. There is no staging or rename: a
// failed write may leave the file partially written, but the cache keeps
// the last successfully persisted state.
func (s *UserStore) persist(users []model.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode users: %v", model.ErrStoreWriteFailed, err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", model.ErrStoreWriteFailed, s.path, err)
	}

	s.users = users
	return nil
}

// List returns the full current collection.
func (s *UserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// GetByID returns the user with the given ID or model.ErrNotFound.
func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return model.User{}, err
	}

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return model.User{}, model.ErrNotFound
}

// Create assigns a fresh ID, appends the user and persists the
// collection. Fails with model.ErrDuplicateEmail if any existing user
// holds the email under case-insensitive comparison.
func (s *UserStore) Create(_ context.Context, params model.UserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return model.User{}, err
	}

	if s.emailTaken(params.Email, uuid.Nil) {
		return model.User{}, model.ErrDuplicateEmail
	}

	user := model.User{
		ID:        uuid.New(),
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	}

	users := make([]model.User, len(s.users), len(s.users)+1)
	copy(users, s.users)
	users = append(users, user)

	if err := s.persist(users); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Update replaces the mutable fields of the user with the given ID and
// persists the collection. The ID never changes. Fails with
// model.ErrNotFound if the ID is absent and with model.ErrDuplicateEmail
// if a different user holds the email.
func (s *UserStore) Update(_ context.Context, id uuid.UUID, params model.UserParams) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return model.User{}, err
	}

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.User{}, model.ErrNotFound
	}

	if s.emailTaken(params.Email, id) {
		return model.User{}, model.ErrDuplicateEmail
	}

	users := make([]model.User, len(s.users))
	copy(users, s.users)
	users[idx] = model.User{
		ID:        id,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
	}

	if err := s.persist(users); err != nil {
		return model.User{}, err
	}

	return users[idx], nil
}

// Delete removes the user with the given ID and persists the collection.
// Fails with model.ErrNotFound if the ID is absent.
func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ErrNotFound
	}

	users := make([]model.User, 0, len(s.users)-1)
	users = append(users, s.users[:idx]...)
	users = append(users, s.users[idx+1:]...)

	return s.persist(users)
}

// emailTaken reports whether a user other than exclude holds the email,
// compared case-insensitively. Caller must hold the lock.
func (s *UserStore) emailTaken(email string, exclude uuid.UUID) bool {
	for _, u := range s.users {
		if u.ID != exclude && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}
