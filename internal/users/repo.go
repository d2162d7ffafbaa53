package users

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username already taken")
)

// Repository keeps accounts in process memory. Usernames are unique ignoring
// case.
type Repository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*User
	byUsername map[string]uuid.UUID
	now        func() time.Time
}

// NewRepository constructs an empty users repo.
func NewRepository() *Repository {
	return &Repository{
		byID:       make(map[uuid.UUID]*User),
		byUsername: make(map[string]uuid.UUID),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new user and returns a copy of it.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := usernameKey(dto.Username)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[key]; exists {
		return nil, ErrDuplicate
	}
	user := dto.ToModel(uuid.New(), r.now())
	r.byID[user.ID] = user
	r.byUsername[key] = user.ID
	return clone(user), nil
}

// FindByUsername retrieves the user matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[usernameKey(username)]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r.byID[id]), nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(user), nil
}

// UpdateLastLogin refreshes the user's last login timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	user.LastLoginAt = &at
	return nil
}

// Count returns the number of registered users.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func clone(u *User) *User {
	cp := *u
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		cp.LastLoginAt = &at
	}
	return &cp
}
