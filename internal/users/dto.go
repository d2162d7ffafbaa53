package users

import (
	"time"

	"github.com/google/uuid"
)

// User is the stored account. PasswordHash never leaves the auth package.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

func FromModel(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	var lastLogin *time.Time
	if u.LastLoginAt != nil {
		at := *u.LastLoginAt
		lastLogin = &at
	}
	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		LastLoginAt: lastLogin,
		CreatedAt:   u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel(id uuid.UUID, now time.Time) *User {
	return &User{
		ID:           id,
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    now,
	}
}
