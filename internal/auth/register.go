package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/labstock-backend/internal/users"
	"github.com/angelmondragon/labstock-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Register creates the account and signs it in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := checkRegistration(username, email, req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	user, err := s.create(ctx, username, email, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	resp, err := s.issue(ctx, user, now)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "auth.register")
	return resp, nil
}

// EnsureAdmin seeds the bootstrap account. An existing user with the same
// username is left as is.
func (s *service) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (*users.UserDTO, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	username := strings.TrimSpace(cfg.Username)
	if existing, err := s.users.FindByUsername(ctx, username); err == nil {
		return users.FromModel(existing), nil
	} else if !errors.Is(err, users.ErrNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}

	user, err := s.create(ctx, username, strings.ToLower(strings.TrimSpace(cfg.Email)), cfg.Password)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "auth.admin_seeded")
	return users.FromModel(user), nil
}

func (s *service) create(ctx context.Context, username, email, password string) (*users.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, users.ErrDuplicate) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Username already exists").
				WithDetails(map[string]any{"field": "username"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return user, nil
}

// checkRegistration applies the sign-up rules in order; the first failure is
// returned.
func checkRegistration(username, email, password, confirm string) error {
	if username == "" || email == "" || password == "" || confirm == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Please fill in all fields")
	}
	if password != confirm {
		return registrationError("confirm_password", "Passwords do not match")
	}
	if err := validate.Var(password, "min=6"); err != nil {
		return registrationError("password", "Password must be at least 6 characters")
	}
	if err := validate.Var(email, "email"); err != nil {
		return registrationError("email", "Please enter a valid email address")
	}
	return nil
}

func registrationError(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
