package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/labstock-backend/internal/users"
	pkgAuth "github.com/angelmondragon/labstock-backend/pkg/auth"
	"github.com/angelmondragon/labstock-backend/pkg/auth/session"
	"github.com/angelmondragon/labstock-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/labstock-backend/pkg/errors"
	"github.com/angelmondragon/labstock-backend/pkg/logger"
	"github.com/angelmondragon/labstock-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = config.JWTConfig{
	Secret:                 "secret",
	Issuer:                 "labstock",
	ExpirationMinutes:      30,
	RefreshTokenTTLMinutes: 120,
}

var fixedNow = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc      Service
	repo     *users.Repository
	sessions *session.Manager
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := session.NewMemoryStore()
	manager, err := session.NewManager(store, store, testJWT)
	require.NoError(t, err)
	repo := users.NewRepository()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		Hasher:         security.NewHasher(config.PasswordConfig{}),
		SessionManager: manager,
		JWTConfig:      testJWT,
		Logger:         logger.Nop(),
		Clock:          func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return fixture{svc: svc, repo: repo, sessions: manager}
}

func validRegistration() RegisterRequest {
	return RegisterRequest{
		Username:        "alice",
		Email:           "Alice@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func requireMessage(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func TestRegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := pkgAuth.ParseAccessTokenAllowExpired(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	active, err := f.sessions.HasSession(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, active)

	stored, err := f.repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestRegisterRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
		want   string
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "  " }, "Please fill in all fields"},
		{"missing confirmation", func(r *RegisterRequest) { r.ConfirmPassword = "" }, "Please fill in all fields"},
		{"mismatch", func(r *RegisterRequest) { r.ConfirmPassword = "secret2" }, "Passwords do not match"},
		{"short password", func(r *RegisterRequest) { r.Password, r.ConfirmPassword = "12345", "12345" }, "Password must be at least 6 characters"},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }, "Please enter a valid email address"},
		{"mismatch checked before length", func(r *RegisterRequest) { r.Password = "1" }, "Passwords do not match"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			req := validRegistration()
			tc.mutate(&req)
			_, err := f.svc.Register(context.Background(), req)
			requireMessage(t, err, pkgerrors.CodeValidation, tc.want)
			assert.Equal(t, 0, f.repo.Count())
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	again := validRegistration()
	again.Username = "ALICE"
	_, err = f.svc.Register(ctx, again)
	requireMessage(t, err, pkgerrors.CodeConflict, "Username already exists")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	resp, err := f.svc.Login(ctx, LoginRequest{Username: " Alice ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)

	claims, err := pkgAuth.ParseAccessTokenAllowExpired(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IssuedAt.Time.Equal(fixedNow))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	for _, req := range []LoginRequest{
		{Username: "alice", Password: "wrong-password"},
		{Username: "bob", Password: "secret1"},
		{Username: "", Password: "secret1"},
		{Username: "alice", Password: ""},
	} {
		_, err := f.svc.Login(ctx, req)
		requireMessage(t, err, pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.svc.EnsureAdmin(ctx, config.AdminConfig{Username: "admin", Email: "admin@inventory.com"})
	require.NoError(t, err)
	assert.Nil(t, user, "no password disables seeding")
	assert.Equal(t, 0, f.repo.Count())

	cfg := config.AdminConfig{Username: "admin", Email: "admin@inventory.com", Password: "admin123"}
	user, err = f.svc.EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, user)

	again, err := f.svc.EnsureAdmin(ctx, cfg)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 1, f.repo.Count())

	_, err = f.svc.Login(ctx, LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
}

type failingSessions struct{}

func (failingSessions) Generate(context.Context, string) (string, error) {
	return "", errors.New("store down")
}

func TestLoginSessionFailureIsInternal(t *testing.T) {
	ctx := context.Background()
	repo := users.NewRepository()
	hasher := security.NewHasher(config.PasswordConfig{})
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	_, err = repo.Create(ctx, users.CreateUserDTO{Username: "alice", PasswordHash: hash})
	require.NoError(t, err)

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		Hasher:         hasher,
		SessionManager: failingSessions{},
		JWTConfig:      testJWT,
		Logger:         logger.Nop(),
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "alice", Password: "secret1"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInternal), "got %v", err)
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
	_, err = NewService(ServiceParams{UserRepo: users.NewRepository()})
	require.Error(t, err)
}
