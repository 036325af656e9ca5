package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/issue-dashboard/internal/config"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository/memory"
	"github.com/spec-kit/issue-dashboard/internal/session"
)

func newAuthService() (*AuthService, *session.MemoryPageStore) {
	pages := session.NewMemoryPageStore()
	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            4,
	}, memory.NewUserStore(), pages)
	return svc, pages
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, pages := newAuthService()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "admin",
		Password: "admin123",
		Name:     "Admin Manager",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)
	require.Equal(t, "1", user.ID)
	require.NotEqual(t, "admin123", user.PasswordHash, "passwords are stored hashed")

	result, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.SessionID)

	// Login lands the session on home.
	page, err := pages.GetPage(ctx, result.SessionID)
	require.NoError(t, err)
	require.Equal(t, domain.PageHome, page)

	claims, err := svc.TokenManager().ParseToken(result.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.Subject)
	require.Equal(t, domain.RoleManager, claims.Role)
	require.Equal(t, result.SessionID, claims.SessionID())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "admin",
		Password: "admin123",
		Name:     "Admin Manager",
		Role:     domain.RoleManager,
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{
		Username: "admin",
		Password: "other-pass",
		Name:     "Second Admin",
		Role:     domain.RoleWorker,
	})
	requireCode(t, err, "VALIDATION_FAILED")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1, "the duplicate must not be created")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newAuthService()

	cases := []RegisterInput{
		{Username: " ", Password: "secret1", Name: "Someone", Role: domain.RoleWorker},
		{Username: "short", Password: "abc", Name: "Someone", Role: domain.RoleWorker},
		{Username: "badrole", Password: "secret1", Name: "Someone", Role: domain.Role("admin")},
	}
	for _, input := range cases {
		_, err := svc.Register(ctx, input)
		requireCode(t, err, "VALIDATION_FAILED")
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "mike",
		Password: "mike123",
		Name:     "Mike Johnson",
		Role:     domain.RoleWorker,
	})
	require.NoError(t, err)

	// Unknown username and wrong password produce the same error.
	_, unknownErr := svc.Login(ctx, "nosuchuser", "whatever")
	requireCode(t, unknownErr, "UNAUTHORIZED")

	_, wrongErr := svc.Login(ctx, "mike", "wrong-password")
	requireCode(t, wrongErr, "UNAUTHORIZED")

	require.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestLogoutClearsSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, pages := newAuthService()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "sarah",
		Password: "sarah123",
		Name:     "Sarah Davis",
		Role:     domain.RoleWorker,
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "sarah", "sarah123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.SessionID))

	_, err = pages.GetPage(ctx, result.SessionID)
	require.ErrorIs(t, err, session.ErrNoSession)
}
