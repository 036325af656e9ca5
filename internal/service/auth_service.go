package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/issue-dashboard/internal/auth"
	"github.com/spec-kit/issue-dashboard/internal/config"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	"github.com/spec-kit/issue-dashboard/internal/session"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

const minPasswordLength = 6

// AuthService coordinates registration and login flows. Passwords are
// stored bcrypt-hashed; login failures are reported with one generic
// message regardless of whether the username exists.
type AuthService struct {
	users      repository.UserRepository
	pages      session.PageStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, pages session.PageStore) *AuthService {
	return &AuthService{
		users:      users,
		pages:      pages,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput carries registration fields.
type RegisterInput struct {
	Username string
	Password string
	Name     string
	Role     domain.Role
}

// LoginResult bundles the authenticated user with session credentials.
type LoginResult struct {
	User      *domain.User
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// Register creates a new account. Usernames are unique; a taken
// username is a validation failure, not a server error.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	name := strings.TrimSpace(input.Name)

	if username == "" || name == "" {
		return nil, apperrors.NewValidationError("username and name required", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password too short", map[string]any{"min_length": minPasswordLength})
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewValidationError("username already exists", map[string]any{"username": username})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnavailable(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError("username already exists", map[string]any{"username": username})
		}
		return nil, apperrors.NewUnavailable(err)
	}
	return user, nil
}

// Login authenticates by username and password. On success a session
// is started on the home page.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, apperrors.NewUnavailable(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid username or password")
	}

	token, sessionID, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.pages.SetPage(ctx, sessionID, domain.PageHome); err != nil {
		return nil, apperrors.NewUnavailable(err)
	}

	return &LoginResult{User: user, Token: token, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Logout clears the session's page state.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.pages.Clear(ctx, sessionID); err != nil {
		return apperrors.NewUnavailable(err)
	}
	return nil
}

// GetUser returns a single account.
func (s *AuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.NewUnavailable(err)
	}
	return user, nil
}

// ListUsers returns all accounts in insertion order.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable(err)
	}
	return users, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
