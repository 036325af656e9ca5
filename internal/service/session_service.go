package service

import (
	"context"
	"errors"

	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/session"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// SessionService applies navigation decisions to session page state.
// The decision itself is the pure domain.Navigate function, evaluated
// fresh on every intent; this service only persists the outcome.
type SessionService struct {
	pages session.PageStore
}

// NewSessionService creates the service.
func NewSessionService(pages session.PageStore) *SessionService {
	return &SessionService{pages: pages}
}

// NavigationResult reports the decision and the page the session is on
// after applying it.
type NavigationResult struct {
	Decision    domain.NavigationDecision
	CurrentPage domain.Page
}

// Navigate evaluates the guard for user and target and moves the
// session accordingly. On deny the session stays where it was.
func (s *SessionService) Navigate(ctx context.Context, user *domain.User, sessionID string, target domain.Page) (*NavigationResult, error) {
	if !domain.ValidPage(target) {
		return nil, apperrors.NewValidationError("unknown page", map[string]any{"page": target})
	}

	decision := domain.Navigate(user, target)

	switch decision.Effect {
	case domain.NavigationAllow, domain.NavigationRedirect:
		if sessionID != "" {
			if err := s.pages.SetPage(ctx, sessionID, decision.Target); err != nil {
				return nil, apperrors.NewUnavailable(err)
			}
		}
		return &NavigationResult{Decision: decision, CurrentPage: decision.Target}, nil
	default:
		current, err := s.currentPage(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &NavigationResult{Decision: decision, CurrentPage: current}, nil
	}
}

// CurrentPage returns the page the session is on, defaulting to login
// when no state exists.
func (s *SessionService) CurrentPage(ctx context.Context, sessionID string) (domain.Page, error) {
	return s.currentPage(ctx, sessionID)
}

func (s *SessionService) currentPage(ctx context.Context, sessionID string) (domain.Page, error) {
	if sessionID == "" {
		return domain.PageLogin, nil
	}
	page, err := s.pages.GetPage(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return domain.PageLogin, nil
		}
		return "", apperrors.NewUnavailable(err)
	}
	return page, nil
}
