package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-dashboard/internal/api/dto"
	"github.com/spec-kit/issue-dashboard/internal/auth"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/service"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// SessionHandler exposes the navigation guard over HTTP. The guard is
// evaluated against the caller's current principal on every request:
// an anonymous caller gets the unauthenticated rules, an authenticated
// one the rules for their role.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs handler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Navigate handles POST /api/session/navigate. The route is reachable
// without authentication so login/register navigation works.
func (h *SessionHandler) Navigate(c *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	var (
		user      *domain.User
		sessionID string
	)
	if principal, ok := auth.PrincipalFromContext(c); ok {
		user = principal.User
		sessionID = principal.SessionID
	}

	result, err := h.sessions.Navigate(c.Context(), user, sessionID, domain.Page(req.Page))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NavigateResponse{
		Effect:      string(result.Decision.Effect),
		Target:      string(result.Decision.Target),
		CurrentPage: string(result.CurrentPage),
	}})
}
