package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-dashboard/internal/api/dto"
	"github.com/spec-kit/issue-dashboard/internal/auth"
	"github.com/spec-kit/issue-dashboard/internal/domain"
	"github.com/spec-kit/issue-dashboard/internal/repository"
	"github.com/spec-kit/issue-dashboard/internal/service"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// IssuesHandler exposes issue lifecycle endpoints.
type IssuesHandler struct {
	issues   *service.IssueService
	workflow *service.WorkflowService
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issues *service.IssueService, workflow *service.WorkflowService) *IssuesHandler {
	return &IssuesHandler{issues: issues, workflow: workflow}
}

// Create handles POST /api/issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	issue, err := h.workflow.AddIssue(c.Context(), principal.User.ID, service.IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Brand:       domain.Brand(req.Brand),
		ReportedBy:  req.ReportedBy,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// List handles GET /api/issues with optional status and brand filters.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	filter := repository.IssueFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.IssueStatus(statusStr)
		filter.Status = &status
	}
	if brandStr := c.Query("brand"); brandStr != "" {
		brand := domain.Brand(brandStr)
		filter.Brand = &brand
	}

	issues, err := h.issues.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IssuesFromDomain(issues)})
}

// Get handles GET /api/issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, err := h.issues.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// Update handles PUT /api/issues/:id for descriptive edits.
func (h *IssuesHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.IssueContentPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Brand != nil {
		brand := domain.Brand(*req.Brand)
		patch.Brand = &brand
	}

	issue, err := h.issues.UpdateContent(c.Context(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// Assign handles PUT /api/issues/:id/assign/:workerId.
func (h *IssuesHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	issue, worker, err := h.workflow.AssignWorker(c.Context(), principal.User.ID, c.Params("id"), c.Params("workerId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"issue":  dto.IssueFromDomain(issue),
		"worker": dto.WorkerFromDomain(worker),
	}})
}

// Resolve handles PUT /api/issues/:id/resolve.
func (h *IssuesHandler) Resolve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	issue, err := h.workflow.ResolveIssue(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.IssueFromDomain(issue)})
}

// Delete handles DELETE /api/issues/:id.
func (h *IssuesHandler) Delete(c *fiber.Ctx) error {
	if err := h.workflow.DeleteIssue(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "issue deleted"}})
}
