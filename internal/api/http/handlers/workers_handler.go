package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-dashboard/internal/api/dto"
	"github.com/spec-kit/issue-dashboard/internal/service"
	apperrors "github.com/spec-kit/issue-dashboard/pkg/util"
)

// WorkersHandler exposes worker roster endpoints.
type WorkersHandler struct {
	workload *service.WorkloadService
}

// NewWorkersHandler constructs handler.
func NewWorkersHandler(workload *service.WorkloadService) *WorkersHandler {
	return &WorkersHandler{workload: workload}
}

// List handles GET /api/workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	workers, err := h.workload.ListWorkers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.WorkersFromDomain(workers)})
}

// Create handles POST /api/workers.
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	worker, err := h.workload.CreateWorker(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.WorkerFromDomain(worker)})
}
