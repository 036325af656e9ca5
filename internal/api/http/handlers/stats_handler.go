package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-dashboard/internal/api/dto"
	"github.com/spec-kit/issue-dashboard/internal/service"
)

// StatsHandler exposes dashboard statistics.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Summary handles GET /api/statistics.
func (h *StatsHandler) Summary(c *fiber.Ctx) error {
	stats, err := h.stats.Summary(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatsFromDomain(stats)})
}
