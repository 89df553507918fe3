package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/dto"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
)

// StatsHandler serves the live dashboard counters.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Overview GET /api/stats.
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	perType, totals, err := h.stats.Overview(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TypeStatsResponse, 0, len(perType))
	for _, s := range perType {
		items = append(items, dto.NewTypeStatsResponse(s))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"ticket_types": items,
		"totals":       dto.NewStatsTotalsResponse(totals),
	}})
}
