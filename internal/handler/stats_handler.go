package handler

import (
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

// StatsHandler serves the dashboard aggregates
type StatsHandler struct {
	statsService *service.StatsService
	log          logger.Logger
}

func NewStatsHandler(statsService *service.StatsService, log logger.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, log: log}
}

// Dashboard handles GET /api/stats/dashboard
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.statsService.Dashboard(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, dashboard)
}

// Quick handles GET /api/stats/quick
func (h *StatsHandler) Quick(c *fiber.Ctx) error {
	quick, err := h.statsService.Quick(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, quick)
}
