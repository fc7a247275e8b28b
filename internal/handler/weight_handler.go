package handler

import (
	"bytes"
	"strconv"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

const defaultTrendWindow = 30

// WeightHandler handles bodyweight entries, goals, trend and export
type WeightHandler struct {
	weightService *service.WeightService
	log           logger.Logger
}

func NewWeightHandler(weightService *service.WeightService, log logger.Logger) *WeightHandler {
	return &WeightHandler{weightService: weightService, log: log}
}

// List handles GET /api/weight
func (h *WeightHandler) List(c *fiber.Ctx) error {
	entries, err := h.weightService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, entries)
}

// Add handles POST /api/weight
func (h *WeightHandler) Add(c *fiber.Ctx) error {
	var req WeightEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	entry := &domain.WeightEntry{
		UserID: middleware.GetUserID(c),
		Weight: req.Weight,
		Unit:   req.Unit,
		Notes:  req.Notes,
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}

	if err := h.weightService.Add(c.UserContext(), entry); err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, entry)
}

// Update handles PUT /api/weight/:id
func (h *WeightHandler) Update(c *fiber.Ctx) error {
	var req WeightUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	entry, err := h.weightService.Update(c.UserContext(), middleware.GetUserID(c), c.Params("id"), req.ToUpdate())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

// Delete handles DELETE /api/weight/:id
func (h *WeightHandler) Delete(c *fiber.Ctx) error {
	if err := h.weightService.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Weight entry deleted",
	})
}

// Stats handles GET /api/weight/stats
func (h *WeightHandler) Stats(c *fiber.Ctx) error {
	summary, err := h.weightService.Stats(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, summary)
}

// GetGoal handles GET /api/weight/goal
func (h *WeightHandler) GetGoal(c *fiber.Ctx) error {
	goal, err := h.weightService.Goal(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, goal)
}

// SetGoal handles POST /api/weight/goal. Any active goal is replaced.
func (h *WeightHandler) SetGoal(c *fiber.Ctx) error {
	var req WeightGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	goal := &domain.WeightGoal{
		UserID:       middleware.GetUserID(c),
		TargetWeight: req.TargetWeight,
		TargetDate:   *req.TargetDate,
		Unit:         req.Unit,
		Notes:        req.Notes,
	}
	if err := h.weightService.SetGoal(c.UserContext(), goal); err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, goal)
}

// DeleteGoal handles DELETE /api/weight/goal
func (h *WeightHandler) DeleteGoal(c *fiber.Ctx) error {
	if err := h.weightService.DeleteGoal(c.UserContext(), middleware.GetUserID(c)); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Weight goal deleted",
	})
}

// CompleteGoal handles PUT /api/weight/goal/complete
func (h *WeightHandler) CompleteGoal(c *fiber.Ctx) error {
	goal, err := h.weightService.CompleteGoal(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, goal)
}

// Trend handles GET /api/weight/trend?window=7|30|90
func (h *WeightHandler) Trend(c *fiber.Ctx) error {
	window := defaultTrendWindow
	if raw := c.Query("window"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, h.log, invalid("window", "window must be 7, 30 or 90"))
		}
		window = days
	}

	trend, err := h.weightService.Trend(c.UserContext(), middleware.GetUserID(c), window)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, trend)
}

// Export handles GET /api/weight/export and sends the CSV as a download
func (h *WeightHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	filename, err := h.weightService.ExportCSV(c.UserContext(), middleware.GetUserID(c), &buf)
	if err != nil {
		return respondError(c, h.log, err)
	}

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// Archive handles POST /api/weight/export/archive
func (h *WeightHandler) Archive(c *fiber.Ctx) error {
	archive, err := h.weightService.Archive(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, archive)
}
