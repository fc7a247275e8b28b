package handler

import (
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// WorkoutLogHandler handles the per-exercise workout log endpoints
type WorkoutLogHandler struct {
	logService      *service.WorkoutLogService
	exerciseService *service.ExerciseService
	log             logger.Logger
}

func NewWorkoutLogHandler(logService *service.WorkoutLogService, exerciseService *service.ExerciseService, log logger.Logger) *WorkoutLogHandler {
	return &WorkoutLogHandler{
		logService:      logService,
		exerciseService: exerciseService,
		log:             log,
	}
}

// List handles GET /api/workout-log?startDate=&endDate=&exerciseId=&page=&limit=
func (h *WorkoutLogHandler) List(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "startDate", false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	to, err := parseDateQuery(c, "endDate", true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return respondError(c, h.log, invalid("endDate", "endDate must not be before startDate"))
	}

	page, err := h.logService.List(c.UserContext(), domain.WorkoutLogFilter{
		UserID:     middleware.GetUserID(c),
		ExerciseID: c.Query("exerciseId"),
		From:       from,
		To:         to,
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", service.DefaultPageLimit),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(page)
}

// Create handles POST /api/workout-log
func (h *WorkoutLogHandler) Create(c *fiber.Ctx) error {
	var req WorkoutLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	entry := req.ToDomain(middleware.GetUserID(c))
	if entry.ExerciseName == "" {
		exercise, err := h.exerciseService.Get(c.UserContext(), entry.ExerciseID)
		if err != nil {
			return respondError(c, h.log, err)
		}
		entry.ExerciseName = exercise.Name
	}

	if err := h.logService.Create(c.UserContext(), entry); err != nil {
		return respondError(c, h.log, err)
	}

	return respondData(c, fiber.StatusCreated, entry)
}

// CreateQuick handles POST /api/workout-log/quick
func (h *WorkoutLogHandler) CreateQuick(c *fiber.Ctx) error {
	var req QuickLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	entry, err := h.logService.CreateQuick(c.UserContext(), middleware.GetUserID(c), req.ToQuickLog())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return respondData(c, fiber.StatusCreated, entry)
}

// Get handles GET /api/workout-log/:id
func (h *WorkoutLogHandler) Get(c *fiber.Ctx) error {
	entry, err := h.logService.Get(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, entry)
}

// Delete handles DELETE /api/workout-log/:id
func (h *WorkoutLogHandler) Delete(c *fiber.Ctx) error {
	if err := h.logService.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Workout log deleted",
	})
}

// parseDateQuery accepts RFC 3339 timestamps or plain dates. A plain end date covers the whole day.
func parseDateQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalid(key, key+" must be YYYY-MM-DD or RFC 3339")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
