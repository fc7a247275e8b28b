package handler

import (
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler serves custom workouts and workout templates
type WorkoutHandler struct {
	workoutService  *service.CustomWorkoutService
	templateService *service.TemplateService
	log             logger.Logger
}

func NewWorkoutHandler(
	workoutService *service.CustomWorkoutService,
	templateService *service.TemplateService,
	log logger.Logger,
) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:  workoutService,
		templateService: templateService,
		log:             log,
	}
}

// --- Custom workouts ---

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	workouts, err := h.workoutService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, workouts)
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	workout, err := h.workoutService.Get(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, workout)
}

func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	var req CustomWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	workout := req.ToDomain()
	if err := h.workoutService.Create(c.UserContext(), middleware.GetUserID(c), workout); err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, workout)
}

func (h *WorkoutHandler) UpdateWorkout(c *fiber.Ctx) error {
	var req CustomWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	workout, err := h.workoutService.Update(c.UserContext(), middleware.GetUserID(c), c.Params("id"), req.ToDomain())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, workout)
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	if err := h.workoutService.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Workout deleted",
	})
}

// CompleteWorkout handles POST /api/workouts/:id/complete
func (h *WorkoutHandler) CompleteWorkout(c *fiber.Ctx) error {
	workout, err := h.workoutService.Complete(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, workout)
}

// --- Templates ---

func (h *WorkoutHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.templateService.List(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, templates)
}

func (h *WorkoutHandler) GetTemplate(c *fiber.Ctx) error {
	tmpl, err := h.templateService.Get(c.UserContext(), middleware.GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, tmpl)
}

func (h *WorkoutHandler) CreateTemplate(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	tmpl := req.ToDomain()
	if err := h.templateService.Create(c.UserContext(), middleware.GetUserID(c), tmpl); err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, tmpl)
}

func (h *WorkoutHandler) UpdateTemplate(c *fiber.Ctx) error {
	var req TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	tmpl, err := h.templateService.Update(c.UserContext(), middleware.GetUserID(c), c.Params("id"), req.ToDomain())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, tmpl)
}

func (h *WorkoutHandler) DeleteTemplate(c *fiber.Ctx) error {
	if err := h.templateService.Delete(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Template deleted",
	})
}
