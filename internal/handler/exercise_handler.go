package handler

import (
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

// ExerciseHandler serves the exercise library plus favorites and recents
type ExerciseHandler struct {
	exerciseService *service.ExerciseService
	log             logger.Logger
}

func NewExerciseHandler(exerciseService *service.ExerciseService, log logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, log: log}
}

// List handles GET /api/exercises
func (h *ExerciseHandler) List(c *fiber.Ctx) error {
	page, err := h.exerciseService.List(c.UserContext(), domain.ExerciseFilter{
		Category:     c.Query("category"),
		MovementType: c.Query("movement_type"),
		Equipment:    c.Query("equipment"),
		Difficulty:   c.Query("difficulty"),
		TargetMuscle: c.Query("target_muscle"),
		Search:       c.Query("search"),
		Page:         c.QueryInt("page", 1),
		Limit:        c.QueryInt("limit", service.DefaultExercisePageLimit),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(page)
}

// Get handles GET /api/exercises/:id
func (h *ExerciseHandler) Get(c *fiber.Ctx) error {
	exercise, err := h.exerciseService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, exercise)
}

// Create handles POST /api/exercises. The result is always a custom exercise owned by the caller.
func (h *ExerciseHandler) Create(c *fiber.Ctx) error {
	var req ExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	exercise := req.ToDomain()
	if err := h.exerciseService.CreateCustom(c.UserContext(), middleware.GetUserID(c), exercise); err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusCreated, exercise)
}

// Favorites handles GET /api/exercises/favorites
func (h *ExerciseHandler) Favorites(c *fiber.Ctx) error {
	exercises, err := h.exerciseService.Favorites(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, exercises)
}

// AddFavorite handles POST /api/exercises/favorites/add/:id
func (h *ExerciseHandler) AddFavorite(c *fiber.Ctx) error {
	if err := h.exerciseService.AddFavorite(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Exercise added to favorites",
	})
}

// RemoveFavorite handles DELETE /api/exercises/favorites/remove/:id
func (h *ExerciseHandler) RemoveFavorite(c *fiber.Ctx) error {
	if err := h.exerciseService.RemoveFavorite(c.UserContext(), middleware.GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Exercise removed from favorites",
	})
}

// Recent handles GET /api/exercises/recent
func (h *ExerciseHandler) Recent(c *fiber.Ctx) error {
	exercises, err := h.exerciseService.Recent(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, exercises)
}

// MarkRecent handles POST /api/exercises/recent
func (h *ExerciseHandler) MarkRecent(c *fiber.Ctx) error {
	var req RecentExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	if err := h.exerciseService.MarkRecent(c.UserContext(), middleware.GetUserID(c), req.ExerciseID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Recent exercises updated",
	})
}
