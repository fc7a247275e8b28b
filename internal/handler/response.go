package handler

import (
	"errors"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/stats"
	"github.com/gofiber/fiber/v2"
)

// ValidationError rejects a request payload before it reaches a service
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// statusFor maps service and domain errors onto HTTP status codes
func statusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, stats.ErrInvalidWindow):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidRefreshToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		// another user's resource is reported as missing
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrWorkoutNotFound),
		errors.Is(err, domain.ErrNoActiveGoal):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateExercise):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrFederatedLoginDisabled),
		errors.Is(err, service.ErrExportStorageDisabled):
		return fiber.StatusNotImplemented
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(status int, err error) string {
	switch {
	case status == fiber.StatusInternalServerError:
		return "Internal server error"
	case errors.Is(err, domain.ErrForbidden):
		return domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return domain.ErrInvalidCredentials.Error()
	}
	return err.Error()
}

// respondError writes {"message": ..., "error": ...} with the mapped status. Clients
// read message; error is kept for older callers. Server errors are logged, never echoed.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error("request failed")
	}
	return c.Status(status).JSON(errorBody(messageFor(status, err)))
}

func errorBody(msg string) fiber.Map {
	return fiber.Map{"message": msg, "error": msg}
}

// respondData writes data as the whole body, unwrapped
func respondData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorBody("Invalid body"))
}
