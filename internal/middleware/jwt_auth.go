package middleware

import (
	"strings"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// Context keys for storing user info
const (
	UserIDKey = "userID"
	NameKey   = "name"
	EmailKey  = "email"
)

// AccessTokenParser validates a bearer token. Implemented by service.TokenService.
type AccessTokenParser interface {
	ParseAccessToken(tokenString string) (*domain.AccessClaims, error)
}

// VerifyToken validates the bearer JWT and stores the caller identity in locals
func VerifyToken(parser AccessTokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, no token",
				"error":   "Not authorized, no token",
			})
		}

		// Extract token (format: "Bearer <token>")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := parser.ParseAccessToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Not authorized, token failed",
				"error":   "Not authorized, token failed",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(NameKey, claims.Name)
		c.Locals(EmailKey, claims.Email)

		return c.Next()
	}
}

// GetUserID extracts the user ID from Fiber context
// Should only be called after VerifyToken middleware
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
