package handler

import (
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "eyp-refresh-token"

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	authService  *service.AuthService
	tokenService *service.TokenService
	refreshTTL   time.Duration
	log          logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, tokenService *service.TokenService, refreshTTL time.Duration, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		refreshTTL:   refreshTTL,
		log:          log,
	}
}

// Register handles POST /api/users/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	session, err := h.authService.Register(c.UserContext(), req.Name, req.Email, req.Password, clientInfo(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setRefreshCookie(c, session.RefreshToken)
	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login handles POST /api/users/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	session, err := h.authService.Login(c.UserContext(), req.Email, req.Password, clientInfo(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setRefreshCookie(c, session.RefreshToken)
	return c.JSON(session)
}

// LoginFederated handles POST /api/users/login/federated
func (h *AuthHandler) LoginFederated(c *fiber.Ctx) error {
	var req FederatedLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	session, created, err := h.authService.LoginFederated(c.UserContext(), req.IDToken, clientInfo(c))
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.setRefreshCookie(c, session.RefreshToken)
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(session)
}

// Refresh handles POST /api/users/refresh. The token comes from the body or the refresh cookie.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies(refreshCookieName)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	session, err := h.tokenService.Refresh(c.UserContext(), req.RefreshToken, clientInfo(c))
	if err != nil {
		h.clearRefreshCookie(c)
		return respondError(c, h.log, err)
	}

	h.setRefreshCookie(c, session.RefreshToken)
	return c.JSON(session)
}

// Logout handles POST /api/users/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req LogoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(c)
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = c.Cookies(refreshCookieName)
	}
	if err := req.Validate(); err != nil {
		return respondError(c, h.log, err)
	}

	var err error
	if req.All {
		err = h.tokenService.RevokeAll(c.UserContext(), userID)
	} else {
		err = h.tokenService.Revoke(c.UserContext(), req.RefreshToken)
	}
	if err != nil {
		return respondError(c, h.log, err)
	}

	h.clearRefreshCookie(c)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Profile handles GET /api/users/profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	user, err := h.authService.Profile(c.UserContext(), middleware.GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respondData(c, fiber.StatusOK, user)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Expires:  time.Now().Add(h.refreshTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/api/users",
	})
}

func (h *AuthHandler) clearRefreshCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/api/users",
	})
}

func clientInfo(c *fiber.Ctx) service.ClientInfo {
	return service.ClientInfo{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		IPAddress: c.IP(),
	}
}
