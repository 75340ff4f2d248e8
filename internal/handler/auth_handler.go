package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/George-lab-star/ToDoListMonolith/internal/config"
	"github.com/George-lab-star/ToDoListMonolith/internal/handler/middleware"
	"github.com/George-lab-star/ToDoListMonolith/internal/service"
	"github.com/George-lab-star/ToDoListMonolith/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
	jwtCfg      config.JWTConfig
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		jwtCfg:      jwtCfg,
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	_, pair, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrIncorrectPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log in",
		})
	}

	setTokenCookies(c, pair, h.jwtCfg.AccessTokenExpiry, h.jwtCfg.RefreshTokenExpiry)

	return c.Status(fiber.StatusOK).JSON(pair)
}

// Logout handles user logout. Clearing the cookies and deleting the stored
// refresh token are both idempotent; logging out twice is fine.
// POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	clearTokenCookies(c)

	if err := h.authService.Logout(c.Context(), user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to log out",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"detail": "Successfully logged out",
	})
}

// Me returns the current authenticated user
// GET /api/auth/me (protected)
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.Status(fiber.StatusOK).JSON(user)
}

// Refresh issues a new token pair and rotates both cookies
// POST /api/auth/refresh (protected)
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	presented := c.Cookies(middleware.RefreshTokenCookie)

	pair, err := h.authService.Refresh(c.Context(), user, presented)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to refresh tokens",
		})
	}

	setTokenCookies(c, pair, h.jwtCfg.AccessTokenExpiry, h.jwtCfg.RefreshTokenExpiry)

	return c.Status(fiber.StatusOK).JSON(pair)
}
