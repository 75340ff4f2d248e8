package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
	"github.com/George-lab-star/ToDoListMonolith/internal/handler/middleware"
)

// setTokenCookies writes both tokens as cookies. Values are the raw token
// strings; the signature inside the token is the only protection.
func setTokenCookies(c *fiber.Ctx, pair *domain.TokenPair, accessTTL, refreshTTL time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(accessTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Cookie(&fiber.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(refreshTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearTokenCookies(c *fiber.Ctx) {
	c.ClearCookie(middleware.AccessTokenCookie, middleware.RefreshTokenCookie)
}

// currentUser returns the user resolved by the auth middleware
func currentUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(middleware.UserLocal).(*domain.User)
	return user, ok
}
