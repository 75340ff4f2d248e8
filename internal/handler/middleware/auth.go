package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
)

// Cookie names the tokens travel in. Values are the raw token strings.
const (
	AccessTokenCookie  = "users_access_token"
	RefreshTokenCookie = "users_refresh_token"
)

// Locals keys set on successful authentication
const (
	UserLocal   = "user"
	UserIDLocal = "user_id"
)

// TokenDecoder verifies a token's signature and returns its claims.
// Satisfied by *jwt.TokenService. Temporal validity is checked here,
// not at decode time.
type TokenDecoder interface {
	DecodeToken(token string) (*domain.Claims, error)
}

// AuthMiddleware resolves the current user from the token cookies.
// The check is a linear chain; any failing step ends the request:
//
//	no cookie at all     -> 403
//	bad signature        -> 401
//	expired              -> 401
//	missing subject      -> 401
//	unknown user         -> 401
//
// The access token wins when both cookies are present.
func AuthMiddleware(tokenService TokenDecoder, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(AccessTokenCookie)
		refreshToken := c.Cookies(RefreshTokenCookie)

		if accessToken == "" && refreshToken == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authenticated",
			})
		}

		token := accessToken
		if token == "" {
			token = refreshToken
		}

		claims, err := tokenService.DecodeToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		// A token without an exp claim never expires. Otherwise the boundary
		// fails closed: exp == now counts as expired.
		if claims.ExpiresAt != nil && !claims.ExpiresAt.Time.After(time.Now()) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token expired",
			})
		}

		if claims.Subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token subject not found",
			})
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		user, err := userRepo.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "user not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to resolve user",
			})
		}

		c.Locals(UserLocal, user)
		c.Locals(UserIDLocal, user.ID)

		return c.Next()
	}
}
