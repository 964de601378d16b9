// Package middleware holds the guard chain handlers compose in front of
// protected routes.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mdtajulislammt/Flutter-task-backend/internal/auth/service"
	"github.com/mdtajulislammt/Flutter-task-backend/internal/response"
)

// AuthUser is the typed authenticated-context value the auth guard attaches
// to the request. Handlers read it through CurrentUser; nothing downstream
// touches raw claims.
type AuthUser struct {
	ID    string
	Email string
	Type  string
}

const authUserKey = "auth_user"

// RequireAuth parses and validates the bearer token and stores the typed
// AuthUser in request locals.
func RequireAuth(tokens service.TokenGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(response.Envelope{
				Success: false, Message: "missing bearer token",
			})
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(response.Envelope{
				Success: false, Message: "invalid or expired token",
			})
		}

		c.Locals(authUserKey, AuthUser{
			ID:    claims.UserID,
			Email: claims.Email,
			Type:  claims.Type,
		})

		return c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user
// has the given type. Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok || user.Type != role {
			return c.Status(fiber.StatusForbidden).JSON(response.Envelope{
				Success: false, Message: "permission denied",
			})
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) (AuthUser, bool) {
	user, ok := c.Locals(authUserKey).(AuthUser)
	return user, ok
}
