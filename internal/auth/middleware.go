package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"datatable-backend/internal/engine"
	"datatable-backend/internal/permission"
	"datatable-backend/internal/store"
)

// AuthMiddleware returns a Fiber middleware that validates JWT tokens,
// resolves the caller's grants and sets the permission.User on the request.
func AuthMiddleware(secret string, resolver permission.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return engine.UnauthorizedError("Missing auth token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return engine.UnauthorizedError("Invalid auth header format")
		}

		claims, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			return engine.UnauthorizedError("Invalid or expired token")
		}

		user, err := resolver.Resolve(c.UserContext(), claims.Subject)
		if errors.Is(err, store.ErrNotFound) {
			return engine.UnauthorizedError("Unknown user")
		}
		if err != nil {
			return err
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequirePermission rejects callers that lack key.
func RequirePermission(key permission.Key) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return engine.UnauthorizedError("Missing auth token")
		}
		if !permission.Allowed(user, key) {
			return engine.ForbiddenError("Missing permission " + key.String())
		}
		return c.Next()
	}
}

// GetUser extracts the resolved user from a Fiber context.
func GetUser(c *fiber.Ctx) *permission.User {
	user, _ := c.Locals("user").(*permission.User)
	return user
}
