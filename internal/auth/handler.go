package auth

import (
	"github.com/gofiber/fiber/v2"

	"datatable-backend/internal/engine"
	"datatable-backend/internal/state"
)

// AuthHandler serves the caller's own session endpoints.
type AuthHandler struct {
	states   *state.Store
	resolver *CachedResolver
}

// NewAuthHandler creates a new AuthHandler. resolver may be nil when grants
// are not cached.
func NewAuthHandler(states *state.Store, resolver *CachedResolver) *AuthHandler {
	return &AuthHandler{states: states, resolver: resolver}
}

// Me handles GET /api/me/permissions.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return engine.UnauthorizedError("Missing auth token")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"id":          user.ID,
		"role":        user.Role,
		"permissions": user.Grants.List(),
	}})
}

// Logout handles POST /api/auth/logout. Token revocation belongs to the
// issuer; here it drops the caller's table state and cached grants.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return engine.UnauthorizedError("Missing auth token")
	}
	ctx := c.UserContext()
	if err := h.states.Reset(ctx, user.ID); err != nil {
		return err
	}
	if h.resolver != nil {
		if err := h.resolver.Invalidate(ctx, user.ID); err != nil {
			return err
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterAuthRoutes registers the session routes behind authMW.
func RegisterAuthRoutes(app *fiber.App, h *AuthHandler, authMW fiber.Handler) {
	app.Get("/api/me/permissions", authMW, h.Me)
	app.Post("/api/auth/logout", authMW, h.Logout)
}
