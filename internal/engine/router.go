package engine

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the descriptor API. middleware runs before every
// handler, typically authentication.
func RegisterRoutes(app *fiber.App, h *Handler, middleware ...fiber.Handler) {
	api := app.Group("/api")
	with := func(fn fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, middleware...), fn)
	}

	api.Get("/descriptors", with(h.List)...)
	api.Get("/descriptors/*", with(h.Get)...)
	api.Post("/validate/*", with(h.Validate)...)
	api.Post("/analytics/*", with(h.Analytics)...)
	// The bare reset route must precede the wildcard, which also matches an
	// empty entity.
	api.Delete("/state", with(h.ResetState)...)
	api.Get("/state/*", with(h.GetState)...)
	api.Put("/state/*", with(h.PutState)...)
	api.Delete("/state/*", with(h.ClearState)...)
}
