package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerSystemRoutes(app fiber.Router, h *handler.SystemHandler) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Get("/stats", h.Stats)
}
