package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerFileRoutes(app fiber.Router, h *handler.FileHandler) {
	files := app.Group("/files")
	files.Post("/", h.Upload)
	files.Get("/*", h.DownloadURL)
}
