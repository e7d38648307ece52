package handler

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func unavailable(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": msg})
}

// internalError reports err verbatim; clients of this API expect the
// database message in the body.
func internalError(c fiber.Ctx, err error) error {
	slog.ErrorContext(c.Context(), "request failed",
		"method", c.Method(), "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// paramID parses a positive integer path parameter.
func paramID(c fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	return id, err == nil && id > 0
}

// queryInt reads an integer query parameter, falling back to def when absent.
func queryInt(c fiber.Ctx, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

func queryID(c fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	return id, err == nil && id > 0
}

func queryFloat(c fiber.Ctx, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
