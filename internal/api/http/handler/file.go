package handler

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"

	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
)

type FileHandler struct {
	svc svcfile.Service
}

func NewFileHandler(svc svcfile.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

func mapFileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svcfile.ErrStorageDisabled):
		return unavailable(c, err.Error())
	case errors.Is(err, svcfile.ErrInvalidEntity), errors.Is(err, svcfile.ErrKeyRequired):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /files
// Multipart upload with an "entity" form field; returns {key, url, ...}.
func (h *FileHandler) Upload(c fiber.Ctx) error {
	if !h.svc.Enabled() {
		return unavailable(c, svcfile.ErrStorageDisabled.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	result, err := h.svc.Upload(c.Context(), c.FormValue("entity"), fh)
	if err != nil {
		return mapFileError(c, err)
	}
	return created(c, result)
}

// GET /files/*
// Returns a presigned download URL for the object key.
func (h *FileHandler) DownloadURL(c fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return badRequest(c, "invalid file key")
	}

	u, err := h.svc.DownloadURL(c.Context(), key)
	if err != nil {
		return mapFileError(c, err)
	}
	return ok(c, fiber.Map{"key": key, "url": u})
}
