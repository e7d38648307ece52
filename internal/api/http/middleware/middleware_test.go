package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/pkg/reqctx"
)

func TestRequestID_Generates(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	var fromCtx string
	app.Get("/", func(c fiber.Ctx) error {
		fromCtx = reqctx.RequestIDFromContext(c.Context())
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)

	rid := resp.Header.Get(HeaderRequestID)
	assert.NotEmpty(t, rid)
	assert.Equal(t, rid, fromCtx)
}

func TestRequestID_PreservesIncoming(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c fiber.Ctx) error {
		rid, _ := RequestIDFromFiber(c)
		return c.SendString(rid)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))
}

func TestLimiter_InMemory(t *testing.T) {
	app := fiber.New()
	app.Use(NewLimiter(config.RateLimitConfig{Max: 2, ExpirationSeconds: 60}, nil))
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
