package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/middleware"
	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/router"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Redis     *redis.Client `optional:"true"`
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Redis, p.OTel != nil)
	p.Router.Register(app)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			go func() {
				slog.Info("HTTP server listening", "addr", addr)
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					slog.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber app with the global middleware chain; routes are
// registered by the caller.
func NewApp(cfg *config.Config, rdb *redis.Client, observed bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	app := fiber.New(fiber.Config{
		AppName:      cfg.API.Title,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		ErrorHandler: errorHandler,
	})

	if observed {
		app.Use(observability.FiberMiddleware())
	}

	configureGlobalMiddleware(app, cfg, rdb)
	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config, rdb *redis.Client) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.CORS.AllowOrigins,
			AllowMethods:     cfg.Server.CORS.AllowMethods,
			AllowHeaders:     cfg.Server.CORS.AllowHeaders,
			AllowCredentials: cfg.Server.CORS.AllowCredentials,
			MaxAge:           cfg.Server.CORS.MaxAgeSeconds,
		}))
	}

	if strings.EqualFold(cfg.Server.Environment, "production") {
		app.Use(helmet.New())
		app.Use(middleware.NewLimiter(cfg.Server.RateLimit, rdb))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${respHeader:X-Request-Id}] ${method} ${url} ${status} ${latency}\n",
	}))
}

// errorHandler keeps fiber's own errors (404 route, 405, body limits) in the
// {"error": ...} envelope.
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.Context(), "unhandled error", "path", c.Path(), "err", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
