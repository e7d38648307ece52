package http

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/router"
	"github.com/Alijeyrad/nutriguard_backend/internal/app"
)

// Options assembles the full API process: infrastructure, services, the
// alert worker and the HTTP server.
func Options(cfg *config.Config, shutdownTimeout time.Duration) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		app.WorkerModule,
		router.Module,
		Module,

		// Requesting *fiber.App forces NewServer, which registers the
		// listener's OnStart hook.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(shutdownTimeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	)
}

// Start runs the API until SIGINT or SIGTERM.
func Start(cfg *config.Config, shutdownTimeout time.Duration) {
	fx.New(Options(cfg, shutdownTimeout)).Run()
}
