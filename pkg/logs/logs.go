package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultService = "nutriguard_backend"

// New builds a logger from config, fanning out to stdout, a rotated file and
// Loki as configured.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)
	isDev := strings.EqualFold(cfg.Server.Environment, "development")
	out := cfg.Logging.Output

	var writers []io.Writer

	// Stdout is the fallback when nothing else is configured.
	if out.Stdout || (!out.File.Enabled && !out.Loki.Enabled) {
		writers = append(writers, os.Stdout)
	}

	if out.File.Enabled {
		writers = append(writers, &lumberjack.Logger{
			Filename:   out.File.Path,
			MaxSize:    out.File.MaxSizeMB,
			MaxBackups: out.File.MaxBackups,
			MaxAge:     out.File.MaxAgeDays,
			Compress:   out.File.Compress,
		})
	}

	var handlers []slog.Handler

	if len(writers) > 0 {
		w := io.MultiWriter(writers...)
		opts := &slog.HandlerOptions{
			Level:     level,
			AddSource: isDev,
		}
		if strings.EqualFold(cfg.Logging.Format, "json") || !isDev {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		}
	}

	if out.Loki.Enabled {
		handlers = append(handlers, newLokiHandler(cfg, level))
	}

	var h slog.Handler = multiHandler(handlers)
	if len(handlers) == 1 {
		h = handlers[0]
	}

	service := cfg.Observability.ServiceName
	if service == "" {
		service = defaultService
	}
	return slog.New(contextHandler{h}).With(
		slog.String("service", service),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
}

// Default is the logger used before configuration is read.
func Default() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h).With(slog.String("service", defaultService))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
