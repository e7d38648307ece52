package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/agent"
	"github.com/Alijeyrad/nutriguard_backend/internal/events"
	"github.com/Alijeyrad/nutriguard_backend/internal/schema"
	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
	"github.com/Alijeyrad/nutriguard_backend/pkg/email"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
	redispkg "github.com/Alijeyrad/nutriguard_backend/pkg/redis"
	s3pkg "github.com/Alijeyrad/nutriguard_backend/pkg/s3"
	"github.com/Alijeyrad/nutriguard_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideFileStorage),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvidePublisher),
	fx.Provide(ProvideGenerator),
	fx.Provide(ProvideAgentMetrics),
	fx.Provide(ProvideAgentTeam),
)

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config) (*database.DB, error) {
	if cfg.Database.Migrations.AutoMigrate {
		if err := migrate(cfg.Database); err != nil {
			return nil, err
		}
	}

	db, err := database.NewFromCentral(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return db.Close()
		},
	})
	return db, nil
}

func migrate(cfg config.DatabaseConfig) error {
	m, err := database.NewMigrator(database.FromCentralConfig(cfg), schema.Migrations, schema.MigrationsDir)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}

// ProvideRedis yields a nil client when redis.addr is unset.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil || rdb == nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailClient(cfg *config.Config) (*email.Client, error) {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

// ProvideFileStorage returns a nil Storage when no bucket is configured, which
// disables uploads.
func ProvideFileStorage(cfg *config.Config) (svcfile.Storage, error) {
	client, err := s3pkg.New(cfg.S3)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return client, nil
}

// ProvideNatsClient yields a nil connection when nats.url is unset.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		slog.Info("nats url not configured, alert events disabled")
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name(cfg.Observability.ServiceName))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvidePublisher(nc *nats.Conn) events.Publisher {
	return events.NewPublisher(nc)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Start(context.Background(), cfg.Observability, cfg.Server.Environment)
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

func ProvideGenerator(cfg *config.Config) (llm.Generator, error) {
	gen, err := llm.New(context.Background(), cfg.AI)
	if err != nil {
		return nil, err
	}
	if !cfg.AI.Enabled || cfg.AI.APIKey == "" {
		slog.Warn("ai provider not configured, advisor will serve fallbacks")
	}
	return gen, nil
}

// ProvideAgentMetrics takes the OTel provider so instruments bind to the
// configured meter provider rather than the no-op global.
func ProvideAgentMetrics(_ *observability.Provider) *observability.AgentMetrics {
	return observability.NewAgentMetrics()
}

func ProvideAgentTeam(gen llm.Generator, cfg *config.Config, metrics *observability.AgentMetrics) *agent.Team {
	return agent.NewTeam(gen, cfg.AI, metrics)
}
