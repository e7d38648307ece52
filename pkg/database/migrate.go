package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator applies the embedded SQL migrations to the configured schema.
type Migrator struct {
	conn    *sql.DB
	migrate *migrate.Migrate
}

// NewMigrator opens a dedicated connection whose search_path is the
// application schema, so unqualified DDL lands there.
func NewMigrator(cfg Config, files fs.FS, dir string) (*Migrator, error) {
	source, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	conn, err := sql.Open("postgres", cfg.DSN()+" search_path="+cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	table := cfg.MigrationsTable
	if table == "" {
		table = "schema_migrations"
	}

	driver, err := postgres.WithInstance(conn, &postgres.Config{
		MigrationsTable: table,
		DatabaseName:    cfg.DBName,
		SchemaName:      cfg.Schema,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{conn: conn, migrate: m}, nil
}

// Up runs all pending migrations.
func (m *Migrator) Up() error {
	start := time.Now()

	from, _, err := m.Version()
	if err != nil {
		return err
	}

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("database: no migrations to run", "version", from)
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	to, _, _ := m.Version()
	slog.Info("database: migrations applied",
		"from_version", from,
		"to_version", to,
		"duration", time.Since(start),
	)
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := m.migrate.Steps(-steps); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

// Version returns the applied migration version.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()
	return errors.Join(srcErr, dbErr)
}
