package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

// InitializeDatabase creates the application database and schema if they
// don't exist. It connects to the default 'postgres' database to create the
// database itself.
func InitializeDatabase(ctx context.Context, cfg *config.Config) error {
	if cfg.Database.DBName == "" {
		return fmt.Errorf("no database name provided")
	}

	postgresConfig := Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   "postgres",
		SSLMode:  cfg.Database.SSLMode,
	}

	conn, err := openSQLDB(postgresConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer conn.Close()

	if err := createDatabaseIfNotExists(ctx, conn, cfg.Database.DBName); err != nil {
		return fmt.Errorf("failed to create database %q: %w", cfg.Database.DBName, err)
	}

	app, err := openSQLDB(FromCentralConfig(cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to %q: %w", cfg.Database.DBName, err)
	}
	defer app.Close()

	return createSchemaIfNotExists(ctx, app, cfg.Database.Schema)
}

func createDatabaseIfNotExists(ctx context.Context, conn *sql.DB, dbName string) error {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := conn.QueryRowContext(ctx, query, dbName).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(dbName)); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

func createSchemaIfNotExists(ctx context.Context, conn *sql.DB, schema string) error {
	if schema == "" {
		return nil
	}
	if _, err := conn.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
		return fmt.Errorf("failed to create schema %q: %w", schema, err)
	}
	return nil
}
