// Package schema embeds the SQL migrations for the NutriGuard schema.
package schema

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"
