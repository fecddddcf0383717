package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const migrationsDir = "migrations"

// Migrate applies every migrations/*.up.sql file of fsys that is not yet
// recorded in schema_migrations, in lexical order. It returns the names of
// the files it applied.
func Migrate(ctx context.Context, conn Conn, fsys fs.FS) ([]string, error) {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := fs.ReadDir(fsys, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var upMigrations []string
	for _, file := range files {
		if name := file.Name(); !file.IsDir() && strings.HasSuffix(name, ".up.sql") {
			upMigrations = append(upMigrations, name)
		}
	}
	sort.Strings(upMigrations)

	query := "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

	var applied []string
	for _, migration := range upMigrations {
		var exists bool
		if err := conn.QueryRow(ctx, query, migration).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", migration, err)
		}
		if exists {
			continue
		}

		sqlBytes, err := fs.ReadFile(fsys, path.Join(migrationsDir, migration))
		if err != nil {
			return applied, fmt.Errorf("failed to read sql file %s: %w", migration, err)
		}

		if _, err := conn.Exec(ctx, string(sqlBytes)); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", migration, err)
		}

		if _, err := conn.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", migration); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", migration, err)
		}
		applied = append(applied, migration)
	}

	return applied, nil
}
