package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration represents a database schema migration.
type Migration struct {
	Version     int
	Description string
	Up          string
}

// migrations contains all schema migrations in order.
var migrations = []Migration{
	{
		Version:     1,
		Description: "Create schema_migrations table",
		Up: `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version INTEGER PRIMARY KEY,
				description TEXT NOT NULL,
				applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version:     2,
		Description: "Create assets table",
		Up: `
			CREATE TABLE IF NOT EXISTS assets (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				identity TEXT UNIQUE NOT NULL,
				class_name TEXT NOT NULL,
				display_name TEXT NOT NULL,
				folder TEXT NOT NULL,
				source_path TEXT NOT NULL DEFAULT '',
				skeleton TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			);

			CREATE INDEX IF NOT EXISTS idx_assets_folder ON assets(folder);
		`,
	},
	{
		Version:     3,
		Description: "Create texture_parameters table",
		Up: `
			CREATE TABLE IF NOT EXISTS texture_parameters (
				material TEXT NOT NULL REFERENCES assets(identity) ON DELETE CASCADE,
				parameter TEXT NOT NULL,
				texture TEXT NOT NULL DEFAULT '',
				ordinal INTEGER NOT NULL,
				PRIMARY KEY (material, parameter)
			);

			CREATE INDEX IF NOT EXISTS idx_texture_parameters_material ON texture_parameters(material, ordinal);
		`,
	},
}

// Migrate runs all pending migrations on the database.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table; %w", err)
	}

	currentVersion, err := getCurrentVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to get current version; %w", err)
	}

	for _, m := range migrations {
		if m.Version <= currentVersion {
			continue
		}
		if err := runMigration(ctx, db, m); err != nil {
			return fmt.Errorf("failed to run migration %d (%s); %w", m.Version, m.Description, err)
		}
	}

	return nil
}

func getCurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigration executes a single migration and records it in one transaction.
func runMigration(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction; %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return fmt.Errorf("failed to execute migration; %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
		m.Version, m.Description,
	); err != nil {
		return fmt.Errorf("failed to record migration; %w", err)
	}

	return tx.Commit()
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	return getCurrentVersion(ctx, db)
}
