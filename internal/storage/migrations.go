package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Run archive",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					dataset TEXT NOT NULL,
					source_path TEXT NOT NULL DEFAULT '',
					algorithm TEXT NOT NULL,
					min_support REAL NOT NULL,
					min_confidence REAL NOT NULL,
					transaction_count INTEGER NOT NULL,
					mine_ns INTEGER NOT NULL DEFAULT 0,
					rule_ns INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS run_itemsets (
					run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					items TEXT NOT NULL,
					size INTEGER NOT NULL,
					support REAL NOT NULL,
					PRIMARY KEY (run_id, position)
				)`,
				`CREATE TABLE IF NOT EXISTS run_rules (
					run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					antecedent TEXT NOT NULL,
					consequent TEXT NOT NULL,
					support REAL NOT NULL,
					confidence REAL NOT NULL,
					lift REAL NOT NULL DEFAULT 0,
					PRIMARY KEY (run_id, position)
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Index runs by dataset",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_runs_dataset ON runs(dataset, created_at)`,
				`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Migrate applies pending migrations in order.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
