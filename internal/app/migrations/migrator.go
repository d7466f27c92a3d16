package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/db"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embedded embed.FS

// Migrator manages database migrations
type Migrator struct {
	db     *db.PostgresDB
	files  fs.FS
	dir    string
	logger zerolog.Logger
}

// NewMigrator creates a migrator over the embedded SQL files
func NewMigrator(database *db.PostgresDB, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     database,
		files:  embedded,
		dir:    "sql",
		logger: logger,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.Pool.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// apply executes one migration file and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, name string) error {
	version := migrationVersion(name)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, path.Join(m.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	err = m.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration execution: %w", err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
			version, time.Now()); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}

// Migrate applies all pending migrations in filename order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	names, err := migrationFiles(m.files, m.dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := m.apply(ctx, name); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

// migrationFiles lists the .sql files of dir sorted by name
func migrationFiles(files fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// migrationVersion extracts the version prefix ("001_init.sql" => "001")
func migrationVersion(name string) string {
	return strings.Split(name, "_")[0]
}
