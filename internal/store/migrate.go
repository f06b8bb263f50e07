package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

type Migration struct {
	Version   string    `json:"version"`
	AppliedAt time.Time `json:"applied_at"`
}

// Migrate applies the embedded column migrations in file-name order.
func (s *Store) Migrate(ctx context.Context) error {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		return err
	}
	return s.MigrateFS(ctx, sub)
}

// MigrateFS applies every .sql file in fsys not yet recorded in
// schema_migrations. A migration that fails because its column already exists
// is recorded as applied; one that targets a missing table is skipped and
// retried on the next run.
func (s *Store) MigrateFS(ctx context.Context, fsys fs.FS) error {
	if _, err := s.DB.ExecContext(ctx, migrationsTable); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files) // 001, 002, ...

	for _, file := range files {
		applied, err := s.isApplied(ctx, file)
		if err != nil {
			return err
		}
		if applied {
			slog.Debug("Skipping already applied migration", "file", file)
			continue
		}

		content, err := fs.ReadFile(fsys, file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		slog.Info("Applying migration", "file", file)
		tx, err := s.DB.BeginTx(ctx, nil)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			tx.Rollback()
			switch {
			case isDuplicateColumn(err):
				slog.Warn("Column already exists, marking as applied", "file", file)
			case isMissingTable(err):
				slog.Warn("Migration target table missing, will retry on next start", "file", file, "error", err)
				continue
			default:
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
		} else if err := tx.Commit(); err != nil {
			return err
		}

		if _, err := s.DB.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, file); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", file, err)
		}
	}

	return nil
}

func (s *Store) isApplied(ctx context.Context, version string) (bool, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check migration %s: %w", version, err)
	}
	return n > 0, nil
}

func (s *Store) AppliedMigrations(ctx context.Context) ([]Migration, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT version, applied_at FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, readErr("list migrations", err)
	}
	defer rows.Close()

	var out []Migration
	for rows.Next() {
		var (
			m  Migration
			at dbTime
		)
		if err := rows.Scan(&m.Version, &at); err != nil {
			return nil, err
		}
		m.AppliedAt = at.Time
		out = append(out, m)
	}
	return out, rows.Err()
}
