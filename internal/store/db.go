package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Options tune a Store. The zero value is usable.
type Options struct {
	BusyTimeout             time.Duration
	StrictStatusTransitions bool
	AdminUsername           string
	AdminPassword           string
}

type Store struct {
	DB     *sql.DB
	strict bool
	admin  adminSeed
}

type adminSeed struct {
	username string
	password string
}

// NewStore opens the SQLite file at dataSourceName. The pool is capped at a
// single connection so every statement and transaction is serialized through
// one writer.
func NewStore(dataSourceName string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dataSourceName, opts.BusyTimeout))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return New(db, opts), nil
}

// New wraps an already opened handle.
func New(db *sql.DB, opts Options) *Store {
	s := &Store{
		DB:     db,
		strict: opts.StrictStatusTransitions,
		admin:  adminSeed{username: opts.AdminUsername, password: opts.AdminPassword},
	}
	if s.admin.username == "" {
		s.admin.username = "admin"
	}
	if s.admin.password == "" {
		s.admin.password = "123456"
	}
	return s
}

func (s *Store) Close() error {
	return s.DB.Close()
}

func withPragmas(dsn string, busy time.Duration) string {
	if busy <= 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dsn, sep, busy.Milliseconds())
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on any error. fn must only use tx: the pool holds a single connection.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("Rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
