package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrEmptyCart            = errors.New("cart has no purchasable lines")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidStatus        = errors.New("unknown order status")
	ErrIllegalTransition    = errors.New("illegal order status transition")
	ErrInvalidRole          = errors.New("unknown role")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

// readErr degrades a missing table on a read path to an empty result. The
// schema may be partial if Initialize failed part way.
func readErr(op string, err error) error {
	if isMissingTable(err) {
		slog.Warn("Table missing, returning empty result", "op", op, "error", err)
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
