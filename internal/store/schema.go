package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

var usersSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE,
		password TEXT,
		role TEXT,
		email TEXT,
		phone TEXT,
		address TEXT,
		avatar TEXT
	)`,
}

// catalogSchema holds every table Reset drops and recreates.
var catalogSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY,
		name TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		price REAL,
		img TEXT,
		categoryId INTEGER,
		FOREIGN KEY (categoryId) REFERENCES categories(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category ON products(categoryId)`,
	`CREATE TABLE IF NOT EXISTS cart (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		userId INTEGER,
		productId INTEGER,
		quantity INTEGER DEFAULT 1,
		FOREIGN KEY (userId) REFERENCES users(id),
		FOREIGN KEY (productId) REFERENCES products(id),
		UNIQUE(userId, productId)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		userId INTEGER,
		totalAmount REAL,
		status TEXT DEFAULT 'pending',
		createdAt DATETIME DEFAULT CURRENT_TIMESTAMP,
		shippingAddress TEXT,
		phone TEXT,
		paymentMethod TEXT,
		FOREIGN KEY (userId) REFERENCES users(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(userId, createdAt)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		orderId INTEGER,
		productId INTEGER,
		quantity INTEGER,
		price REAL,
		FOREIGN KEY (orderId) REFERENCES orders(id),
		FOREIGN KEY (productId) REFERENCES products(id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(orderId)`,
}

// Drop order respects the logical references between tables.
var resetTables = []string{"order_items", "orders", "cart", "products", "categories"}

// Initialize brings the store up to the current schema and seeds reference
// data. It is safe to call on every start and against stores written by
// older versions. Each step is attempted even if an earlier one failed; the
// failures are logged and returned joined so the caller can decide whether
// to continue with a partial schema.
func (s *Store) Initialize(ctx context.Context) error {
	var errs []error

	if err := s.ensureSchema(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.Migrate(ctx); err != nil {
		slog.Error("Error applying migrations", "error", err)
		errs = append(errs, err)
	}
	if err := s.Seed(ctx); err != nil {
		slog.Error("Error seeding reference data", "error", err)
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slog.Info("Database initialized")
	return nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	var errs []error
	stmts := append(append([]string{}, usersSchema...), catalogSchema...)
	stmts = append(stmts, migrationsTable)
	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			slog.Error("Error creating schema", "error", err)
			errs = append(errs, fmt.Errorf("failed to create schema: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Reset drops and recreates the catalog, cart and order tables, then
// reseeds the catalog. The users table and its rows are kept.
func (s *Store) Reset(ctx context.Context) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range resetTables {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("failed to drop %s: %w", table, err)
			}
		}
		for _, stmt := range append(append([]string{}, usersSchema...), catalogSchema...) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to recreate schema: %w", err)
			}
		}
		return seedCatalog(ctx, tx)
	})
	if err != nil {
		slog.Error("Reset database transaction error", "error", err)
		return err
	}

	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	slog.Info("Database reset and reseeded")
	return nil
}
