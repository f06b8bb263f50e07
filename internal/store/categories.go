package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ToNga156/FinalProject/internal/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, COALESCE(name, '') FROM categories ORDER BY id`)
	if err != nil {
		return nil, readErr("list categories", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRowContext(ctx, `SELECT id, COALESCE(name, '') FROM categories WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("get category", err)
	}
	return &c, nil
}

// AddCategory assigns the next id after the current maximum instead of
// relying on AUTOINCREMENT, so new rows never collide with seeded ids. The
// id is computed inside the INSERT, keeping the assignment atomic.
func (s *Store) AddCategory(ctx context.Context, name string) (int, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO categories (id, name) SELECT COALESCE(MAX(id), 0) + 1, ? FROM categories`, name)
	if err != nil {
		return 0, fmt.Errorf("failed to add category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (s *Store) RenameCategory(ctx context.Context, id int, name string) error {
	_, err := s.DB.ExecContext(ctx, `UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename category: %w", err)
	}
	return nil
}

// DeleteCategory removes the category and every product filed under it.
// Both deletes commit together or not at all.
func (s *Store) DeleteCategory(ctx context.Context, id int) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE categoryId = ?`, id); err != nil {
			return fmt.Errorf("failed to delete products of category %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete category %d: %w", id, err)
		}
		return nil
	})
}
