package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ToNga156/FinalProject/internal/models"
)

const productColumns = `p.id, COALESCE(p.name, ''), COALESCE(p.price, 0), COALESCE(p.img, ''), COALESCE(p.categoryId, 0)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.CategoryID)
	return p, err
}

func (s *Store) queryProducts(ctx context.Context, op, query string, args ...any) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readErr(op, err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.queryProducts(ctx, "list products",
		`SELECT `+productColumns+` FROM products p ORDER BY p.id`)
}

func (s *Store) ListByCategory(ctx context.Context, categoryID int) ([]models.Product, error) {
	return s.queryProducts(ctx, "list products by category",
		`SELECT `+productColumns+` FROM products p WHERE p.categoryId = ? ORDER BY p.id`, categoryID)
}

func (s *Store) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("get product", err)
	}
	return &p, nil
}

// AddProduct inserts p and returns the assigned id. p.ID is ignored.
func (s *Store) AddProduct(ctx context.Context, p models.Product) (int, error) {
	res, err := s.DB.ExecContext(ctx,
		`INSERT INTO products (name, price, img, categoryId) VALUES (?, ?, ?, ?)`,
		p.Name, p.Price, p.Image, p.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to add product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE products SET name = ?, price = ?, img = ?, categoryId = ? WHERE id = ?`,
		p.Name, p.Price, p.Image, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ID, err)
	}
	return nil
}

// SetProductImage points the product at a new picture reference.
func (s *Store) SetProductImage(ctx context.Context, id int, img string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE products SET img = ? WHERE id = ?`, img, id)
	if err != nil {
		return fmt.Errorf("failed to set image of product %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the row even when order lines still reference it;
// those lines keep their snapshot price.
func (s *Store) DeleteProduct(ctx context.Context, id int) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// SearchByNameOrCategory matches keyword as a substring of the product name
// or of its category's name.
func (s *Store) SearchByNameOrCategory(ctx context.Context, keyword string) ([]models.Product, error) {
	pattern := "%" + keyword + "%"
	return s.queryProducts(ctx, "search products", `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON p.categoryId = c.id
		WHERE p.name LIKE ? OR c.name LIKE ?
		ORDER BY p.id`, pattern, pattern)
}

// FilterProducts applies the set predicates of f with AND. Ordering of
// Min and Max is the caller's responsibility.
func (s *Store) FilterProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Name != nil && strings.TrimSpace(*f.Name) != "" {
		where = append(where, "p.name LIKE ?")
		args = append(args, "%"+strings.TrimSpace(*f.Name)+"%")
	}
	if f.Min != nil {
		where = append(where, "p.price >= ?")
		args = append(args, f.Min.InexactFloat64())
	}
	if f.Max != nil {
		where = append(where, "p.price <= ?")
		args = append(args, f.Max.InexactFloat64())
	}

	query := `SELECT ` + productColumns + ` FROM products p`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.id"

	return s.queryProducts(ctx, "filter products", query, args...)
}
