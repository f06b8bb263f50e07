package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
)

// AddToCart puts qty units of the product in the user's cart, merging into
// the existing line when there is one.
func (s *Store) AddToCart(ctx context.Context, userID, productID, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart (userId, productId, quantity) VALUES (?, ?, ?)
		ON CONFLICT(userId, productId) DO UPDATE SET quantity = quantity + excluded.quantity`,
		userID, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to add to cart: %w", err)
	}
	return nil
}

// GetCartItems returns the user's lines with the current product row. A line
// whose product was deleted comes back with a nil Product.
func (s *Store) GetCartItems(ctx context.Context, userID int) ([]models.CartLine, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT c.id, c.userId, c.productId, c.quantity,
		       p.id, p.name, p.price, p.img, p.categoryId
		FROM cart c
		LEFT JOIN products p ON c.productId = p.id
		WHERE c.userId = ? AND c.quantity > 0
		ORDER BY c.id`, userID)
	if err != nil {
		return nil, readErr("get cart items", err)
	}
	defer rows.Close()

	var lines []models.CartLine
	for rows.Next() {
		var (
			l  models.CartLine
			jp joinedProduct
		)
		if err := rows.Scan(&l.ID, &l.UserID, &l.ProductID, &l.Quantity,
			&jp.id, &jp.name, &jp.price, &jp.img, &jp.categoryID); err != nil {
			return nil, err
		}
		l.Product = jp.product()
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateQuantity sets the line's quantity; zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, lineID, qty int) error {
	if qty <= 0 {
		return s.RemoveItem(ctx, lineID)
	}
	if _, err := s.DB.ExecContext(ctx, `UPDATE cart SET quantity = ? WHERE id = ?`, qty, lineID); err != nil {
		return fmt.Errorf("failed to update cart line %d: %w", lineID, err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, lineID int) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM cart WHERE id = ?`, lineID); err != nil {
		return fmt.Errorf("failed to remove cart line %d: %w", lineID, err)
	}
	return nil
}

func (s *Store) ClearCart(ctx context.Context, userID int) error {
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM cart WHERE userId = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// CartTotal sums price × quantity over lines that still have a product.
func CartTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// joinedProduct receives the nullable product side of a LEFT JOIN.
type joinedProduct struct {
	id         sql.NullInt64
	name       sql.NullString
	price      decimal.NullDecimal
	img        sql.NullString
	categoryID sql.NullInt64
}

func (j joinedProduct) product() *models.Product {
	if !j.id.Valid {
		return nil
	}
	return &models.Product{
		ID:         int(j.id.Int64),
		Name:       j.name.String,
		Price:      j.price.Decimal,
		Image:      j.img.String,
		CategoryID: int(j.categoryID.Int64),
	}
}
