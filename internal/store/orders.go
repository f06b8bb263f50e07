package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
)

// CreateOrder turns the supplied cart lines into an order. Unit prices are
// copied from each line's product as it is now, so later catalog edits never
// change the order. The order row, its lines and the clearing of the user's
// cart commit in one transaction.
//
// Lines without a product are left out of both the total and the order.
func (s *Store) CreateOrder(ctx context.Context, userID int, lines []models.CartLine, shippingAddress, phone string, method models.PaymentMethod) (int, error) {
	if method == "" {
		method = models.PaymentCash
	}
	if !method.Valid() {
		return 0, ErrInvalidPaymentMethod
	}

	var (
		billable []models.CartLine
		total    = decimal.Zero
	)
	for _, l := range lines {
		if l.Product == nil {
			slog.Warn("Skipping cart line without product", "line_id", l.ID, "product_id", l.ProductID)
			continue
		}
		if l.Quantity < 1 {
			continue
		}
		billable = append(billable, l)
		total = total.Add(l.Subtotal())
	}
	if len(billable) == 0 {
		return 0, ErrEmptyCart
	}

	var orderID int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO orders (userId, totalAmount, status, shippingAddress, phone, paymentMethod, createdAt)
			VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
			userID, total, models.StatusPending, shippingAddress, phone, method)
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		if orderID, err = res.LastInsertId(); err != nil {
			return err
		}

		for _, l := range billable {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_items (orderId, productId, quantity, price) VALUES (?, ?, ?, ?)`,
				orderID, l.ProductID, l.Quantity, l.Product.Price)
			if err != nil {
				return fmt.Errorf("failed to insert order line for product %d: %w", l.ProductID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart WHERE userId = ?`, userID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.Error("Error creating order", "user_id", userID, "error", err)
		return 0, err
	}

	slog.Info("Order created", "order_id", orderID, "user_id", userID, "total", total.String(), "lines", len(billable))
	return int(orderID), nil
}

// UpdateOrderStatus writes status to the order. Transitions are advisory
// unless the store was opened with strict transitions.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int, status models.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if s.strict {
			var current models.OrderStatus
			err := tx.QueryRowContext(ctx, `SELECT COALESCE(status, 'pending') FROM orders WHERE id = ?`, orderID).Scan(&current)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("failed to read order status: %w", err)
			}
			if !current.CanTransitionTo(status) {
				return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, current, status)
			}
		}

		res, err := tx.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
		if err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

const orderColumns = `o.id, o.userId, COALESCE(o.totalAmount, 0), COALESCE(o.status, 'pending'), o.createdAt,
	COALESCE(o.shippingAddress, ''), COALESCE(o.phone, ''), COALESCE(o.paymentMethod, 'cash')`

func scanOrder(row rowScanner, extra ...any) (models.Order, error) {
	var (
		o         models.Order
		createdAt dbTime
	)
	dest := append([]any{&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &createdAt,
		&o.ShippingAddress, &o.Phone, &o.PaymentMethod}, extra...)
	err := row.Scan(dest...)
	o.CreatedAt = createdAt.Time
	return o, err
}

// dbTime accepts both DATETIME values and the TEXT timestamps written by
// older stores.
type dbTime struct {
	time.Time
}

var legacyTimeLayouts = []string{"2006-01-02 15:04:05", time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00"}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported timestamp type %T", src)
}

func (t *dbTime) parse(s string) error {
	for _, layout := range legacyTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// GetOrders lists the user's own orders, newest first.
func (s *Store) GetOrders(ctx context.Context, userID int) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders o
		WHERE o.userId = ?
		ORDER BY o.createdAt DESC, o.id DESC`, userID)
	if err != nil {
		return nil, readErr("get orders", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// GetAllOrders is the admin listing, newest first, with the buyer's username.
// Orders of deleted users are kept with an empty username.
func (s *Store) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`, COALESCE(u.username, '')
		FROM orders o
		LEFT JOIN users u ON o.userId = u.id
		ORDER BY o.createdAt DESC, o.id DESC`)
	if err != nil {
		return nil, readErr("get all orders", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var username string
		o, err := scanOrder(rows, &username)
		if err != nil {
			return nil, err
		}
		o.Username = username
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetOrder(ctx context.Context, orderID int) (*models.Order, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = ?`, orderID)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, readErr("get order", err)
	}
	return &o, nil
}

// GetOrderItems returns the order's lines. Price is always the snapshot taken
// at checkout; Product is the live catalog row, nil if it has been deleted.
func (s *Store) GetOrderItems(ctx context.Context, orderID int) ([]models.OrderLine, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT oi.id, oi.orderId, oi.productId, oi.quantity, COALESCE(oi.price, 0),
		       p.id, p.name, p.price, p.img, p.categoryId
		FROM order_items oi
		LEFT JOIN products p ON oi.productId = p.id
		WHERE oi.orderId = ?
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, readErr("get order items", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var (
			l  models.OrderLine
			jp joinedProduct
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.Price,
			&jp.id, &jp.name, &jp.price, &jp.img, &jp.categoryID); err != nil {
			return nil, err
		}
		l.Product = jp.product()
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
