package store

import (
	"context"
	"fmt"

	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalProducts  int                        `json:"total_products"`
	TotalOrders    int                        `json:"total_orders"`
	TotalUsers     int                        `json:"total_users"`
	Revenue        decimal.Decimal            `json:"revenue"` // non-cancelled orders
	OrdersByStatus map[models.OrderStatus]int `json:"orders_by_status"`
	ProductSales   []ProductSales             `json:"product_sales"`
}

type ProductSales struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"` // empty when the product was deleted
	Units     int             `json:"units"`
	Revenue   decimal.Decimal `json:"revenue"`
}

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[models.OrderStatus]int),
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM products", &stats.TotalProducts},
		{"SELECT COUNT(*) FROM orders", &stats.TotalOrders},
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
	}
	for _, c := range counts {
		if err := s.DB.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			if err := readErr("count rows", err); err != nil {
				return nil, err
			}
		}
	}

	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(totalAmount), 0) FROM orders WHERE status IS NULL OR status != ?`,
		models.StatusCancelled).Scan(&stats.Revenue)
	if err != nil {
		if err := readErr("sum revenue", err); err != nil {
			return nil, err
		}
	}

	rows, err := s.DB.QueryContext(ctx, "SELECT COALESCE(status, 'pending'), COUNT(*) FROM orders GROUP BY 1")
	if err != nil {
		if err := readErr("count orders by status", err); err != nil {
			return nil, err
		}
	} else {
		defer rows.Close()
		for rows.Next() {
			var status models.OrderStatus
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				return nil, err
			}
			stats.OrdersByStatus[status] = count
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		rows.Close()
	}

	// Sales come from order line snapshots, so deleted products still count.
	salesRows, err := s.DB.QueryContext(ctx, `
		SELECT oi.productId, COALESCE(p.name, ''), SUM(oi.quantity), COALESCE(SUM(oi.price * oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.orderId
		LEFT JOIN products p ON p.id = oi.productId
		WHERE o.status IS NULL OR o.status != ?
		GROUP BY oi.productId
		ORDER BY SUM(oi.quantity) DESC, oi.productId`, models.StatusCancelled)
	if err != nil {
		if err := readErr("aggregate product sales", err); err != nil {
			return nil, err
		}
		return stats, nil
	}
	defer salesRows.Close()
	for salesRows.Next() {
		var ps ProductSales
		if err := salesRows.Scan(&ps.ProductID, &ps.Name, &ps.Units, &ps.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product sales: %w", err)
		}
		stats.ProductSales = append(stats.ProductSales, ps)
	}
	return stats, salesRows.Err()
}
