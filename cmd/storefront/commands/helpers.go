package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/shopspring/decimal"
)

func parseID(raw, what string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, raw)
	}
	return id, nil
}

func parseMoney(raw, flag string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", flag, raw, err)
	}
	return d, nil
}

// money renders an amount in đồng, without a fractional part.
func money(d decimal.Decimal) string {
	return d.StringFixed(0) + " ₫"
}

// lookupUser resolves a username given on the command line.
func (a *app) lookupUser(ctx context.Context, username string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("--user is required")
	}
	u, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %q not found", username)
	}
	return u, nil
}

// adminMark flags administrator accounts in tables.
func adminMark(u *models.User) string {
	if u.IsAdmin() {
		return "★"
	}
	return ""
}

func productName(p *models.Product) string {
	if p == nil {
		return "(removed)"
	}
	return p.Name
}

func productRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, money(p.Price), strconv.Itoa(p.CategoryID), p.Image})
	}
	return rows
}

var productHeader = []string{"ID", "NAME", "PRICE", "CATEGORY", "IMAGE"}
