package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"img"` // opaque asset reference
	CategoryID int             `json:"category_id"`
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // bcrypt hash (legacy rows may still hold plaintext)
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ProfileUpdate carries a partial user update. Nil fields are left untouched.
type ProfileUpdate struct {
	Username *string
	Password *string
	Email    *string
	Phone    *string
	Address  *string
	Avatar   *string
}

func (p ProfileUpdate) Empty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil &&
		p.Phone == nil && p.Address == nil && p.Avatar == nil
}

type CartLine struct {
	ID        int      `json:"id"`
	UserID    int      `json:"user_id"`
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product"` // nil when the product was deleted
}

// Subtotal is price × quantity, or zero when the product is gone.
func (l CartLine) Subtotal() decimal.Decimal {
	if l.Product == nil {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	Username        string          `json:"username,omitempty"` // set by admin listing only
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	ShippingAddress string          `json:"shipping_address"`
	Phone           string          `json:"phone"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
}

type OrderLine struct {
	ID        int             `json:"id"`
	OrderID   int             `json:"order_id"`
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`   // unit price frozen at checkout
	Product   *Product        `json:"product"` // live row, nil when deleted
}

func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ProductFilter composes optional predicates with AND. A nil bound is unbounded.
type ProductFilter struct {
	Name *string
	Min  *decimal.Decimal
	Max  *decimal.Decimal
}
