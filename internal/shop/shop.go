// Package shop holds the caller-side workflows of the storefront: the input
// checks a screen performs before it calls into the store.
package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ToNga156/FinalProject/internal/models"
	"github.com/ToNga156/FinalProject/internal/store"
	"github.com/ToNga156/FinalProject/internal/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrNotLoggedIn       = errors.New("login required")
	ErrInvalidPriceRange = errors.New("minimum price is greater than maximum price")
	ErrUnknownCategory   = errors.New("category does not exist")
	ErrProductGone       = errors.New("cart contains products that are no longer available")
	ErrMinimumQuantity   = errors.New("quantity cannot go below 1")
)

// Store is the subset of the data layer the workflows use.
type Store interface {
	CreateUser(ctx context.Context, username, password string, role models.Role) (int, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, upd models.ProfileUpdate) error
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	AddProduct(ctx context.Context, p models.Product) (int, error)
	UpdateProduct(ctx context.Context, p models.Product) error
	FilterProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	GetCartItems(ctx context.Context, userID int) ([]models.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID, qty int) error
	CreateOrder(ctx context.Context, userID int, lines []models.CartLine, shippingAddress, phone string, method models.PaymentMethod) (int, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (int, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.Struct(req); err != nil {
		return 0, err
	}
	return s.store.CreateUser(ctx, req.Username, req.Password, models.RoleUser)
}

// Login returns nil and no error when the credentials do not match.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	return s.store.Authenticate(ctx, strings.TrimSpace(username), password)
}

type CheckoutRequest struct {
	ShippingAddress string               `json:"shipping_address" validate:"required,min=10"`
	Phone           string               `json:"phone" validate:"required,phone"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank_transfer credit_card"`
}

// Checkout places an order for everything in the user's cart.
func (s *Service) Checkout(ctx context.Context, userID int, req CheckoutRequest) (int, error) {
	if userID <= 0 {
		return 0, ErrNotLoggedIn
	}
	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCash
	}
	if err := validation.Struct(req); err != nil {
		return 0, err
	}

	lines, err := s.store.GetCartItems(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(lines) == 0 {
		return 0, store.ErrEmptyCart
	}
	for _, l := range lines {
		if l.Product == nil {
			return 0, fmt.Errorf("%w: product %d", ErrProductGone, l.ProductID)
		}
	}

	return s.store.CreateOrder(ctx, userID, lines, req.ShippingAddress, req.Phone, req.PaymentMethod)
}

type ProfileRequest struct {
	Username    *string `json:"username" validate:"omitempty,min=3"`
	NewPassword *string `json:"new_password" validate:"omitempty,min=6"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty,phone"`
	Address     *string `json:"address" validate:"omitempty,min=10"`
	Avatar      *string `json:"avatar"`
}

// EditProfile validates the supplied fields and writes only those. An empty
// string for email, phone, address or avatar clears the field.
func (s *Service) EditProfile(ctx context.Context, userID int, req ProfileRequest) error {
	if userID <= 0 {
		return ErrNotLoggedIn
	}
	trim(req.Username, req.Email, req.Phone, req.Address)
	if req.NewPassword != nil && *req.NewPassword == "" {
		req.NewPassword = nil
	}
	if req.Username != nil && *req.Username == "" {
		return validation.Errors{"username": "is required"}
	}

	// Cleared fields skip their format rules.
	check := req
	for _, f := range []**string{&check.Email, &check.Phone, &check.Address} {
		if *f != nil && **f == "" {
			*f = nil
		}
	}
	if err := validation.Struct(check); err != nil {
		return err
	}
	return s.store.UpdateProfile(ctx, userID, models.ProfileUpdate{
		Username: req.Username,
		Password: req.NewPassword,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
}

// FilterProducts rejects an inverted price range before querying.
func (s *Service) FilterProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	if f.Min != nil && f.Max != nil && f.Min.GreaterThan(*f.Max) {
		return nil, ErrInvalidPriceRange
	}
	return s.store.FilterProducts(ctx, f)
}

type ProductRequest struct {
	ID         int             `json:"id"`
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"img"`
	CategoryID int             `json:"category_id" validate:"required,gt=0"`
}

// SaveProduct adds the product when ID is zero and updates it otherwise.
// It returns the product id.
func (s *Service) SaveProduct(ctx context.Context, req ProductRequest) (int, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return 0, err
	}
	if req.Price.IsNegative() {
		return 0, validation.Errors{"price": "must be at least 0"}
	}

	cat, err := s.store.GetCategory(ctx, req.CategoryID)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCategory, req.CategoryID)
	}

	p := models.Product{ID: req.ID, Name: req.Name, Price: req.Price, Image: req.Image, CategoryID: req.CategoryID}
	if req.ID == 0 {
		return s.store.AddProduct(ctx, p)
	}
	return req.ID, s.store.UpdateProduct(ctx, p)
}

// DecrementLine lowers a cart line by one but never below one; removal is a
// separate, explicit action.
func (s *Service) DecrementLine(ctx context.Context, line models.CartLine) error {
	if line.Quantity <= 1 {
		return ErrMinimumQuantity
	}
	return s.store.UpdateQuantity(ctx, line.ID, line.Quantity-1)
}

func trim(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
