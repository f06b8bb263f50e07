package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusFlow(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.True(t, StatusShipping.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.True(t, StatusDelivered.CanTransitionTo(StatusDelivered))

	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusDelivered.Terminal())
	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, PaymentBankTransfer.Valid())
	assert.False(t, PaymentMethod("paypal").Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("root").Valid())
}

func TestSubtotals(t *testing.T) {
	p := &Product{ID: 7, Price: decimal.NewFromInt(1100000)}
	line := CartLine{ProductID: 7, Quantity: 2, Product: p}
	assert.True(t, decimal.NewFromInt(2200000).Equal(line.Subtotal()))

	orphan := CartLine{ProductID: 99, Quantity: 3}
	assert.True(t, orphan.Subtotal().IsZero())

	ol := OrderLine{Quantity: 3, Price: decimal.RequireFromString("19.99")}
	assert.Equal(t, "59.97", ol.Subtotal().String())
}
