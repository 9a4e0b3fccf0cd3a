package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the contact captured on the checkout screen.
type Customer struct {
	FullName        string `json:"full_name"`
	ShippingAddress string `json:"shipping_address"`
}

// Order is the receipt of a completed checkout. No payment is taken.
type Order struct {
	ID        OrderID
	SessionID SessionID
	Lines     []CartLine
	ItemCount int
	Total     decimal.Decimal
	Customer  Customer
	PlacedAt  time.Time
}

// NewOrder snapshots the cart into a receipt.
func NewOrder(sessionID SessionID, cart Cart, customer Customer, now time.Time) *Order {
	snapshot := cart.Clone()
	return &Order{
		ID:        OrderID(uuid.Must(uuid.NewV7()).String()),
		SessionID: sessionID,
		Lines:     snapshot.Lines,
		ItemCount: snapshot.ItemCount(),
		Total:     snapshot.Total(),
		Customer:  customer,
		PlacedAt:  now,
	}
}
