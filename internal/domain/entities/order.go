package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "placed"
)

// OrderItem is a snapshot of a product at checkout time
type OrderItem struct {
	ProductID  uuid.UUID       `json:"productId"`
	RetailerID uuid.UUID       `json:"retailerId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}

// Order represents a placed order
type Order struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"accountId"`
	Status          OrderStatus     `json:"status"`
	Items           []OrderItem     `json:"items"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress Address         `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CheckoutInput represents input for placing an order
type CheckoutInput struct {
	AddressID *uuid.UUID `json:"addressId"`
}
