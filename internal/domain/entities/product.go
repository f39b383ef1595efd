package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is an item sold by a retailer
type Product struct {
	ID          uuid.UUID        `json:"id"`
	RetailerID  uuid.UUID        `json:"retailerId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    BusinessCategory `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	ImageURL    string           `json:"imageUrl"`
	IsActive    bool             `json:"isActive"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// IsPurchasable reports whether the product can be added to a cart
func (p *Product) IsPurchasable() bool {
	return p.IsActive && p.Stock > 0
}

// ProductInput represents input for creating or updating a product
type ProductInput struct {
	Name        string          `json:"name" binding:"required,min=2,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	Category    string          `json:"category" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"imageUrl" binding:"omitempty,url,max=500"`
	IsActive    *bool           `json:"isActive"`
}

// ProductFilter narrows product listings
type ProductFilter struct {
	Category   BusinessCategory
	Search     string
	RetailerID uuid.NullUUID
	ActiveOnly bool
}
