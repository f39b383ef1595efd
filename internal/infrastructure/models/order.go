package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"storefront.backend/internal/domain/entities"
)

type Order struct {
	ID              uuid.UUID            `gorm:"type:uuid;primaryKey"`
	AccountID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status          string               `gorm:"type:varchar(20);not null;default:'placed'"`
	Items           []entities.OrderItem `gorm:"type:jsonb;serializer:json"`
	Total           decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	ShippingAddress entities.Address     `gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time            `gorm:"index"`
	UpdatedAt       time.Time
}

func (Order) TableName() string {
	return "orders"
}
