package models

import (
	"time"

	"github.com/google/uuid"
	"storefront.backend/internal/domain/entities"
)

// Account stores an end user. Addresses, preferences, cart and wishlist are
// embedded JSON documents rewritten on every save.
type Account struct {
	ID                 uuid.UUID               `gorm:"type:uuid;primaryKey"`
	ExternalID         string                  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email              string                  `gorm:"type:varchar(255);uniqueIndex;not null"`
	Role               string                  `gorm:"type:varchar(20);not null;default:'buyer';index"`
	Name               string                  `gorm:"type:varchar(100)"`
	AvatarURL          string                  `gorm:"type:varchar(500)"`
	Phone              string                  `gorm:"type:varchar(20)"`
	Addresses          []entities.Address      `gorm:"type:jsonb;serializer:json"`
	Preferences        entities.Preferences    `gorm:"type:jsonb;serializer:json"`
	VerificationStatus string                  `gorm:"type:varchar(20);not null;default:'none'"`
	AppliedAt          *time.Time              `gorm:"type:timestamp"`
	VerifiedAt         *time.Time              `gorm:"type:timestamp"`
	VerifiedBy         *uuid.UUID              `gorm:"type:uuid"`
	Cart               []entities.CartItem     `gorm:"type:jsonb;serializer:json"`
	Wishlist           []entities.WishlistItem `gorm:"type:jsonb;serializer:json"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Account) TableName() string {
	return "accounts"
}
