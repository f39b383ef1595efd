package models

import (
	"time"

	"github.com/google/uuid"
)

// RetailerApplication stores one application. The partial unique index keeps
// a single pending application per account.
type RetailerApplication struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID           uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_retailer_applications_one_pending,where:status = 'pending'"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	BusinessName        string     `gorm:"type:varchar(100);not null"`
	BusinessDescription string     `gorm:"type:text;not null"`
	BusinessCategory    string     `gorm:"type:varchar(50);not null"`
	ReviewedBy          *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt          *time.Time `gorm:"type:timestamp"`
	RejectionReason     string     `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"index"`
	UpdatedAt           time.Time
}

func (RetailerApplication) TableName() string {
	return "retailer_applications"
}
