package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Gear represents a rentable listing posted by a lender.
type Gear struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID       `json:"owner_id" gorm:"type:char(36);not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	DailyPrice  decimal.Decimal `json:"daily_price" gorm:"type:decimal(20,2);not null"`
	Location    string          `json:"location,omitempty" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (g *Gear) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
