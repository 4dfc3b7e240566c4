package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a rental of a gear listing for a date range.
// EndDate is exclusive: a booking from the 1st to the 3rd covers two nights.
type Booking struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	GearID     uuid.UUID       `json:"gear_id" gorm:"type:char(36);not null;index"`
	RenterID   uuid.UUID       `json:"renter_id" gorm:"type:char(36);not null;index"`
	StartDate  time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate    time.Time       `json:"end_date" gorm:"type:date;not null"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(20,2);not null"`
	Status     BookingStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Gear   Gear `json:"-" gorm:"foreignKey:GearID"`
	Renter User `json:"-" gorm:"foreignKey:RenterID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
