package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity links a user to a third-party OAuth identity. A user may hold a
// local password, identities, or both; one row per (provider, subject).
type Identity struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	Provider  string    `json:"provider" gorm:"size:32;not null;uniqueIndex:idx_provider_subject"`
	Subject   string    `json:"subject" gorm:"size:255;not null;uniqueIndex:idx_provider_subject"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
