package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a marketplace account. PasswordHash is nil for accounts
// created through an OAuth provider; such users log in via the provider only.
type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash *string        `json:"-" gorm:"size:255"` // Never expose in JSON
	Birthday     *time.Time     `json:"birthday,omitempty" gorm:"type:date"`
	PhoneNumber  *string        `json:"phone_number,omitempty" gorm:"uniqueIndex;size:32"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Identities []Identity `json:"-" gorm:"foreignKey:UserID"`
	Gear       []Gear     `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ProfileComplete reports whether the profile fields required to rent or list
// gear are present.
func (u *User) ProfileComplete() bool {
	return u.Birthday != nil && u.PhoneNumber != nil && *u.PhoneNumber != ""
}
