package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered marketplace user.
//
// PasswordHash and AuthToken are never serialized. AuthToken is the single
// opaque credential issued at login and cleared at logout; a null token means
// the user is logged out.
type User struct {
	ID            uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName     string         `json:"first_name" gorm:"size:255;not null"`
	LastName      string         `json:"last_name" gorm:"size:255;not null"`
	Email         string         `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string         `json:"-" gorm:"size:255;not null"`
	AuthToken     *string        `json:"-" gorm:"size:128;index"`
	ImageFilename *string        `json:"-" gorm:"size:255"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Profile is the read projection of a user. Email is present only when the
// requester proved ownership with a matching token.
type Profile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}
