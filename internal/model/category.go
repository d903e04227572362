package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is an immutable reference entity seeded at install time.
type Category struct {
	ID   uuid.UUID `json:"category_id" gorm:"type:char(36);primaryKey"`
	Name string    `json:"name" gorm:"size:255;not null"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
