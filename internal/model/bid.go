package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid is an immutable record of one user's offer on one auction. Bids are
// never updated or deleted; the winning bid is always derived by aggregation.
type Bid struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	AuctionID uuid.UUID `json:"auction_id" gorm:"type:char(36);not null;index"`
	BidderID  uuid.UUID `json:"bidder_id" gorm:"type:char(36);not null;index"`
	Amount    int       `json:"amount" gorm:"not null"`
	CreatedAt time.Time `json:"timestamp"`

	// Relations
	Auction Auction `json:"-" gorm:"foreignKey:AuctionID"`
	Bidder  User    `json:"-" gorm:"foreignKey:BidderID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BidView is the listing projection with the bidder's name joined in.
// The canonical order is amount descending, oldest first between equals.
type BidView struct {
	BidderID  uuid.UUID `json:"bidder_id" gorm:"column:bidder_id"`
	Amount    int       `json:"amount" gorm:"column:amount"`
	FirstName string    `json:"first_name" gorm:"column:first_name"`
	LastName  string    `json:"last_name" gorm:"column:last_name"`
	Timestamp time.Time `json:"timestamp" gorm:"column:created_at"`
}
