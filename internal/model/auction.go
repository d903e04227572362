package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auction represents an item listed for sale by a seller.
//
// Bid count and highest bid are never stored on the record; they are derived
// from the bids table on every read so they can never go stale.
type Auction struct {
	ID            uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string         `json:"title" gorm:"size:255;not null;index"`
	Description   string         `json:"description" gorm:"type:text;not null"`
	CategoryID    uuid.UUID      `json:"category_id" gorm:"type:char(36);not null;index"`
	SellerID      uuid.UUID      `json:"seller_id" gorm:"type:char(36);not null;index"`
	Reserve       int            `json:"reserve" gorm:"not null;default:1"`
	EndDate       time.Time      `json:"end_date" gorm:"not null;index"`
	ImageFilename *string        `json:"-" gorm:"size:255"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
	Seller   User     `json:"-" gorm:"foreignKey:SellerID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Auction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AuctionSummary is the search-result projection: no description, no image
// reference, with the derived bid aggregates and the seller's name joined in.
type AuctionSummary struct {
	AuctionID       uuid.UUID `json:"auction_id" gorm:"column:auction_id"`
	Title           string    `json:"title" gorm:"column:title"`
	CategoryID      uuid.UUID `json:"category_id" gorm:"column:category_id"`
	SellerID        uuid.UUID `json:"seller_id" gorm:"column:seller_id"`
	SellerFirstName string    `json:"seller_first_name" gorm:"column:seller_first_name"`
	SellerLastName  string    `json:"seller_last_name" gorm:"column:seller_last_name"`
	Reserve         int       `json:"reserve" gorm:"column:reserve"`
	NumBids         int       `json:"num_bids" gorm:"column:num_bids"`
	HighestBid      *int      `json:"highest_bid" gorm:"column:highest_bid"`
	EndDate         time.Time `json:"end_date" gorm:"column:end_date"`
}

// AuctionDetail is the single-auction projection. ImageFilename is for
// internal use; public responses omit it.
type AuctionDetail struct {
	AuctionSummary
	Description   string  `json:"description" gorm:"column:description"`
	ImageFilename *string `json:"-" gorm:"column:image_filename"`
}

// AuctionPage is one page of search results plus the total match count
// ignoring pagination.
type AuctionPage struct {
	Auctions []AuctionSummary `json:"auctions"`
	Count    int64            `json:"count"`
}
