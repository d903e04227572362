package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gavel/internal/model"
)

// BidRepository defines bid persistence operations. Bids are append-only;
// there is no update or delete.
type BidRepository interface {
	Create(ctx context.Context, bid *model.Bid) error
	// Aggregate derives the highest amount and bid count for an auction.
	// highest is nil when the auction has no bids.
	Aggregate(ctx context.Context, auctionID uuid.UUID) (highest *int, count int64, err error)
	ListForAuction(ctx context.Context, auctionID uuid.UUID) ([]model.BidView, error)
}

type bidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository.
func NewBidRepository(db *gorm.DB) BidRepository {
	return &bidRepository{db: db}
}

// Create appends a new bid record.
func (r *bidRepository) Create(ctx context.Context, bid *model.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

// Aggregate computes max(amount) and count(*) over the auction's bids.
func (r *bidRepository) Aggregate(ctx context.Context, auctionID uuid.UUID) (*int, int64, error) {
	var agg struct {
		NumBids    int64 `gorm:"column:num_bids"`
		HighestBid *int  `gorm:"column:highest_bid"`
	}
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Select("count(*) as num_bids, max(amount) as highest_bid").
		Where("auction_id = ?", auctionID).
		Scan(&agg).Error
	if err != nil {
		return nil, 0, err
	}
	return agg.HighestBid, agg.NumBids, nil
}

// ListForAuction returns the auction's bids with bidder names, highest amount
// first, oldest first between equal amounts.
func (r *bidRepository) ListForAuction(ctx context.Context, auctionID uuid.UUID) ([]model.BidView, error) {
	views := make([]model.BidView, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Bid{}).
		Select("bids.bidder_id, bids.amount, users.first_name, users.last_name, bids.created_at").
		Joins("inner join users on users.id = bids.bidder_id").
		Where("bids.auction_id = ?", auctionID).
		Order("bids.amount desc, bids.created_at asc").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}
