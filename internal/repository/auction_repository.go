package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gavel/internal/model"
)

// The bid aggregates are correlated subqueries so they are recomputed on
// every read and can never go stale.
const summaryColumns = "auctions.id as auction_id, auctions.title, auctions.category_id, " +
	"auctions.seller_id, users.first_name as seller_first_name, users.last_name as seller_last_name, " +
	"auctions.reserve, " +
	"(select count(*) from bids where bids.auction_id = auctions.id) as num_bids, " +
	"(select max(bids.amount) from bids where bids.auction_id = auctions.id) as highest_bid, " +
	"auctions.end_date"

const detailColumns = summaryColumns + ", auctions.description, auctions.image_filename"

// AuctionRepository defines auction persistence operations.
type AuctionRepository interface {
	Create(ctx context.Context, auction *model.Auction) error
	Update(ctx context.Context, auction *model.Auction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Auction, error)
	// FindByIDForUpdate locks the auction row for the rest of the enclosing
	// transaction, serializing concurrent bid placements per auction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Auction, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*model.AuctionDetail, error)
	Search(ctx context.Context, query AuctionQuery) (*model.AuctionPage, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, auctions AuctionRepository, bids BidRepository) error) error
}

type auctionRepository struct {
	db *gorm.DB
}

// NewAuctionRepository creates a new auction repository.
func NewAuctionRepository(db *gorm.DB) AuctionRepository {
	return &auctionRepository{db: db}
}

// Create creates a new auction record.
func (r *auctionRepository) Create(ctx context.Context, auction *model.Auction) error {
	return r.db.WithContext(ctx).Create(auction).Error
}

// Update replaces the stored record with the given one in a single write.
func (r *auctionRepository) Update(ctx context.Context, auction *model.Auction) error {
	return r.db.WithContext(ctx).Save(auction).Error
}

// Delete removes an auction record.
func (r *auctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Auction{}, "id = ?", id).Error
}

// FindByID finds an auction by ID.
func (r *auctionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&auction).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

// FindByIDForUpdate finds an auction by ID with a row lock.
func (r *auctionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Auction, error) {
	var auction model.Auction
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&auction).Error; err != nil {
		return nil, err
	}
	return &auction, nil
}

// FindDetail returns the full single-auction projection with seller name and
// derived bid aggregates.
func (r *auctionRepository) FindDetail(ctx context.Context, id uuid.UUID) (*model.AuctionDetail, error) {
	var detail model.AuctionDetail
	res := r.db.WithContext(ctx).
		Model(&model.Auction{}).
		Select(detailColumns).
		Joins("inner join users on users.id = auctions.seller_id").
		Where("auctions.id = ?", id).
		Limit(1).
		Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

// Search returns the filtered, sorted page plus the total count over the same
// filter ignoring pagination.
func (r *auctionRepository) Search(ctx context.Context, query AuctionQuery) (*model.AuctionPage, error) {
	base := r.db.WithContext(ctx).
		Model(&model.Auction{}).
		Joins("inner join users on users.id = auctions.seller_id")
	base = applyFilters(base, query)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("auctions.id").Count(&total).Error; err != nil {
		return nil, err
	}

	page := base.Session(&gorm.Session{}).
		Select(summaryColumns).
		Order(query.Sort.orderClause())
	if query.Count != nil {
		page = page.Limit(*query.Count)
	}
	if query.StartIndex != nil {
		page = page.Offset(*query.StartIndex)
	}

	auctions := make([]model.AuctionSummary, 0)
	if err := page.Scan(&auctions).Error; err != nil {
		return nil, err
	}

	return &model.AuctionPage{Auctions: auctions, Count: total}, nil
}

func applyFilters(q *gorm.DB, query AuctionQuery) *gorm.DB {
	if query.SellerID != nil {
		q = q.Where("auctions.seller_id = ?", *query.SellerID)
	}
	if len(query.CategoryIDs) > 0 {
		q = q.Where("auctions.category_id in ?", query.CategoryIDs)
	}
	if query.BidderID != nil {
		q = q.Where("exists (select 1 from bids where bids.auction_id = auctions.id and bids.bidder_id = ?)", *query.BidderID)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("(lower(auctions.title) like lower(?) or lower(auctions.description) like lower(?))", pattern, pattern)
	}
	return q
}

// WithTransaction runs fn inside a database transaction, handing it
// transaction-scoped auction and bid repositories.
func (r *auctionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, auctions AuctionRepository, bids BidRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &auctionRepository{db: tx}, &bidRepository{db: tx})
	})
}
