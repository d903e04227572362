package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/errors"
	"gavel/internal/model"
	"gavel/internal/repository"
)

// BidService is the bid ledger: it validates and records bids and derives the
// current highest bid and bid count. Bids are immutable once recorded.
type BidService interface {
	List(ctx context.Context, auctionID uuid.UUID) ([]model.BidView, error)
	Place(ctx context.Context, auctionID uuid.UUID, token string, amount int) error
}

type bidService struct {
	auctions repository.AuctionRepository
	bids     repository.BidRepository
	guard    *auth.Guard
}

// NewBidService creates a new bid service.
func NewBidService(auctions repository.AuctionRepository, bids repository.BidRepository, guard *auth.Guard) BidService {
	return &bidService{auctions: auctions, bids: bids, guard: guard}
}

// List returns an auction's bids in canonical order: highest amount first,
// oldest first between equal amounts.
func (s *bidService) List(ctx context.Context, auctionID uuid.UUID) ([]model.BidView, error) {
	if _, err := s.auctions.FindByID(ctx, auctionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("find auction: %w", err)
	}
	views, err := s.bids.ListForAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return views, nil
}

// Place validates and records a bid. The first bid must meet the reserve;
// every later bid must strictly exceed the current highest, so ties are
// rejected. The seller can never bid on their own auction; that check runs
// after the amount checks to keep the failure classes of the original
// behavior.
//
// The whole check-then-insert runs in one transaction with the auction row
// locked, so two concurrent bids against the same auction are serialized and
// both can never validate against the same stale highest value.
func (s *bidService) Place(ctx context.Context, auctionID uuid.UUID, token string, amount int) error {
	err := s.auctions.WithTransaction(ctx, func(ctx context.Context, auctions repository.AuctionRepository, bids repository.BidRepository) error {
		auction, err := auctions.FindByIDForUpdate(ctx, auctionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAuctionNotFound
			}
			return fmt.Errorf("lock auction: %w", err)
		}

		highest, _, err := bids.Aggregate(ctx, auctionID)
		if err != nil {
			return fmt.Errorf("derive highest bid: %w", err)
		}
		if highest == nil {
			if amount < auction.Reserve {
				return errors.ErrBidBelowReserve
			}
		} else if amount <= *highest {
			return errors.ErrBidTooLow
		}

		bidder, err := s.guard.ResolveToken(ctx, token)
		if err != nil {
			return err
		}
		if bidder.ID == auction.SellerID {
			return errors.ErrSelfBid
		}

		bid := &model.Bid{
			AuctionID: auctionID,
			BidderID:  bidder.ID,
			Amount:    amount,
			CreatedAt: time.Now(),
		}
		if err := bids.Create(ctx, bid); err != nil {
			return fmt.Errorf("record bid: %w", err)
		}

		log.Info().
			Str("auction_id", auctionID.String()).
			Str("bidder_id", bidder.ID.String()).
			Int("amount", amount).
			Msg("bid placed")
		return nil
	})
	return err
}
