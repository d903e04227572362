package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/blob"
	"gavel/internal/errors"
	"gavel/internal/model"
	"gavel/internal/repository"
)

// CreateAuctionInput carries the fields of an auction creation request.
// Reserve is optional and defaults to 1.
type CreateAuctionInput struct {
	Title       string
	Description string
	CategoryID  uuid.UUID
	EndDate     time.Time
	Reserve     *int
}

// UpdateAuctionInput carries the optional fields of a partial auction update.
// Nil means "leave unchanged".
type UpdateAuctionInput struct {
	Title       *string
	Description *string
	CategoryID  *uuid.UUID
	EndDate     *time.Time
	Reserve     *int
}

// AuctionService is the auction lifecycle engine: create, read, update,
// delete and search, with temporal and ownership constraints enforced before
// any write.
type AuctionService interface {
	Create(ctx context.Context, token string, input CreateAuctionInput) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*model.AuctionDetail, error)
	Update(ctx context.Context, id uuid.UUID, token string, input UpdateAuctionInput) error
	Delete(ctx context.Context, id uuid.UUID, token string) error
	Search(ctx context.Context, query repository.AuctionQuery) (*model.AuctionPage, error)
}

type auctionService struct {
	auctions   repository.AuctionRepository
	bids       repository.BidRepository
	users      repository.UserRepository
	categories CategoryService
	guard      *auth.Guard
	blobs      blob.Store
	now        func() time.Time
}

// NewAuctionService creates a new auction service.
func NewAuctionService(
	auctions repository.AuctionRepository,
	bids repository.BidRepository,
	users repository.UserRepository,
	categories CategoryService,
	guard *auth.Guard,
	blobs blob.Store,
) AuctionService {
	return &auctionService{
		auctions:   auctions,
		bids:       bids,
		users:      users,
		categories: categories,
		guard:      guard,
		blobs:      blobs,
		now:        time.Now,
	}
}

// Create validates the request and produces a new auction with zero bids,
// owned by the user the token resolves to. End-date comparison uses the wall
// clock at the moment of this check.
func (s *auctionService) Create(ctx context.Context, token string, input CreateAuctionInput) (uuid.UUID, error) {
	if !input.EndDate.After(s.now()) {
		return uuid.Nil, errors.ErrEndDateNotFuture
	}

	ok, err := s.categories.Exists(ctx, input.CategoryID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, errors.ErrUnknownCategory
	}

	seller, err := s.guard.ResolveToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}

	reserve := 1
	if input.Reserve != nil {
		reserve = *input.Reserve
	}

	auction := &model.Auction{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		SellerID:    seller.ID,
		Reserve:     reserve,
		EndDate:     input.EndDate,
	}
	if err := s.auctions.Create(ctx, auction); err != nil {
		return uuid.Nil, fmt.Errorf("create auction: %w", err)
	}

	log.Info().Str("auction_id", auction.ID.String()).Str("seller_id", seller.ID.String()).Msg("auction created")
	return auction.ID, nil
}

// Get returns the full auction detail including derived bid aggregates.
// Callers serving the public read drop the image reference field.
func (s *auctionService) Get(ctx context.Context, id uuid.UUID) (*model.AuctionDetail, error) {
	detail, err := s.auctions.FindDetail(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("find auction: %w", err)
	}
	return detail, nil
}

// Update applies a partial update. Each provided field is validated
// independently before anything is persisted, then the whole record is
// replaced in one write, so a late validation failure leaves every field
// untouched.
func (s *auctionService) Update(ctx context.Context, id uuid.UUID, token string, input UpdateAuctionInput) error {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAuctionNotFound
		}
		return fmt.Errorf("find auction: %w", err)
	}

	seller, err := s.sellerOf(ctx, auction)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(seller, token); err != nil {
		return err
	}

	if input.Title != nil {
		auction.Title = *input.Title
	}
	if input.Description != nil {
		auction.Description = *input.Description
	}
	if input.CategoryID != nil {
		ok, err := s.categories.Exists(ctx, *input.CategoryID)
		if err != nil {
			return err
		}
		if !ok {
			return errors.ErrUnknownCategory
		}
		auction.CategoryID = *input.CategoryID
	}
	if input.EndDate != nil {
		if !input.EndDate.After(s.now()) {
			return errors.ErrEndDateNotFuture
		}
		auction.EndDate = *input.EndDate
	}
	if input.Reserve != nil {
		if *input.Reserve < 1 {
			return errors.ErrReserveTooLow
		}
		auction.Reserve = *input.Reserve
	}

	if err := s.auctions.Update(ctx, auction); err != nil {
		return fmt.Errorf("update auction: %w", err)
	}
	return nil
}

// Delete removes an auction. Only the seller may delete, and only while the
// auction has no bids at all. The stored image asset goes with it.
func (s *auctionService) Delete(ctx context.Context, id uuid.UUID, token string) error {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAuctionNotFound
		}
		return fmt.Errorf("find auction: %w", err)
	}

	_, count, err := s.bids.Aggregate(ctx, id)
	if err != nil {
		return fmt.Errorf("count bids: %w", err)
	}
	if count != 0 {
		return errors.ErrAuctionHasBids
	}

	seller, err := s.sellerOf(ctx, auction)
	if err != nil {
		return err
	}
	if err := s.guard.Authorize(seller, token); err != nil {
		return err
	}

	if auction.ImageFilename != nil {
		// Best effort: a missing binary must not block the delete.
		if err := s.blobs.Delete(*auction.ImageFilename); err != nil {
			log.Warn().Err(err).Str("auction_id", id.String()).Msg("could not delete auction image")
		}
	}

	if err := s.auctions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete auction: %w", err)
	}

	log.Info().Str("auction_id", id.String()).Msg("auction deleted")
	return nil
}

// Search builds the filtered, sorted, paginated view. The returned count
// reflects the same filter as the page, ignoring pagination.
func (s *auctionService) Search(ctx context.Context, query repository.AuctionQuery) (*model.AuctionPage, error) {
	page, err := s.auctions.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search auctions: %w", err)
	}
	return page, nil
}

func (s *auctionService) sellerOf(ctx context.Context, auction *model.Auction) (*model.User, error) {
	seller, err := s.users.FindByID(ctx, auction.SellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find seller: %w", err)
	}
	return seller, nil
}
