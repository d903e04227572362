package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/errors"
	"gavel/internal/model"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestBidService_Place(t *testing.T) {
	auctionID := uuid.New()
	sellerID := uuid.New()
	bidderID := uuid.New()
	token := "bidder-token"

	auction := func() *model.Auction {
		return &model.Auction{
			ID:       auctionID,
			SellerID: sellerID,
			Reserve:  50,
			EndDate:  time.Now().Add(time.Hour),
		}
	}
	bidder := model.User{ID: bidderID, AuthToken: strPtr(token)}
	seller := model.User{ID: sellerID, AuthToken: strPtr(token)}

	tests := []struct {
		name          string
		amount        int
		setupMock     func(*MockUserRepository, *MockAuctionRepository, *MockBidRepository)
		expectedError error
	}{
		{
			name:   "first bid meeting the reserve is accepted",
			amount: 50,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{bidder}, nil)
				bids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "first bid below the reserve is rejected",
			amount: 49,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
			},
			expectedError: errors.ErrBidBelowReserve,
		},
		{
			name:   "later bid must strictly exceed the highest",
			amount: 101,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(intPtr(100), int64(3), nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{bidder}, nil)
				bids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "tie with the highest bid is rejected",
			amount: 100,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(intPtr(100), int64(3), nil)
			},
			expectedError: errors.ErrBidTooLow,
		},
		{
			name:   "seller cannot bid on their own auction",
			amount: 60,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{seller}, nil)
			},
			expectedError: errors.ErrSelfBid,
		},
		{
			// The amount check runs before the self-bid check, so a seller
			// lowballing their own auction sees the amount failure.
			name:   "too-low self bid fails on the amount",
			amount: 100,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(intPtr(100), int64(1), nil)
			},
			expectedError: errors.ErrBidTooLow,
		},
		{
			name:   "unknown auction",
			amount: 60,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAuctionNotFound,
		},
		{
			name:   "unresolvable token",
			amount: 60,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				auctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(auction(), nil)
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{}, nil)
			},
			expectedError: errors.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockBids := new(MockBidRepository)
			mockAuctions := &MockAuctionRepository{txBids: mockBids}
			tt.setupMock(mockUsers, mockAuctions, mockBids)

			guard := auth.NewGuard(mockUsers)
			service := NewBidService(mockAuctions, mockBids, guard)

			err := service.Place(context.Background(), auctionID, token, tt.amount)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockUsers.AssertExpectations(t)
			mockAuctions.AssertExpectations(t)
			mockBids.AssertExpectations(t)
		})
	}
}

func TestBidService_Place_RecordsBidder(t *testing.T) {
	auctionID := uuid.New()
	bidderID := uuid.New()
	token := "bidder-token"

	mockUsers := new(MockUserRepository)
	mockBids := new(MockBidRepository)
	mockAuctions := &MockAuctionRepository{txBids: mockBids}

	mockAuctions.On("FindByIDForUpdate", mock.Anything, auctionID).Return(&model.Auction{
		ID:       auctionID,
		SellerID: uuid.New(),
		Reserve:  1,
	}, nil)
	mockBids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
	mockUsers.On("FindAllByToken", mock.Anything, token).Return([]model.User{{ID: bidderID, AuthToken: strPtr(token)}}, nil)

	var recorded *model.Bid
	mockBids.On("Create", mock.Anything, mock.AnythingOfType("*model.Bid")).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*model.Bid)
	}).Return(nil)

	service := NewBidService(mockAuctions, mockBids, auth.NewGuard(mockUsers))
	err := service.Place(context.Background(), auctionID, token, 25)

	assert.NoError(t, err)
	assert.NotNil(t, recorded)
	assert.Equal(t, auctionID, recorded.AuctionID)
	assert.Equal(t, bidderID, recorded.BidderID)
	assert.Equal(t, 25, recorded.Amount)
	assert.False(t, recorded.CreatedAt.IsZero())
}

func TestBidService_List(t *testing.T) {
	auctionID := uuid.New()

	t.Run("returns the auction's bids", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockBids := new(MockBidRepository)
		mockAuctions := &MockAuctionRepository{txBids: mockBids}

		views := []model.BidView{
			{BidderID: uuid.New(), Amount: 120, FirstName: "Alice"},
			{BidderID: uuid.New(), Amount: 100, FirstName: "Bob"},
		}
		mockAuctions.On("FindByID", mock.Anything, auctionID).Return(&model.Auction{ID: auctionID}, nil)
		mockBids.On("ListForAuction", mock.Anything, auctionID).Return(views, nil)

		service := NewBidService(mockAuctions, mockBids, auth.NewGuard(mockUsers))
		got, err := service.List(context.Background(), auctionID)

		assert.NoError(t, err)
		assert.Equal(t, views, got)
		mockAuctions.AssertExpectations(t)
		mockBids.AssertExpectations(t)
	})

	t.Run("unknown auction", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockBids := new(MockBidRepository)
		mockAuctions := &MockAuctionRepository{txBids: mockBids}

		mockAuctions.On("FindByID", mock.Anything, auctionID).Return(nil, gorm.ErrRecordNotFound)

		service := NewBidService(mockAuctions, mockBids, auth.NewGuard(mockUsers))
		got, err := service.List(context.Background(), auctionID)

		assert.Equal(t, errors.ErrAuctionNotFound, err)
		assert.Nil(t, got)
		mockAuctions.AssertExpectations(t)
	})
}
