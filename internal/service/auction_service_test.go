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

func TestAuctionService_Create(t *testing.T) {
	categoryID := uuid.New()
	sellerID := uuid.New()
	token := "seller-token"
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-time.Hour)

	seller := model.User{ID: sellerID, AuthToken: strPtr(token)}

	tests := []struct {
		name          string
		input         CreateAuctionInput
		token         string
		setupMock     func(*MockUserRepository, *MockAuctionRepository, *MockCategoryService)
		expectedError error
		wantReserve   int
	}{
		{
			name: "successful creation with default reserve",
			input: CreateAuctionInput{
				Title:       "Vintage armchair",
				Description: "Worn but sturdy",
				CategoryID:  categoryID,
				EndDate:     future,
			},
			token: token,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				categories.On("Exists", mock.Anything, categoryID).Return(true, nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{seller}, nil)
				auctions.On("Create", mock.Anything, mock.AnythingOfType("*model.Auction")).Return(nil)
			},
			wantReserve: 1,
		},
		{
			name: "explicit reserve is kept",
			input: CreateAuctionInput{
				Title:      "Rare stamp",
				CategoryID: categoryID,
				EndDate:    future,
				Reserve:    intPtr(250),
			},
			token: token,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				categories.On("Exists", mock.Anything, categoryID).Return(true, nil)
				users.On("FindAllByToken", mock.Anything, token).Return([]model.User{seller}, nil)
				auctions.On("Create", mock.Anything, mock.AnythingOfType("*model.Auction")).Return(nil)
			},
			wantReserve: 250,
		},
		{
			name: "end date in the past",
			input: CreateAuctionInput{
				Title:      "Expired listing",
				CategoryID: categoryID,
				EndDate:    past,
			},
			token:         token,
			setupMock:     func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {},
			expectedError: errors.ErrEndDateNotFuture,
		},
		{
			name: "unknown category",
			input: CreateAuctionInput{
				Title:      "Orphan listing",
				CategoryID: categoryID,
				EndDate:    future,
			},
			token: token,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				categories.On("Exists", mock.Anything, categoryID).Return(false, nil)
			},
			expectedError: errors.ErrUnknownCategory,
		},
		{
			name: "missing token",
			input: CreateAuctionInput{
				Title:      "Anonymous listing",
				CategoryID: categoryID,
				EndDate:    future,
			},
			token: "",
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				categories.On("Exists", mock.Anything, categoryID).Return(true, nil)
			},
			expectedError: errors.ErrMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockBids := new(MockBidRepository)
			mockAuctions := &MockAuctionRepository{txBids: mockBids}
			mockCategories := new(MockCategoryService)
			tt.setupMock(mockUsers, mockAuctions, mockCategories)

			var created *model.Auction
			for _, call := range mockAuctions.ExpectedCalls {
				if call.Method == "Create" {
					call.Run(func(args mock.Arguments) {
						created = args.Get(1).(*model.Auction)
					})
				}
			}

			guard := auth.NewGuard(mockUsers)
			service := NewAuctionService(mockAuctions, mockBids, mockUsers, mockCategories, guard, NewMockBlobStore())

			id, err := service.Create(context.Background(), tt.token, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
				assert.Equal(t, tt.input.Title, created.Title)
				assert.Equal(t, sellerID, created.SellerID)
				assert.Equal(t, tt.wantReserve, created.Reserve)
			}

			mockUsers.AssertExpectations(t)
			mockAuctions.AssertExpectations(t)
			mockCategories.AssertExpectations(t)
		})
	}
}

func TestAuctionService_Get(t *testing.T) {
	auctionID := uuid.New()

	t.Run("returns the detail projection", func(t *testing.T) {
		mockBids := new(MockBidRepository)
		mockAuctions := &MockAuctionRepository{txBids: mockBids}
		detail := &model.AuctionDetail{
			AuctionSummary: model.AuctionSummary{AuctionID: auctionID, Title: "Vintage armchair", NumBids: 2, HighestBid: intPtr(80)},
			Description:    "Worn but sturdy",
		}
		mockAuctions.On("FindDetail", mock.Anything, auctionID).Return(detail, nil)

		service := NewAuctionService(mockAuctions, mockBids, new(MockUserRepository), new(MockCategoryService), auth.NewGuard(new(MockUserRepository)), NewMockBlobStore())
		got, err := service.Get(context.Background(), auctionID)

		assert.NoError(t, err)
		assert.Equal(t, detail, got)
	})

	t.Run("unknown auction", func(t *testing.T) {
		mockBids := new(MockBidRepository)
		mockAuctions := &MockAuctionRepository{txBids: mockBids}
		mockAuctions.On("FindDetail", mock.Anything, auctionID).Return(nil, gorm.ErrRecordNotFound)

		service := NewAuctionService(mockAuctions, mockBids, new(MockUserRepository), new(MockCategoryService), auth.NewGuard(new(MockUserRepository)), NewMockBlobStore())
		got, err := service.Get(context.Background(), auctionID)

		assert.Equal(t, errors.ErrAuctionNotFound, err)
		assert.Nil(t, got)
	})
}

func TestAuctionService_Update(t *testing.T) {
	auctionID := uuid.New()
	sellerID := uuid.New()
	categoryID := uuid.New()
	newCategoryID := uuid.New()
	token := "seller-token"
	future := time.Now().Add(24 * time.Hour)

	auction := func() *model.Auction {
		return &model.Auction{
			ID:          auctionID,
			Title:       "Vintage armchair",
			Description: "Worn but sturdy",
			CategoryID:  categoryID,
			SellerID:    sellerID,
			Reserve:     50,
			EndDate:     future,
		}
	}
	seller := model.User{ID: sellerID, AuthToken: strPtr(token)}

	tests := []struct {
		name          string
		token         string
		input         UpdateAuctionInput
		setupMock     func(*MockUserRepository, *MockAuctionRepository, *MockCategoryService)
		expectedError error
		check         func(*testing.T, *model.Auction)
	}{
		{
			name:  "partial update keeps absent fields",
			token: token,
			input: UpdateAuctionInput{Title: strPtr("Restored armchair"), Reserve: intPtr(75)},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(auction(), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
				auctions.On("Update", mock.Anything, mock.AnythingOfType("*model.Auction")).Return(nil)
			},
			check: func(t *testing.T, saved *model.Auction) {
				assert.Equal(t, "Restored armchair", saved.Title)
				assert.Equal(t, 75, saved.Reserve)
				assert.Equal(t, "Worn but sturdy", saved.Description)
				assert.Equal(t, categoryID, saved.CategoryID)
			},
		},
		{
			name:  "category change is validated",
			token: token,
			input: UpdateAuctionInput{CategoryID: &newCategoryID},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(auction(), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
				categories.On("Exists", mock.Anything, newCategoryID).Return(false, nil)
			},
			expectedError: errors.ErrUnknownCategory,
		},
		{
			name:  "end date must stay in the future",
			token: token,
			input: UpdateAuctionInput{EndDate: timePtr(time.Now().Add(-time.Hour))},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(auction(), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
			},
			expectedError: errors.ErrEndDateNotFuture,
		},
		{
			name:  "reserve below one is rejected",
			token: token,
			input: UpdateAuctionInput{Reserve: intPtr(0)},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(auction(), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
			},
			expectedError: errors.ErrReserveTooLow,
		},
		{
			name:  "non-owner token is rejected",
			token: "someone-else",
			input: UpdateAuctionInput{Title: strPtr("Hijacked")},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(auction(), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
			},
			expectedError: errors.ErrNotResourceOwner,
		},
		{
			name:  "unknown auction",
			token: token,
			input: UpdateAuctionInput{Title: strPtr("Ghost")},
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, categories *MockCategoryService) {
				auctions.On("FindByID", mock.Anything, auctionID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAuctionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockBids := new(MockBidRepository)
			mockAuctions := &MockAuctionRepository{txBids: mockBids}
			mockCategories := new(MockCategoryService)
			tt.setupMock(mockUsers, mockAuctions, mockCategories)

			var saved *model.Auction
			for _, call := range mockAuctions.ExpectedCalls {
				if call.Method == "Update" {
					call.Run(func(args mock.Arguments) {
						saved = args.Get(1).(*model.Auction)
					})
				}
			}

			guard := auth.NewGuard(mockUsers)
			service := NewAuctionService(mockAuctions, mockBids, mockUsers, mockCategories, guard, NewMockBlobStore())

			err := service.Update(context.Background(), auctionID, tt.token, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				if tt.check != nil {
					assert.NotNil(t, saved)
					tt.check(t, saved)
				}
			}

			mockUsers.AssertExpectations(t)
			mockAuctions.AssertExpectations(t)
			mockCategories.AssertExpectations(t)
		})
	}
}

func TestAuctionService_Delete(t *testing.T) {
	auctionID := uuid.New()
	sellerID := uuid.New()
	token := "seller-token"

	seller := model.User{ID: sellerID, AuthToken: strPtr(token)}

	tests := []struct {
		name          string
		token         string
		image         *string
		setupMock     func(*MockUserRepository, *MockAuctionRepository, *MockBidRepository)
		expectedError error
		wantDeleted   []string
	}{
		{
			name:  "successful delete removes the image blob",
			token: token,
			image: strPtr("auction_" + auctionID.String() + ".png"),
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
				auctions.On("Delete", mock.Anything, auctionID).Return(nil)
			},
			wantDeleted: []string{"auction_" + auctionID.String() + ".png"},
		},
		{
			name:  "auction with bids cannot be deleted",
			token: token,
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				bids.On("Aggregate", mock.Anything, auctionID).Return(intPtr(80), int64(2), nil)
			},
			expectedError: errors.ErrAuctionHasBids,
		},
		{
			name:  "non-owner token is rejected",
			token: "someone-else",
			setupMock: func(users *MockUserRepository, auctions *MockAuctionRepository, bids *MockBidRepository) {
				bids.On("Aggregate", mock.Anything, auctionID).Return(nil, int64(0), nil)
				users.On("FindByID", mock.Anything, sellerID).Return(&seller, nil)
			},
			expectedError: errors.ErrNotResourceOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			mockBids := new(MockBidRepository)
			mockAuctions := &MockAuctionRepository{txBids: mockBids}
			mockAuctions.On("FindByID", mock.Anything, auctionID).Return(&model.Auction{
				ID:            auctionID,
				SellerID:      sellerID,
				ImageFilename: tt.image,
			}, nil)
			tt.setupMock(mockUsers, mockAuctions, mockBids)

			blobs := NewMockBlobStore()
			guard := auth.NewGuard(mockUsers)
			service := NewAuctionService(mockAuctions, mockBids, mockUsers, new(MockCategoryService), guard, blobs)

			err := service.Delete(context.Background(), auctionID, tt.token)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantDeleted, blobs.deleted)
			}

			mockUsers.AssertExpectations(t)
			mockAuctions.AssertExpectations(t)
			mockBids.AssertExpectations(t)
		})
	}
}

func timePtr(v time.Time) *time.Time { return &v }
