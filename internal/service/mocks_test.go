package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gavel/internal/model"
	"gavel/internal/repository"
)

var errNoSuchBlob = stderrors.New("no such blob")

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindAllByToken(ctx context.Context, token string) ([]model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ClearToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuctionRepository is a mock implementation of AuctionRepository. Its
// WithTransaction runs the closure against the same mocks; there is no real
// transaction to roll back.
type MockAuctionRepository struct {
	mock.Mock
	txBids repository.BidRepository
}

func (m *MockAuctionRepository) Create(ctx context.Context, auction *model.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *MockAuctionRepository) Update(ctx context.Context, auction *model.Auction) error {
	args := m.Called(ctx, auction)
	return args.Error(0)
}

func (m *MockAuctionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAuctionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Auction), args.Error(1)
}

func (m *MockAuctionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Auction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Auction), args.Error(1)
}

func (m *MockAuctionRepository) FindDetail(ctx context.Context, id uuid.UUID) (*model.AuctionDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuctionDetail), args.Error(1)
}

func (m *MockAuctionRepository) Search(ctx context.Context, query repository.AuctionQuery) (*model.AuctionPage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuctionPage), args.Error(1)
}

func (m *MockAuctionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, auctions repository.AuctionRepository, bids repository.BidRepository) error) error {
	return fn(ctx, m, m.txBids)
}

// MockBidRepository is a mock implementation of BidRepository.
type MockBidRepository struct {
	mock.Mock
}

func (m *MockBidRepository) Create(ctx context.Context, bid *model.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *MockBidRepository) Aggregate(ctx context.Context, auctionID uuid.UUID) (*int, int64, error) {
	args := m.Called(ctx, auctionID)
	var highest *int
	if args.Get(0) != nil {
		highest = args.Get(0).(*int)
	}
	return highest, args.Get(1).(int64), args.Error(2)
}

func (m *MockBidRepository) ListForAuction(ctx context.Context, auctionID uuid.UUID) ([]model.BidView, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BidView), args.Error(1)
}

// MockCategoryService is a mock implementation of CategoryService.
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBlobStore is an in-memory blob store. Write failures are simulated by
// setting failWrite.
type MockBlobStore struct {
	blobs     map[string][]byte
	deleted   []string
	failWrite error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{blobs: make(map[string][]byte)}
}

func (s *MockBlobStore) Write(name string, data []byte) error {
	if s.failWrite != nil {
		return s.failWrite
	}
	s.blobs[name] = data
	return nil
}

func (s *MockBlobStore) Read(name string) ([]byte, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, errNoSuchBlob
	}
	return data, nil
}

func (s *MockBlobStore) Exists(name string) (bool, error) {
	_, ok := s.blobs[name]
	return ok, nil
}

func (s *MockBlobStore) Delete(name string) error {
	delete(s.blobs, name)
	s.deleted = append(s.deleted, name)
	return nil
}
