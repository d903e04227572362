package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gavel/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindAllByToken returns every user holding the token. Token collisions
	// are an authentication failure, so callers need the full match set.
	FindAllByToken(ctx context.Context, token string) ([]model.User, error)
	// ClearToken nulls the token wherever it is currently set and reports how
	// many records changed.
	ClearToken(ctx context.Context, token string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user record.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update replaces the stored record with the given one.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// FindByID finds a user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAllByToken(ctx context.Context, token string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("auth_token = ?", token).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ClearToken(ctx context.Context, token string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("auth_token = ?", token).
		Update("auth_token", nil)
	return res.RowsAffected, res.Error
}
