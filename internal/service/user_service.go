package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/errors"
	"gavel/internal/model"
	"gavel/internal/repository"
)

// UpdateUserInput carries the optional fields of a partial user update. Nil
// means "leave unchanged".
type UpdateUserInput struct {
	FirstName       *string
	LastName        *string
	Email           *string
	Password        *string
	CurrentPassword *string
}

// UserService handles user profile operations.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID, token string) (*model.Profile, error)
	Update(ctx context.Context, id uuid.UUID, token string, input UpdateUserInput) error
}

type userService struct {
	users repository.UserRepository
	guard *auth.Guard
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, guard *auth.Guard) UserService {
	return &userService{users: users, guard: guard}
}

// Get returns a user's profile. The email is included only when the presented
// token matches the user's own stored token; anyone else gets name only.
func (s *userService) Get(ctx context.Context, id uuid.UUID, token string) (*model.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile := &model.Profile{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if token != "" && s.guard.Authorize(user, token) == nil {
		profile.Email = user.Email
	}
	return profile, nil
}

// Update applies a partial update: each provided field is validated on its
// own, absent fields keep their prior values, and the record is written back
// as a single replace only after every check passes.
func (s *userService) Update(ctx context.Context, id uuid.UUID, token string, input UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if err := s.guard.Authorize(user, token); err != nil {
		return err
	}

	if input.Email != nil {
		if !validEmail(*input.Email) {
			return errors.ErrInvalidEmail
		}
		user.Email = *input.Email
	}

	if input.Password != nil {
		if input.CurrentPassword == nil {
			return errors.ErrMissingCurrentPassword
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.CurrentPassword)) != nil {
			return errors.ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
