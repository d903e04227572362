package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/errors"
	"gavel/internal/model"
	"gavel/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and session operations.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (user *model.User, token string, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// validEmail checks the required shape: exactly one @, neither first nor last
// character.
func validEmail(email string) bool {
	first := strings.Index(email, "@")
	if first != strings.LastIndex(email, "@") {
		return false
	}
	return first > 0 && first < len(email)-1
}

// Register creates a new user with a hashed password. A duplicate email is a
// conflict, not a silent overwrite.
func (s *authService) Register(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	if !validEmail(email) {
		return nil, errors.ErrInvalidEmail
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return user, nil
}

// Login verifies credentials and issues a fresh opaque token, overwriting any
// previous one so a user holds at most one active token.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if !validEmail(email) {
		return nil, "", errors.ErrInvalidEmail
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := auth.NewToken()
	if err != nil {
		return nil, "", err
	}
	user.AuthToken = &token
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", fmt.Errorf("store token: %w", err)
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return user, token, nil
}

// Logout clears the stored token. A token that clears nothing was not a live
// session, which is an authentication failure.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return errors.ErrMissingToken
	}
	cleared, err := s.users.ClearToken(ctx, token)
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if cleared == 0 {
		return errors.ErrInvalidToken
	}
	return nil
}
