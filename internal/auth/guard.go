package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"gavel/internal/errors"
	"gavel/internal/model"
	"gavel/internal/repository"
)

// Guard resolves opaque bearer tokens to users and checks resource ownership.
// It is read-only; token issuance and clearing happen through the auth
// service at login and logout.
type Guard struct {
	users repository.UserRepository
}

// NewGuard creates a new guard over the user repository.
func NewGuard(users repository.UserRepository) *Guard {
	return &Guard{users: users}
}

// ResolveToken returns the unique user holding the token. Zero matches and
// token collisions are both authentication failures, not a selection.
func (g *Guard) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, errors.ErrMissingToken
	}
	matches, err := g.users.FindAllByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("resolve token: %w", err)
	}
	if len(matches) != 1 {
		return nil, errors.ErrInvalidToken
	}
	return &matches[0], nil
}

// Authorize succeeds only when the owner has a non-null stored token that is
// byte-identical to the presented one. Tokens never expire; they stay valid
// until logout nulls them.
func (g *Guard) Authorize(owner *model.User, token string) error {
	if token == "" {
		return errors.ErrMissingToken
	}
	if owner.AuthToken == nil || *owner.AuthToken != token {
		return errors.ErrNotResourceOwner
	}
	return nil
}

// NewToken generates a fresh opaque session token.
func NewToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
