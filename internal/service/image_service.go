package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"gavel/internal/auth"
	"gavel/internal/blob"
	"gavel/internal/errors"
	"gavel/internal/repository"
)

// ImageService manages the single optional image slot of a user profile or an
// auction. Filenames are deterministic: <kind>_<entity id>.<extension>.
type ImageService interface {
	AssignUserImage(ctx context.Context, id uuid.UUID, token, contentType string, data []byte) (created bool, err error)
	FetchUserImage(ctx context.Context, id uuid.UUID) (data []byte, contentType string, err error)
	RemoveUserImage(ctx context.Context, id uuid.UUID, token string) error

	AssignAuctionImage(ctx context.Context, id uuid.UUID, token, contentType string, data []byte) (created bool, err error)
	FetchAuctionImage(ctx context.Context, id uuid.UUID) (data []byte, contentType string, err error)
	RemoveAuctionImage(ctx context.Context, id uuid.UUID, token string) error
}

type imageService struct {
	users    repository.UserRepository
	auctions repository.AuctionRepository
	guard    *auth.Guard
	blobs    blob.Store
}

// NewImageService creates a new image service.
func NewImageService(users repository.UserRepository, auctions repository.AuctionRepository, guard *auth.Guard, blobs blob.Store) ImageService {
	return &imageService{users: users, auctions: auctions, guard: guard, blobs: blobs}
}

// extensionFor maps a content type onto exactly one supported extension.
func extensionFor(contentType string) (string, error) {
	switch strings.ToLower(contentType) {
	case "image/png":
		return "png", nil
	case "image/jpeg":
		return "jpg", nil
	case "image/gif":
		return "gif", nil
	}
	return "", errors.ErrUnsupportedImageType
}

// contentTypeFor reverses the extension mapping. Stored "jpg" is the one
// irregular case and maps back to "image/jpeg".
func contentTypeFor(filename string) string {
	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])
	if ext == "jpg" {
		ext = "jpeg"
	}
	return "image/" + ext
}

func (s *imageService) AssignUserImage(ctx context.Context, id uuid.UUID, token, contentType string, data []byte) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrUserNotFound
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	if err := s.guard.Authorize(user, token); err != nil {
		return false, err
	}

	name, created, err := s.store("user", id, contentType, data, user.ImageFilename)
	if err != nil {
		return false, err
	}
	user.ImageFilename = &name
	if err := s.users.Update(ctx, user); err != nil {
		return false, fmt.Errorf("update user image reference: %w", err)
	}
	return created, nil
}

func (s *imageService) FetchUserImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	return s.fetch(user.ImageFilename)
}

func (s *imageService) RemoveUserImage(ctx context.Context, id uuid.UUID, token string) error {
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

	s.discard(user.ImageFilename)
	user.ImageFilename = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("clear user image reference: %w", err)
	}
	return nil
}

func (s *imageService) AssignAuctionImage(ctx context.Context, id uuid.UUID, token, contentType string, data []byte) (bool, error) {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrAuctionNotFound
		}
		return false, fmt.Errorf("find auction: %w", err)
	}
	seller, err := s.users.FindByID(ctx, auction.SellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, errors.ErrUserNotFound
		}
		return false, fmt.Errorf("find seller: %w", err)
	}
	if err := s.guard.Authorize(seller, token); err != nil {
		return false, err
	}

	name, created, err := s.store("auction", id, contentType, data, auction.ImageFilename)
	if err != nil {
		return false, err
	}
	auction.ImageFilename = &name
	if err := s.auctions.Update(ctx, auction); err != nil {
		return false, fmt.Errorf("update auction image reference: %w", err)
	}
	return created, nil
}

func (s *imageService) FetchAuctionImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", errors.ErrAuctionNotFound
		}
		return nil, "", fmt.Errorf("find auction: %w", err)
	}
	return s.fetch(auction.ImageFilename)
}

func (s *imageService) RemoveAuctionImage(ctx context.Context, id uuid.UUID, token string) error {
	auction, err := s.auctions.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAuctionNotFound
		}
		return fmt.Errorf("find auction: %w", err)
	}
	seller, err := s.users.FindByID(ctx, auction.SellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find seller: %w", err)
	}
	if err := s.guard.Authorize(seller, token); err != nil {
		return err
	}

	s.discard(auction.ImageFilename)
	auction.ImageFilename = nil
	if err := s.auctions.Update(ctx, auction); err != nil {
		return fmt.Errorf("clear auction image reference: %w", err)
	}
	return nil
}

// store writes the binary under the deterministic name and reports whether
// the slot was empty before. A stale blob left by an extension change is
// removed best-effort.
func (s *imageService) store(kind string, id uuid.UUID, contentType string, data []byte, prior *string) (name string, created bool, err error) {
	ext, err := extensionFor(contentType)
	if err != nil {
		return "", false, err
	}
	name = fmt.Sprintf("%s_%s.%s", kind, id, ext)
	if err := s.blobs.Write(name, data); err != nil {
		return "", false, err
	}
	if prior != nil && *prior != name {
		s.discard(prior)
	}
	return name, prior == nil, nil
}

// fetch returns the stored binary and its content type derived from the
// filename extension.
func (s *imageService) fetch(ref *string) ([]byte, string, error) {
	if ref == nil {
		return nil, "", errors.ErrImageNotFound
	}
	data, err := s.blobs.Read(*ref)
	if err != nil {
		return nil, "", errors.ErrImageNotFound
	}
	return data, contentTypeFor(*ref), nil
}

// discard deletes a blob best-effort. A reference without a binary behind it
// is not an error.
func (s *imageService) discard(ref *string) {
	if ref == nil {
		return
	}
	if err := s.blobs.Delete(*ref); err != nil {
		log.Warn().Err(err).Str("blob", *ref).Msg("could not delete image blob")
	}
}
