package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gavel/internal/cache"
	"gavel/internal/model"
	"gavel/internal/repository"
)

const (
	categoryListKey = "categories"
	categoryListTTL = 10 * time.Minute
)

// CategoryService exposes the immutable category reference set. It acts as
// the existence gate for auction create and update.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	cache      *cache.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, cache *cache.Client) CategoryService {
	return &categoryService{categories: categories, cache: cache}
}

// List returns all categories. The set is immutable so it is safe to cache.
func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	var cached []model.Category
	if s.cache.GetJSON(ctx, categoryListKey, &cached) {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.cache.SetJSON(ctx, categoryListKey, categories, categoryListTTL)
	return categories, nil
}

// Exists reports whether the category id refers to a seeded category.
func (s *categoryService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.categories.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return ok, nil
}
