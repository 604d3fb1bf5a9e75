package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/persistence"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const (
	categoryCacheKey = "categories:all"
	categoryCacheTTL = 5 * time.Minute
)

// CategoryService coordinates category administration. The read path is
// cached in Redis since categories change rarely and are on every page.
type CategoryService struct {
	categories repository.CategoryRepository
	cache      *persistence.Redis
	logger     *zap.Logger
}

// NewCategoryService constructs the service.
func NewCategoryService(categories repository.CategoryRepository, cache *persistence.Redis, logger *zap.Logger) *CategoryService {
	return &CategoryService{categories: categories, cache: cache, logger: logger}
}

// CategoryInput describes category create/update payloads.
type CategoryInput struct {
	Name        string
	Description string
}

// List returns all categories, served from cache when possible. Cache
// failures fall through to the repository.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	if cached, ok := s.cachedList(ctx); ok {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, categories)
	return categories, nil
}

// Get fetches a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// Create adds a category. Names are unique.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}

	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("category with this name already exists", map[string]any{"name": name})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	category := &domain.Category{Name: name, Description: strings.TrimSpace(input.Description)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Update renames or re-describes a category.
func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		category.Name = name
	}
	category.Description = strings.TrimSpace(input.Description)

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) cachedList(ctx context.Context) ([]domain.Category, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, categoryCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		s.logger.Debug("category cache corrupt, dropping", zap.Error(err))
		s.invalidate(ctx)
		return nil, false
	}
	return categories, true
}

func (s *CategoryService) storeList(ctx context.Context, categories []domain.Category) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, categoryCacheKey, raw, categoryCacheTTL).Err(); err != nil {
		s.logger.Debug("category cache write failed", zap.Error(err))
	}
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, categoryCacheKey).Err(); err != nil {
		s.logger.Debug("category cache invalidation failed", zap.Error(err))
	}
}
