package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/authz"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ListingService coordinates listing workflows.
type ListingService struct {
	listings   repository.ListingRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
}

// NewListingService constructs the service.
func NewListingService(listings repository.ListingRepository, categories repository.CategoryRepository, dispatcher events.Dispatcher) *ListingService {
	return &ListingService{listings: listings, categories: categories, dispatcher: dispatcher}
}

// ListingInput describes listing create/update payloads.
type ListingInput struct {
	CategoryID  string
	Title       string
	Description string
	Price       float64
}

// ListActive returns active listings, newest first.
func (s *ListingService) ListActive(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.ListActive(ctx)
}

// ListAll returns every listing including deactivated ones.
func (s *ListingService) ListAll(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.ListAll(ctx)
}

// ListByCategory returns active listings in a category.
func (s *ListingService) ListByCategory(ctx context.Context, categoryID string) ([]domain.Listing, error) {
	return s.listings.ListByCategory(ctx, categoryID)
}

// ListByUser returns all listings posted by a user.
func (s *ListingService) ListByUser(ctx context.Context, userID string) ([]domain.Listing, error) {
	return s.listings.ListByUser(ctx, userID)
}

// Get fetches a listing by ID.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Listing, error) {
	return s.listings.GetByID(ctx, id)
}

// Create posts a new listing owned by the actor.
func (s *ListingService) Create(ctx context.Context, actor *auth.Principal, input ListingInput) (*domain.Listing, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price must not be negative", nil)
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("category not found", map[string]any{"category_id": input.CategoryID})
		}
		return nil, err
	}

	listing := &domain.Listing{
		UserID:      actor.UserID,
		CategoryID:  input.CategoryID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		IsActive:    true,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventListingCreated,
		Actor: events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ListingCreatedPayload{
			ListingID:  listing.ID,
			CategoryID: listing.CategoryID,
			Title:      listing.Title,
			Price:      listing.Price,
		},
	})
	return listing, nil
}

// Update modifies a listing the actor owns (or any, for admins).
func (s *ListingService) Update(ctx context.Context, actor *auth.Principal, id string, input ListingInput) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(actor, listing.UserID) {
		return nil, apperrors.NewForbidden("you can only update your own listings")
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		listing.Title = title
	}
	listing.Description = strings.TrimSpace(input.Description)
	if input.Price >= 0 {
		listing.Price = input.Price
	}
	if input.CategoryID != "" && input.CategoryID != listing.CategoryID {
		if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("category not found", map[string]any{"category_id": input.CategoryID})
			}
			return nil, err
		}
		listing.CategoryID = input.CategoryID
	}

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Delete removes a listing the actor owns (or any, for admins).
func (s *ListingService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModify(actor, listing.UserID) {
		return apperrors.NewForbidden("you can only delete your own listings")
	}
	return s.listings.Delete(ctx, id)
}

// Deactivate marks a listing inactive without deleting it.
func (s *ListingService) Deactivate(ctx context.Context, actor *auth.Principal, id string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(actor, listing.UserID) {
		return nil, apperrors.NewForbidden("you can only deactivate your own listings")
	}

	listing.IsActive = false
	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:    events.EventListingDeactivated,
		Actor:   events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ListingDeactivatedPayload{ListingID: listing.ID},
	})
	return listing, nil
}
