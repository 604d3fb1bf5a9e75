package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ReportService coordinates listing complaints and their moderation.
type ReportService struct {
	reports    repository.ReportRepository
	listings   repository.ListingRepository
	dispatcher events.Dispatcher
}

// NewReportService constructs the service.
func NewReportService(reports repository.ReportRepository, listings repository.ListingRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, listings: listings, dispatcher: dispatcher}
}

// ListAll returns every report.
func (s *ReportService) ListAll(ctx context.Context) ([]domain.Report, error) {
	return s.reports.ListAll(ctx)
}

// ListByListing returns reports filed against a listing.
func (s *ReportService) ListByListing(ctx context.Context, listingID string) ([]domain.Report, error) {
	return s.reports.ListByListing(ctx, listingID)
}

// ListByFiler returns reports the actor filed.
func (s *ReportService) ListByFiler(ctx context.Context, actor *auth.Principal) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, actor.UserID)
}

// ListByStatus returns reports in a moderation state.
func (s *ReportService) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status, must be PENDING, APPROVED or REJECTED", nil)
	}
	return s.reports.ListByStatus(ctx, status)
}

// Get fetches a report by ID.
func (s *ReportService) Get(ctx context.Context, id string) (*domain.Report, error) {
	return s.reports.GetByID(ctx, id)
}

// Create files a report against someone else's listing. One report per
// user and listing; the duplicate check runs at creation time.
func (s *ReportService) Create(ctx context.Context, actor *auth.Principal, listingID, reason string) (*domain.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required", nil)
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("listing not found", map[string]any{"listing_id": listingID})
		}
		return nil, err
	}
	if listing.UserID == actor.UserID {
		return nil, apperrors.NewValidationError("cannot report your own listing", nil)
	}

	if _, err := s.reports.GetByUserAndListing(ctx, actor.UserID, listingID); err == nil {
		return nil, apperrors.NewConflict("you have already reported this listing", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	report := &domain.Report{
		ListingID: listingID,
		UserID:    actor.UserID,
		Reason:    reason,
		Status:    domain.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventReportFiled,
		Actor: events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ReportFiledPayload{
			ReportID:  report.ID,
			ListingID: report.ListingID,
			Reason:    stringPreview(report.Reason, 120),
		},
	})
	return report, nil
}

// UpdateStatus moves a report through moderation. Admin-gated at the route.
func (s *ReportService) UpdateStatus(ctx context.Context, actor *auth.Principal, id string, status domain.ReportStatus) (*domain.Report, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status, must be PENDING, APPROVED or REJECTED", nil)
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := report.Status
	if err := s.reports.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	report.Status = status

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventReportStatusChanged,
		Actor: events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ReportStatusChangedPayload{
			ReportID:  report.ID,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return report, nil
}

// Delete removes a report. Admin-only, with no ownership fallback:
// filers cannot delete their own reports.
func (s *ReportService) Delete(ctx context.Context, id string) error {
	return s.reports.Delete(ctx, id)
}
