package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// In-memory repository fakes. All misses surface pgx.ErrNoRows, the
// same sentinel the postgres implementations use.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeCategoryRepo struct {
	categories map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*domain.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *category
	return &clone, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			clone := *category
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, category := range r.categories {
		out = append(out, *category)
	}
	return out, nil
}

type fakeListingRepo struct {
	listings map[string]*domain.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[string]*domain.Listing{}}
}

func (r *fakeListingRepo) Create(_ context.Context, listing *domain.Listing) error {
	listing.ID = uuid.NewString()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *fakeListingRepo) Update(_ context.Context, listing *domain.Listing) error {
	if _, ok := r.listings[listing.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *listing
	r.listings[listing.ID] = &clone
	return nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.listings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	listing, ok := r.listings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *listing
	return &clone, nil
}

func (r *fakeListingRepo) ListAll(_ context.Context) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, listing := range r.listings {
		out = append(out, *listing)
	}
	return out, nil
}

func (r *fakeListingRepo) ListActive(_ context.Context) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, listing := range r.listings {
		if listing.IsActive {
			out = append(out, *listing)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) ListByCategory(_ context.Context, categoryID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, listing := range r.listings {
		if listing.CategoryID == categoryID && listing.IsActive {
			out = append(out, *listing)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) ListByUser(_ context.Context, userID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	for _, listing := range r.listings {
		if listing.UserID == userID {
			out = append(out, *listing)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	messages map[string]*domain.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*domain.Message{}}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.Message) error {
	message.ID = uuid.NewString()
	message.CreatedAt = time.Now()
	clone := *message
	r.messages[message.ID] = &clone
	return nil
}

func (r *fakeMessageRepo) Update(_ context.Context, message *domain.Message) error {
	if _, ok := r.messages[message.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *message
	r.messages[message.ID] = &clone
	return nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.Message, error) {
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *message
	return &clone, nil
}

func (r *fakeMessageRepo) ListByListing(_ context.Context, listingID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, message := range r.messages {
		if message.ListingID == listingID {
			out = append(out, *message)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, listingID, userID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, message := range r.messages {
		if message.ListingID == listingID && (message.SenderID == userID || message.ReceiverID == userID) {
			out = append(out, *message)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListBySender(_ context.Context, senderID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, message := range r.messages {
		if message.SenderID == senderID {
			out = append(out, *message)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListByReceiver(_ context.Context, receiverID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, message := range r.messages {
		if message.ReceiverID == receiverID {
			out = append(out, *message)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	reports map[string]*domain.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*domain.Report{}}
}

func (r *fakeReportRepo) Create(_ context.Context, report *domain.Report) error {
	report.ID = uuid.NewString()
	report.CreatedAt = time.Now()
	clone := *report
	r.reports[report.ID] = &clone
	return nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, id string, status domain.ReportStatus) error {
	report, ok := r.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	report.Status = status
	return nil
}

func (r *fakeReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.reports[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	report, ok := r.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *report
	return &clone, nil
}

func (r *fakeReportRepo) GetByUserAndListing(_ context.Context, userID, listingID string) (*domain.Report, error) {
	for _, report := range r.reports {
		if report.UserID == userID && report.ListingID == listingID {
			clone := *report
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeReportRepo) ListAll(_ context.Context) ([]domain.Report, error) {
	out := []domain.Report{}
	for _, report := range r.reports {
		out = append(out, *report)
	}
	return out, nil
}

func (r *fakeReportRepo) ListByListing(_ context.Context, listingID string) ([]domain.Report, error) {
	out := []domain.Report{}
	for _, report := range r.reports {
		if report.ListingID == listingID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) ListByUser(_ context.Context, userID string) ([]domain.Report, error) {
	out := []domain.Report{}
	for _, report := range r.reports {
		if report.UserID == userID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) ListByStatus(_ context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	out := []domain.Report{}
	for _, report := range r.reports {
		if report.Status == status {
			out = append(out, *report)
		}
	}
	return out, nil
}
