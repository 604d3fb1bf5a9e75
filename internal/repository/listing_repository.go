package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const listingColumns = `id, user_id, category_id, title, description, price, is_active, created_at, updated_at`

// ListingRepository encapsulates listing persistence.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Listing, error)
	ListAll(ctx context.Context) ([]domain.Listing, error)
	ListActive(ctx context.Context) ([]domain.Listing, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Listing, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Listing, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (user_id, category_id, title, description, price, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.UserID,
		listing.CategoryID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.IsActive,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	const query = `
        UPDATE listings SET category_id=$1, title=$2, description=$3, price=$4, is_active=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		listing.CategoryID,
		listing.Title,
		listing.Description,
		listing.Price,
		listing.IsActive,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE id=$1`
	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.UserID,
		&listing.CategoryID,
		&listing.Title,
		&listing.Description,
		&listing.Price,
		&listing.IsActive,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) ListAll(ctx context.Context) ([]domain.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`
	return r.fetchMany(ctx, query)
}

func (r *listingRepository) ListActive(ctx context.Context) ([]domain.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE is_active ORDER BY created_at DESC`
	return r.fetchMany(ctx, query)
}

func (r *listingRepository) ListByCategory(ctx context.Context, categoryID string) ([]domain.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE category_id=$1 AND is_active ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, categoryID)
}

func (r *listingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Listing, error) {
	const query = `SELECT ` + listingColumns + ` FROM listings WHERE user_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, userID)
}

func (r *listingRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Listing, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.CategoryID,
			&listing.Title,
			&listing.Description,
			&listing.Price,
			&listing.IsActive,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}
