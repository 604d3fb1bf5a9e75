package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const reportColumns = `id, listing_id, user_id, reason, status, created_at`

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	GetByUserAndListing(ctx context.Context, userID, listingID string) (*domain.Report, error)
	ListAll(ctx context.Context) ([]domain.Report, error)
	ListByListing(ctx context.Context, listingID string) ([]domain.Report, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Report, error)
	ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error)
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (listing_id, user_id, reason, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		report.ListingID,
		report.UserID,
		report.Reason,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt)
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reports SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *reportRepository) GetByUserAndListing(ctx context.Context, userID, listingID string) (*domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE user_id=$1 AND listing_id=$2`
	return r.fetchSingle(ctx, query, userID, listingID)
}

func (r *reportRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.Report, error) {
	var report domain.Report
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&report.ID,
		&report.ListingID,
		&report.UserID,
		&report.Reason,
		&report.Status,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC`
	return r.fetchMany(ctx, query)
}

func (r *reportRepository) ListByListing(ctx context.Context, listingID string) ([]domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE listing_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, listingID)
}

func (r *reportRepository) ListByUser(ctx context.Context, userID string) ([]domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE user_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, userID)
}

func (r *reportRepository) ListByStatus(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	const query = `SELECT ` + reportColumns + ` FROM reports WHERE status=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, status)
}

func (r *reportRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Report, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []domain.Report{}
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.ListingID,
			&report.UserID,
			&report.Reason,
			&report.Status,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
