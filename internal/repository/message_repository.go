package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const messageColumns = `id, listing_id, sender_id, receiver_id, text, is_read, created_at`

// MessageRepository encapsulates message persistence.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	Update(ctx context.Context, message *domain.Message) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Message, error)
	ListByListing(ctx context.Context, listingID string) ([]domain.Message, error)
	ListConversation(ctx context.Context, listingID, userID string) ([]domain.Message, error)
	ListBySender(ctx context.Context, senderID string) ([]domain.Message, error)
	ListByReceiver(ctx context.Context, receiverID string) ([]domain.Message, error)
}

type messageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository instantiates repository.
func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepository{pool: pool}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	const query = `
        INSERT INTO messages (listing_id, sender_id, receiver_id, text, is_read)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		message.ListingID,
		message.SenderID,
		message.ReceiverID,
		message.Text,
		message.IsRead,
	).Scan(&message.ID, &message.CreatedAt)
}

func (r *messageRepository) Update(ctx context.Context, message *domain.Message) error {
	const query = `UPDATE messages SET text=$1, is_read=$2 WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, message.Text, message.IsRead, message.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE id=$1`
	var message domain.Message
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&message.ID,
		&message.ListingID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Text,
		&message.IsRead,
		&message.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByListing(ctx context.Context, listingID string) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE listing_id=$1 ORDER BY created_at ASC`
	return r.fetchMany(ctx, query, listingID)
}

func (r *messageRepository) ListConversation(ctx context.Context, listingID, userID string) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages
        WHERE listing_id=$1 AND (sender_id=$2 OR receiver_id=$2)
        ORDER BY created_at ASC`
	return r.fetchMany(ctx, query, listingID, userID)
}

func (r *messageRepository) ListBySender(ctx context.Context, senderID string) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE sender_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, senderID)
}

func (r *messageRepository) ListByReceiver(ctx context.Context, receiverID string) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE receiver_id=$1 ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, receiverID)
}

func (r *messageRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Message, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var message domain.Message
		if err := rows.Scan(
			&message.ID,
			&message.ListingID,
			&message.SenderID,
			&message.ReceiverID,
			&message.Text,
			&message.IsRead,
			&message.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, rows.Err()
}
