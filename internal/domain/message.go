package domain

import "time"

// Message is a listing-scoped note between two users. Read state
// belongs to the receiver.
type Message struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listing_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
