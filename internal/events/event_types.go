package events

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventListingCreated      EventType = "listing_created"
	EventListingDeactivated  EventType = "listing_deactivated"
	EventMessageSent         EventType = "message_sent"
	EventReportFiled         EventType = "report_filed"
	EventReportStatusChanged EventType = "report_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ListingCreatedPayload payload.
type ListingCreatedPayload struct {
	ListingID  string  `json:"listing_id"`
	CategoryID string  `json:"category_id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
}

// ListingDeactivatedPayload payload.
type ListingDeactivatedPayload struct {
	ListingID string `json:"listing_id"`
}

// MessageSentPayload payload.
type MessageSentPayload struct {
	MessageID   string `json:"message_id"`
	ListingID   string `json:"listing_id"`
	ReceiverID  string `json:"receiver_id"`
	TextPreview string `json:"text_preview"`
}

// ReportFiledPayload payload.
type ReportFiledPayload struct {
	ReportID  string `json:"report_id"`
	ListingID string `json:"listing_id"`
	Reason    string `json:"reason"`
}

// ReportStatusChangedPayload payload.
type ReportStatusChangedPayload struct {
	ReportID  string              `json:"report_id"`
	OldStatus domain.ReportStatus `json:"old_status"`
	NewStatus domain.ReportStatus `json:"new_status"`
}
