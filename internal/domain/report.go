package domain

import "time"

// ReportStatus tracks moderation state for a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "PENDING"
	ReportStatusApproved ReportStatus = "APPROVED"
	ReportStatusRejected ReportStatus = "REJECTED"
)

// Valid reports whether the status is one of the known values.
func (s ReportStatus) Valid() bool {
	return s == ReportStatusPending || s == ReportStatusApproved || s == ReportStatusRejected
}

// Report is a complaint a user files against someone else's listing.
// A user may file at most one report per listing.
type Report struct {
	ID        string       `json:"id"`
	ListingID string       `json:"listing_id"`
	UserID    string       `json:"user_id"`
	Reason    string       `json:"reason"`
	Status    ReportStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}
