package dto

// ListingRequest payload for listing create/update.
type ListingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"category_id"`
}

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MessageRequest payload for sending or editing a message.
type MessageRequest struct {
	Text       string `json:"text"`
	ListingID  string `json:"listing_id"`
	ReceiverID string `json:"receiver_id"`
}

// ReportRequest payload for filing a report.
type ReportRequest struct {
	ListingID string `json:"listing_id"`
	Reason    string `json:"reason"`
}

// ReportStatusRequest payload for moderation decisions.
type ReportStatusRequest struct {
	Status string `json:"status"`
}

// UserUpdateRequest payload for account updates. Empty fields keep
// their current value.
type UserUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
