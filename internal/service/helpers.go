package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/marketplace-service/internal/events"
)

// publish stamps and dispatches an event. Delivery failures never fail
// the triggering operation.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = dispatcher.Publish(ctx, event)
}

// stringPreview trims s to at most limit runes so a cut never lands
// inside a multi-byte character.
func stringPreview(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
