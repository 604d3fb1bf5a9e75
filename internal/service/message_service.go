package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/authz"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// MessageService coordinates listing-scoped messaging.
type MessageService struct {
	messages   repository.MessageRepository
	listings   repository.ListingRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewMessageService constructs the service.
func NewMessageService(messages repository.MessageRepository, listings repository.ListingRepository, users repository.UserRepository, dispatcher events.Dispatcher) *MessageService {
	return &MessageService{messages: messages, listings: listings, users: users, dispatcher: dispatcher}
}

// MessageInput describes a new message payload.
type MessageInput struct {
	ListingID  string
	ReceiverID string
	Text       string
}

// ListByListing returns the full thread on a listing, oldest first.
func (s *MessageService) ListByListing(ctx context.Context, listingID string) ([]domain.Message, error) {
	return s.messages.ListByListing(ctx, listingID)
}

// Conversation returns the actor's exchange on a listing.
func (s *MessageService) Conversation(ctx context.Context, actor *auth.Principal, listingID string) ([]domain.Message, error) {
	return s.messages.ListConversation(ctx, listingID, actor.UserID)
}

// Sent returns messages the actor authored.
func (s *MessageService) Sent(ctx context.Context, actor *auth.Principal) ([]domain.Message, error) {
	return s.messages.ListBySender(ctx, actor.UserID)
}

// Received returns messages addressed to the actor.
func (s *MessageService) Received(ctx context.Context, actor *auth.Principal) ([]domain.Message, error) {
	return s.messages.ListByReceiver(ctx, actor.UserID)
}

// Get fetches a message by ID.
func (s *MessageService) Get(ctx context.Context, id string) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

// Create sends a message from the actor to another user about a listing.
func (s *MessageService) Create(ctx context.Context, actor *auth.Principal, input MessageInput) (*domain.Message, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text is required", nil)
	}
	if input.ListingID == "" || input.ReceiverID == "" {
		return nil, apperrors.NewValidationError("listing_id and receiver_id are required", nil)
	}
	if input.ReceiverID == actor.UserID {
		return nil, apperrors.NewValidationError("cannot send a message to yourself", nil)
	}

	if _, err := s.listings.GetByID(ctx, input.ListingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("listing not found", map[string]any{"listing_id": input.ListingID})
		}
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("receiver not found", map[string]any{"receiver_id": input.ReceiverID})
		}
		return nil, err
	}

	message := &domain.Message{
		ListingID:  input.ListingID,
		SenderID:   actor.UserID,
		ReceiverID: input.ReceiverID,
		Text:       text,
		IsRead:     false,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.Event{
		Type:  events.EventMessageSent,
		Actor: events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.MessageSentPayload{
			MessageID:   message.ID,
			ListingID:   message.ListingID,
			ReceiverID:  message.ReceiverID,
			TextPreview: stringPreview(message.Text, 120),
		},
	})
	return message, nil
}

// MarkAsRead flags a message read. Read state belongs to the receiver;
// not even admins may flip it for someone else.
func (s *MessageService) MarkAsRead(ctx context.Context, actor *auth.Principal, id string) (*domain.Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if message.ReceiverID != actor.UserID {
		return nil, apperrors.NewForbidden("you can only mark your own received messages as read")
	}

	message.IsRead = true
	if err := s.messages.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Update edits a message's text. Sender or admin only.
func (s *MessageService) Update(ctx context.Context, actor *auth.Principal, id, text string) (*domain.Message, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanModify(actor, message.SenderID) {
		return nil, apperrors.NewForbidden("you can only update your own messages")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("message text is required", nil)
	}

	message.Text = text
	if err := s.messages.Update(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Delete removes a message. Sender or admin only.
func (s *MessageService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanModify(actor, message.SenderID) {
		return apperrors.NewForbidden("you can only delete your own messages")
	}
	return s.messages.Delete(ctx, id)
}
