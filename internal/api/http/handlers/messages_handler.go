package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// MessagesHandler exposes listing-scoped messaging endpoints.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messages *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messages}
}

// ListByListing handles GET /api/messages/listing/:listingId.
func (h *MessagesHandler) ListByListing(c *fiber.Ctx) error {
	messages, err := h.messages.ListByListing(c.UserContext(), c.Params("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// Conversation handles GET /api/messages/listing/:listingId/conversation.
func (h *MessagesHandler) Conversation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	messages, err := h.messages.Conversation(c.UserContext(), principal, c.Params("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// Sent handles GET /api/messages/sent.
func (h *MessagesHandler) Sent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	messages, err := h.messages.Sent(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// Received handles GET /api/messages/received.
func (h *MessagesHandler) Received(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	messages, err := h.messages.Received(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

// Get handles GET /api/messages/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	message, err := h.messages.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(message)
}

// Create handles POST /api/messages.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.messages.Create(c.UserContext(), principal, service.MessageInput{
		ListingID:  req.ListingID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(message)
}

// MarkAsRead handles POST /api/messages/:id/read.
func (h *MessagesHandler) MarkAsRead(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	message, err := h.messages.MarkAsRead(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(message)
}

// Update handles PUT /api/messages/:id.
func (h *MessagesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.messages.Update(c.UserContext(), principal, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(message)
}

// Delete handles DELETE /api/messages/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.messages.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
