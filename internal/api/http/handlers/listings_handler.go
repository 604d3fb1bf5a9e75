package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ListingsHandler exposes listing endpoints.
type ListingsHandler struct {
	listings *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listings *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// ListActive handles GET /api/listings.
func (h *ListingsHandler) ListActive(c *fiber.Ctx) error {
	listings, err := h.listings.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// ListAll handles GET /api/listings/all.
func (h *ListingsHandler) ListAll(c *fiber.Ctx) error {
	listings, err := h.listings.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// ListByCategory handles GET /api/listings/category/:categoryId.
func (h *ListingsHandler) ListByCategory(c *fiber.Ctx) error {
	listings, err := h.listings.ListByCategory(c.UserContext(), c.Params("categoryId"))
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// ListByUser handles GET /api/listings/user/:userId.
func (h *ListingsHandler) ListByUser(c *fiber.Ctx) error {
	listings, err := h.listings.ListByUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// ListMine handles GET /api/listings/user/me.
func (h *ListingsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listings, err := h.listings.ListByUser(c.UserContext(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(listings)
}

// Get handles GET /api/listings/:id.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.listings.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(listing)
}

// Create handles POST /api/listings.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Create(c.UserContext(), principal, service.ListingInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(listing)
}

// Update handles PUT /api/listings/:id.
func (h *ListingsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.listings.Update(c.UserContext(), principal, c.Params("id"), service.ListingInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(listing)
}

// Delete handles DELETE /api/listings/:id.
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.listings.Delete(c.UserContext(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Deactivate handles POST /api/listings/:id/deactivate.
func (h *ListingsHandler) Deactivate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.listings.Deactivate(c.UserContext(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(listing)
}
