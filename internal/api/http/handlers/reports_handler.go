package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ReportsHandler exposes report endpoints.
type ReportsHandler struct {
	reports *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// ListAll handles GET /api/reports.
func (h *ReportsHandler) ListAll(c *fiber.Ctx) error {
	reports, err := h.reports.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// ListByListing handles GET /api/reports/listing/:listingId.
func (h *ReportsHandler) ListByListing(c *fiber.Ctx) error {
	reports, err := h.reports.ListByListing(c.UserContext(), c.Params("listingId"))
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// ListMine handles GET /api/reports/user.
func (h *ReportsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reports, err := h.reports.ListByFiler(c.UserContext(), principal)
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// ListByStatus handles GET /api/reports/status/:status.
func (h *ReportsHandler) ListByStatus(c *fiber.Ctx) error {
	reports, err := h.reports.ListByStatus(c.UserContext(), domain.ReportStatus(c.Params("status")))
	if err != nil {
		return err
	}
	return c.JSON(reports)
}

// Get handles GET /api/reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	report, err := h.reports.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Create handles POST /api/reports.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.Create(c.UserContext(), principal, req.ListingID, req.Reason)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(report)
}

// UpdateStatus handles PUT /api/reports/:id/status.
func (h *ReportsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ReportStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	report, err := h.reports.UpdateStatus(c.UserContext(), principal, c.Params("id"), domain.ReportStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// Delete handles DELETE /api/reports/:id.
func (h *ReportsHandler) Delete(c *fiber.Ctx) error {
	if err := h.reports.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
