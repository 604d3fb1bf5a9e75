package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
)

// AdminHandler serves moderation overviews under /admin. The whole
// group is ADMIN-gated in the router.
type AdminHandler struct {
	listings   *service.ListingService
	categories *service.CategoryService
	reports    *service.ReportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(listings *service.ListingService, categories *service.CategoryService, reports *service.ReportService) *AdminHandler {
	return &AdminHandler{listings: listings, categories: categories, reports: reports}
}

// Listings handles GET /admin/listings.
func (h *AdminHandler) Listings(c *fiber.Ctx) error {
	listings, err := h.listings.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"listings": listings, "total": len(listings)})
}

// Categories handles GET /admin/categories.
func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": categories, "total": len(categories)})
}

// Reports handles GET /admin/reports.
func (h *AdminHandler) Reports(c *fiber.Ctx) error {
	reports, err := h.reports.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	pending := 0
	for _, report := range reports {
		if report.Status == domain.ReportStatusPending {
			pending++
		}
	}
	return c.JSON(fiber.Map{"reports": reports, "total": len(reports), "pending": pending})
}
