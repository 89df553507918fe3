package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/dto"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// SalesHandler manages the sale terminal endpoints.
type SalesHandler struct {
	sales   *service.SaleService
	reports *service.ReportService
}

// NewSalesHandler constructs handler.
func NewSalesHandler(saleService *service.SaleService, reportService *service.ReportService) *SalesHandler {
	return &SalesHandler{sales: saleService, reports: reportService}
}

// CreateSale POST /api/sales.
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	var req dto.CreateSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	receipt, err := h.sales.CreateSale(c.UserContext(), service.SaleCreateInput{
		TicketTypeID:  req.TicketTypeID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		AmbassadorID:  req.AmbassadorID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewSaleReceiptResponse(receipt)})
}

// Report GET /api/sales/report.
func (h *SalesHandler) Report(c *fiber.Ctx) error {
	records, err := h.reports.Report(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

// Commissions GET /api/sales/commissions.
func (h *SalesHandler) Commissions(c *fiber.Ctx) error {
	summaries, err := h.reports.CommissionSummary(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CommissionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, dto.NewCommissionSummaryResponse(s))
	}
	return c.JSON(fiber.Map{"data": items})
}
