package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/dto"
	"github.com/impcorecl/ticketeraimpactualizada/internal/auth"
	"github.com/impcorecl/ticketeraimpactualizada/internal/qr"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// ScanHandler manages door terminal endpoints: validation, revocation
// and QR rendering.
type ScanHandler struct {
	validation *service.ValidationService
	sales      *service.SaleService
}

// NewScanHandler constructs handler.
func NewScanHandler(validationService *service.ValidationService, saleService *service.SaleService) *ScanHandler {
	return &ScanHandler{validation: validationService, sales: saleService}
}

// Validate POST /api/tickets/validate. Denials are 200 responses with
// Admitted=false; the scanner renders the message either way.
func (h *ScanHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.validation.Validate(c.UserContext(), req.TicketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewScanResponse(result)})
}

// Revoke POST /api/tickets/:id/revoke.
func (h *ScanHandler) Revoke(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.validation.Revoke(c.UserContext(), c.Params("id"), principal.User.ID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"revoked": true}})
}

// Generate POST /api/tickets/generate. Complimentary tickets count
// against stock like sold ones.
func (h *ScanHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.sales.GenerateTicket(c.UserContext(), req.TicketTypeID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// QRCode GET /api/tickets/:id/qr.png renders the ticket id as a PNG for
// reprints at the sale terminal.
func (h *ScanHandler) QRCode(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return apperrors.NewValidationError("ticket id required", nil)
	}

	png, err := qr.PNG(id, qr.DefaultSize)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
