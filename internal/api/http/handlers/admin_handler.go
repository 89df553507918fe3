package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/api/dto"
	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// AdminHandler manages ambassador, customer and ticket type endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: adminService}
}

// ListAmbassadors GET /api/ambassadors.
func (h *AdminHandler) ListAmbassadors(c *fiber.Ctx) error {
	ambassadors, err := h.admin.ListAmbassadors(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AmbassadorResponse, 0, len(ambassadors))
	for i := range ambassadors {
		items = append(items, dto.NewAmbassadorResponse(&ambassadors[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAmbassador POST /api/ambassadors.
func (h *AdminHandler) CreateAmbassador(c *fiber.Ctx) error {
	var req dto.AmbassadorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	amb, err := h.admin.CreateAmbassador(c.UserContext(), ambassadorInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAmbassadorResponse(amb)})
}

// UpdateAmbassador PUT /api/ambassadors/:id.
func (h *AdminHandler) UpdateAmbassador(c *fiber.Ctx) error {
	var req dto.AmbassadorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	amb, err := h.admin.UpdateAmbassador(c.UserContext(), c.Params("id"), ambassadorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAmbassadorResponse(amb)})
}

// ListCustomers GET /api/customers.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.admin.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, dto.NewCustomerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateCustomer PUT /api/customers/:id.
func (h *AdminHandler) UpdateCustomer(c *fiber.Ctx) error {
	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	customer, err := h.admin.UpdateCustomer(c.UserContext(), c.Params("id"), req.Name, req.Email, req.Phone)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// ListTicketTypes GET /api/ticket-types.
func (h *AdminHandler) ListTicketTypes(c *fiber.Ctx) error {
	types, err := h.admin.ListTicketTypes(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketTypeResponse, 0, len(types))
	for i := range types {
		items = append(items, dto.NewTicketTypeResponse(&types[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTicketType POST /api/ticket-types.
func (h *AdminHandler) CreateTicketType(c *fiber.Ctx) error {
	var req dto.CreateTicketTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	tt := &domain.TicketType{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		PeoplePerTicket: req.PeoplePerTicket,
		TotalStock:      req.TotalStock,
	}
	if err := h.admin.CreateTicketType(c.UserContext(), tt); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketTypeResponse(tt)})
}

func ambassadorInput(req dto.AmbassadorRequest) service.AmbassadorInput {
	return service.AmbassadorInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		Active:         req.Active,
	}
}
