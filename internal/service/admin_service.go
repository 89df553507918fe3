package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// AdminService covers the administrative screens: ambassadors, customers
// and ticket types.
type AdminService struct {
	ambassadors repository.AmbassadorRepository
	customers   repository.CustomerRepository
	ticketTypes repository.TicketTypeRepository
}

// NewAdminService constructs the service.
func NewAdminService(ambassadors repository.AmbassadorRepository, customers repository.CustomerRepository, ticketTypes repository.TicketTypeRepository) *AdminService {
	return &AdminService{
		ambassadors: ambassadors,
		customers:   customers,
		ticketTypes: ticketTypes,
	}
}

// AmbassadorInput carries create/update fields for an ambassador.
type AmbassadorInput struct {
	Name           string
	Email          string
	Phone          *string
	CommissionRate decimal.Decimal
	Active         bool
}

// ListAmbassadors returns all ambassadors ordered by name.
func (s *AdminService) ListAmbassadors(ctx context.Context) ([]domain.Ambassador, error) {
	return s.ambassadors.List(ctx)
}

// CreateAmbassador validates and persists a new ambassador.
func (s *AdminService) CreateAmbassador(ctx context.Context, input AmbassadorInput) (*domain.Ambassador, error) {
	if err := validateAmbassadorInput(input); err != nil {
		return nil, err
	}
	amb := &domain.Ambassador{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		Phone:          input.Phone,
		CommissionRate: input.CommissionRate,
		Active:         input.Active,
	}
	if err := s.ambassadors.Create(ctx, amb); err != nil {
		return nil, err
	}
	return amb, nil
}

// UpdateAmbassador applies edits to an existing ambassador. Rate changes
// only affect future sales; recorded commissions keep their snapshot.
func (s *AdminService) UpdateAmbassador(ctx context.Context, id string, input AmbassadorInput) (*domain.Ambassador, error) {
	if err := validateAmbassadorInput(input); err != nil {
		return nil, err
	}
	amb, err := s.ambassadors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ambassador", map[string]any{"id": id})
		}
		return nil, err
	}
	amb.Name = strings.TrimSpace(input.Name)
	amb.Email = strings.TrimSpace(input.Email)
	amb.Phone = input.Phone
	amb.CommissionRate = input.CommissionRate
	amb.Active = input.Active
	if err := s.ambassadors.Update(ctx, amb); err != nil {
		return nil, err
	}
	return amb, nil
}

// ListCustomers returns all customers, newest first.
func (s *AdminService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.List(ctx)
}

// UpdateCustomer edits a customer's contact data.
func (s *AdminService) UpdateCustomer(ctx context.Context, id, name, email string, phone *string) (*domain.Customer, error) {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return nil, apperrors.NewValidationError("email invalid", nil)
	}
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", map[string]any{"id": id})
		}
		return nil, err
	}
	customer.Name = strings.TrimSpace(name)
	customer.Email = strings.TrimSpace(email)
	customer.Phone = phone
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListTicketTypes returns all ticket types ordered by price.
func (s *AdminService) ListTicketTypes(ctx context.Context) ([]domain.TicketType, error) {
	return s.ticketTypes.List(ctx)
}

// CreateTicketType persists a new sellable category.
func (s *AdminService) CreateTicketType(ctx context.Context, tt *domain.TicketType) error {
	if strings.TrimSpace(tt.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if tt.TotalStock <= 0 {
		return apperrors.NewValidationError("total_stock must be positive", nil)
	}
	if tt.PeoplePerTicket <= 0 {
		tt.PeoplePerTicket = 1
	}
	if tt.Price.IsNegative() {
		return apperrors.NewValidationError("price must not be negative", nil)
	}
	return s.ticketTypes.Create(ctx, tt)
}

func validateAmbassadorInput(input AmbassadorInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		return apperrors.NewValidationError("email invalid", nil)
	}
	if input.CommissionRate.IsNegative() || input.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return apperrors.NewValidationError("commission_rate must be within [0,1]", nil)
	}
	return nil
}
