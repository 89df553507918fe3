package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// AmbassadorRequest carries create/update fields for an ambassador.
// CommissionRate is a fraction in [0,1], e.g. "0.10" for 10%.
type AmbassadorRequest struct {
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Active         bool            `json:"active"`
}

// AmbassadorResponse is an ambassador row.
type AmbassadorResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          *string         `json:"phone,omitempty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// NewAmbassadorResponse maps a domain ambassador.
func NewAmbassadorResponse(a *domain.Ambassador) AmbassadorResponse {
	return AmbassadorResponse{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		CommissionRate: a.CommissionRate,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
	}
}

// UpdateCustomerRequest edits buyer contact details.
type UpdateCustomerRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerResponse is a buyer row.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

// CreateTicketTypeRequest defines a new sellable category.
type CreateTicketTypeRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	PeoplePerTicket int             `json:"people_per_ticket"`
	TotalStock      int             `json:"total_stock"`
}

// TicketTypeResponse is a ticket type row.
type TicketTypeResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	PeoplePerTicket int             `json:"people_per_ticket"`
	TotalStock      int             `json:"total_stock"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewTicketTypeResponse maps a domain ticket type.
func NewTicketTypeResponse(tt *domain.TicketType) TicketTypeResponse {
	return TicketTypeResponse{
		ID:              tt.ID,
		Name:            tt.Name,
		Description:     tt.Description,
		Price:           tt.Price,
		PeoplePerTicket: tt.PeoplePerTicket,
		TotalStock:      tt.TotalStock,
		CreatedAt:       tt.CreatedAt,
	}
}
