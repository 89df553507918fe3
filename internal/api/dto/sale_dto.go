package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// CreateSaleRequest is the sale terminal payload.
type CreateSaleRequest struct {
	TicketTypeID  string  `json:"ticket_type_id"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	AmbassadorID  *string `json:"ambassador_id,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// SaleReceiptResponse confirms a completed sale. TicketID is the value
// the QR code encodes.
type SaleReceiptResponse struct {
	SaleID           string          `json:"sale_id"`
	TicketID         string          `json:"ticket_id"`
	TicketTypeName   string          `json:"ticket_type_name"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PaymentMethod    string          `json:"payment_method"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewSaleReceiptResponse maps a domain receipt onto the API shape.
func NewSaleReceiptResponse(r *domain.SaleReceipt) SaleReceiptResponse {
	return SaleReceiptResponse{
		SaleID:           r.Sale.ID,
		TicketID:         r.Ticket.ID,
		TicketTypeName:   r.TicketType.Name,
		CustomerName:     r.Customer.Name,
		CustomerEmail:    r.Customer.Email,
		SalePrice:        r.Sale.SalePrice,
		CommissionAmount: r.Sale.CommissionAmount,
		PaymentMethod:    string(r.Sale.PaymentMethod),
		CreatedAt:        r.Sale.CreatedAt,
	}
}

// GenerateTicketRequest creates a complimentary ticket without a sale.
type GenerateTicketRequest struct {
	TicketTypeID string `json:"ticket_type_id"`
}

// TicketResponse is a bare ticket row.
type TicketResponse struct {
	ID           string     `json:"id"`
	TicketTypeID string     `json:"ticket_type_id"`
	Status       string     `json:"status"`
	ScannedAt    *time.Time `json:"scanned_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           t.ID,
		TicketTypeID: t.TicketTypeID,
		Status:       string(t.Status),
		ScannedAt:    t.ScannedAt,
		CreatedAt:    t.CreatedAt,
	}
}
