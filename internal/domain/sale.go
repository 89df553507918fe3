package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates accepted payment labels. Recorded only; no
// processor integration.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentCard     PaymentMethod = "card"
	PaymentDigital  PaymentMethod = "digital"
)

// ParsePaymentMethod normalizes a payment method label. Empty input
// defaults to cash.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(raw) {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentTransfer, PaymentCard, PaymentDigital:
		return PaymentMethod(raw), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", raw)
	}
}

// Sale records one completed sale. CommissionAmount is the snapshot
// computed at sale time.
type Sale struct {
	ID               string
	TicketID         string
	CustomerID       string
	AmbassadorID     *string
	PaymentMethod    PaymentMethod
	SalePrice        decimal.Decimal
	CommissionAmount decimal.Decimal
	Notes            *string
	CreatedAt        time.Time
}

// SaleRecord is the denormalized reporting row joining ticket, type,
// customer and ambassador attributes. Derived, never mutated.
type SaleRecord struct {
	TicketID         string          `json:"ticket_id"`
	TicketTypeName   string          `json:"ticket_type_name"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	CustomerPhone    *string         `json:"customer_phone,omitempty"`
	AmbassadorName   *string         `json:"ambassador_name,omitempty"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	TicketStatus     TicketStatus    `json:"ticket_status"`
	ScannedAt        *time.Time      `json:"scanned_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// SaleReceipt bundles everything the delivery pipeline needs after a
// successful sale.
type SaleReceipt struct {
	Sale       Sale
	Ticket     Ticket
	TicketType TicketType
	Customer   Customer
}
