package events

import (
	"time"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSaleCompleted   EventType = "sale_completed"
	EventTicketGenerated EventType = "ticket_generated"
	EventTicketScanned   EventType = "ticket_scanned"
	EventTicketRevoked   EventType = "ticket_revoked"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SaleCompletedPayload carries the receipt for the delivery pipeline.
type SaleCompletedPayload struct {
	Receipt domain.SaleReceipt `json:"receipt"`
}

// TicketScannedPayload payload.
type TicketScannedPayload struct {
	Reason          domain.ScanReason `json:"reason"`
	PeoplePerTicket int               `json:"people_per_ticket,omitempty"`
	TicketType      string            `json:"ticket_type,omitempty"`
}

// TicketRevokedPayload payload.
type TicketRevokedPayload struct {
	RevokedBy string `json:"revoked_by"`
}
