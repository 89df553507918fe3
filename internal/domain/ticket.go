package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusValid   TicketStatus = "valid"
	TicketStatusUsed    TicketStatus = "used"
	TicketStatusRevoked TicketStatus = "revoked"
)

// Ticket is a single sellable admission unit. Its ID is the value encoded
// in the QR code handed to the customer. The only forward transition is
// valid -> used, taken exactly once at scan time; used and revoked are
// terminal.
type Ticket struct {
	ID           string
	TicketTypeID string
	Status       TicketStatus
	ScannedAt    *time.Time
	CreatedAt    time.Time
}

// Terminal reports whether no further status transition is allowed.
func (s TicketStatus) Terminal() bool {
	return s == TicketStatusUsed || s == TicketStatusRevoked
}
