package dto

import (
	"time"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// ValidateTicketRequest carries the raw scanned value. The scanner sends
// whatever the camera decoded; the server decides what it means.
type ValidateTicketRequest struct {
	TicketID string `json:"ticket_id"`
}

// ScanResponse is shown on the door terminal. Message is the large
// banner text; the remaining fields fill the detail card on admission.
type ScanResponse struct {
	Admitted        bool       `json:"admitted"`
	Reason          string     `json:"reason"`
	Message         string     `json:"message"`
	TicketType      string     `json:"ticket_type,omitempty"`
	Description     string     `json:"description,omitempty"`
	PeoplePerTicket int        `json:"people_per_ticket,omitempty"`
	ScannedAt       *time.Time `json:"scanned_at,omitempty"`
}

// NewScanResponse maps a scan outcome onto the API shape.
func NewScanResponse(r domain.ScanResult) ScanResponse {
	return ScanResponse{
		Admitted:        r.Admitted(),
		Reason:          string(r.Reason),
		Message:         r.Message(),
		TicketType:      r.TicketType,
		Description:     r.Description,
		PeoplePerTicket: r.PeoplePerTicket,
		ScannedAt:       r.ScannedAt,
	}
}
