package domain

import "time"

// ScanReason tags the outcome of a validation attempt. The store keeps
// revoked and not_found distinct even though both surface the same
// user-facing message.
type ScanReason string

const (
	ScanAdmitted    ScanReason = "admitted"
	ScanAlreadyUsed ScanReason = "already_used"
	ScanRevoked     ScanReason = "revoked"
	ScanNotFound    ScanReason = "not_found"
)

// Door messages shown on the scanner screen.
const (
	MessageAdmitted    = "ACCESO PERMITIDO"
	MessageAlreadyUsed = "TICKET YA USADO"
	MessageInvalid     = "TICKET INVÁLIDO"
)

// ScanResult is the outcome of validating one scanned identifier.
// Fields beyond Reason are populated per variant: Admitted carries the
// ticket type attributes, AlreadyUsed carries the first scan's timestamp.
type ScanResult struct {
	Reason          ScanReason
	PeoplePerTicket int
	TicketType      string
	Description     string
	ScannedAt       *time.Time
}

// Admitted reports whether the scan won the valid -> used transition.
func (r ScanResult) Admitted() bool {
	return r.Reason == ScanAdmitted
}

// Message renders the door-screen message for the outcome.
func (r ScanResult) Message() string {
	switch r.Reason {
	case ScanAdmitted:
		return MessageAdmitted
	case ScanAlreadyUsed:
		return MessageAlreadyUsed
	default:
		return MessageInvalid
	}
}
