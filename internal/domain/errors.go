package domain

import "errors"

// Sentinel errors raised by the stores; services map them onto the
// HTTP error taxonomy.
var (
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrAmbassadorNotFound = errors.New("ambassador not found")
	ErrAmbassadorInactive = errors.New("ambassador inactive")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrNotRevocable       = errors.New("ticket not revocable")
	ErrUsernameTaken      = errors.New("username already taken")
)
