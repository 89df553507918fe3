package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketType describes a sellable category with a fixed capacity.
// Immutable after creation.
type TicketType struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	PeoplePerTicket int
	TotalStock      int
	CreatedAt       time.Time
}

// TypeStats aggregates per-type ticket counters for the dashboard.
type TypeStats struct {
	TicketType       TicketType
	TicketsSold      int
	TicketsAvailable int
	PeopleExpected   int
	TicketsUsed      int
	PeopleEntered    int
}

// StatsTotals sums counters across all ticket types.
type StatsTotals struct {
	TotalStock          int
	TotalSold           int
	TotalAvailable      int
	TotalPeopleExpected int
	TotalUsed           int
	TotalPeopleEntered  int
}
