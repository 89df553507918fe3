package dto

import (
	"github.com/shopspring/decimal"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// CommissionSummaryResponse aggregates one ambassador's sales.
type CommissionSummaryResponse struct {
	AmbassadorName  string          `json:"ambassador_name"`
	TicketsSold     int             `json:"tickets_sold"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// NewCommissionSummaryResponse maps a domain summary.
func NewCommissionSummaryResponse(s domain.CommissionSummary) CommissionSummaryResponse {
	return CommissionSummaryResponse{
		AmbassadorName:  s.AmbassadorName,
		TicketsSold:     s.TicketsSold,
		TotalSales:      s.TotalSales,
		TotalCommission: s.TotalCommission,
	}
}

// TypeStatsResponse is one row of the dashboard overview.
type TypeStatsResponse struct {
	TicketTypeID     string `json:"ticket_type_id"`
	TicketTypeName   string `json:"ticket_type_name"`
	TotalStock       int    `json:"total_stock"`
	TicketsSold      int    `json:"tickets_sold"`
	TicketsAvailable int    `json:"tickets_available"`
	PeopleExpected   int    `json:"people_expected"`
	TicketsUsed      int    `json:"tickets_used"`
	PeopleEntered    int    `json:"people_entered"`
}

// StatsTotalsResponse sums the overview across all types.
type StatsTotalsResponse struct {
	TotalStock          int `json:"total_stock"`
	TotalSold           int `json:"total_sold"`
	TotalAvailable      int `json:"total_available"`
	TotalPeopleExpected int `json:"total_people_expected"`
	TotalUsed           int `json:"total_used"`
	TotalPeopleEntered  int `json:"total_people_entered"`
}

// NewTypeStatsResponse maps one per-type stats row.
func NewTypeStatsResponse(s domain.TypeStats) TypeStatsResponse {
	return TypeStatsResponse{
		TicketTypeID:     s.TicketType.ID,
		TicketTypeName:   s.TicketType.Name,
		TotalStock:       s.TicketType.TotalStock,
		TicketsSold:      s.TicketsSold,
		TicketsAvailable: s.TicketsAvailable,
		PeopleExpected:   s.PeopleExpected,
		TicketsUsed:      s.TicketsUsed,
		PeopleEntered:    s.PeopleEntered,
	}
}

// NewStatsTotalsResponse maps the overview totals.
func NewStatsTotalsResponse(t domain.StatsTotals) StatsTotalsResponse {
	return StatsTotalsResponse{
		TotalStock:          t.TotalStock,
		TotalSold:           t.TotalSold,
		TotalAvailable:      t.TotalAvailable,
		TotalPeopleExpected: t.TotalPeopleExpected,
		TotalUsed:           t.TotalUsed,
		TotalPeopleEntered:  t.TotalPeopleEntered,
	}
}
