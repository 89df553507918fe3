package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ambassador is a promoter earning commission on sales they bring in.
// CommissionRate is a fraction in [0,1].
type Ambassador struct {
	ID             string
	Name           string
	Email          string
	Phone          *string
	CommissionRate decimal.Decimal
	Active         bool
	CreatedAt      time.Time
}

// CommissionAmount computes the commission snapshot taken at sale time:
// sale price times the ambassador's rate, rounded to cents. Later edits
// to the rate never touch amounts already persisted.
func CommissionAmount(price, rate decimal.Decimal) decimal.Decimal {
	return price.Mul(rate).Round(2)
}

// CommissionSummary aggregates an ambassador's recorded sales.
type CommissionSummary struct {
	AmbassadorName  string
	TotalSales      decimal.Decimal
	TotalCommission decimal.Decimal
	TicketsSold     int
}
