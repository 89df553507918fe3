package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

func TestReportReflectsSalesAndScans(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	ctx := context.Background()

	first, err := env.sales.CreateSale(ctx, saleInput(tt.ID))
	require.NoError(t, err)

	in := saleInput(tt.ID)
	in.CustomerEmail = "otro@example.com"
	in.CustomerName = "Diego Paredes"
	_, err = env.sales.CreateSale(ctx, in)
	require.NoError(t, err)

	result, err := env.validation.Validate(ctx, first.Ticket.ID)
	require.NoError(t, err)
	require.True(t, result.Admitted())

	records, err := env.reports.Report(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	byTicket := make(map[string]domain.SaleRecord, len(records))
	for _, rec := range records {
		byTicket[rec.TicketID] = rec
	}
	scanned := byTicket[first.Ticket.ID]
	assert.Equal(t, domain.TicketStatusUsed, scanned.TicketStatus)
	assert.NotNil(t, scanned.ScannedAt)
}

func TestCommissionSummary(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "10000", 1, 100)
	vale := env.seedAmbassador(t, "valentina", "0.10", true)
	benja := env.seedAmbassador(t, "benja", "0.20", true)
	ctx := context.Background()

	sell := func(email string, ambID *string) {
		in := saleInput(tt.ID)
		in.CustomerEmail = email
		in.AmbassadorID = ambID
		_, err := env.sales.CreateSale(ctx, in)
		require.NoError(t, err)
	}
	sell("a@example.com", &vale.ID)
	sell("b@example.com", &vale.ID)
	sell("c@example.com", &benja.ID)
	sell("d@example.com", nil)

	summaries, err := env.reports.CommissionSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Ordered by ambassador name.
	assert.Equal(t, "benja", summaries[0].AmbassadorName)
	assert.Equal(t, 1, summaries[0].TicketsSold)
	assert.True(t, summaries[0].TotalCommission.Equal(decimal.RequireFromString("2000")))

	assert.Equal(t, "valentina", summaries[1].AmbassadorName)
	assert.Equal(t, 2, summaries[1].TicketsSold)
	assert.True(t, summaries[1].TotalSales.Equal(decimal.RequireFromString("20000")))
	assert.True(t, summaries[1].TotalCommission.Equal(decimal.RequireFromString("2000")))
}
