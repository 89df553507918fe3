package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsOverview(t *testing.T) {
	env := newTestEnv(t)
	general := env.seedTicketType(t, "General", "15000", 1, 10)
	vip := env.seedTicketType(t, "VIP Duo", "30000", 2, 5)
	ctx := context.Background()

	sell := func(tt string, email string) string {
		in := saleInput(tt)
		in.CustomerEmail = email
		receipt, err := env.sales.CreateSale(ctx, in)
		require.NoError(t, err)
		return receipt.Ticket.ID
	}
	sell(general.ID, "a@example.com")
	sell(general.ID, "b@example.com")
	vipTicket := sell(vip.ID, "c@example.com")

	result, err := env.validation.Validate(ctx, vipTicket)
	require.NoError(t, err)
	require.True(t, result.Admitted())

	perType, totals, err := env.stats.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, perType, 2)

	// Ordered by price ascending, like the catalog listing.
	assert.Equal(t, general.ID, perType[0].TicketType.ID)
	assert.Equal(t, 2, perType[0].TicketsSold)
	assert.Equal(t, 8, perType[0].TicketsAvailable)
	assert.Equal(t, 2, perType[0].PeopleExpected)
	assert.Equal(t, 0, perType[0].TicketsUsed)

	assert.Equal(t, vip.ID, perType[1].TicketType.ID)
	assert.Equal(t, 1, perType[1].TicketsSold)
	assert.Equal(t, 4, perType[1].TicketsAvailable)
	assert.Equal(t, 2, perType[1].PeopleExpected)
	assert.Equal(t, 1, perType[1].TicketsUsed)
	assert.Equal(t, 2, perType[1].PeopleEntered)

	assert.Equal(t, 15, totals.TotalStock)
	assert.Equal(t, 3, totals.TotalSold)
	assert.Equal(t, 12, totals.TotalAvailable)
	assert.Equal(t, 4, totals.TotalPeopleExpected)
	assert.Equal(t, 1, totals.TotalUsed)
	assert.Equal(t, 2, totals.TotalPeopleEntered)
}
