package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

func TestCreateSale(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	ctx := context.Background()

	receipt, err := env.sales.CreateSale(ctx, saleInput(tt.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.Ticket.ID)
	assert.Equal(t, domain.TicketStatusValid, receipt.Ticket.Status)
	assert.Equal(t, "camila@example.com", receipt.Customer.Email)
	assert.True(t, receipt.Sale.SalePrice.Equal(tt.Price))
	assert.True(t, receipt.Sale.CommissionAmount.IsZero())
}

func TestCreateSaleValidation(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SaleCreateInput)
	}{
		{"empty name", func(in *SaleCreateInput) { in.CustomerName = "  " }},
		{"bad email", func(in *SaleCreateInput) { in.CustomerEmail = "not-an-email" }},
		{"bad payment method", func(in *SaleCreateInput) { in.PaymentMethod = "bitcoin" }},
		{"missing ticket type", func(in *SaleCreateInput) { in.TicketTypeID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := saleInput(tt.ID)
			tc.mutate(&in)
			_, err := env.sales.CreateSale(ctx, in)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
		})
	}
}

func TestCreateSaleUnknownTicketType(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.sales.CreateSale(context.Background(), saleInput("ffffffff-0000-0000-0000-000000000000"))
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCreateSaleSoldOut(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "VIP", "30000", 2, 1)
	ctx := context.Background()

	_, err := env.sales.CreateSale(ctx, saleInput(tt.ID))
	require.NoError(t, err)

	_, err = env.sales.CreateSale(ctx, saleInput(tt.ID))
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", apperrors.ToDomainError(err).Code)
}

func TestCreateSaleCommissionSnapshot(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	amb := env.seedAmbassador(t, "valentina", "0.10", true)
	ctx := context.Background()

	in := saleInput(tt.ID)
	in.AmbassadorID = &amb.ID
	receipt, err := env.sales.CreateSale(ctx, in)
	require.NoError(t, err)
	assert.True(t, receipt.Sale.CommissionAmount.Equal(decimal.RequireFromString("1500")))

	// Raising the rate afterwards must not rewrite recorded amounts.
	amb.CommissionRate = decimal.RequireFromString("0.50")
	require.NoError(t, env.store.Ambassadors().Update(ctx, amb))

	records, err := env.reports.Report(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].CommissionAmount.Equal(decimal.RequireFromString("1500")))
}

func TestCreateSaleInactiveAmbassador(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	amb := env.seedAmbassador(t, "benja", "0.10", false)

	in := saleInput(tt.ID)
	in.AmbassadorID = &amb.ID
	_, err := env.sales.CreateSale(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// Nothing persisted on the failure path.
	records, err := env.reports.Report(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCreateSaleReusesCustomerByEmail(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "General", "15000", 1, 100)
	ctx := context.Background()

	first, err := env.sales.CreateSale(ctx, saleInput(tt.ID))
	require.NoError(t, err)

	in := saleInput(tt.ID)
	in.CustomerEmail = "CAMILA@EXAMPLE.COM"
	in.CustomerName = "Camila A. Rojas"
	second, err := env.sales.CreateSale(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.Customer.ID, second.Customer.ID)
	assert.Equal(t, "Camila A. Rojas", second.Customer.Name)

	customers, err := env.admin.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "VIP", "30000", 2, 1)
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.sales.CreateSale(ctx, saleInput(tt.ID))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, "INSUFFICIENT_STOCK", apperrors.ToDomainError(err).Code)
		}
	}
	assert.Equal(t, 1, successes, "exactly one sale may win the last unit")
}

func TestGenerateTicketCountsAgainstStock(t *testing.T) {
	env := newTestEnv(t)
	tt := env.seedTicketType(t, "Staff", "0", 1, 2)
	ctx := context.Background()

	ticket, err := env.sales.GenerateTicket(ctx, tt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusValid, ticket.Status)

	// Comp tickets consume capacity like sold ones.
	_, err = env.sales.GenerateTicket(ctx, tt.ID)
	require.NoError(t, err)
	_, err = env.sales.GenerateTicket(ctx, tt.ID)
	require.Error(t, err)
	assert.Equal(t, "INSUFFICIENT_STOCK", apperrors.ToDomainError(err).Code)

	// Generated tickets carry no sale record.
	records, err := env.reports.Report(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
