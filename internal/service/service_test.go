package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/observability"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository/memstore"
)

// testEnv wires the full service stack over the in-memory store.
type testEnv struct {
	store      *memstore.Store
	sales      *SaleService
	validation *ValidationService
	reports    *ReportService
	stats      *StatsService
	admin      *AdminService
	metrics    *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memstore.NewStore()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	return &testEnv{
		store: store,
		sales: NewSaleService(SaleDependencies{
			SaleRepo:   store.Sales(),
			Dispatcher: dispatcher,
			Metrics:    metrics,
			Logger:     logger,
		}),
		validation: NewValidationService(ValidationDependencies{
			TicketRepo: store.Tickets(),
			Dispatcher: dispatcher,
			Metrics:    metrics,
			Logger:     logger,
		}),
		reports: NewReportService(store.Sales(), nil, 0, dispatcher, logger),
		stats:   NewStatsService(store.TicketTypes(), store.Tickets()),
		admin:   NewAdminService(store.Ambassadors(), store.Customers(), store.TicketTypes()),
		metrics: metrics,
	}
}

func (e *testEnv) seedTicketType(t *testing.T, name string, price string, people, stock int) *domain.TicketType {
	t.Helper()
	tt := &domain.TicketType{
		Name:            name,
		Description:     name + " entrada",
		Price:           decimal.RequireFromString(price),
		PeoplePerTicket: people,
		TotalStock:      stock,
	}
	require.NoError(t, e.store.TicketTypes().Create(context.Background(), tt))
	return tt
}

func (e *testEnv) seedAmbassador(t *testing.T, name, rate string, active bool) *domain.Ambassador {
	t.Helper()
	amb := &domain.Ambassador{
		Name:           name,
		Email:          name + "@impcore.cl",
		CommissionRate: decimal.RequireFromString(rate),
		Active:         active,
	}
	require.NoError(t, e.store.Ambassadors().Create(context.Background(), amb))
	return amb
}

func saleInput(ticketTypeID string) SaleCreateInput {
	return SaleCreateInput{
		TicketTypeID:  ticketTypeID,
		CustomerName:  "Camila Rojas",
		CustomerEmail: "camila@example.com",
		PaymentMethod: "cash",
	}
}
