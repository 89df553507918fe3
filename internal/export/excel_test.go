package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

func TestSalesWorkbook(t *testing.T) {
	scanned := time.Date(2026, 2, 14, 23, 30, 0, 0, time.UTC)
	ambassador := "valentina"
	records := []domain.SaleRecord{
		{
			TicketID:         "t-1",
			TicketTypeName:   "General",
			CustomerName:     "Camila Rojas",
			CustomerEmail:    "camila@example.com",
			AmbassadorName:   &ambassador,
			SalePrice:        decimal.RequireFromString("15000"),
			CommissionAmount: decimal.RequireFromString("1500"),
			PaymentMethod:    domain.PaymentCash,
			TicketStatus:     domain.TicketStatusUsed,
			ScannedAt:        &scanned,
			CreatedAt:        scanned.Add(-2 * time.Hour),
		},
		{
			TicketID:       "t-2",
			TicketTypeName: "VIP",
			CustomerName:   "Diego Paredes",
			CustomerEmail:  "diego@example.com",
			SalePrice:      decimal.RequireFromString("30000"),
			PaymentMethod:  domain.PaymentTransfer,
			TicketStatus:   domain.TicketStatusValid,
			CreatedAt:      scanned.Add(-1 * time.Hour),
		},
	}

	f, err := SalesWorkbook(records)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Base de Datos Tickets")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Ticket ID", rows[0][0])
	assert.Equal(t, "t-1", rows[1][0])
	assert.Equal(t, "valentina", rows[1][5])
	assert.Equal(t, "1500.00", rows[1][7])
	assert.Equal(t, "used", rows[1][9])
	assert.Equal(t, "t-2", rows[2][0])
	assert.Equal(t, "valid", rows[2][9])
}

func TestCustomersWorkbookDedupesByEmail(t *testing.T) {
	now := time.Now()
	customers := []domain.Customer{
		{Name: "Camila Rojas", Email: "camila@example.com", CreatedAt: now},
		{Name: "Camila Dup", Email: "CAMILA@example.com", CreatedAt: now},
		{Name: "Diego Paredes", Email: "diego@example.com", CreatedAt: now},
	}

	f, err := CustomersWorkbook(customers)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Base de Datos Clientes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Nombre", rows[0][0])
	assert.Equal(t, "Camila Rojas", rows[1][0])
	assert.Equal(t, "Diego Paredes", rows[2][0])
}

func TestFilenames(t *testing.T) {
	at := time.Date(2026, 2, 14, 21, 5, 0, 0, time.UTC)
	assert.Equal(t, "impcore_database_2026-02-14_21-05.xlsx", SalesFilename(at))
	assert.Equal(t, "impcore_clientes_2026-02-14_21-05.xlsx", CustomersFilename(at))
}
