package ticketpdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/qr"
)

func TestGenerate(t *testing.T) {
	receipt := domain.SaleReceipt{
		Sale: domain.Sale{
			ID:        "sale-1",
			SalePrice: decimal.RequireFromString("15000"),
		},
		Ticket: domain.Ticket{ID: "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"},
		TicketType: domain.TicketType{
			Name:            "General",
			Description:     "Entrada general",
			PeoplePerTicket: 1,
		},
		Customer: domain.Customer{Name: "Camila Rojas", Email: "camila@example.com"},
	}
	png, err := qr.PNG(receipt.Ticket.ID, qr.DefaultSize)
	require.NoError(t, err)

	pdf, err := Generate(receipt, EventInfo{Name: "Impcore Aniversario", Venue: "Club Subterráneo", Date: "14 feb 2026"}, png)
	require.NoError(t, err)

	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
