package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

func testReceipt() domain.SaleReceipt {
	return domain.SaleReceipt{
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
}

func TestRenderTicketEmail(t *testing.T) {
	subject, html, text, err := RenderTicketEmail(testReceipt(), "Impcore Aniversario", "Club Subterráneo", "14 feb 2026", []byte{0x89, 0x50})
	require.NoError(t, err)

	assert.Equal(t, "🎵 Tu Entrada - Impcore Aniversario", subject)
	assert.Contains(t, html, "Camila Rojas")
	assert.Contains(t, html, "General")
	assert.Contains(t, html, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	assert.Contains(t, html, "data:image/png;base64,")
	assert.Contains(t, html, "Club Subterráneo")
	assert.Contains(t, text, "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
}

func TestRenderTicketEmailEscapesCustomerInput(t *testing.T) {
	receipt := testReceipt()
	receipt.Customer.Name = `<script>alert("x")</script>`

	_, html, _, err := RenderTicketEmail(receipt, "Impcore Aniversario", "", "", nil)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

type stubSender struct {
	err   error
	calls int
	last  Message
}

func (s *stubSender) Send(_ context.Context, msg Message) error {
	s.calls++
	s.last = msg
	return s.err
}

func TestFallbackSenderTriesInOrder(t *testing.T) {
	failing := &stubSender{err: errors.New("provider down")}
	working := &stubSender{}
	chain := &FallbackSender{Senders: []Sender{failing, working}, Logger: zap.NewNop()}

	msg := Message{To: "camila@example.com", Subject: "hola"}
	require.NoError(t, chain.Send(context.Background(), msg))
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
	assert.Equal(t, "camila@example.com", working.last.To)
}

func TestFallbackSenderAllFail(t *testing.T) {
	first := &stubSender{err: errors.New("down")}
	second := &stubSender{err: errors.New("also down")}
	chain := &FallbackSender{Senders: []Sender{first, second}, Logger: zap.NewNop()}

	err := chain.Send(context.Background(), Message{To: "x@example.com"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "down"))
}
