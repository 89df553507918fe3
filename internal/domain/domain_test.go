package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommissionAmount(t *testing.T) {
	cases := []struct {
		name  string
		price string
		rate  string
		want  string
	}{
		{"ten percent", "15000", "0.10", "1500"},
		{"rounds to cents", "9990", "0.0333", "332.67"},
		{"zero rate", "15000", "0", "0"},
		{"full rate", "8000", "1", "8000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			price := decimal.RequireFromString(tc.price)
			rate := decimal.RequireFromString(tc.rate)
			got := CommissionAmount(price, rate)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
				"got %s want %s", got, tc.want)
		})
	}
}

func TestParsePaymentMethod(t *testing.T) {
	got, err := ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCash, got)

	for _, raw := range []string{"cash", "transfer", "card", "digital"} {
		got, err := ParsePaymentMethod(raw)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(raw), got)
	}

	_, err = ParsePaymentMethod("bitcoin")
	assert.Error(t, err)
}

func TestScanResultMessage(t *testing.T) {
	now := time.Now()

	admitted := ScanResult{Reason: ScanAdmitted, ScannedAt: &now}
	assert.True(t, admitted.Admitted())
	assert.Equal(t, "ACCESO PERMITIDO", admitted.Message())

	used := ScanResult{Reason: ScanAlreadyUsed, ScannedAt: &now}
	assert.False(t, used.Admitted())
	assert.Equal(t, "TICKET YA USADO", used.Message())

	// Revoked and unknown share the door message but keep distinct reasons.
	revoked := ScanResult{Reason: ScanRevoked}
	notFound := ScanResult{Reason: ScanNotFound}
	assert.Equal(t, "TICKET INVÁLIDO", revoked.Message())
	assert.Equal(t, "TICKET INVÁLIDO", notFound.Message())
	assert.NotEqual(t, revoked.Reason, notFound.Reason)
}

func TestTicketStatusTerminal(t *testing.T) {
	assert.False(t, TicketStatusValid.Terminal())
	assert.True(t, TicketStatusUsed.Terminal())
	assert.True(t, TicketStatusRevoked.Terminal())
}
