package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

func (e *testEnv) sellTicket(t *testing.T) (string, *domain.TicketType) {
	t.Helper()
	tt := e.seedTicketType(t, "General", "15000", 2, 100)
	receipt, err := e.sales.CreateSale(context.Background(), saleInput(tt.ID))
	require.NoError(t, err)
	return receipt.Ticket.ID, tt
}

func TestValidateAdmitsValidTicket(t *testing.T) {
	env := newTestEnv(t)
	ticketID, tt := env.sellTicket(t)

	result, err := env.validation.Validate(context.Background(), ticketID)
	require.NoError(t, err)

	assert.True(t, result.Admitted())
	assert.Equal(t, "ACCESO PERMITIDO", result.Message())
	assert.Equal(t, tt.Name, result.TicketType)
	assert.Equal(t, 2, result.PeoplePerTicket)
	require.NotNil(t, result.ScannedAt)
}

func TestValidateSecondScanDenied(t *testing.T) {
	env := newTestEnv(t)
	ticketID, _ := env.sellTicket(t)
	ctx := context.Background()

	first, err := env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	require.True(t, first.Admitted())

	second, err := env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	assert.False(t, second.Admitted())
	assert.Equal(t, domain.ScanAlreadyUsed, second.Reason)
	assert.Equal(t, "TICKET YA USADO", second.Message())

	// The denial reports when the ticket was first admitted.
	require.NotNil(t, second.ScannedAt)
	assert.Equal(t, first.ScannedAt.Unix(), second.ScannedAt.Unix())
}

func TestValidateConcurrentScansAdmitOnce(t *testing.T) {
	env := newTestEnv(t)
	ticketID, _ := env.sellTicket(t)
	ctx := context.Background()

	const scanners = 16
	var wg sync.WaitGroup
	results := make(chan domain.ScanResult, scanners)
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := env.validation.Validate(ctx, ticketID)
			assert.NoError(t, err)
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	admitted := 0
	for result := range results {
		if result.Admitted() {
			admitted++
		} else {
			assert.Equal(t, domain.ScanAlreadyUsed, result.Reason)
		}
	}
	assert.Equal(t, 1, admitted, "exactly one scanner may admit a ticket")
}

func TestValidateUnknownAndMalformedIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, raw := range []string{
		"",
		"   ",
		"not-a-uuid",
		"'; DROP TABLE tickets; --",
		"ffffffff-ffff-ffff-ffff-ffffffffffff",
	} {
		result, err := env.validation.Validate(ctx, raw)
		require.NoError(t, err)
		assert.False(t, result.Admitted())
		assert.Equal(t, domain.ScanNotFound, result.Reason)
		assert.Equal(t, "TICKET INVÁLIDO", result.Message())
	}
}

func TestValidateRevokedTicket(t *testing.T) {
	env := newTestEnv(t)
	ticketID, _ := env.sellTicket(t)
	ctx := context.Background()

	require.NoError(t, env.validation.Revoke(ctx, ticketID, "admin-1"))

	result, err := env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	assert.False(t, result.Admitted())
	assert.Equal(t, domain.ScanRevoked, result.Reason)
	assert.Equal(t, "TICKET INVÁLIDO", result.Message())
}

func TestRevokeTerminalStates(t *testing.T) {
	env := newTestEnv(t)
	ticketID, _ := env.sellTicket(t)
	ctx := context.Background()

	// A used ticket cannot be revoked.
	_, err := env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	err = env.validation.Revoke(ctx, ticketID, "admin-1")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)

	// Unknown tickets report not found.
	err = env.validation.Revoke(ctx, "ffffffff-ffff-ffff-ffff-ffffffffffff", "admin-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	// Malformed ids never reach the store.
	err = env.validation.Revoke(ctx, "nope", "admin-1")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestScanMetrics(t *testing.T) {
	env := newTestEnv(t)
	ticketID, _ := env.sellTicket(t)
	ctx := context.Background()

	_, err := env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	_, err = env.validation.Validate(ctx, ticketID)
	require.NoError(t, err)
	_, err = env.validation.Validate(ctx, "garbage")
	require.NoError(t, err)

	counts := env.metrics.ScanCounts()
	assert.Equal(t, int64(1), counts[domain.ScanAdmitted])
	assert.Equal(t, int64(1), counts[domain.ScanAlreadyUsed])
	assert.Equal(t, int64(1), counts[domain.ScanNotFound])
}
