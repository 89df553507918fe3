package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/observability"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// ValidationService runs the door-scan state machine. The decisive step
// is the store's conditional claim: of two concurrent scans of one
// ticket, exactly one wins the valid -> used transition and the loser
// observes the used state with the winner's timestamp.
type ValidationService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// ValidationDependencies bundles requirements for the validation service.
type ValidationDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewValidationService constructs the service.
func NewValidationService(deps ValidationDependencies) *ValidationService {
	return &ValidationService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// Validate resolves one scanned identifier to a ScanResult. It never
// returns an error for expected outcomes; denial is a result, not a
// fault.
func (s *ValidationService) Validate(ctx context.Context, rawID string) (domain.ScanResult, error) {
	id := strings.TrimSpace(rawID)

	// Fast path: garbage that cannot be a ticket id skips the store.
	// The lookup below is safe against arbitrary input regardless.
	if _, err := uuid.Parse(id); err != nil {
		result := domain.ScanResult{Reason: domain.ScanNotFound}
		s.metrics.RecordScan(result.Reason)
		return result, nil
	}

	admitted, err := s.tickets.ClaimValid(ctx, id)
	if err == nil {
		result := domain.ScanResult{
			Reason:          domain.ScanAdmitted,
			PeoplePerTicket: admitted.PeoplePerTicket,
			TicketType:      admitted.TicketTypeName,
			Description:     admitted.Description,
			ScannedAt:       &admitted.ScannedAt,
		}
		s.afterScan(ctx, id, result)
		return result, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.ScanResult{}, err
	}

	// The claim lost: the ticket is absent, already used, or revoked.
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			result := domain.ScanResult{Reason: domain.ScanNotFound}
			s.afterScan(ctx, id, result)
			return result, nil
		}
		return domain.ScanResult{}, err
	}

	var result domain.ScanResult
	switch ticket.Status {
	case domain.TicketStatusUsed:
		result = domain.ScanResult{
			Reason:    domain.ScanAlreadyUsed,
			ScannedAt: ticket.ScannedAt,
		}
	case domain.TicketStatusRevoked:
		result = domain.ScanResult{Reason: domain.ScanRevoked}
	default:
		// The ticket flipped back to valid between claim and read is
		// impossible; treat anything unexpected as not found.
		result = domain.ScanResult{Reason: domain.ScanNotFound}
	}
	s.afterScan(ctx, id, result)
	return result, nil
}

// Revoke invalidates a still-valid ticket. Used and revoked tickets are
// terminal and stay untouched.
func (s *ValidationService) Revoke(ctx context.Context, id, revokedBy string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}

	err := s.tickets.Revoke(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": id})
	case errors.Is(err, domain.ErrNotRevocable):
		return apperrors.NewConflict("ticket already used or revoked", map[string]any{"ticket_id": id})
	default:
		return err
	}

	s.logger.Info("ticket revoked", zap.String("ticket_id", id), zap.String("revoked_by", revokedBy))
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketRevoked,
		TicketID:  id,
		Timestamp: time.Now(),
		Payload:   events.TicketRevokedPayload{RevokedBy: revokedBy},
	})
	return nil
}

func (s *ValidationService) afterScan(ctx context.Context, id string, result domain.ScanResult) {
	s.metrics.RecordScan(result.Reason)
	s.logger.Info("ticket scan",
		zap.String("ticket_id", id),
		zap.String("reason", string(result.Reason)),
	)
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketScanned,
		TicketID:  id,
		Timestamp: time.Now(),
		Payload: events.TicketScannedPayload{
			Reason:          result.Reason,
			PeoplePerTicket: result.PeoplePerTicket,
			TicketType:      result.TicketType,
		},
	})
}
