package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/observability"
	"github.com/impcorecl/ticketeraimpactualizada/internal/repository"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

// SaleService coordinates the sale flow: input validation up front, the
// transactional store call, then the completion event for delivery.
type SaleService struct {
	sales      repository.SaleRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// SaleDependencies bundles requirements for the sale service.
type SaleDependencies struct {
	SaleRepo   repository.SaleRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// SaleCreateInput is the API-facing sale payload.
type SaleCreateInput struct {
	TicketTypeID  string
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	AmbassadorID  *string
	PaymentMethod string
	Notes         *string
}

// NewSaleService constructs the service.
func NewSaleService(deps SaleDependencies) *SaleService {
	return &SaleService{
		sales:      deps.SaleRepo,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
	}
}

// CreateSale runs one complete sale. On success the receipt is published
// for asynchronous ticket delivery; delivery failures never undo a sale.
func (s *SaleService) CreateSale(ctx context.Context, input SaleCreateInput) (*domain.SaleReceipt, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, apperrors.NewValidationError("customer_name required", nil)
	}

	email := strings.TrimSpace(input.CustomerEmail)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewValidationError("customer_email invalid", map[string]any{"email": email})
	}

	method, err := domain.ParsePaymentMethod(strings.TrimSpace(input.PaymentMethod))
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if input.TicketTypeID == "" {
		return nil, apperrors.NewValidationError("ticket_type_id required", nil)
	}

	receipt, err := s.sales.CreateCompleteSale(ctx, repository.SaleInput{
		TicketTypeID:  input.TicketTypeID,
		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: input.CustomerPhone,
		AmbassadorID:  input.AmbassadorID,
		PaymentMethod: method,
		Notes:         input.Notes,
	})
	if err != nil {
		return nil, mapSaleError(err, input)
	}

	s.metrics.RecordSale()
	s.logger.Info("sale completed",
		zap.String("ticket_id", receipt.Ticket.ID),
		zap.String("ticket_type", receipt.TicketType.Name),
		zap.String("customer_email", receipt.Customer.Email),
	)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSaleCompleted,
		TicketID:  receipt.Ticket.ID,
		Timestamp: time.Now(),
		Payload:   events.SaleCompletedPayload{Receipt: *receipt},
	})

	return receipt, nil
}

// GenerateTicket creates a comp ticket without a sale record, through the
// same stock-guarded path.
func (s *SaleService) GenerateTicket(ctx context.Context, ticketTypeID string) (*domain.Ticket, error) {
	if ticketTypeID == "" {
		return nil, apperrors.NewValidationError("ticket_type_id required", nil)
	}

	ticket, err := s.sales.GenerateTicket(ctx, ticketTypeID)
	if err != nil {
		return nil, mapSaleError(err, SaleCreateInput{TicketTypeID: ticketTypeID})
	}

	s.logger.Info("ticket generated", zap.String("ticket_id", ticket.ID))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketGenerated,
		TicketID:  ticket.ID,
		Timestamp: time.Now(),
	})
	return ticket, nil
}

func mapSaleError(err error, input SaleCreateInput) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return apperrors.NewInsufficientStock(input.TicketTypeID)
	case errors.Is(err, domain.ErrTicketTypeNotFound):
		return apperrors.NewNotFound("ticket type", map[string]any{"ticket_type_id": input.TicketTypeID})
	case errors.Is(err, domain.ErrAmbassadorNotFound):
		return apperrors.NewNotFound("ambassador", nil)
	case errors.Is(err, domain.ErrAmbassadorInactive):
		return apperrors.NewValidationError("ambassador inactive", nil)
	default:
		return err
	}
}
