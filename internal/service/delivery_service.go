package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/impcorecl/ticketeraimpactualizada/internal/config"
	"github.com/impcorecl/ticketeraimpactualizada/internal/events"
	"github.com/impcorecl/ticketeraimpactualizada/internal/mail"
	"github.com/impcorecl/ticketeraimpactualizada/internal/qr"
	"github.com/impcorecl/ticketeraimpactualizada/internal/ticketpdf"
)

// DeliveryService emails the ticket (QR inline, PDF attached) once a
// sale completes. It runs off the dispatcher; a failed delivery is
// logged and the sale stands.
type DeliveryService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	event      config.EventConfig
	logger     *zap.Logger
}

// NewDeliveryService creates the service.
func NewDeliveryService(dispatcher events.Dispatcher, sender mail.Sender, event config.EventConfig, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		dispatcher: dispatcher,
		sender:     sender,
		event:      event,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to sale completion events.
func (d *DeliveryService) RegisterHandlers() {
	if d.dispatcher == nil {
		return
	}
	d.dispatcher.Subscribe(events.EventSaleCompleted, d.handleSaleCompleted)
}

func (d *DeliveryService) handleSaleCompleted(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SaleCompletedPayload)
	if !ok {
		d.logger.Warn("unexpected payload on sale_completed", zap.String("event_id", event.ID))
		return nil
	}

	go d.deliver(payload)
	return nil
}

func (d *DeliveryService) deliver(payload events.SaleCompletedPayload) {
	// Detached from the request context: the sale already committed and
	// the buyer's email should go out even if the seller navigates away.
	ctx := context.Background()
	receipt := payload.Receipt

	qrPNG, err := qr.PNG(receipt.Ticket.ID, qr.DefaultSize)
	if err != nil {
		d.logger.Error("qr render failed", zap.String("ticket_id", receipt.Ticket.ID), zap.Error(err))
		return
	}

	subject, htmlBody, textBody, err := mail.RenderTicketEmail(
		receipt, d.event.Name, d.event.Venue, d.event.Date, qrPNG)
	if err != nil {
		d.logger.Error("email render failed", zap.String("ticket_id", receipt.Ticket.ID), zap.Error(err))
		return
	}

	msg := mail.Message{
		To:      receipt.Customer.Email,
		Subject: subject,
		HTML:    htmlBody,
		Text:    textBody,
	}

	pdfBytes, err := ticketpdf.Generate(receipt, ticketpdf.EventInfo{
		Name:  d.event.Name,
		Venue: d.event.Venue,
		Date:  d.event.Date,
	}, qrPNG)
	if err != nil {
		// Ship without the attachment rather than not at all.
		d.logger.Warn("pdf render failed", zap.String("ticket_id", receipt.Ticket.ID), zap.Error(err))
	} else {
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename:    "entrada_" + receipt.Ticket.ID + ".pdf",
			ContentType: "application/pdf",
			Data:        pdfBytes,
		})
	}

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("ticket delivery failed",
			zap.String("ticket_id", receipt.Ticket.ID),
			zap.String("to", receipt.Customer.Email),
			zap.Error(err))
		return
	}

	d.logger.Info("ticket delivered",
		zap.String("ticket_id", receipt.Ticket.ID),
		zap.String("to", receipt.Customer.Email))
}
