// Package ticketpdf renders the e-ticket PDF attached to delivery emails.
package ticketpdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// EventInfo carries the branding stamped on every ticket.
type EventInfo struct {
	Name  string
	Venue string
	Date  string
}

// Generate builds a single-page A4 e-ticket with the QR image embedded.
func Generate(receipt domain.SaleReceipt, event EventInfo, qrPNG []byte) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()
	pdf.SetAutoPageBreak(false, 0)

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, tr(event.Name))
	pdf.Ln(18)

	pdf.SetFont("Helvetica", "", 12)
	if event.Venue != "" {
		pdf.Cell(0, 8, tr(event.Venue))
		pdf.Ln(8)
	}
	if event.Date != "" {
		pdf.Cell(0, 8, tr(event.Date))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, tr(receipt.TicketType.Name))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	if receipt.TicketType.Description != "" {
		pdf.Cell(0, 7, tr(receipt.TicketType.Description))
		pdf.Ln(7)
	}
	pdf.Cell(0, 7, tr(fmt.Sprintf("Titular: %s", receipt.Customer.Name)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Admite: %d persona(s)", receipt.TicketType.PeoplePerTicket))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Precio: $%s", receipt.Sale.SalePrice.StringFixed(2)))
	pdf.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("ticket-qr", 70, pdf.GetY(), 70, 70, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 74)

	pdf.SetFont("Courier", "", 9)
	pdf.CellFormat(0, 6, receipt.Ticket.ID, "", 1, "C", false, 0, "")

	pdf.SetY(270)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 5, tr("Presenta este código QR en la entrada. Válido para un solo ingreso."), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}
