package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

// TicketEmailData feeds the ticket delivery template.
type TicketEmailData struct {
	EventName       string
	EventVenue      string
	EventDate       string
	CustomerName    string
	TicketID        string
	TicketType      string
	Description     string
	PeoplePerTicket int
	Price           string
	QRDataURL       template.URL
}

var ticketTemplate = template.Must(template.New("ticket").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Tu Entrada - {{.EventName}}</title>
</head>
<body style="margin:0;padding:20px;background:#111;font-family:-apple-system,'Segoe UI',Roboto,sans-serif;color:#fff;">
<div style="max-width:650px;margin:0 auto;background:#000;border-radius:16px;overflow:hidden;">
  <div style="padding:36px 28px;text-align:center;background:linear-gradient(135deg,#4A90E2 0%,#7B68EE 50%,#FF6B9D 100%);">
    <h1 style="margin:0;font-size:32px;">🎟 Tu Entrada</h1>
    <p style="margin:8px 0 0;font-size:20px;letter-spacing:2px;text-transform:uppercase;">{{.EventName}}</p>
  </div>
  <div style="padding:28px;background:#151515;">
    <p style="font-size:16px;">Hola <strong>{{.CustomerName}}</strong>, tu compra está confirmada.</p>
    <div style="background:#1a1a1a;border:2px solid #333;border-radius:12px;padding:22px;margin:18px 0;">
      <h2 style="margin:0 0 6px;font-size:20px;">{{.TicketType}}</h2>
      {{if .Description}}<p style="margin:0 0 10px;color:#bbb;">{{.Description}}</p>{{end}}
      <p style="margin:4px 0;">Admite: <strong>{{.PeoplePerTicket}} persona(s)</strong></p>
      <p style="margin:4px 0;">Precio: <strong>${{.Price}}</strong></p>
      {{if .EventVenue}}<p style="margin:4px 0;">Lugar: {{.EventVenue}}</p>{{end}}
      {{if .EventDate}}<p style="margin:4px 0;">Fecha: {{.EventDate}}</p>{{end}}
    </div>
    <div style="text-align:center;margin:24px 0;">
      <div style="display:inline-block;background:#fff;padding:18px;border-radius:12px;">
        <img src="{{.QRDataURL}}" alt="Código QR de tu entrada" width="180" height="180" style="display:block;border-radius:6px;">
      </div>
      <p style="font-family:monospace;font-size:12px;color:#888;margin-top:10px;">{{.TicketID}}</p>
    </div>
    <p style="font-size:13px;color:#999;text-align:center;">Presenta este código en la entrada. Válido para un solo ingreso.</p>
  </div>
</div>
</body>
</html>
`))

// RenderTicketEmail renders the delivery email for a completed sale.
func RenderTicketEmail(receipt domain.SaleReceipt, eventName, eventVenue, eventDate string, qrPNG []byte) (subject, htmlBody, textBody string, err error) {
	data := TicketEmailData{
		EventName:       eventName,
		EventVenue:      eventVenue,
		EventDate:       eventDate,
		CustomerName:    receipt.Customer.Name,
		TicketID:        receipt.Ticket.ID,
		TicketType:      receipt.TicketType.Name,
		Description:     receipt.TicketType.Description,
		PeoplePerTicket: receipt.TicketType.PeoplePerTicket,
		Price:           receipt.Sale.SalePrice.StringFixed(2),
		QRDataURL: template.URL("data:image/png;base64," +
			base64.StdEncoding.EncodeToString(qrPNG)),
	}

	var buf bytes.Buffer
	if err := ticketTemplate.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render ticket email: %w", err)
	}

	subject = fmt.Sprintf("🎵 Tu Entrada - %s", eventName)
	textBody = fmt.Sprintf("Hola %s, tu entrada %s para %s está confirmada. ID: %s",
		receipt.Customer.Name, receipt.TicketType.Name, eventName, receipt.Ticket.ID)
	return subject, buf.String(), textBody, nil
}
