// Package export builds the xlsx workbooks downloaded from the admin
// screen: the full sales database and the deduplicated customer list.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/domain"
)

const (
	salesSheet     = "Base de Datos Tickets"
	customersSheet = "Base de Datos Clientes"
)

var salesHeader = []string{
	"Ticket ID", "Tipo", "Cliente", "Email", "Teléfono", "Embajador",
	"Precio", "Comisión", "Método de Pago", "Estado", "Escaneado", "Creado",
}

var customersHeader = []string{"Nombre", "Email", "Teléfono", "Registrado"}

// SalesFilename returns the download filename for a sales export.
func SalesFilename(now time.Time) string {
	return fmt.Sprintf("impcore_database_%s.xlsx", now.Format("2006-01-02_15-04"))
}

// CustomersFilename returns the download filename for a customers export.
func CustomersFilename(now time.Time) string {
	return fmt.Sprintf("impcore_clientes_%s.xlsx", now.Format("2006-01-02_15-04"))
}

// SalesWorkbook renders the full sales report as one sheet.
func SalesWorkbook(records []domain.SaleRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, salesSheet, 1, toAny(salesHeader)); err != nil {
		return nil, err
	}

	for i, rec := range records {
		row := []any{
			rec.TicketID,
			rec.TicketTypeName,
			rec.CustomerName,
			rec.CustomerEmail,
			deref(rec.CustomerPhone),
			deref(rec.AmbassadorName),
			rec.SalePrice.StringFixed(2),
			rec.CommissionAmount.StringFixed(2),
			string(rec.PaymentMethod),
			string(rec.TicketStatus),
			formatTimePtr(rec.ScannedAt),
			rec.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, salesSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// CustomersWorkbook renders customers, one row per distinct email.
func CustomersWorkbook(customers []domain.Customer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", customersSheet); err != nil {
		return nil, err
	}

	if err := writeRow(f, customersSheet, 1, toAny(customersHeader)); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(customers))
	rowNum := 2
	for _, customer := range customers {
		key := strings.ToLower(customer.Email)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		row := []any{
			customer.Name,
			customer.Email,
			deref(customer.Phone),
			customer.CreatedAt.Format(time.RFC3339),
		}
		if err := writeRow(f, customersSheet, rowNum, row); err != nil {
			return nil, err
		}
		rowNum++
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
