package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/impcorecl/ticketeraimpactualizada/internal/export"
	"github.com/impcorecl/ticketeraimpactualizada/internal/service"
	apperrors "github.com/impcorecl/ticketeraimpactualizada/pkg/util"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves spreadsheet downloads of the sales database and
// the customer list.
type ExportHandler struct {
	reports *service.ReportService
	admin   *service.AdminService
}

// NewExportHandler constructs handler.
func NewExportHandler(reportService *service.ReportService, adminService *service.AdminService) *ExportHandler {
	return &ExportHandler{reports: reportService, admin: adminService}
}

// Sales GET /api/export/sales.xlsx.
func (h *ExportHandler) Sales(c *fiber.Ctx) error {
	records, err := h.reports.Report(c.UserContext())
	if err != nil {
		return err
	}
	workbook, err := export.SalesWorkbook(records)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendWorkbook(c, workbook, export.SalesFilename(time.Now()))
}

// Customers GET /api/export/customers.xlsx.
func (h *ExportHandler) Customers(c *fiber.Ctx) error {
	customers, err := h.admin.ListCustomers(c.UserContext())
	if err != nil {
		return err
	}
	workbook, err := export.CustomersWorkbook(customers)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return sendWorkbook(c, workbook, export.CustomersFilename(time.Now()))
}

func sendWorkbook(c *fiber.Ctx, workbook *excelize.File, filename string) error {
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
