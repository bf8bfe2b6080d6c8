package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickcart/quickcart/app/services"
	"github.com/quickcart/quickcart/app/views"
	"github.com/quickcart/quickcart/pkg/logger"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// Sales renders the joined sales history, newest first.
func (c *ReportController) Sales(w http.ResponseWriter, r *http.Request) {
	history, err := c.reports.SalesHistory()
	if err != nil {
		logger.WithCtx(r.Context()).Error("sales history", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := struct{ Data services.History }{Data: history}
	if err := views.Render(w, "sales.html", page); err != nil {
		logger.WithCtx(r.Context()).Error("render sales", "error", err)
	}
}

// ExportCSV streams the sales listing as a CSV attachment.
func (c *ReportController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=sales_report.csv`)

	if err := c.reports.WriteCSV(w); err != nil {
		// Headers may already be out; log and drop the connection.
		logger.WithCtx(r.Context()).Error("export sales", "error", err)
	}
}

// Invoice streams a single-sale PDF generated in memory. A missing sale
// answers with the plain text "Invoice not found".
func (c *ReportController) Invoice(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "sale_id"))
	if err != nil {
		invoiceNotFound(w)
		return
	}

	doc, err := c.reports.InvoicePDF(id)
	if errors.Is(err, services.ErrSaleNotFound) {
		invoiceNotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("invoice", "sale_id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=invoice_%d.pdf`, id))
	w.Write(doc) //nolint:errcheck
}

func invoiceNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Invoice not found")) //nolint:errcheck
}
