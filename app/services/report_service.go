package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/gocarina/gocsv"
	"gorm.io/gorm"

	"github.com/quickcart/quickcart/app/repositories"
)

// ReportService derives the sales history view, the CSV export, and PDF
// invoices from the sales table.
type ReportService struct {
	sales *repositories.SaleRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{sales: repositories.NewSaleRepository(db)}
}

// History is the sales-history view model.
type History struct {
	Sales             []repositories.SaleRow
	TotalRevenue      float64
	TotalTransactions int64
}

// SalesHistory returns the joined listing newest-first with overall totals.
func (s *ReportService) SalesHistory() (History, error) {
	rows, err := s.sales.History()
	if err != nil {
		return History{}, fmt.Errorf("sales history: %w", err)
	}

	summary, err := s.sales.Summary()
	if err != nil {
		return History{}, fmt.Errorf("sales summary: %w", err)
	}

	return History{
		Sales:             rows,
		TotalRevenue:      summary.Revenue,
		TotalTransactions: summary.Transactions,
	}, nil
}

// exportRow maps one sale onto the fixed CSV columns.
type exportRow struct {
	SaleID   uint    `csv:"Sale ID"`
	Product  string  `csv:"Product"`
	Quantity int     `csv:"Quantity"`
	Total    float64 `csv:"Total"`
	Date     string  `csv:"Date"`
}

// WriteCSV streams the full joined sales listing as CSV, header row first.
func (s *ReportService) WriteCSV(w io.Writer) error {
	rows, err := s.sales.History()
	if err != nil {
		return fmt.Errorf("export sales: %w", err)
	}

	out := make([]exportRow, len(rows))
	for i, r := range rows {
		out[i] = exportRow{
			SaleID:   r.SaleID,
			Product:  r.Product,
			Quantity: r.Quantity,
			Total:    r.Total,
			Date:     r.Date,
		}
	}

	return gocsv.Marshal(&out, w)
}

// InvoicePDF renders a one-sale invoice entirely in memory and returns the
// document bytes. A missing sale id yields ErrSaleNotFound; nothing is ever
// written to disk.
func (s *ReportService) InvoicePDF(saleID uint) ([]byte, error) {
	row, err := s.sales.FindRow(saleID)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "QuickCart POS Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	lines := [][2]string{
		{"Product", row.Product},
		{"Quantity", strconv.Itoa(row.Quantity)},
		// Core PDF fonts are cp1252; the rupee sign is spelled out.
		{"Total Amount", fmt.Sprintf("Rs. %.2f", row.Total)},
		{"Date", row.Date},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 10, line[0], "1", 0, "", false, 0, "")
		pdf.CellFormat(120, 10, line[1], "1", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %d: %w", saleID, err)
	}
	return buf.Bytes(), nil
}
