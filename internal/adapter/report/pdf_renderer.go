// Package report renders sales reports as PDF documents.
package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

const (
	dateLayout     = "02 Jan 2006"
	dateTimeLayout = "02 Jan 2006 03:04 PM"
	currencyPrefix = "Rs. "

	pageMargin = 15.0
	rowHeight  = 8.0
)

type rgb struct{ r, g, b int }

var (
	colorHeaderFill = rgb{211, 211, 211}
	colorReturnFill = rgb{255, 255, 153}
	colorRed        = rgb{200, 0, 0}
	colorGreen      = rgb{0, 140, 0}
	colorBlue       = rgb{0, 0, 200}
	colorBlack      = rgb{0, 0, 0}
)

// Config holds the shop details printed on every report.
type Config struct {
	Location *time.Location
	ShopName string
	Contact  string
}

// PDFRenderer implements usecase.ReportRenderer with fpdf.
type PDFRenderer struct {
	cfg Config
}

// NewPDFRenderer creates a new PDFRenderer.
func NewPDFRenderer(cfg Config) *PDFRenderer {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &PDFRenderer{cfg: cfg}
}

// Render draws the report and returns the PDF bytes.
func (r *PDFRenderer) Render(ctx context.Context, report *domain.SalesReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Sales Report - "+report.ScopeLabel, true)
	pdf.SetCreator(r.cfg.ShopName, true)
	pdf.SetCreationDate(report.GeneratedAt)
	pdf.SetModificationDate(report.GeneratedAt)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width, _ := pdf.GetPageSize()
	contentWidth := width - 2*pageMargin

	r.writeHeader(pdf, tr, report)
	r.writeOldBalance(pdf, tr, report)
	r.writeSalesTable(pdf, tr, report, contentWidth)
	r.writeSummary(pdf, tr, report)
	r.writeFooter(pdf, tr)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *PDFRenderer) writeHeader(pdf *fpdf.Fpdf, tr func(string) string, report *domain.SalesReport) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("<---------- "+r.cfg.ShopName+" ---------->"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, rowHeight, tr("Sales Report for -> "+report.ScopeLabel), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	generated := report.GeneratedAt.In(r.cfg.Location).Format(dateLayout)
	pdf.CellFormat(0, rowHeight, "Pdf Generated date -> "+generated, "", 1, "L", false, 0, "")

	if report.FromDate != nil && report.ToDate != nil {
		setTextColor(pdf, colorBlue)
		line := fmt.Sprintf("Date from: %s  se  %s tak ki report",
			report.FromDate.Format(dateLayout), report.ToDate.Format(dateLayout))
		pdf.CellFormat(0, rowHeight, line, "", 1, "L", false, 0, "")
		setTextColor(pdf, colorBlack)
	}

	pdf.Ln(4)
}

func (r *PDFRenderer) writeOldBalance(pdf *fpdf.Fpdf, tr func(string) string, report *domain.SalesReport) {
	if report.FromDate == nil {
		return
	}

	cutoff := domain.OldBalanceCutoff(*report.FromDate)
	line := fmt.Sprintf("(%s) Tak Ka Pending Amount = %s",
		cutoff.Format(dateLayout), money(report.Ledger.OldBalance))

	pdf.SetFont("Helvetica", "B", 12)
	setTextColor(pdf, colorRed)
	pdf.CellFormat(0, rowHeight, tr(line), "", 1, "R", false, 0, "")
	setTextColor(pdf, colorBlack)
	pdf.Ln(2)
}

func (r *PDFRenderer) writeSalesTable(pdf *fpdf.Fpdf, tr func(string) string, report *domain.SalesReport, contentWidth float64) {
	headers := []string{"Sr", "Date", "Accessory", "Total Price"}
	weights := []float64{10, 20, 40, 30}
	if report.AllClients {
		headers = []string{"Sr", "Date", "Accessory", "Client", "Total Price"}
		weights = []float64{10, 20, 40, 10, 20}
	}

	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = contentWidth * w / 100
	}

	pdf.SetFont("Helvetica", "B", 11)
	setFillColor(pdf, colorHeaderFill)
	for i, h := range headers {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	setFillColor(pdf, colorReturnFill)
	for i, sale := range report.Sales {
		cells := []string{
			strconv.Itoa(i + 1),
			sale.SoldAt.In(r.cfg.Location).Format(dateLayout),
			sale.AccessoryName,
		}
		if report.AllClients {
			cells = append(cells, sale.ClientName)
		}
		cells = append(cells, money(sale.TotalPrice))

		for j, c := range cells {
			pdf.CellFormat(widths[j], rowHeight, tr(c), "1", 0, "L", sale.IsReturn, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
}

func (r *PDFRenderer) writeSummary(pdf *fpdf.Fpdf, tr func(string) string, report *domain.SalesReport) {
	ledger := report.Ledger
	pdf.SetFont("Helvetica", "B", 12)

	if !ledger.DepositAmount.IsZero() {
		line := "Deposit Amount = " + money(ledger.DepositAmount)
		if report.DepositAt != nil {
			line += " (" + report.DepositAt.In(r.cfg.Location).Format(dateTimeLayout) + ")"
		}
		setTextColor(pdf, colorBlue)
		pdf.CellFormat(0, rowHeight, tr(line), "", 1, "R", false, 0, "")
	}

	label := "Final Amount"
	if report.ToDate != nil {
		label = report.ToDate.Format(dateLayout) + " Ka Final Amount"
	}
	setTextColor(pdf, colorGreen)
	pdf.CellFormat(0, rowHeight, tr(label+" = "+money(ledger.FinalBalance)), "", 1, "R", false, 0, "")
	setTextColor(pdf, colorBlack)
}

func (r *PDFRenderer) writeFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, rowHeight, "Thank You For Purchasing", "", 1, "C", false, 0, "")
	if r.cfg.Contact != "" {
		pdf.CellFormat(0, rowHeight, tr("Contact -> "+r.cfg.Contact), "", 1, "C", false, 0, "")
	}
}

func money(d decimal.Decimal) string {
	return currencyPrefix + d.StringFixed(2)
}

func setTextColor(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

func setFillColor(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
