package handler

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/usecase"
)

// ReportService produces sales report documents.
type ReportService interface {
	GenerateSalesReport(ctx context.Context, input usecase.SalesReportInput) (*usecase.SalesReport, error)
}

// ReportHandler serves rendered reports.
type ReportHandler struct {
	reportUC ReportService
	resolver WindowResolver
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, resolver WindowResolver) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, resolver: resolver}
}

// SalesPDF renders the sales report as an inline PDF.
func (h *ReportHandler) SalesPDF(w http.ResponseWriter, r *http.Request) {
	input, err := dto.ParseReportQuery(r.URL.Query(), h.resolver.ParseCallerTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	report, err := h.reportUC.GenerateSalesReport(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to generate sales report", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{
		"filename": report.Filename,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(report.Content)
}
