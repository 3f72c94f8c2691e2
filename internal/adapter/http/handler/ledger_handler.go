package handler

import (
	"context"
	"net/http"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

// SummaryService computes running-balance summaries.
type SummaryService interface {
	Summarize(ctx context.Context, input usecase.SalesReportInput) (*domain.LedgerResult, error)
}

// TotalsService sums sales over an explicit window.
type TotalsService interface {
	Totals(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error)
}

// LedgerHandler handles ledger balance and totals requests.
type LedgerHandler struct {
	summaries SummaryService
	totals    TotalsService
	resolver  WindowResolver
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(summaries SummaryService, totals TotalsService, resolver WindowResolver) *LedgerHandler {
	return &LedgerHandler{
		summaries: summaries,
		totals:    totals,
		resolver:  resolver,
	}
}

// Summary returns the running-balance summary for the requested window.
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	input, err := dto.ParseReportQuery(r.URL.Query(), h.resolver.ParseCallerTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	result, err := h.summaries.Summarize(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute ledger summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerSummaryFromDomain(result))
}

// Totals returns the signed sale and profit sums for clientId/from/to. With
// no bounds, days selects the default window; without days the sums are
// unbounded.
func (h *LedgerHandler) Totals(w http.ResponseWriter, r *http.Request) {
	query, err := h.totalsQuery(r)
	if err != nil {
		writeError(w, mapQueryError(err), "invalid query", err.Error())
		return
	}

	totals, err := h.totals.Totals(r.Context(), query)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute totals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalsFromDomain(totals))
}

func (h *LedgerHandler) totalsQuery(r *http.Request) (domain.LedgerQuery, error) {
	rq, err := dto.ParseRangeQuery(r.URL.Query(), h.resolver.ParseCallerTime)
	if err != nil {
		return domain.LedgerQuery{}, err
	}

	if rq.DaysBack == nil || rq.From != nil || rq.To != nil {
		window, err := h.resolver.Explicit(rq.From, rq.To)
		if err != nil {
			return domain.LedgerQuery{}, err
		}
		return domain.LedgerQuery{ClientID: rq.ClientID, Window: window}, nil
	}

	resolved, err := h.resolver.Resolve(usecase.ResolveInput{DaysBack: *rq.DaysBack})
	if err != nil {
		return domain.LedgerQuery{}, err
	}
	return domain.LedgerQuery{ClientID: rq.ClientID, Window: resolved.Window}, nil
}
