package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

type summaryServiceStub struct {
	fn func(ctx context.Context, input usecase.SalesReportInput) (*domain.LedgerResult, error)
}

func (s *summaryServiceStub) Summarize(ctx context.Context, input usecase.SalesReportInput) (*domain.LedgerResult, error) {
	return s.fn(ctx, input)
}

type totalsServiceStub struct {
	fn func(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error)
}

func (s *totalsServiceStub) Totals(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error) {
	return s.fn(ctx, query)
}

func TestLedgerHandler_Summary(t *testing.T) {
	var captured usecase.SalesReportInput
	h := NewLedgerHandler(&summaryServiceStub{
		fn: func(ctx context.Context, input usecase.SalesReportInput) (*domain.LedgerResult, error) {
			captured = input
			return &domain.LedgerResult{
				PeriodNetSales: decimal.NewFromInt(300),
				OldBalance:     decimal.NewFromInt(1000),
				DepositAmount:  decimal.NewFromInt(300),
				FinalBalance:   decimal.NewFromInt(1000),
				Variant:        domain.VariantClientRange,
			}, nil
		},
	}, nil, testResolver(t))

	req := httptest.NewRequest(http.MethodGet,
		"/ledger/summary?clientId=c1&days=7&oldBalance=1000&depositAmount=300", nil)
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ClientID != "c1" || captured.DaysBack != 7 {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if captured.OldBalance == nil || captured.DepositAmount == nil {
		t.Fatalf("balances not parsed: %+v", captured)
	}

	var resp dto.LedgerSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.FinalBalance.Equal(decimal.NewFromInt(1000)) || resp.Variant != "client_range" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLedgerHandler_Summary_Errors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		expected int
	}{
		{"bad old balance", "oldBalance=abc", nil, http.StatusBadRequest},
		{"unknown client", "clientId=ghost", domain.ErrClientNotFound, http.StatusNotFound},
		{"missing old balance", "to=2024-03-01+00:00:00", domain.ErrOldBalanceRequired, http.StatusBadRequest},
		{"storage failure", "", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewLedgerHandler(&summaryServiceStub{
				fn: func(ctx context.Context, input usecase.SalesReportInput) (*domain.LedgerResult, error) {
					if tt.err == nil {
						t.Fatal("Summarize should not be called")
					}
					return nil, tt.err
				},
			}, nil, testResolver(t))

			rec := httptest.NewRecorder()
			h.Summary(rec, httptest.NewRequest(http.MethodGet, "/ledger/summary?"+tt.query, nil))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestLedgerHandler_Totals(t *testing.T) {
	var captured domain.LedgerQuery
	h := NewLedgerHandler(nil, &totalsServiceStub{
		fn: func(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error) {
			captured = query
			return domain.SaleTotals{Sale: decimal.NewFromInt(-200), Profit: decimal.NewFromInt(-20)}, nil
		},
	}, testResolver(t))

	rec := httptest.NewRecorder()
	h.Totals(rec, httptest.NewRequest(http.MethodGet, "/ledger/totals?to=2024-03-05+12:00:00", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Variant() != domain.VariantGlobalBefore {
		t.Fatalf("variant = %s", captured.Variant())
	}

	var resp dto.TotalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Sale.Equal(decimal.NewFromInt(-200)) {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLedgerHandler_TotalsDaysWindow(t *testing.T) {
	var captured domain.LedgerQuery
	h := NewLedgerHandler(nil, &totalsServiceStub{
		fn: func(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error) {
			captured = query
			return domain.SaleTotals{}, nil
		},
	}, testResolver(t))

	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name    string
		target  string
		variant domain.QueryVariant
		from    time.Time
	}{
		{"days without bounds", "/ledger/totals?days=7", domain.VariantGlobalRange, time.Date(2024, time.March, 3, 0, 0, 0, 0, ist)},
		{"no days no bounds", "/ledger/totals", domain.VariantGlobalAll, time.Time{}},
		{"explicit bound wins over days", "/ledger/totals?days=7&to=2024-03-05+12:00:00", domain.VariantGlobalBefore, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Totals(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if captured.Variant() != tt.variant {
				t.Fatalf("variant = %s", captured.Variant())
			}
			if tt.from.IsZero() {
				return
			}
			if !captured.Window.From.Equal(tt.from) {
				t.Fatalf("from = %s, want %s", captured.Window.From, tt.from)
			}
			if captured.Window.To.Format(time.DateOnly) != "2024-03-10" || captured.Window.To.Hour() != 23 {
				t.Fatalf("to = %s", captured.Window.To)
			}
		})
	}
}

func TestLedgerHandler_TotalsBadDays(t *testing.T) {
	h := NewLedgerHandler(nil, &totalsServiceStub{}, testResolver(t))

	rec := httptest.NewRecorder()
	h.Totals(rec, httptest.NewRequest(http.MethodGet, "/ledger/totals?days=week", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
