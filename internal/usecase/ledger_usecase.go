package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

// LedgerUseCase aggregates sales into running-balance summaries.
type LedgerUseCase struct {
	reader   LedgerReader
	recorder Recorder
	logger   zerolog.Logger
}

// LedgerOption configures a LedgerUseCase.
type LedgerOption func(*LedgerUseCase)

// WithLedgerLogger sets the logger.
func WithLedgerLogger(logger zerolog.Logger) LedgerOption {
	return func(uc *LedgerUseCase) { uc.logger = logger }
}

// WithLedgerRecorder sets the metrics recorder.
func WithLedgerRecorder(recorder Recorder) LedgerOption {
	return func(uc *LedgerUseCase) { uc.recorder = recorder }
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(reader LedgerReader, opts ...LedgerOption) *LedgerUseCase {
	uc := &LedgerUseCase{
		reader:   reader,
		recorder: nopRecorder{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// AggregateInput is the input of Aggregate. Nil OldBalance is looked up from
// the reader; nil DepositAmount means zero.
type AggregateInput struct {
	OldBalance    *decimal.Decimal
	DepositAmount *decimal.Decimal
	Query         domain.LedgerQuery
}

// Aggregate computes the ledger summary for a resolved query:
// finalBalance = oldBalance - depositAmount + periodNetSales.
func (uc *LedgerUseCase) Aggregate(ctx context.Context, input AggregateInput) (*domain.LedgerResult, error) {
	start := time.Now()
	query := input.Query

	if err := query.Window.Validate(); err != nil {
		return nil, err
	}

	if err := uc.ensureClient(ctx, query.ClientID); err != nil {
		return nil, err
	}

	oldBalance, err := uc.resolveOldBalance(ctx, query, input.OldBalance)
	if err != nil {
		return nil, err
	}

	variant := query.Variant()
	totals, err := uc.reader.SumAmountAndProfit(ctx, query.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales for %s: %w", variant, err)
	}

	deposit := decimal.Zero
	if input.DepositAmount != nil {
		deposit = *input.DepositAmount
	}

	result := &domain.LedgerResult{
		PeriodNetSales: totals.Sale,
		PeriodProfit:   totals.Profit,
		OldBalance:     oldBalance,
		DepositAmount:  deposit,
		FinalBalance:   domain.FinalBalance(oldBalance, deposit, totals.Sale),
		Variant:        variant,
	}

	elapsed := time.Since(start)
	uc.recorder.AggregateCompleted(variant, elapsed)
	uc.logger.Debug().
		Str("variant", variant.String()).
		Str("client_id", query.ClientID).
		Str("net_sales", result.PeriodNetSales.String()).
		Str("final_balance", result.FinalBalance.String()).
		Dur("duration", elapsed).
		Msg("ledger aggregated")

	return result, nil
}

// Totals returns the signed sale and profit sums for a query without any
// balance figures.
func (uc *LedgerUseCase) Totals(ctx context.Context, query domain.LedgerQuery) (domain.SaleTotals, error) {
	if err := query.Window.Validate(); err != nil {
		return domain.SaleTotals{}, err
	}

	if err := uc.ensureClient(ctx, query.ClientID); err != nil {
		return domain.SaleTotals{}, err
	}

	totals, err := uc.reader.SumAmountAndProfit(ctx, query.Filter())
	if err != nil {
		return domain.SaleTotals{}, fmt.Errorf("failed to sum sales for %s: %w", query.Variant(), err)
	}

	return totals, nil
}

func (uc *LedgerUseCase) ensureClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}

	exists, err := uc.reader.ClientExists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to look up client %s: %w", clientID, err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrClientNotFound, clientID)
	}

	return nil
}

func (uc *LedgerUseCase) resolveOldBalance(ctx context.Context, query domain.LedgerQuery, supplied *decimal.Decimal) (decimal.Decimal, error) {
	if supplied != nil {
		return *supplied, nil
	}

	fromDate, ok := query.Window.FromDate()
	if !ok {
		return decimal.Zero, domain.ErrOldBalanceRequired
	}

	cutoff := domain.OldBalanceCutoff(fromDate)
	balance, err := uc.reader.BalanceAsOf(ctx, query.Scope(), cutoff)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load balance as of %s: %w", cutoff.Format(time.DateOnly), err)
	}

	return balance, nil
}
