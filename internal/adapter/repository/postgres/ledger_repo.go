package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

// LedgerRepository implements usecase.LedgerReader.
type LedgerRepository struct {
	db      querier
	retrier *Retrier
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db querier, retrier *Retrier) *LedgerRepository {
	return &LedgerRepository{db: db, retrier: retrier}
}

// SumAmountAndProfit sums signed totals and profit for the filter's variant.
func (r *LedgerRepository) SumAmountAndProfit(ctx context.Context, filter domain.SaleFilter) (domain.SaleTotals, error) {
	query, ok := sumQueries[filter.Variant]
	if !ok {
		return domain.SaleTotals{}, fmt.Errorf("unknown query variant %d", filter.Variant)
	}

	var sale, profit pgtype.Numeric
	err := r.retrier.Retry(ctx, "sum_"+filter.Variant.String(), func() error {
		return r.db.QueryRow(ctx, query, filterArgs(filter)...).Scan(&sale, &profit)
	})
	if err != nil {
		return domain.SaleTotals{}, err
	}

	totals := domain.SaleTotals{}
	if totals.Sale, err = numericToDecimal(sale); err != nil {
		return domain.SaleTotals{}, err
	}
	if totals.Profit, err = numericToDecimal(profit); err != nil {
		return domain.SaleTotals{}, err
	}

	return totals, nil
}

// BalanceAsOf sums every sale in scope booked before the day after date.
// date is a midnight in the business timezone, so the cutoff is the next
// business midnight.
func (r *LedgerRepository) BalanceAsOf(ctx context.Context, scope domain.Scope, date time.Time) (decimal.Decimal, error) {
	cutoff := timeToPgTimestamptz(domain.StartOfDay(date).AddDate(0, 0, 1))

	query, args := balanceBeforeSQL, []any{cutoff}
	if !scope.IsGlobal() {
		query, args = clientBalanceBeforeSQL, []any{scope.ClientID, cutoff}
	}

	var balance pgtype.Numeric
	err := r.retrier.Retry(ctx, "balance_as_of", func() error {
		return r.db.QueryRow(ctx, query, args...).Scan(&balance)
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(balance)
}

// ClientExists reports whether a client row exists.
func (r *LedgerRepository) ClientExists(ctx context.Context, clientID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, clientExistsSQL, clientID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
