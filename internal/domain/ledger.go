package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTotals is the sum of signed amounts and profit over a set of sales.
type SaleTotals struct {
	Sale   decimal.Decimal
	Profit decimal.Decimal
}

// LedgerResult is the computed running-balance summary for one request.
type LedgerResult struct {
	PeriodNetSales decimal.Decimal
	PeriodProfit   decimal.Decimal
	OldBalance     decimal.Decimal
	DepositAmount  decimal.Decimal
	FinalBalance   decimal.Decimal
	Variant        QueryVariant
}

// FinalBalance computes oldBalance - deposit + net.
func FinalBalance(oldBalance, deposit, net decimal.Decimal) decimal.Decimal {
	return oldBalance.Sub(deposit).Add(net)
}

// OldBalanceCutoff returns the date the old balance is taken at: the day
// before the window start.
func OldBalanceCutoff(fromDate time.Time) time.Time {
	return fromDate.AddDate(0, 0, -1)
}
