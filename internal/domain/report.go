package domain

import "time"

// SalesReport is everything a renderer needs to produce a sales document.
type SalesReport struct {
	GeneratedAt time.Time
	FromDate    *time.Time
	ToDate      *time.Time
	DepositAt   *time.Time
	ScopeLabel  string
	Sales       []*Sale
	Ledger      LedgerResult
	AllClients  bool
}
