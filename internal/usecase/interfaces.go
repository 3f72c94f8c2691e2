package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

// LedgerReader is the retrieval side used by aggregation. Every method runs
// its filter at the data layer.
type LedgerReader interface {
	// SumAmountAndProfit sums signed TotalPrice and Profit for the sales
	// matched by filter. An empty match sums to zero.
	SumAmountAndProfit(ctx context.Context, filter domain.SaleFilter) (domain.SaleTotals, error)
	// BalanceAsOf returns the running balance for scope up to and including
	// the calendar day date.
	BalanceAsOf(ctx context.Context, scope domain.Scope, date time.Time) (decimal.Decimal, error)
	ClientExists(ctx context.Context, clientID string) (bool, error)
}

// SaleRepository defines data access for sale entries.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) error
	Delete(ctx context.Context, id string) error
	// List returns the sales matched by filter, newest first.
	List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error)
}

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Client, error)
}

// ReportRenderer turns a computed sales report into a document.
type ReportRenderer interface {
	Render(ctx context.Context, report *domain.SalesReport) ([]byte, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations. Get returns nil without error on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyPending is the stored value of a key whose first request is
// still in flight.
const IdempotencyPending = "processing"

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes a key whose request did not complete.
	Release(ctx context.Context, key string) error
}

// Recorder receives domain measurements. metrics.Metrics implements it.
type Recorder interface {
	AggregateCompleted(variant domain.QueryVariant, elapsed time.Duration)
	ReportGenerated(scope string)
	SaleRecorded(isReturn bool)
}

type nopRecorder struct{}

func (nopRecorder) AggregateCompleted(domain.QueryVariant, time.Duration) {}
func (nopRecorder) ReportGenerated(string)                                {}
func (nopRecorder) SaleRecorded(bool)                                     {}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }
