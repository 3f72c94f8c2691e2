package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/salesledger/internal/adapter/repository/postgres"
	"github.com/iho/salesledger/internal/domain"
	infrapg "github.com/iho/salesledger/internal/infrastructure/postgres"
)

const migrationsPath = "../../../../migrations"

// newTestPool connects to DATABASE_URL, migrates it and empties the ledger
// tables. Tests are skipped when no database is configured.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	require.NoError(t, infrapg.RunMigrations(dbURL, migrationsPath, zerolog.Nop()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := infrapg.NewPool(ctx, dbURL, 5, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, "TRUNCATE sale_entries, clients CASCADE")
	require.NoError(t, err)
	return pool
}

func TestIntegration_LedgerVariants(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	ids := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	clients := postgres.NewClientRepository(pool)
	sales := postgres.NewSaleRepository(pool, retrier)
	ledger := postgres.NewLedgerRepository(pool, retrier)

	sharma := &domain.Client{ID: ids.Generate(), Name: "Sharma"}
	gupta := &domain.Client{ID: ids.Generate(), Name: "Gupta"}
	require.NoError(t, clients.Create(ctx, sharma))
	require.NoError(t, clients.Create(ctx, gupta))

	book := func(client *domain.Client, day int, amount int64, isReturn bool) {
		t.Helper()
		s := &domain.Sale{
			ID:            ids.Generate(),
			ClientID:      client.ID,
			AccessoryName: domain.AccessoryLabel("Charger", isReturn),
			TotalPrice:    decimal.NewFromInt(amount),
			Profit:        decimal.NewFromInt(amount / 10),
			Quantity:      1,
			IsReturn:      isReturn,
			SoldAt:        time.Date(2024, time.March, day, 12, 0, 0, 0, ist),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}
		s.Normalize()
		require.NoError(t, sales.Create(ctx, s))
	}

	book(sharma, 1, 1000, false)
	book(sharma, 5, 500, false)
	book(sharma, 6, 200, true)
	book(gupta, 5, 300, false)

	from := time.Date(2024, time.March, 5, 0, 0, 0, 0, ist)
	to := time.Date(2024, time.March, 6, 23, 59, 59, 0, ist)

	tests := []struct {
		name  string
		query domain.LedgerQuery
		sale  int64
	}{
		{"client range", domain.LedgerQuery{ClientID: sharma.ID, Window: domain.TimeWindow{From: &from, To: &to}}, 300},
		{"client after", domain.LedgerQuery{ClientID: sharma.ID, Window: domain.TimeWindow{From: &from}}, 300},
		{"client before", domain.LedgerQuery{ClientID: sharma.ID, Window: domain.TimeWindow{To: &from}}, 1000},
		{"client all", domain.LedgerQuery{ClientID: sharma.ID}, 1300},
		{"global range", domain.LedgerQuery{Window: domain.TimeWindow{From: &from, To: &to}}, 600},
		{"global all", domain.LedgerQuery{}, 1600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals, err := ledger.SumAmountAndProfit(ctx, tt.query.Filter())
			require.NoError(t, err)
			assert.True(t, totals.Sale.Equal(decimal.NewFromInt(tt.sale)), "sale = %s", totals.Sale)

			listed, err := sales.List(ctx, tt.query.Filter())
			require.NoError(t, err)
			var sum decimal.Decimal
			for _, s := range listed {
				sum = sum.Add(s.TotalPrice)
			}
			assert.True(t, sum.Equal(totals.Sale), "listed sum %s != aggregate %s", sum, totals.Sale)
		})
	}

	balance, err := ledger.BalanceAsOf(ctx, domain.ClientScope(sharma.ID), domain.OldBalanceCutoff(from))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(1000)), "balance = %s", balance)

	exists, err := ledger.ClientExists(ctx, "01HNOSUCHCLIENT0000000000")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIntegration_SaleLifecycle(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	ids := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier(zerolog.Nop())
	clients := postgres.NewClientRepository(pool)
	sales := postgres.NewSaleRepository(pool, retrier)

	client := &domain.Client{ID: ids.Generate(), Name: "Verma"}
	require.NoError(t, clients.Create(ctx, client))

	sale := &domain.Sale{
		ID:            ids.Generate(),
		ClientID:      client.ID,
		AccessoryName: domain.AccessoryLabel("Cable", false),
		TotalPrice:    decimal.NewFromInt(120),
		Profit:        decimal.NewFromInt(12),
		Quantity:      2,
		SoldAt:        time.Now().UTC().Truncate(time.Second),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, sales.Create(ctx, sale))

	got, err := sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Verma", got.ClientName)
	assert.Equal(t, 2, got.Quantity)

	got.IsReturn = true
	got.AccessoryName = domain.AccessoryLabel("Cable", true)
	got.Normalize()
	require.NoError(t, sales.Update(ctx, got))

	require.NoError(t, sales.Delete(ctx, sale.ID))
	_, err = sales.GetByID(ctx, sale.ID)
	require.ErrorIs(t, err, domain.ErrSaleNotFound)

	orphan := &domain.Sale{ID: ids.Generate(), ClientID: "01HNOSUCHCLIENT0000000000", Quantity: 1, SoldAt: time.Now()}
	require.ErrorIs(t, sales.Create(ctx, orphan), domain.ErrClientNotFound)
}
