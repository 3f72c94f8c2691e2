package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/salesledger/internal/domain"
)

// SaleRepository implements usecase.SaleRepository.
type SaleRepository struct {
	db      querier
	retrier *Retrier
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db querier, retrier *Retrier) *SaleRepository {
	return &SaleRepository{db: db, retrier: retrier}
}

// Create inserts a sale entry.
func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	err := r.retrier.Retry(ctx, "create_sale", func() error {
		_, err := r.db.Exec(ctx, createSaleEntrySQL,
			sale.ID,
			sale.ClientID,
			sale.AccessoryName,
			int32(sale.Quantity),
			decimalToNumeric(sale.TotalPrice),
			decimalToNumeric(sale.Profit),
			sale.IsReturn,
			sale.Note,
			timeToPgTimestamptz(sale.SoldAt),
			timeToPgTimestamptz(sale.CreatedAt),
			timeToPgTimestamptz(sale.UpdatedAt),
		)
		return err
	})
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrClientNotFound, sale.ClientID)
	}

	return err
}

// GetByID retrieves a sale entry with its client name.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := scanSale(r.db.QueryRow(ctx, getSaleEntrySQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}

		return nil, err
	}

	return sale, nil
}

// Update replaces the editable columns of a sale entry.
func (r *SaleRepository) Update(ctx context.Context, sale *domain.Sale) error {
	tag, err := r.db.Exec(ctx, updateSaleEntrySQL,
		sale.ID,
		sale.AccessoryName,
		int32(sale.Quantity),
		decimalToNumeric(sale.TotalPrice),
		decimalToNumeric(sale.Profit),
		sale.IsReturn,
		sale.Note,
		timeToPgTimestamptz(sale.SoldAt),
		timeToPgTimestamptz(sale.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// Delete removes a sale entry.
func (r *SaleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, deleteSaleEntrySQL, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// List returns the sale entries matched by filter, newest first.
func (r *SaleRepository) List(ctx context.Context, filter domain.SaleFilter) ([]*domain.Sale, error) {
	query, ok := listQueries[filter.Variant]
	if !ok {
		return nil, fmt.Errorf("unknown query variant %d", filter.Variant)
	}

	var sales []*domain.Sale
	err := r.retrier.Retry(ctx, "list_"+filter.Variant.String(), func() error {
		rows, err := r.db.Query(ctx, query, filterArgs(filter)...)
		if err != nil {
			return err
		}
		defer rows.Close()

		sales = sales[:0]
		for rows.Next() {
			sale, err := scanSale(rows)
			if err != nil {
				return err
			}
			sales = append(sales, sale)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return sales, nil
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale                         domain.Sale
		quantity                     int32
		totalPrice, profit           pgtype.Numeric
		soldAt, createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&sale.ID,
		&sale.ClientID,
		&sale.ClientName,
		&sale.AccessoryName,
		&quantity,
		&totalPrice,
		&profit,
		&sale.IsReturn,
		&sale.Note,
		&soldAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sale.Quantity = int(quantity)
	sale.SoldAt = soldAt.Time
	sale.CreatedAt = createdAt.Time
	sale.UpdatedAt = updatedAt.Time

	if sale.TotalPrice, err = numericToDecimal(totalPrice); err != nil {
		return nil, err
	}
	if sale.Profit, err = numericToDecimal(profit); err != nil {
		return nil, err
	}

	return &sale, nil
}
