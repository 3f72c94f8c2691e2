package postgres

import (
	"github.com/iho/salesledger/internal/domain"
)

// One WHERE clause per query variant. Bounds are inclusive.
var variantConditions = map[domain.QueryVariant]string{
	domain.VariantClientRange:  " WHERE client_id = $1 AND sold_at >= $2 AND sold_at <= $3",
	domain.VariantClientAfter:  " WHERE client_id = $1 AND sold_at >= $2",
	domain.VariantClientBefore: " WHERE client_id = $1 AND sold_at <= $2",
	domain.VariantClientAll:    " WHERE client_id = $1",
	domain.VariantGlobalRange:  " WHERE sold_at >= $1 AND sold_at <= $2",
	domain.VariantGlobalAfter:  " WHERE sold_at >= $1",
	domain.VariantGlobalBefore: " WHERE sold_at <= $1",
	domain.VariantGlobalAll:    "",
}

const (
	sumSaleEntriesSQL = `SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(profit), 0) FROM sale_entries`

	listSaleEntriesSQL = `SELECT s.id, s.client_id, c.name, s.accessory_name, s.quantity, s.total_price, s.profit,
       s.is_return, s.note, s.sold_at, s.created_at, s.updated_at
FROM sale_entries s JOIN clients c ON c.id = s.client_id`

	listSaleEntriesOrder = ` ORDER BY s.sold_at DESC, s.id DESC`

	getSaleEntrySQL = listSaleEntriesSQL + ` WHERE s.id = $1`

	createSaleEntrySQL = `INSERT INTO sale_entries
    (id, client_id, accessory_name, quantity, total_price, profit, is_return, note, sold_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	updateSaleEntrySQL = `UPDATE sale_entries
SET accessory_name = $2, quantity = $3, total_price = $4, profit = $5, is_return = $6, note = $7,
    sold_at = $8, updated_at = $9
WHERE id = $1`

	deleteSaleEntrySQL = `DELETE FROM sale_entries WHERE id = $1`

	balanceBeforeSQL       = `SELECT COALESCE(SUM(total_price), 0) FROM sale_entries WHERE sold_at < $1`
	clientBalanceBeforeSQL = `SELECT COALESCE(SUM(total_price), 0) FROM sale_entries WHERE client_id = $1 AND sold_at < $2`

	clientExistsSQL = `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`

	createClientSQL = `INSERT INTO clients (id, name, phone, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`
	getClientSQL    = `SELECT id, name, phone, created_at, updated_at FROM clients WHERE id = $1`
	listClientsSQL  = `SELECT id, name, phone, created_at, updated_at FROM clients ORDER BY name, id LIMIT $1 OFFSET $2`
)

var (
	sumQueries  = buildVariantQueries(sumSaleEntriesSQL, "")
	listQueries = buildVariantQueries(listSaleEntriesSQL, listSaleEntriesOrder)
)

func buildVariantQueries(prefix, suffix string) map[domain.QueryVariant]string {
	queries := make(map[domain.QueryVariant]string, len(variantConditions))
	for variant, where := range variantConditions {
		queries[variant] = prefix + where + suffix
	}
	return queries
}

// filterArgs returns the positional arguments for the filter's variant, in
// the order its statement expects them.
func filterArgs(f domain.SaleFilter) []any {
	switch f.Variant {
	case domain.VariantClientRange:
		return []any{f.ClientID, timeToPgTimestamptz(f.From), timeToPgTimestamptz(f.To)}
	case domain.VariantClientAfter:
		return []any{f.ClientID, timeToPgTimestamptz(f.From)}
	case domain.VariantClientBefore:
		return []any{f.ClientID, timeToPgTimestamptz(f.To)}
	case domain.VariantClientAll:
		return []any{f.ClientID}
	case domain.VariantGlobalRange:
		return []any{timeToPgTimestamptz(f.From), timeToPgTimestamptz(f.To)}
	case domain.VariantGlobalAfter:
		return []any{timeToPgTimestamptz(f.From)}
	case domain.VariantGlobalBefore:
		return []any{timeToPgTimestamptz(f.To)}
	default:
		return nil
	}
}
