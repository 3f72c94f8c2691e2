package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientFromDomain converts domain client to response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// ListClientsResponse is the body of GET /clients.
type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Total   int64             `json:"total"`
}

// SaleResponse represents a sale in API responses. SoldAt is written in the
// business timezone using the wire layout.
type SaleResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id"`
	ClientName    string          `json:"client_name,omitempty"`
	AccessoryName string          `json:"accessory_name"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Profit        decimal.Decimal `json:"profit"`
	IsReturn      bool            `json:"is_return"`
	Note          *string         `json:"note,omitempty"`
	SoldAt        string          `json:"sold_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// SaleFromDomain converts domain sale to response.
func SaleFromDomain(s *domain.Sale, loc *time.Location) *SaleResponse {
	return &SaleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		AccessoryName: s.AccessoryName,
		Quantity:      s.Quantity,
		TotalPrice:    s.TotalPrice,
		Profit:        s.Profit,
		IsReturn:      s.IsReturn,
		Note:          s.Note,
		SoldAt:        s.SoldAt.In(loc).Format(usecase.CallerTimeLayout),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale, loc *time.Location) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s, loc)
	}
	return result
}

// ListSalesResponse is the body of GET /sales.
type ListSalesResponse struct {
	Sales []*SaleResponse `json:"sales"`
	Total int64           `json:"total"`
}

// LedgerSummaryResponse represents a computed ledger result.
type LedgerSummaryResponse struct {
	PeriodNetSales decimal.Decimal `json:"period_net_sales"`
	PeriodProfit   decimal.Decimal `json:"period_profit"`
	OldBalance     decimal.Decimal `json:"old_balance"`
	DepositAmount  decimal.Decimal `json:"deposit_amount"`
	FinalBalance   decimal.Decimal `json:"final_balance"`
	Variant        string          `json:"variant"`
}

// LedgerSummaryFromDomain converts a ledger result to response.
func LedgerSummaryFromDomain(r *domain.LedgerResult) *LedgerSummaryResponse {
	return &LedgerSummaryResponse{
		PeriodNetSales: r.PeriodNetSales,
		PeriodProfit:   r.PeriodProfit,
		OldBalance:     r.OldBalance,
		DepositAmount:  r.DepositAmount,
		FinalBalance:   r.FinalBalance,
		Variant:        r.Variant.String(),
	}
}

// TotalsResponse represents signed sale and profit sums.
type TotalsResponse struct {
	Sale   decimal.Decimal `json:"sale"`
	Profit decimal.Decimal `json:"profit"`
}

// TotalsFromDomain converts sale totals to response.
func TotalsFromDomain(t domain.SaleTotals) *TotalsResponse {
	return &TotalsResponse{Sale: t.Sale, Profit: t.Profit}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
