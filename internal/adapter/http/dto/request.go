package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/usecase"
)

// TimeParser parses a wire timestamp in the caller's zone.
type TimeParser func(value string) (time.Time, error)

// CreateClientRequest represents a request to create a client.
type CreateClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClientRequest) ToUseCaseInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Name:  r.Name,
		Phone: r.Phone,
	}
}

// CreateSaleRequest represents a request to record a sale or return.
type CreateSaleRequest struct {
	Quantity      *int             `json:"quantity,omitempty"`
	TotalPrice    *decimal.Decimal `json:"total_price,omitempty"`
	Profit        *decimal.Decimal `json:"profit,omitempty"`
	Note          *string          `json:"note,omitempty"`
	SoldAt        string           `json:"sold_at,omitempty"`
	ClientID      string           `json:"client_id"`
	AccessoryName string           `json:"accessory_name"`
	IsReturn      bool             `json:"is_return"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput(parse TimeParser) (usecase.AddSaleInput, error) {
	soldAt, err := parseOptional(parse, "sold_at", r.SoldAt)
	if err != nil {
		return usecase.AddSaleInput{}, err
	}

	return usecase.AddSaleInput{
		SoldAt:        soldAt,
		Quantity:      r.Quantity,
		TotalPrice:    r.TotalPrice,
		Profit:        r.Profit,
		Note:          r.Note,
		ClientID:      r.ClientID,
		AccessoryName: r.AccessoryName,
		IsReturn:      r.IsReturn,
	}, nil
}

// UpdateSaleRequest replaces the editable fields of a sale.
type UpdateSaleRequest struct {
	Note          *string         `json:"note,omitempty"`
	SoldAt        string          `json:"sold_at,omitempty"`
	AccessoryName string          `json:"accessory_name"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Profit        decimal.Decimal `json:"profit"`
	Quantity      int             `json:"quantity"`
	IsReturn      bool            `json:"is_return"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSaleRequest) ToUseCaseInput(id string, parse TimeParser) (usecase.UpdateSaleInput, error) {
	soldAt, err := parseOptional(parse, "sold_at", r.SoldAt)
	if err != nil {
		return usecase.UpdateSaleInput{}, err
	}

	return usecase.UpdateSaleInput{
		SoldAt:        soldAt,
		Note:          r.Note,
		ID:            id,
		AccessoryName: r.AccessoryName,
		TotalPrice:    r.TotalPrice,
		Profit:        r.Profit,
		Quantity:      r.Quantity,
		IsReturn:      r.IsReturn,
	}, nil
}

// Query parameter names shared by the report, ledger and sales endpoints.
const (
	ParamClientID        = "clientId"
	ParamFrom            = "from"
	ParamTo              = "to"
	ParamDepositDatetime = "depositDatetime"
	ParamDays            = "days"
	ParamOldBalance      = "oldBalance"
	ParamDepositAmount   = "depositAmount"
)

// ParseReportQuery reads the sales report parameters from a query string.
func ParseReportQuery(q url.Values, parse TimeParser) (usecase.SalesReportInput, error) {
	var (
		in  usecase.SalesReportInput
		err error
	)

	in.ClientID = strings.TrimSpace(q.Get(ParamClientID))

	if in.From, err = parseOptional(parse, ParamFrom, q.Get(ParamFrom)); err != nil {
		return in, err
	}
	if in.To, err = parseOptional(parse, ParamTo, q.Get(ParamTo)); err != nil {
		return in, err
	}
	if in.DepositAt, err = parseOptional(parse, ParamDepositDatetime, q.Get(ParamDepositDatetime)); err != nil {
		return in, err
	}
	if in.OldBalance, err = parseDecimal(ParamOldBalance, q.Get(ParamOldBalance)); err != nil {
		return in, err
	}
	if in.DepositAmount, err = parseDecimal(ParamDepositAmount, q.Get(ParamDepositAmount)); err != nil {
		return in, err
	}

	days, err := parseDays(q.Get(ParamDays))
	if err != nil {
		return in, err
	}
	if days != nil {
		in.DaysBack = *days
	}

	return in, nil
}

// RangeQuery is an explicit window for listing and totals. DaysBack is set
// only when the caller passed days.
type RangeQuery struct {
	From     *time.Time
	To       *time.Time
	DaysBack *int
	ClientID string
}

// ParseRangeQuery reads clientId, from, to and days from a query string.
func ParseRangeQuery(q url.Values, parse TimeParser) (RangeQuery, error) {
	var (
		rq  RangeQuery
		err error
	)

	rq.ClientID = strings.TrimSpace(q.Get(ParamClientID))
	if rq.From, err = parseOptional(parse, ParamFrom, q.Get(ParamFrom)); err != nil {
		return rq, err
	}
	if rq.To, err = parseOptional(parse, ParamTo, q.Get(ParamTo)); err != nil {
		return rq, err
	}
	if rq.DaysBack, err = parseDays(q.Get(ParamDays)); err != nil {
		return rq, err
	}

	return rq, nil
}

func parseDays(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ParamDays, err)
	}

	return &days, nil
}

func parseOptional(parse TimeParser, name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	t, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &t, nil
}

func parseDecimal(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &d, nil
}
