package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Accessory label prefixes applied when a sale is recorded.
const (
	SaleLabelPrefix     = "ADD -> "
	ReturnLabelPrefix   = "RETURN -> "
	UnknownAccessory    = "UNKNOWN"
	DefaultSaleQuantity = 1
)

// Sale is a single wholesale sale or return booked against a client.
//
// TotalPrice and Profit carry their sign: a return is stored with both values
// non-positive, a sale with both values non-negative. Aggregations sum the
// stored values as-is.
type Sale struct {
	SoldAt        time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Note          *string
	ID            string
	ClientID      string
	ClientName    string
	AccessoryName string
	TotalPrice    decimal.Decimal
	Profit        decimal.Decimal
	Quantity      int
	IsReturn      bool
}

// SignedAmount returns amount with the sign implied by isReturn.
func SignedAmount(amount decimal.Decimal, isReturn bool) decimal.Decimal {
	if isReturn {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// AccessoryLabel builds the stored accessory label for a sale or return.
func AccessoryLabel(name string, isReturn bool) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = UnknownAccessory
	}
	if isReturn {
		return ReturnLabelPrefix + name
	}
	return SaleLabelPrefix + name
}

// Normalize forces TotalPrice and Profit to the sign implied by IsReturn.
func (s *Sale) Normalize() {
	s.TotalPrice = SignedAmount(s.TotalPrice, s.IsReturn)
	s.Profit = SignedAmount(s.Profit, s.IsReturn)
}

// Validate checks the stored sign invariant.
func (s *Sale) Validate() error {
	if s.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if s.IsReturn {
		if s.TotalPrice.IsPositive() || s.Profit.IsPositive() {
			return ErrSignInconsistent
		}
		return nil
	}

	if s.TotalPrice.IsNegative() || s.Profit.IsNegative() {
		return ErrSignInconsistent
	}

	return nil
}
