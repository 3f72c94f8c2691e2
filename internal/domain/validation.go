package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxClientNameLength = 255
	MinClientNameLength = 1
	MaxSaleAmount       = "1000000000" // 100 crore
	MaxNoteLength       = 1024

	// MaxAccessoryLabelLength is the width of sale_entries.accessory_name,
	// prefix included.
	MaxAccessoryLabelLength = 255

	// MaxQuantity matches the INTEGER quantity column.
	MaxQuantity = math.MaxInt32
)

// ValidateClientName validates client name
func ValidateClientName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinClientNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidClientName)
	}

	if len(name) > MaxClientNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidClientName, MaxClientNameLength)
	}

	return nil
}

// ValidateSaleAmount validates the magnitude of a sale price or profit.
// The sign is applied later from the return flag, so only the absolute value
// is checked here.
func ValidateSaleAmount(amount decimal.Decimal) error {
	maxAmount, _ := decimal.NewFromString(MaxSaleAmount)
	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxSaleAmount)
	}

	return nil
}

// ValidateQuantity validates sale quantity
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("%w: maximum is %d", ErrInvalidQuantity, MaxQuantity)
	}
	return nil
}

// ValidateAccessoryLabel checks a prefixed accessory label against the
// stored column width.
func ValidateAccessoryLabel(label string) error {
	if utf8.RuneCountInString(label) > MaxAccessoryLabelLength {
		return fmt.Errorf("%w: maximum is %d characters including the label prefix",
			ErrAccessoryNameTooLong, MaxAccessoryLabelLength)
	}
	return nil
}

// ValidateNote validates an optional sale note.
func ValidateNote(note *string) error {
	if note != nil && len(*note) > MaxNoteLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrNoteTooLong, MaxNoteLength)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
