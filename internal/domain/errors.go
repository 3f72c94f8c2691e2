package domain

import "errors"

var (
	// Client errors
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidClientName = errors.New("invalid client name")

	// Sale errors
	ErrSaleNotFound         = errors.New("sale entry not found")
	ErrAmountTooLarge       = errors.New("amount exceeds maximum allowed")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrSignInconsistent     = errors.New("sale amount sign does not match return flag")
	ErrNoteTooLong          = errors.New("note is too long")
	ErrAccessoryNameTooLong = errors.New("accessory name is too long")

	// Ledger errors
	ErrInvalidRange       = errors.New("invalid range: from is after to")
	ErrOldBalanceRequired = errors.New("old balance must be supplied when the window has no start")
)
