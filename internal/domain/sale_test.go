package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSale_Normalize(t *testing.T) {
	tests := []struct {
		name       string
		isReturn   bool
		price      decimal.Decimal
		profit     decimal.Decimal
		wantPrice  decimal.Decimal
		wantProfit decimal.Decimal
	}{
		{
			name:       "sale keeps positive values",
			price:      decimal.NewFromInt(500),
			profit:     decimal.NewFromInt(50),
			wantPrice:  decimal.NewFromInt(500),
			wantProfit: decimal.NewFromInt(50),
		},
		{
			name:       "sale with negative input flipped positive",
			price:      decimal.NewFromInt(-500),
			profit:     decimal.NewFromInt(-50),
			wantPrice:  decimal.NewFromInt(500),
			wantProfit: decimal.NewFromInt(50),
		},
		{
			name:       "return flips positive input negative",
			isReturn:   true,
			price:      decimal.NewFromInt(200),
			profit:     decimal.NewFromInt(20),
			wantPrice:  decimal.NewFromInt(-200),
			wantProfit: decimal.NewFromInt(-20),
		},
		{
			name:       "return keeps negative input",
			isReturn:   true,
			price:      decimal.NewFromInt(-200),
			profit:     decimal.NewFromInt(-20),
			wantPrice:  decimal.NewFromInt(-200),
			wantProfit: decimal.NewFromInt(-20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sale{TotalPrice: tt.price, Profit: tt.profit, IsReturn: tt.isReturn, Quantity: 1}
			s.Normalize()

			if !s.TotalPrice.Equal(tt.wantPrice) {
				t.Errorf("expected price %s, got %s", tt.wantPrice, s.TotalPrice)
			}
			if !s.Profit.Equal(tt.wantProfit) {
				t.Errorf("expected profit %s, got %s", tt.wantProfit, s.Profit)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("expected normalized sale to validate, got %v", err)
			}
		})
	}
}

func TestSale_Validate(t *testing.T) {
	tests := []struct {
		name        string
		sale        Sale
		expectError error
	}{
		{
			name:        "zero quantity",
			sale:        Sale{Quantity: 0},
			expectError: ErrInvalidQuantity,
		},
		{
			name:        "return with positive price",
			sale:        Sale{Quantity: 1, IsReturn: true, TotalPrice: decimal.NewFromInt(10)},
			expectError: ErrSignInconsistent,
		},
		{
			name:        "sale with negative profit",
			sale:        Sale{Quantity: 1, TotalPrice: decimal.NewFromInt(10), Profit: decimal.NewFromInt(-1)},
			expectError: ErrSignInconsistent,
		},
		{
			name: "zero value return is consistent",
			sale: Sale{Quantity: 1, IsReturn: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sale.Validate()
			if tt.expectError == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Errorf("expected error %v, got %v", tt.expectError, err)
			}
		})
	}
}

func TestAccessoryLabel(t *testing.T) {
	if got := AccessoryLabel("Charger", false); got != "ADD -> Charger" {
		t.Errorf("unexpected sale label %q", got)
	}
	if got := AccessoryLabel("Charger", true); got != "RETURN -> Charger" {
		t.Errorf("unexpected return label %q", got)
	}
	if got := AccessoryLabel("  ", false); got != "ADD -> UNKNOWN" {
		t.Errorf("unexpected default label %q", got)
	}
}
