package dto

import (
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var ist = mustLoad("Asia/Kolkata")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func utcParser(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(ist), nil
}

func TestCreateClientRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateClientRequest{Name: "Sharma Traders", Phone: "98100 00000"}

	got := req.ToUseCaseInput()
	if got.Name != "Sharma Traders" || got.Phone != "98100 00000" {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestCreateSaleRequest_ToUseCaseInput(t *testing.T) {
	price := decimal.RequireFromString("450.50")
	qty := 2

	tests := []struct {
		name        string
		request     *CreateSaleRequest
		wantSoldAt  *time.Time
		expectError bool
	}{
		{
			name: "without timestamp",
			request: &CreateSaleRequest{
				ClientID: "c1", AccessoryName: "Charger", TotalPrice: &price, Quantity: &qty,
			},
		},
		{
			name: "timestamp converted to business zone",
			request: &CreateSaleRequest{
				ClientID: "c1", SoldAt: "2024-03-01 20:00:00",
			},
			wantSoldAt: ptr(time.Date(2024, time.March, 2, 1, 30, 0, 0, ist)),
		},
		{
			name:        "bad timestamp",
			request:     &CreateSaleRequest{ClientID: "c1", SoldAt: "01/03/2024"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput(utcParser)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.ClientID != tt.request.ClientID || got.IsReturn != tt.request.IsReturn {
				t.Fatalf("ToUseCaseInput() = %+v", got)
			}
			if got.TotalPrice != tt.request.TotalPrice || got.Quantity != tt.request.Quantity {
				t.Fatalf("optional amounts not carried over: %+v", got)
			}

			switch {
			case tt.wantSoldAt == nil && got.SoldAt != nil:
				t.Fatalf("SoldAt = %v, want nil", got.SoldAt)
			case tt.wantSoldAt != nil && (got.SoldAt == nil || !got.SoldAt.Equal(*tt.wantSoldAt)):
				t.Fatalf("SoldAt = %v, want %v", got.SoldAt, tt.wantSoldAt)
			}
		})
	}
}

func TestUpdateSaleRequest_ToUseCaseInput(t *testing.T) {
	req := &UpdateSaleRequest{
		AccessoryName: "Cable",
		TotalPrice:    decimal.NewFromInt(120),
		Profit:        decimal.NewFromInt(12),
		Quantity:      3,
		IsReturn:      true,
	}

	got, err := req.ToUseCaseInput("sale-1", utcParser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "sale-1" || got.Quantity != 3 || !got.IsReturn || got.SoldAt != nil {
		t.Fatalf("ToUseCaseInput() = %+v", got)
	}
}

func TestParseReportQuery(t *testing.T) {
	q := url.Values{}
	q.Set(ParamClientID, " c1 ")
	q.Set(ParamFrom, "2024-03-01 00:00:00")
	q.Set(ParamTo, "2024-03-31 23:59:59")
	q.Set(ParamDepositDatetime, "2024-03-15 10:00:00")
	q.Set(ParamDays, "7")
	q.Set(ParamOldBalance, "1000")
	q.Set(ParamDepositAmount, "250.75")

	got, err := ParseReportQuery(q, utcParser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ClientID != "c1" {
		t.Errorf("ClientID = %q", got.ClientID)
	}
	if got.DaysBack != 7 {
		t.Errorf("DaysBack = %d", got.DaysBack)
	}
	if got.From == nil || got.To == nil || got.DepositAt == nil {
		t.Fatalf("timestamps not parsed: %+v", got)
	}
	if got.OldBalance == nil || !got.OldBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("OldBalance = %v", got.OldBalance)
	}
	if got.DepositAmount == nil || got.DepositAmount.String() != "250.75" {
		t.Errorf("DepositAmount = %v", got.DepositAmount)
	}
}

func TestParseReportQuery_AbsentValuesStayNil(t *testing.T) {
	got, err := ParseReportQuery(url.Values{}, utcParser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.From != nil || got.To != nil || got.OldBalance != nil || got.DepositAmount != nil {
		t.Fatalf("expected absent values, got %+v", got)
	}
	if got.DaysBack != 0 || got.ClientID != "" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestParseReportQuery_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad from", ParamFrom, "yesterday"},
		{"bad to", ParamTo, "2024-13-01 00:00:00"},
		{"bad days", ParamDays, "seven"},
		{"bad old balance", ParamOldBalance, "1,000"},
		{"bad deposit", ParamDepositAmount, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set(tt.key, tt.value)
			if _, err := ParseReportQuery(q, utcParser); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestParseRangeQuery(t *testing.T) {
	q := url.Values{}
	q.Set(ParamTo, "2024-03-05 12:00:00")

	got, err := ParseRangeQuery(q, utcParser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.From != nil || got.To == nil {
		t.Fatalf("ParseRangeQuery() = %+v", got)
	}
	if got.To.Location() != ist {
		t.Fatalf("To location = %s", got.To.Location())
	}
}

func TestParseRangeQuery_Days(t *testing.T) {
	got, err := ParseRangeQuery(url.Values{ParamDays: {"7"}}, utcParser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DaysBack == nil || *got.DaysBack != 7 {
		t.Fatalf("DaysBack = %v", got.DaysBack)
	}

	got, err = ParseRangeQuery(url.Values{}, utcParser)
	if err != nil || got.DaysBack != nil {
		t.Fatalf("absent days: %+v, %v", got, err)
	}

	if _, err := ParseRangeQuery(url.Values{ParamDays: {"x"}}, utcParser); err == nil {
		t.Fatalf("expected error for non-numeric days")
	}
}

func ptr[T any](v T) *T { return &v }
