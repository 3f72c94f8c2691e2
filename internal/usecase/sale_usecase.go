package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

// SaleUseCase handles recording and maintaining sale entries.
type SaleUseCase struct {
	saleRepo   SaleRepository
	clientRepo ClientRepository
	idGen      IDGenerator
	clock      Clock
	recorder   Recorder
}

// NewSaleUseCase creates a new SaleUseCase.
func NewSaleUseCase(saleRepo SaleRepository, clientRepo ClientRepository, idGen IDGenerator, clock Clock, recorder Recorder) *SaleUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &SaleUseCase{
		saleRepo:   saleRepo,
		clientRepo: clientRepo,
		idGen:      idGen,
		clock:      clock,
		recorder:   recorder,
	}
}

// AddSaleInput represents input for recording a sale or return.
type AddSaleInput struct {
	SoldAt        *time.Time
	Quantity      *int
	TotalPrice    *decimal.Decimal
	Profit        *decimal.Decimal
	Note          *string
	ClientID      string
	AccessoryName string
	IsReturn      bool
}

// AddSale records a sale. The amount and profit signs are fixed here from the
// return flag; nothing downstream re-derives them.
func (uc *SaleUseCase) AddSale(ctx context.Context, input AddSaleInput) (*domain.Sale, error) {
	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ID:            uc.idGen.Generate(),
		ClientID:      client.ID,
		ClientName:    client.Name,
		AccessoryName: domain.AccessoryLabel(input.AccessoryName, input.IsReturn),
		Quantity:      domain.DefaultSaleQuantity,
		TotalPrice:    decimal.Zero,
		Profit:        decimal.Zero,
		IsReturn:      input.IsReturn,
		Note:          input.Note,
	}

	if input.Quantity != nil {
		sale.Quantity = *input.Quantity
	}
	if input.TotalPrice != nil {
		sale.TotalPrice = *input.TotalPrice
	}
	if input.Profit != nil {
		sale.Profit = *input.Profit
	}

	if err := validateAmounts(sale); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	sale.SoldAt = now
	if input.SoldAt != nil {
		sale.SoldAt = *input.SoldAt
	}
	sale.CreatedAt = now.UTC()
	sale.UpdatedAt = now.UTC()

	sale.Normalize()
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	uc.recorder.SaleRecorded(sale.IsReturn)

	return sale, nil
}

// GetSale retrieves a sale by ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return uc.saleRepo.GetByID(ctx, id)
}

// UpdateSaleInput represents a full replacement of a sale's editable fields.
type UpdateSaleInput struct {
	SoldAt        *time.Time
	Note          *string
	ID            string
	AccessoryName string
	TotalPrice    decimal.Decimal
	Profit        decimal.Decimal
	Quantity      int
	IsReturn      bool
}

// UpdateSale replaces the editable fields of a sale and re-applies the sign
// convention for the (possibly changed) return flag. The client is fixed.
func (uc *SaleUseCase) UpdateSale(ctx context.Context, input UpdateSaleInput) (*domain.Sale, error) {
	sale, err := uc.saleRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	sale.AccessoryName = domain.AccessoryLabel(stripLabelPrefix(input.AccessoryName), input.IsReturn)
	sale.Quantity = input.Quantity
	sale.TotalPrice = input.TotalPrice
	sale.Profit = input.Profit
	sale.IsReturn = input.IsReturn
	sale.Note = input.Note
	if input.SoldAt != nil {
		sale.SoldAt = *input.SoldAt
	}
	sale.UpdatedAt = uc.clock.Now().UTC()

	if err := validateAmounts(sale); err != nil {
		return nil, err
	}

	sale.Normalize()
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	if err := uc.saleRepo.Update(ctx, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// DeleteSale removes a sale.
func (uc *SaleUseCase) DeleteSale(ctx context.Context, id string) error {
	return uc.saleRepo.Delete(ctx, id)
}

// ListSales lists the sales matched by a resolved query, newest first.
func (uc *SaleUseCase) ListSales(ctx context.Context, query domain.LedgerQuery) ([]*domain.Sale, error) {
	if err := query.Window.Validate(); err != nil {
		return nil, err
	}

	if query.ClientID != "" {
		if _, err := uc.clientRepo.GetByID(ctx, query.ClientID); err != nil {
			return nil, err
		}
	}

	return uc.saleRepo.List(ctx, query.Filter())
}

func validateAmounts(sale *domain.Sale) error {
	if err := domain.ValidateQuantity(sale.Quantity); err != nil {
		return err
	}
	if err := domain.ValidateAccessoryLabel(sale.AccessoryName); err != nil {
		return err
	}
	if err := domain.ValidateSaleAmount(sale.TotalPrice); err != nil {
		return err
	}
	if err := domain.ValidateSaleAmount(sale.Profit); err != nil {
		return err
	}
	return domain.ValidateNote(sale.Note)
}

func stripLabelPrefix(label string) string {
	label = strings.TrimPrefix(label, domain.ReturnLabelPrefix)
	return strings.TrimPrefix(label, domain.SaleLabelPrefix)
}
