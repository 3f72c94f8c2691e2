package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/salesledger/internal/domain"
)

// ReportUseCase builds the sales report document: it resolves the window,
// aggregates the ledger, lists the matching sales and hands everything to the
// renderer.
type ReportUseCase struct {
	resolver   *TimeWindowResolver
	ledger     *LedgerUseCase
	saleRepo   SaleRepository
	clientRepo ClientRepository
	renderer   ReportRenderer
	recorder   Recorder
	logger     zerolog.Logger
}

// ReportConfig holds the dependencies of ReportUseCase.
type ReportConfig struct {
	Resolver   *TimeWindowResolver
	Ledger     *LedgerUseCase
	SaleRepo   SaleRepository
	ClientRepo ClientRepository
	Renderer   ReportRenderer
	Recorder   Recorder
	Logger     *zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(cfg ReportConfig) *ReportUseCase {
	uc := &ReportUseCase{
		resolver:   cfg.Resolver,
		ledger:     cfg.Ledger,
		saleRepo:   cfg.SaleRepo,
		clientRepo: cfg.ClientRepo,
		renderer:   cfg.Renderer,
		recorder:   cfg.Recorder,
		logger:     zerolog.Nop(),
	}
	if uc.recorder == nil {
		uc.recorder = nopRecorder{}
	}
	if cfg.Logger != nil {
		uc.logger = *cfg.Logger
	}
	return uc
}

// SalesReportInput carries the caller parameters of a sales report.
type SalesReportInput struct {
	From          *time.Time
	To            *time.Time
	DepositAt     *time.Time
	OldBalance    *decimal.Decimal
	DepositAmount *decimal.Decimal
	ClientID      string
	DaysBack      int
}

// SalesReport is the rendered report plus the figures behind it.
type SalesReport struct {
	Ledger   *domain.LedgerResult
	Filename string
	Label    string
	Content  []byte
}

// Summarize resolves the window and aggregates the ledger without listing or
// rendering anything.
func (uc *ReportUseCase) Summarize(ctx context.Context, input SalesReportInput) (*domain.LedgerResult, error) {
	resolved, err := uc.resolve(input)
	if err != nil {
		return nil, err
	}

	return uc.ledger.Aggregate(ctx, AggregateInput{
		Query:         domain.LedgerQuery{ClientID: input.ClientID, Window: resolved.Window},
		OldBalance:    input.OldBalance,
		DepositAmount: input.DepositAmount,
	})
}

// GenerateSalesReport produces the sales report document.
func (uc *ReportUseCase) GenerateSalesReport(ctx context.Context, input SalesReportInput) (*SalesReport, error) {
	resolved, err := uc.resolve(input)
	if err != nil {
		return nil, err
	}

	label := domain.AllClientsLabel
	if input.ClientID != "" {
		client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return nil, err
		}
		label = client.Name
	}

	query := domain.LedgerQuery{ClientID: input.ClientID, Window: resolved.Window}

	result, err := uc.ledger.Aggregate(ctx, AggregateInput{
		Query:         query,
		OldBalance:    input.OldBalance,
		DepositAmount: input.DepositAmount,
	})
	if err != nil {
		return nil, err
	}

	sales, err := uc.saleRepo.List(ctx, query.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	report := &domain.SalesReport{
		GeneratedAt: uc.resolver.Now(),
		DepositAt:   resolved.DepositAt,
		ScopeLabel:  label,
		Sales:       sales,
		Ledger:      *result,
		AllClients:  input.ClientID == "",
	}
	if d, ok := resolved.Window.FromDate(); ok {
		report.FromDate = &d
	}
	if d, ok := resolved.Window.ToDate(); ok {
		report.ToDate = &d
	}

	content, err := uc.renderer.Render(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to render sales report: %w", err)
	}

	uc.recorder.ReportGenerated(scopeKind(input.ClientID))
	uc.logger.Info().
		Str("label", label).
		Str("variant", result.Variant.String()).
		Int("sales", len(sales)).
		Int("bytes", len(content)).
		Msg("sales report generated")

	return &SalesReport{
		Ledger:   result,
		Filename: "sales_report_" + label + ".pdf",
		Label:    label,
		Content:  content,
	}, nil
}

func (uc *ReportUseCase) resolve(input SalesReportInput) (ResolvedWindow, error) {
	return uc.resolver.Resolve(ResolveInput{
		From:      input.From,
		To:        input.To,
		DepositAt: input.DepositAt,
		DaysBack:  input.DaysBack,
	})
}

func scopeKind(clientID string) string {
	if clientID == "" {
		return "global"
	}
	return "client"
}
