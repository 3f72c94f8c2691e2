package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

// SaleService defines the behavior needed by SaleHandler.
type SaleService interface {
	AddSale(ctx context.Context, input usecase.AddSaleInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	UpdateSale(ctx context.Context, input usecase.UpdateSaleInput) (*domain.Sale, error)
	DeleteSale(ctx context.Context, id string) error
	ListSales(ctx context.Context, query domain.LedgerQuery) ([]*domain.Sale, error)
}

// SaleHandler handles sale-related HTTP requests.
type SaleHandler struct {
	saleUC   SaleService
	resolver WindowResolver
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleUC SaleService, resolver WindowResolver) *SaleHandler {
	return &SaleHandler{saleUC: saleUC, resolver: resolver}
}

// Create records a sale or return.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(h.resolver.ParseCallerTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sale, err := h.saleUC.AddSale(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.SaleFromDomain(sale, h.resolver.Location()))
}

// Get retrieves a sale by ID.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	sale, err := h.saleUC.GetSale(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get sale", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SaleFromDomain(sale, h.resolver.Location()))
}

// Update replaces the editable fields of a sale.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	var req dto.UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, h.resolver.ParseCallerTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	sale, err := h.saleUC.UpdateSale(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update sale", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SaleFromDomain(sale, h.resolver.Location()))
}

// Delete removes a sale.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing sale ID", "")
		return
	}

	if err := h.saleUC.DeleteSale(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete sale", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists the sales matched by clientId/from/to, newest first.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := explicitQuery(r, h.resolver)
	if err != nil {
		writeError(w, mapQueryError(err), "invalid query", err.Error())
		return
	}

	sales, err := h.saleUC.ListSales(r.Context(), query)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list sales", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSalesResponse{
		Sales: dto.SalesFromDomain(sales, h.resolver.Location()),
		Total: int64(len(sales)),
	})
}
