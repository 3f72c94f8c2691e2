package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/salesledger/internal/domain"
)

// ClientUseCase handles client lookups for sales and reports.
type ClientUseCase struct {
	clientRepo ClientRepository
	idGen      IDGenerator
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, idGen IDGenerator) *ClientUseCase {
	return &ClientUseCase{
		clientRepo: clientRepo,
		idGen:      idGen,
	}
}

// CreateClientInput represents input for creating a client.
type CreateClientInput struct {
	Name  string
	Phone string
}

// CreateClient creates a new client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	if err := domain.ValidateClientName(input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	client := &domain.Client{
		ID:        uc.idGen.Generate(),
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// ListClientsInput represents input for listing clients.
type ListClientsInput struct {
	Limit  int
	Offset int
}

// ListClients lists clients with pagination.
func (uc *ClientUseCase) ListClients(ctx context.Context, input ListClientsInput) ([]*domain.Client, error) {
	limit, offset, _ := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.clientRepo.List(ctx, limit, offset)
}
