package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/salesledger/internal/adapter/http/dto"
	"github.com/iho/salesledger/internal/domain"
	"github.com/iho/salesledger/internal/usecase"
)

type clientServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error)
	getFn    func(ctx context.Context, id string) (*domain.Client, error)
	listFn   func(ctx context.Context, input usecase.ListClientsInput) ([]*domain.Client, error)
}

func (s *clientServiceStub) CreateClient(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, input)
}

func (s *clientServiceStub) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *clientServiceStub) ListClients(ctx context.Context, input usecase.ListClientsInput) ([]*domain.Client, error) {
	return s.listFn(ctx, input)
}

func TestClientHandler_Create(t *testing.T) {
	var captured usecase.CreateClientInput
	h := NewClientHandler(&clientServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
			captured = input
			return &domain.Client{ID: "c1", Name: input.Name}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateClientRequest{Name: "Sharma", Phone: "98100"})
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.Name != "Sharma" || captured.Phone != "98100" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.ClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "c1" {
		t.Fatalf("expected client ID c1, got %s", resp.ID)
	}
}

func TestClientHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		expected int
	}{
		{"invalid json", "{bad json", nil, http.StatusBadRequest},
		{"invalid name", `{"name":""}`, domain.ErrInvalidClientName, http.StatusBadRequest},
		{"storage failure", `{"name":"Gupta"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewClientHandler(&clientServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateClientInput) (*domain.Client, error) {
					if tt.err == nil {
						t.Fatal("CreateClient should not be called")
					}
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(tt.body)))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestClientHandler_Get(t *testing.T) {
	h := NewClientHandler(&clientServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Client, error) {
			if id == "ghost" {
				return nil, domain.ErrClientNotFound
			}
			return &domain.Client{ID: id, Name: "Sharma"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/clients/c1", nil), "id", "c1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, setChiURLParam(httptest.NewRequest(http.MethodGet, "/clients/ghost", nil), "id", "ghost"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/clients/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", rec.Code)
	}
}

func TestClientHandler_List(t *testing.T) {
	var captured usecase.ListClientsInput
	h := NewClientHandler(&clientServiceStub{
		listFn: func(ctx context.Context, input usecase.ListClientsInput) ([]*domain.Client, error) {
			captured = input
			return []*domain.Client{{ID: "c1"}, {ID: "c2"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/clients?limit=10&offset=20", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Limit != 10 || captured.Offset != 20 {
		t.Fatalf("unexpected pagination: %+v", captured)
	}

	var resp dto.ListClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Clients) != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
