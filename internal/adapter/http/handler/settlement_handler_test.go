package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

type settlementServiceStub struct {
	settleFn  func(ctx context.Context, input usecase.SettleInput) (*domain.Settlement, error)
	convertFn func(ctx context.Context, input usecase.ConvertInKindInput) (*domain.Settlement, error)
	getFn     func(ctx context.Context, id string) (*domain.Settlement, error)
	listFn    func(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error)
}

func (s *settlementServiceStub) Settle(ctx context.Context, input usecase.SettleInput) (*domain.Settlement, error) {
	return s.settleFn(ctx, input)
}

func (s *settlementServiceStub) ConvertInKind(ctx context.Context, input usecase.ConvertInKindInput) (*domain.Settlement, error) {
	return s.convertFn(ctx, input)
}

func (s *settlementServiceStub) GetSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	return s.getFn(ctx, id)
}

func (s *settlementServiceStub) ListSettlements(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error) {
	return s.listFn(ctx, houseID, limit, offset)
}

func TestSettlementHandler_Settle_Success(t *testing.T) {
	var captured usecase.SettleInput
	handler := NewSettlementHandler(&settlementServiceStub{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.Settlement, error) {
			captured = input
			return &domain.Settlement{
				ID:      "set-1",
				HouseID: input.HouseID,
				Amount:  input.Amount,
				Kind:    domain.SettlementCash,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.SettleRequest{
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("15.17"),
	})

	req := httptest.NewRequest(http.MethodPost, "/houses/house-1/settlements", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.Settle(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.HouseID != "house-1" || captured.PayerID != "bob" || captured.PayeeID != "alice" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
	if !captured.Amount.Equal(decimal.RequireFromString("15.17")) {
		t.Fatalf("expected amount 15.17, got %s", captured.Amount)
	}
}

func TestSettlementHandler_Settle_Overpayment(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.Settlement, error) {
			return nil, domain.ErrOverpayment
		},
	})

	body, _ := json.Marshal(dto.SettleRequest{
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("100.00"),
	})

	req := httptest.NewRequest(http.MethodPost, "/houses/house-1/settlements", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.Settle(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettlementHandler_ConvertInKind_Success(t *testing.T) {
	var captured usecase.ConvertInKindInput
	handler := NewSettlementHandler(&settlementServiceStub{
		convertFn: func(ctx context.Context, input usecase.ConvertInKindInput) (*domain.Settlement, error) {
			captured = input
			return &domain.Settlement{
				ID:       "set-2",
				Kind:     domain.SettlementInKind,
				Good:     input.Good,
				Quantity: input.Quantity,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.ConvertInKindRequest{
		PayerID:  "bob",
		PayeeID:  "alice",
		Good:     "beer",
		Quantity: 2,
	})

	req := httptest.NewRequest(http.MethodPost, "/houses/house-1/settlements/convert", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.ConvertInKind(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Good != domain.GoodBeer || captured.Quantity != 2 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestSettlementHandler_ConvertInKind_UnknownGood(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		convertFn: func(ctx context.Context, input usecase.ConvertInKindInput) (*domain.Settlement, error) {
			t.Fatal("ConvertInKind should not be called for invalid payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.ConvertInKindRequest{
		PayerID:  "bob",
		PayeeID:  "alice",
		Good:     "wine",
		Quantity: 2,
	})

	req := httptest.NewRequest(http.MethodPost, "/houses/house-1/settlements/convert", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.ConvertInKind(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettlementHandler_List_PassesPagination(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		listFn: func(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error) {
			if houseID != "house-1" || limit != 5 || offset != 10 {
				t.Fatalf("unexpected args: %s %d %d", houseID, limit, offset)
			}
			return []*domain.Settlement{{ID: "set-1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/houses/house-1/settlements?limit=5&offset=10", nil)
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSettlementHandler_Get_NotFound(t *testing.T) {
	handler := NewSettlementHandler(&settlementServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Settlement, error) {
			return nil, domain.ErrSettlementNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/houses/house-1/settlements/set-404", nil)
	req = setChiURLParams(req, map[string]string{"id": "house-1", "settlementID": "set-404"})
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
