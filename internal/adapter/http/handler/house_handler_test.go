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

type houseServiceStub struct {
	createFn         func(ctx context.Context, input usecase.CreateHouseInput) (*domain.House, error)
	getFn            func(ctx context.Context, id string) (*domain.House, error)
	updateSettingsFn func(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.House, error)
	addMemberFn      func(ctx context.Context, houseID, memberID, name string) (*domain.Member, error)
	listMembersFn    func(ctx context.Context, houseID string) ([]*domain.Member, error)
	createRuleFn     func(ctx context.Context, input usecase.CreateRuleInput) (*domain.HouseRule, error)
	updateRuleFn     func(ctx context.Context, houseID, actorID string, rule *domain.HouseRule) error
	deleteRuleFn     func(ctx context.Context, houseID, actorID, ruleID string) error
	listRulesFn      func(ctx context.Context, houseID string) ([]*domain.HouseRule, error)
}

func (s *houseServiceStub) CreateHouse(ctx context.Context, input usecase.CreateHouseInput) (*domain.House, error) {
	return s.createFn(ctx, input)
}

func (s *houseServiceStub) GetHouse(ctx context.Context, id string) (*domain.House, error) {
	return s.getFn(ctx, id)
}

func (s *houseServiceStub) UpdateSettings(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.House, error) {
	return s.updateSettingsFn(ctx, input)
}

func (s *houseServiceStub) AddMember(ctx context.Context, houseID, memberID, name string) (*domain.Member, error) {
	return s.addMemberFn(ctx, houseID, memberID, name)
}

func (s *houseServiceStub) ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error) {
	return s.listMembersFn(ctx, houseID)
}

func (s *houseServiceStub) CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.HouseRule, error) {
	return s.createRuleFn(ctx, input)
}

func (s *houseServiceStub) UpdateRule(ctx context.Context, houseID, actorID string, rule *domain.HouseRule) error {
	return s.updateRuleFn(ctx, houseID, actorID, rule)
}

func (s *houseServiceStub) DeleteRule(ctx context.Context, houseID, actorID, ruleID string) error {
	return s.deleteRuleFn(ctx, houseID, actorID, ruleID)
}

func (s *houseServiceStub) ListRules(ctx context.Context, houseID string) ([]*domain.HouseRule, error) {
	return s.listRulesFn(ctx, houseID)
}

func TestHouseHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateHouseInput
	handler := NewHouseHandler(&houseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateHouseInput) (*domain.House, error) {
			captured = input
			return &domain.House{
				ID:             "house-1",
				Name:           input.Name,
				Currency:       "CAD",
				CommissionerID: input.CommissionerID,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateHouseRequest{
		Name:             "The Burrow",
		CommissionerID:   "alice",
		CommissionerName: "Alice",
		BeerValue:        decimal.RequireFromString("6.00"),
	})

	req := httptest.NewRequest(http.MethodPost, "/houses", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Name != "The Burrow" || captured.CommissionerID != "alice" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.HouseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "house-1" || resp.Currency != "CAD" {
		t.Fatalf("unexpected house: %+v", resp)
	}
}

func TestHouseHandler_Create_MissingName(t *testing.T) {
	handler := NewHouseHandler(&houseServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateHouseInput) (*domain.House, error) {
			t.Fatal("CreateHouse should not be called for invalid payload")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.CreateHouseRequest{
		CommissionerID:   "alice",
		CommissionerName: "Alice",
	})

	req := httptest.NewRequest(http.MethodPost, "/houses", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHouseHandler_UpdateSettings_NotCommissioner(t *testing.T) {
	handler := NewHouseHandler(&houseServiceStub{
		updateSettingsFn: func(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.House, error) {
			return nil, domain.ErrNotCommissioner
		},
	})

	body, _ := json.Marshal(dto.UpdateSettingsRequest{
		ActorID:   "bob",
		BeerValue: decimal.RequireFromString("7.00"),
	})

	req := httptest.NewRequest(http.MethodPut, "/houses/house-1/settings", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.UpdateSettings(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHouseHandler_AddMember(t *testing.T) {
	handler := NewHouseHandler(&houseServiceStub{
		addMemberFn: func(ctx context.Context, houseID, memberID, name string) (*domain.Member, error) {
			if houseID != "house-1" || memberID != "dave" {
				t.Fatalf("unexpected args: %s %s", houseID, memberID)
			}
			return &domain.Member{ID: memberID, HouseID: houseID, Name: name, Role: domain.RoleMember}, nil
		},
	})

	body, _ := json.Marshal(dto.AddMemberRequest{MemberID: "dave", Name: "Dave"})

	req := httptest.NewRequest(http.MethodPost, "/houses/house-1/members", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "house-1")
	rec := httptest.NewRecorder()

	handler.AddMember(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHouseHandler_Get_NotFound(t *testing.T) {
	handler := NewHouseHandler(&houseServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.House, error) {
			return nil, domain.ErrHouseNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/houses/house-404", nil)
	req = setChiURLParam(req, "id", "house-404")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHouseHandler_DeleteRule(t *testing.T) {
	var deleted string
	handler := NewHouseHandler(&houseServiceStub{
		deleteRuleFn: func(ctx context.Context, houseID, actorID, ruleID string) error {
			if actorID != "alice" {
				t.Fatalf("expected actor alice, got %s", actorID)
			}
			deleted = ruleID
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/houses/house-1/rules/rule-1?actor_id=alice", nil)
	req = setChiURLParams(req, map[string]string{"id": "house-1", "ruleID": "rule-1"})
	rec := httptest.NewRecorder()

	handler.DeleteRule(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "rule-1" {
		t.Fatalf("expected rule-1 deleted, got %s", deleted)
	}
}
