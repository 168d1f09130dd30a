package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// HouseService defines the behavior needed by HouseHandler.
type HouseService interface {
	CreateHouse(ctx context.Context, input usecase.CreateHouseInput) (*domain.House, error)
	GetHouse(ctx context.Context, id string) (*domain.House, error)
	UpdateSettings(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.House, error)
	AddMember(ctx context.Context, houseID, memberID, name string) (*domain.Member, error)
	ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error)
	CreateRule(ctx context.Context, input usecase.CreateRuleInput) (*domain.HouseRule, error)
	UpdateRule(ctx context.Context, houseID, actorID string, rule *domain.HouseRule) error
	DeleteRule(ctx context.Context, houseID, actorID, ruleID string) error
	ListRules(ctx context.Context, houseID string) ([]*domain.HouseRule, error)
}

// HouseHandler handles house-related HTTP requests.
type HouseHandler struct {
	houseUC HouseService
}

// NewHouseHandler creates a new HouseHandler.
func NewHouseHandler(houseUC HouseService) *HouseHandler {
	return &HouseHandler{houseUC: houseUC}
}

// Create creates a new house.
func (h *HouseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHouseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	house, err := h.houseUC.CreateHouse(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create house", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.HouseFromDomain(house))
}

// Get retrieves a house by ID.
func (h *HouseHandler) Get(w http.ResponseWriter, r *http.Request) {
	house, err := h.houseUC.GetHouse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get house", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HouseFromDomain(house))
}

// UpdateSettings changes house settings.
func (h *HouseHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	house, err := h.houseUC.UpdateSettings(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update settings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HouseFromDomain(house))
}

// AddMember adds a member to a house.
func (h *HouseHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req dto.AddMemberRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.houseUC.AddMember(r.Context(), chi.URLParam(r, "id"), req.MemberID, req.Name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add member", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MemberFromDomain(member))
}

// ListMembers lists the house roster.
func (h *HouseHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.houseUC.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MembersFromDomain(members))
}

// CreateRule adds a house rule.
func (h *HouseHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRuleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rule, err := h.houseUC.CreateRule(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create rule", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RuleFromDomain(rule))
}

// UpdateRule changes a house rule.
func (h *HouseHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRuleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	houseID := chi.URLParam(r, "id")
	rule := &domain.HouseRule{
		ID:          chi.URLParam(r, "ruleID"),
		HouseID:     houseID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   req.ActorID,
	}

	if err := h.houseUC.UpdateRule(r.Context(), houseID, req.ActorID, rule); err != nil {
		writeError(w, mapDomainError(err), "failed to update rule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RuleFromDomain(rule))
}

// DeleteRule removes a house rule.
func (h *HouseHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	actorID := r.URL.Query().Get("actor_id")

	if err := h.houseUC.DeleteRule(r.Context(), chi.URLParam(r, "id"), actorID, chi.URLParam(r, "ruleID")); err != nil {
		writeError(w, mapDomainError(err), "failed to delete rule", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListRules lists a house's rules.
func (h *HouseHandler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.houseUC.ListRules(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list rules", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RulesFromDomain(rules))
}
