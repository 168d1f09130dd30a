package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// ChoreService defines the behavior needed by ChoreHandler.
type ChoreService interface {
	CreateChore(ctx context.Context, input usecase.CreateChoreInput) (*domain.Chore, error)
	CompleteChore(ctx context.Context, choreID string) (*domain.Chore, error)
	ListChores(ctx context.Context, houseID string, includeCompleted bool) ([]*domain.Chore, error)
	SweepOverdue(ctx context.Context, houseID string) (int, error)
}

// ChoreHandler handles chore-related HTTP requests.
type ChoreHandler struct {
	choreUC ChoreService
}

// NewChoreHandler creates a new ChoreHandler.
func NewChoreHandler(choreUC ChoreService) *ChoreHandler {
	return &ChoreHandler{choreUC: choreUC}
}

// Create creates a new chore.
func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateChoreRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	chore, err := h.choreUC.CreateChore(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create chore", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChoreFromDomain(chore))
}

// Complete marks a chore done.
func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	chore, err := h.choreUC.CompleteChore(r.Context(), chi.URLParam(r, "choreID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to complete chore", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChoreFromDomain(chore))
}

// List lists a house's chores.
func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	includeCompleted := parseBoolQuery(r, "include_completed")

	chores, err := h.choreUC.ListChores(r.Context(), chi.URLParam(r, "id"), includeCompleted)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list chores", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChoresFromDomain(chores))
}

// SweepOverdue penalizes every open chore past its due date.
func (h *ChoreHandler) SweepOverdue(w http.ResponseWriter, r *http.Request) {
	penalized, err := h.choreUC.SweepOverdue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to sweep overdue chores", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"penalized": penalized})
}
