package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AcceptEntries(ctx context.Context, input usecase.AcceptEntriesInput) (*usecase.AcceptedBatch, error)
	ListByBatch(ctx context.Context, houseID, batchID string) ([]*domain.Expense, error)
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// CreateBatch accepts a batch of transactions into the ledger.
func (h *ExpenseHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.AcceptEntriesRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	batch, err := h.expenseUC.AcceptEntries(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to accept batch", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BatchFromUseCase(batch))
}

// ListByBatch lists the expenses created together in one batch.
func (h *ExpenseHandler) ListByBatch(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenseUC.ListByBatch(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "batchID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list batch", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpensesFromDomain(expenses))
}
