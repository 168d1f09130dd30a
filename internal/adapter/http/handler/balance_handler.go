package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	HouseBalances(ctx context.Context, houseID string) (map[string]decimal.Decimal, error)
	Pairwise(ctx context.Context, houseID, a, b string) (decimal.Decimal, error)
	MaxAffordable(ctx context.Context, houseID, payerID, payeeID string, good domain.GoodType) (int64, error)
	CheckConsistency(ctx context.Context, houseID string) (*usecase.ConsistencyReport, error)
}

// BalanceHandler handles balance-related HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// House returns every member's net balance.
func (h *BalanceHandler) House(w http.ResponseWriter, r *http.Request) {
	houseID := chi.URLParam(r, "id")

	balances, err := h.balanceUC.HouseBalances(r.Context(), houseID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute balances", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesResponse{
		HouseID:  houseID,
		Balances: balances,
	})
}

// Pairwise returns the net balance between two members.
func (h *BalanceHandler) Pairwise(w http.ResponseWriter, r *http.Request) {
	a := r.URL.Query().Get("a")
	b := r.URL.Query().Get("b")
	if a == "" || b == "" {
		writeError(w, http.StatusBadRequest, "missing member ids", "query parameters a and b are required")
		return
	}

	amount, err := h.balanceUC.Pairwise(r.Context(), chi.URLParam(r, "id"), a, b)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute pairwise balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PairwiseResponse{
		MemberA: a,
		MemberB: b,
		Amount:  amount,
	})
}

// MaxAffordable returns how many units of a good an owed balance can buy.
func (h *BalanceHandler) MaxAffordable(w http.ResponseWriter, r *http.Request) {
	payerID := r.URL.Query().Get("payer_id")
	payeeID := r.URL.Query().Get("payee_id")
	good := domain.GoodType(r.URL.Query().Get("good"))
	if payerID == "" || payeeID == "" || good == "" {
		writeError(w, http.StatusBadRequest, "missing query parameters", "payer_id, payee_id and good are required")
		return
	}

	quantity, err := h.balanceUC.MaxAffordable(r.Context(), chi.URLParam(r, "id"), payerID, payeeID, good)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute affordability", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MaxAffordableResponse{
		Good:     good,
		Quantity: quantity,
	})
}

// Consistency runs the ledger zero-sum check.
func (h *BalanceHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.balanceUC.CheckConsistency(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
