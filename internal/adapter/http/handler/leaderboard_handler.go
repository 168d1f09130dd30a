package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
)

// LeaderboardService defines the behavior needed by LeaderboardHandler.
type LeaderboardService interface {
	Standings(ctx context.Context, houseID string) ([]*domain.LeaderboardEntry, error)
	Nudge(ctx context.Context, houseID, fromID, toID, message string) error
}

// LeaderboardHandler handles leaderboard-related HTTP requests.
type LeaderboardHandler struct {
	leaderboardUC LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardUC LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardUC: leaderboardUC}
}

// Standings returns the house leaderboard, highest points first.
func (h *LeaderboardHandler) Standings(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardUC.Standings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get standings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StandingsFromDomain(entries))
}

// Nudge sends a nudge from one member to another.
func (h *LeaderboardHandler) Nudge(w http.ResponseWriter, r *http.Request) {
	var req dto.NudgeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.leaderboardUC.Nudge(r.Context(), chi.URLParam(r, "id"), req.FromID, req.ToID, req.Message); err != nil {
		writeError(w, mapDomainError(err), "failed to nudge", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
