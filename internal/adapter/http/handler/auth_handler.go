package handler

import (
	"context"
	"net/http"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/infrastructure/auth"
)

// MemberGetter looks up a house member for token issuance.
type MemberGetter interface {
	GetMember(ctx context.Context, houseID, memberID string) (*domain.Member, error)
}

// AuthHandler issues API tokens for house members.
type AuthHandler struct {
	members    MemberGetter
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(members MemberGetter, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{members: members, jwtManager: jwtManager}
}

// IssueToken issues a JWT for a house member.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.members.GetMember(r.Context(), req.HouseID, req.UserID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to issue token", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(member)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
