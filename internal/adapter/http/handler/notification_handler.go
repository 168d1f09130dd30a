package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/roomledger/internal/adapter/http/dto"
	"github.com/iho/roomledger/internal/domain"
)

// NotificationService defines the behavior needed by NotificationHandler.
type NotificationService interface {
	List(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	ClearRead(ctx context.Context, userID string) error
	ClearAll(ctx context.Context, userID string) error
}

// NotificationHandler handles notification-related HTTP requests.
type NotificationHandler struct {
	notificationUC NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationUC NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

// List returns a user's notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	notifications, err := h.notificationUC.List(r.Context(), chi.URLParam(r, "userID"), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list notifications", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromDomain(notifications))
}

// UnreadCount returns how many unread notifications a user has.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationUC.UnreadCount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to count notifications", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead flips a notification's read flag.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	err := h.notificationUC.MarkRead(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "notificationID"))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to mark notification read", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearRead removes a user's read notifications.
func (h *NotificationHandler) ClearRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationUC.ClearRead(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, mapDomainError(err), "failed to clear notifications", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearAll removes all of a user's notifications.
func (h *NotificationHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationUC.ClearAll(r.Context(), chi.URLParam(r, "userID")); err != nil {
		writeError(w, mapDomainError(err), "failed to clear notifications", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
