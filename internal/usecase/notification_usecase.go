package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iho/roomledger/internal/domain"
)

// NotificationUseCase translates domain events into notification
// records and fronts the per-user notification store.
type NotificationUseCase struct {
	repo NotificationRepository
}

// NewNotificationUseCase creates a new NotificationUseCase.
func NewNotificationUseCase(repo NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// Emit renders and stores a notification for a user. It performs no
// business validation and fails only on a malformed payload.
func (uc *NotificationUseCase) Emit(ctx context.Context, userID string, t domain.NotificationType, p domain.NotificationPayload) (*domain.Notification, error) {
	title, message, err := domain.RenderNotification(t, p)
	if err != nil {
		return nil, err
	}

	n := &domain.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// List returns a user's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	return uc.repo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount returns how many unread notifications a user has.
func (uc *NotificationUseCase) UnreadCount(ctx context.Context, userID string) (int, error) {
	return uc.repo.UnreadCount(ctx, userID)
}

// MarkRead flips a notification's read flag.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, notificationID string) error {
	return uc.repo.MarkRead(ctx, userID, notificationID)
}

// ClearRead removes a user's read notifications.
func (uc *NotificationUseCase) ClearRead(ctx context.Context, userID string) error {
	return uc.repo.ClearRead(ctx, userID)
}

// ClearAll removes all of a user's notifications.
func (uc *NotificationUseCase) ClearAll(ctx context.Context, userID string) error {
	return uc.repo.ClearAll(ctx, userID)
}
