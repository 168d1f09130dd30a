package domain

import (
	"fmt"
	"time"
)

// NotificationType classifies a user-facing notification.
type NotificationType string

const (
	NotificationExpense     NotificationType = "expense"
	NotificationChore       NotificationType = "chore"
	NotificationEvent       NotificationType = "event"
	NotificationPayment     NotificationType = "payment"
	NotificationNudge       NotificationType = "nudge"
	NotificationLeaderboard NotificationType = "leaderboard"
)

// Notification is an event record for user display. The per-user
// notification store owns read state and clearing.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NotificationPayload carries the fields a notification message is
// rendered from. Unused fields may stay zero; Render reports which
// required field was missing.
type NotificationPayload struct {
	Amount      string
	Description string
	MemberName  string
	Title       string
	Date        string
	Count       int
	Points      int
	Message     string
}

// RenderNotification translates a domain event into a notification
// title and message. It performs no business validation and fails only
// on a malformed payload.
func RenderNotification(t NotificationType, p NotificationPayload) (title, message string, err error) {
	switch t {
	case NotificationExpense:
		if p.Amount == "" || p.Description == "" {
			return "", "", fmt.Errorf("%w: amount and description", ErrMissingField)
		}
		return "New Expense Added",
			fmt.Sprintf("%s for %s split with %d roommates", p.Amount, p.Description, p.Count), nil

	case NotificationChore:
		if p.Title == "" || p.MemberName == "" {
			return "", "", fmt.Errorf("%w: title and member name", ErrMissingField)
		}
		return "New Chore Assigned",
			fmt.Sprintf("%q assigned to %s", p.Title, p.MemberName), nil

	case NotificationEvent:
		if p.Title == "" || p.Date == "" {
			return "", "", fmt.Errorf("%w: title and date", ErrMissingField)
		}
		return "New Event Created",
			fmt.Sprintf("%q on %s with %d participants", p.Title, p.Date, p.Count), nil

	case NotificationPayment:
		if p.Amount == "" || p.MemberName == "" {
			return "", "", fmt.Errorf("%w: amount and member name", ErrMissingField)
		}
		return "Payment Settled",
			fmt.Sprintf("%s settled with %s", p.Amount, p.MemberName), nil

	case NotificationLeaderboard:
		if p.MemberName == "" {
			return "", "", fmt.Errorf("%w: member name", ErrMissingField)
		}
		return "Leaderboard Updated",
			fmt.Sprintf("%s is now leading with %d points!", p.MemberName, p.Points), nil

	case NotificationNudge:
		if p.MemberName == "" || p.Message == "" {
			return "", "", fmt.Errorf("%w: member name and message", ErrMissingField)
		}
		return fmt.Sprintf("Nudge from %s", p.MemberName), p.Message, nil

	default:
		return "", "", fmt.Errorf("%w: unknown notification type %q", ErrMissingField, t)
	}
}
