package domain

import (
	"errors"
	"testing"
)

func TestRenderNotification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ntype       NotificationType
		payload     NotificationPayload
		wantTitle   string
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "expense",
			ntype:       NotificationExpense,
			payload:     NotificationPayload{Amount: "$45.50", Description: "groceries", Count: 3},
			wantTitle:   "New Expense Added",
			wantMessage: "$45.50 for groceries split with 3 roommates",
		},
		{
			name:        "payment",
			ntype:       NotificationPayment,
			payload:     NotificationPayload{Amount: "$14.00", MemberName: "Rory"},
			wantTitle:   "Payment Settled",
			wantMessage: "$14.00 settled with Rory",
		},
		{
			name:        "chore",
			ntype:       NotificationChore,
			payload:     NotificationPayload{Title: "Dishes", MemberName: "Sam"},
			wantTitle:   "New Chore Assigned",
			wantMessage: `"Dishes" assigned to Sam`,
		},
		{
			name:        "event",
			ntype:       NotificationEvent,
			payload:     NotificationPayload{Title: "Taco night", Date: "2026-09-01", Count: 4},
			wantTitle:   "New Event Created",
			wantMessage: `"Taco night" on 2026-09-01 with 4 participants`,
		},
		{
			name:        "leaderboard",
			ntype:       NotificationLeaderboard,
			payload:     NotificationPayload{MemberName: "Alex", Points: 45},
			wantTitle:   "Leaderboard Updated",
			wantMessage: "Alex is now leading with 45 points!",
		},
		{
			name:        "nudge",
			ntype:       NotificationNudge,
			payload:     NotificationPayload{MemberName: "Jordan", Message: "dishes are piling up"},
			wantTitle:   "Nudge from Jordan",
			wantMessage: "dishes are piling up",
		},
		{
			name:    "expense missing amount",
			ntype:   NotificationExpense,
			payload: NotificationPayload{Description: "groceries"},
			wantErr: true,
		},
		{
			name:    "payment missing member",
			ntype:   NotificationPayment,
			payload: NotificationPayload{Amount: "$14.00"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			ntype:   NotificationType("carrier-pigeon"),
			payload: NotificationPayload{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, message, err := RenderNotification(tt.ntype, tt.payload)

			if tt.wantErr {
				if !errors.Is(err, ErrMissingField) {
					t.Fatalf("expected ErrMissingField, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if message != tt.wantMessage {
				t.Errorf("message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}
