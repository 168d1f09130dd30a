package domain

import "time"

// Point awards and penalties for house activity.
const (
	PointsChoreDone    = 10
	PointsExpenseAdded = 5
	PointsEventHosted  = 8
	PointsChoreOverdue = -5
	PointsNudged       = -10
)

// PointsReason records why points were granted or taken.
type PointsReason string

const (
	ReasonChoreDone    PointsReason = "chore_done"
	ReasonExpenseAdded PointsReason = "expense_added"
	ReasonEventHosted  PointsReason = "event_hosted"
	ReasonChoreOverdue PointsReason = "chore_overdue"
	ReasonNudged       PointsReason = "nudged"
)

// PointsFor returns the point delta for a reason.
func PointsFor(reason PointsReason) int {
	switch reason {
	case ReasonChoreDone:
		return PointsChoreDone
	case ReasonExpenseAdded:
		return PointsExpenseAdded
	case ReasonEventHosted:
		return PointsEventHosted
	case ReasonChoreOverdue:
		return PointsChoreOverdue
	case ReasonNudged:
		return PointsNudged
	default:
		return 0
	}
}

// LeaderboardEntry is a member's standing within a scoring cycle.
type LeaderboardEntry struct {
	ID         string
	HouseID    string
	UserID     string
	Points     int
	CycleStart time.Time
	CycleEnd   time.Time
	CreatedAt  time.Time
}
