package domain

import "time"

// Chore is a recurring or one-off household task assigned to a member.
type Chore struct {
	ID          string
	HouseID     string
	Title       string
	Description string
	AssignedTo  string
	CreatedBy   string
	DueDate     time.Time
	Completed   bool
	CompletedAt *time.Time
	CreatedAt   time.Time
}

// Overdue reports whether the chore is past due and not completed.
func (c *Chore) Overdue(now time.Time) bool {
	return !c.Completed && now.After(c.DueDate)
}
