package domain

import "time"

// HouseRule is a written rule of the house. Only the commissioner may
// create or change rules.
type HouseRule struct {
	ID          string
	HouseID     string
	Title       string
	Description string
	CreatedBy   string
	UpdatedAt   time.Time
}
