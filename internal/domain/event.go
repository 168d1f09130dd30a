package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RSVPStatus is an attendee's response to an event invite.
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// Event is a house event. A non-zero cost is split among accepted
// attendees through the regular expense flow once the event is billed.
type Event struct {
	ID          string
	HouseID     string
	Title       string
	Description string
	Date        time.Time
	CreatedBy   string
	Cost        decimal.Decimal
	Billed      bool
	CreatedAt   time.Time
}

// EventAttendee tracks one member's RSVP for an event.
type EventAttendee struct {
	ID      string
	EventID string
	UserID  string
	Status  RSVPStatus
}
