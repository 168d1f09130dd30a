package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/roomledger/internal/domain"
)

// EventRepository implements usecase.EventRepository.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, house_id, title, description, date, created_by, cost, billed, created_at`

// Create stores an event and its invitee RSVPs together.
func (r *EventRepository) Create(ctx context.Context, event *domain.Event, attendees []*domain.EventAttendee) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		event.ID, event.HouseID, event.Title, event.Description,
		timeToPgTimestamptz(event.Date), event.CreatedBy,
		decimalToNumeric(event.Cost), event.Billed, timeToPgTimestamptz(event.CreatedAt),
	)
	if err != nil {
		return err
	}

	for _, a := range attendees {
		_, err = tx.Exec(ctx,
			`INSERT INTO event_attendees (id, event_id, user_id, status)
			 VALUES ($1, $2, $3, $4)`,
			a.ID, a.EventID, a.UserID, string(a.Status),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}

		return nil, err
	}

	return event, nil
}

// ListByHouse lists a house's events, soonest first.
func (r *EventRepository) ListByHouse(ctx context.Context, houseID string) ([]*domain.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE house_id = $1 ORDER BY date, id`,
		houseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// ListAttendees lists an event's attendees with their RSVP status.
func (r *EventRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, event_id, user_id, status FROM event_attendees WHERE event_id = $1 ORDER BY id`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attendees []*domain.EventAttendee
	for rows.Next() {
		var (
			a      domain.EventAttendee
			status string
		)
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &status); err != nil {
			return nil, err
		}
		a.Status = domain.RSVPStatus(status)
		attendees = append(attendees, &a)
	}

	return attendees, rows.Err()
}

// SetRSVP records a member's RSVP response.
func (r *EventRepository) SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE event_attendees SET status = $3 WHERE event_id = $1 AND user_id = $2`,
		eventID, userID, string(status),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}

	return nil
}

// ClaimBilling atomically flips an unbilled event to billed. It
// returns false when the event is already billed, so two concurrent
// billing calls cannot both accept the cost into the ledger.
func (r *EventRepository) ClaimBilling(ctx context.Context, eventID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET billed = TRUE WHERE id = $1 AND NOT billed`,
		eventID,
	)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

// ReleaseBilling reverts a billing claim whose expense batch was not
// accepted.
func (r *EventRepository) ReleaseBilling(ctx context.Context, eventID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE events SET billed = FALSE WHERE id = $1`,
		eventID,
	)
	return err
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		e               domain.Event
		cost            pgtype.Numeric
		date, createdAt pgtype.Timestamptz
	)

	err := row.Scan(&e.ID, &e.HouseID, &e.Title, &e.Description, &date,
		&e.CreatedBy, &cost, &e.Billed, &createdAt)
	if err != nil {
		return nil, err
	}

	e.Date = date.Time
	e.Cost = numericToDecimal(cost)
	e.CreatedAt = createdAt.Time

	return &e, nil
}
