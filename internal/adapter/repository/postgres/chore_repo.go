package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/roomledger/internal/domain"
)

// ChoreRepository implements usecase.ChoreRepository.
type ChoreRepository struct {
	pool *pgxpool.Pool
}

// NewChoreRepository creates a new ChoreRepository.
func NewChoreRepository(pool *pgxpool.Pool) *ChoreRepository {
	return &ChoreRepository{pool: pool}
}

const choreColumns = `id, house_id, title, description, assigned_to, created_by, due_date, completed, completed_at, created_at`

// Create stores a chore.
func (r *ChoreRepository) Create(ctx context.Context, chore *domain.Chore) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO chores (`+choreColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		chore.ID, chore.HouseID, chore.Title, chore.Description,
		chore.AssignedTo, chore.CreatedBy, timeToPgTimestamptz(chore.DueDate),
		chore.Completed, timePtrToPgTimestamptz(chore.CompletedAt), timeToPgTimestamptz(chore.CreatedAt),
	)

	return err
}

// GetByID retrieves a chore by ID.
func (r *ChoreRepository) GetByID(ctx context.Context, id string) (*domain.Chore, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+choreColumns+` FROM chores WHERE id = $1`, id)

	chore, err := scanChore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChoreNotFound
		}

		return nil, err
	}

	return chore, nil
}

// ListByHouse lists a house's chores, due soonest first.
func (r *ChoreRepository) ListByHouse(ctx context.Context, houseID string, includeCompleted bool) ([]*domain.Chore, error) {
	query := `SELECT ` + choreColumns + ` FROM chores WHERE house_id = $1`
	if !includeCompleted {
		query += ` AND NOT completed`
	}
	query += ` ORDER BY due_date, id`

	rows, err := r.pool.Query(ctx, query, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chores []*domain.Chore
	for rows.Next() {
		chore, err := scanChore(rows)
		if err != nil {
			return nil, err
		}
		chores = append(chores, chore)
	}

	return chores, rows.Err()
}

// MarkCompleted marks a chore done.
func (r *ChoreRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE chores SET completed = TRUE, completed_at = $2 WHERE id = $1`,
		id, timeToPgTimestamptz(completedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChoreNotFound
	}

	return nil
}

func scanChore(row pgx.Row) (*domain.Chore, error) {
	var (
		c                             domain.Chore
		dueDate, created, completedAt pgtype.Timestamptz
	)

	err := row.Scan(&c.ID, &c.HouseID, &c.Title, &c.Description, &c.AssignedTo,
		&c.CreatedBy, &dueDate, &c.Completed, &completedAt, &created)
	if err != nil {
		return nil, err
	}

	c.DueDate = dueDate.Time
	c.CreatedAt = created.Time
	if completedAt.Valid {
		t := completedAt.Time
		c.CompletedAt = &t
	}

	return &c, nil
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
