package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// HouseRepository implements usecase.HouseRepository.
type HouseRepository struct {
	pool *pgxpool.Pool
}

// NewHouseRepository creates a new HouseRepository.
func NewHouseRepository(pool *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{pool: pool}
}

const houseColumns = `id, name, currency, commissioner_id, beer_value, pizza_value, coffee_value, created_at, updated_at`

// Create creates a house together with its commissioner member.
func (r *HouseRepository) Create(ctx context.Context, house *domain.House, commissioner *domain.Member) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO houses (`+houseColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		house.ID, house.Name, house.Currency, house.CommissionerID,
		decimalToNumeric(house.BeerValue), decimalToNumeric(house.PizzaValue), decimalToNumeric(house.CoffeeValue),
		timeToPgTimestamptz(house.CreatedAt), timeToPgTimestamptz(house.UpdatedAt),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO members (id, house_id, name, role, joined_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		commissioner.ID, commissioner.HouseID, commissioner.Name, string(commissioner.Role),
		timeToPgTimestamptz(commissioner.JoinedAt),
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a house by ID.
func (r *HouseRepository) GetByID(ctx context.Context, id string) (*domain.House, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+houseColumns+` FROM houses WHERE id = $1`, id)

	return scanHouse(row)
}

// GetByIDForUpdate retrieves a house by ID with a FOR UPDATE lock.
func (r *HouseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.House, error) {
	pgxTx := tx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `SELECT `+houseColumns+` FROM houses WHERE id = $1 FOR UPDATE`, id)

	return scanHouse(row)
}

// UpdateSettings updates a house's settings.
func (r *HouseRepository) UpdateSettings(ctx context.Context, house *domain.House) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE houses
		 SET currency = $2, beer_value = $3, pizza_value = $4, coffee_value = $5, updated_at = $6
		 WHERE id = $1`,
		house.ID, house.Currency,
		decimalToNumeric(house.BeerValue), decimalToNumeric(house.PizzaValue), decimalToNumeric(house.CoffeeValue),
		timeToPgTimestamptz(house.UpdatedAt),
	)

	return err
}

// AddMember adds a member to a house.
func (r *HouseRepository) AddMember(ctx context.Context, member *domain.Member) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO members (id, house_id, name, role, joined_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		member.ID, member.HouseID, member.Name, string(member.Role),
		timeToPgTimestamptz(member.JoinedAt),
	)

	return err
}

// GetMember retrieves one member of a house.
func (r *HouseRepository) GetMember(ctx context.Context, houseID, memberID string) (*domain.Member, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, house_id, name, role, joined_at
		 FROM members WHERE house_id = $1 AND id = $2`,
		houseID, memberID,
	)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}

		return nil, err
	}

	return member, nil
}

// ListMembers lists the members of a house.
func (r *HouseRepository) ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, house_id, name, role, joined_at
		 FROM members WHERE house_id = $1 ORDER BY joined_at, id`,
		houseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*domain.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func scanHouse(row pgx.Row) (*domain.House, error) {
	var (
		h                    domain.House
		beer, pizza, coffee  pgtype.Numeric
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(&h.ID, &h.Name, &h.Currency, &h.CommissionerID, &beer, &pizza, &coffee, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHouseNotFound
		}

		return nil, err
	}

	h.BeerValue = numericToDecimal(beer)
	h.PizzaValue = numericToDecimal(pizza)
	h.CoffeeValue = numericToDecimal(coffee)
	h.CreatedAt = createdAt.Time
	h.UpdatedAt = updatedAt.Time

	return &h, nil
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var (
		m        domain.Member
		role     string
		joinedAt pgtype.Timestamptz
	)

	if err := row.Scan(&m.ID, &m.HouseID, &m.Name, &role, &joinedAt); err != nil {
		return nil, err
	}

	m.Role = domain.Role(role)
	m.JoinedAt = joinedAt.Time

	return &m, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
