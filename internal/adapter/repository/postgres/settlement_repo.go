package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// SettlementRepository implements usecase.SettlementRepository.
type SettlementRepository struct {
	pool *pgxpool.Pool
}

// NewSettlementRepository creates a new SettlementRepository.
func NewSettlementRepository(pool *pgxpool.Pool) *SettlementRepository {
	return &SettlementRepository{pool: pool}
}

const settlementColumns = `id, house_id, payer_id, payee_id, amount, kind, good, quantity, unit_value, proof_url, created_at`

// Create records a settlement inside the applying transaction.
func (r *SettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx,
		`INSERT INTO settlements (`+settlementColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		settlement.ID, settlement.HouseID, settlement.PayerID, settlement.PayeeID,
		decimalToNumeric(settlement.Amount), string(settlement.Kind), string(settlement.Good),
		settlement.Quantity, decimalToNumeric(settlement.UnitValue), settlement.ProofURL,
		timeToPgTimestamptz(settlement.CreatedAt),
	)

	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+settlementColumns+` FROM settlements WHERE id = $1`, id)

	settlement, err := scanSettlement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSettlementNotFound
		}

		return nil, err
	}

	return settlement, nil
}

// ListByHouse lists a house's settlements, newest first.
func (r *SettlementRepository) ListByHouse(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+settlementColumns+` FROM settlements
		 WHERE house_id = $1 ORDER BY created_at DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		houseID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settlements []*domain.Settlement
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var (
		s                 domain.Settlement
		kind, good        string
		amount, unitValue pgtype.Numeric
		createdAt         pgtype.Timestamptz
	)

	err := row.Scan(&s.ID, &s.HouseID, &s.PayerID, &s.PayeeID, &amount,
		&kind, &good, &s.Quantity, &unitValue, &s.ProofURL, &createdAt)
	if err != nil {
		return nil, err
	}

	s.Amount = numericToDecimal(amount)
	s.Kind = domain.SettlementKind(kind)
	s.Good = domain.GoodType(good)
	s.UnitValue = numericToDecimal(unitValue)
	s.CreatedAt = createdAt.Time

	return &s, nil
}
