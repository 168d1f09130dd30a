package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// ExpenseRepository implements usecase.ExpenseRepository.
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository.
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, house_id, batch_id, payer_id, amount, description, category, date, confidence, receipt_url, created_at`

// CreateBatch inserts a batch of expenses and their splits in one
// transaction round trip.
func (r *ExpenseRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, expenses []*domain.Expense, splits []*domain.Split) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, e := range expenses {
		var confidence pgtype.Numeric
		if e.Confidence != nil {
			confidence = decimalToNumeric(*e.Confidence)
		}

		batch.Queue(
			`INSERT INTO expenses (`+expenseColumns+`)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			e.ID, e.HouseID, e.BatchID, e.PayerID, decimalToNumeric(e.Amount),
			e.Description, string(e.Category), timeToPgTimestamptz(e.Date),
			confidence, e.ReceiptURL, timeToPgTimestamptz(e.CreatedAt),
		)
	}
	for _, s := range splits {
		batch.Queue(
			`INSERT INTO splits (id, expense_id, member_id, owed, settled_amount)
			 VALUES ($1, $2, $3, $4, $5)`,
			s.ID, s.ExpenseID, s.MemberID, decimalToNumeric(s.Owed), decimalToNumeric(s.SettledAmount),
		)
	}

	return pgxTx.SendBatch(ctx, batch).Close()
}

// GetLedger returns every expense and split of a house.
func (r *ExpenseRepository) GetLedger(ctx context.Context, houseID string) ([]*domain.Expense, []*domain.Split, error) {
	return r.getLedger(ctx, r.pool, houseID, false)
}

// GetLedgerForUpdate reads the ledger inside a transaction with the
// split rows locked.
func (r *ExpenseRepository) GetLedgerForUpdate(ctx context.Context, tx usecase.Transaction, houseID string) ([]*domain.Expense, []*domain.Split, error) {
	return r.getLedger(ctx, tx.(*Tx).PgxTx(), houseID, true)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *ExpenseRepository) getLedger(ctx context.Context, q querier, houseID string, forUpdate bool) ([]*domain.Expense, []*domain.Split, error) {
	expenseQuery := `SELECT ` + expenseColumns + ` FROM expenses WHERE house_id = $1 ORDER BY date, created_at, id`
	splitQuery := `SELECT s.id, s.expense_id, s.member_id, s.owed, s.settled_amount
		 FROM splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.house_id = $1 ORDER BY s.id`
	if forUpdate {
		splitQuery += ` FOR UPDATE OF s`
	}

	rows, err := q.Query(ctx, expenseQuery, houseID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := collectExpenses(rows)
	if err != nil {
		return nil, nil, err
	}

	rows, err = q.Query(ctx, splitQuery, houseID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var splits []*domain.Split
	for rows.Next() {
		var (
			s             domain.Split
			owed, settled pgtype.Numeric
		)
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.MemberID, &owed, &settled); err != nil {
			return nil, nil, err
		}
		s.Owed = numericToDecimal(owed)
		s.SettledAmount = numericToDecimal(settled)
		splits = append(splits, &s)
	}

	return expenses, splits, rows.Err()
}

// UpdateSplitSettled sets a split's settled amount.
func (r *ExpenseRepository) UpdateSplitSettled(ctx context.Context, tx usecase.Transaction, splitID string, settledAmount decimal.Decimal) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx,
		`UPDATE splits SET settled_amount = $2 WHERE id = $1`,
		splitID, decimalToNumeric(settledAmount),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}

	return nil
}

// ListByBatch returns the expenses accepted together in one batch.
func (r *ExpenseRepository) ListByBatch(ctx context.Context, houseID, batchID string) ([]*domain.Expense, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE house_id = $1 AND batch_id = $2 ORDER BY date, created_at, id`,
		houseID, batchID,
	)
	if err != nil {
		return nil, err
	}

	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	defer rows.Close()

	var expenses []*domain.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e                  domain.Expense
		category           string
		amount, confidence pgtype.Numeric
		date, createdAt    pgtype.Timestamptz
	)

	err := row.Scan(&e.ID, &e.HouseID, &e.BatchID, &e.PayerID, &amount,
		&e.Description, &category, &date, &confidence, &e.ReceiptURL, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}

		return nil, err
	}

	e.Amount = numericToDecimal(amount)
	e.Category = domain.Category(category)
	e.Date = date.Time
	e.CreatedAt = createdAt.Time
	if confidence.Valid {
		c := numericToDecimal(confidence)
		e.Confidence = &c
	}

	return &e, nil
}
