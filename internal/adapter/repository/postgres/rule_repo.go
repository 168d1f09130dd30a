package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/roomledger/internal/domain"
)

// RuleRepository implements usecase.RuleRepository.
type RuleRepository struct {
	pool *pgxpool.Pool
}

// NewRuleRepository creates a new RuleRepository.
func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

// Create stores a house rule.
func (r *RuleRepository) Create(ctx context.Context, rule *domain.HouseRule) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO house_rules (id, house_id, title, description, created_by, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rule.ID, rule.HouseID, rule.Title, rule.Description, rule.CreatedBy,
		timeToPgTimestamptz(rule.UpdatedAt),
	)

	return err
}

// Update changes a house rule's text.
func (r *RuleRepository) Update(ctx context.Context, rule *domain.HouseRule) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE house_rules SET title = $2, description = $3, updated_at = $4 WHERE id = $1`,
		rule.ID, rule.Title, rule.Description, timeToPgTimestamptz(rule.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}

	return nil
}

// Delete removes a house rule.
func (r *RuleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM house_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}

	return nil
}

// ListByHouse lists a house's rules.
func (r *RuleRepository) ListByHouse(ctx context.Context, houseID string) ([]*domain.HouseRule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, house_id, title, description, created_by, updated_at
		 FROM house_rules WHERE house_id = $1 ORDER BY updated_at DESC, id`,
		houseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.HouseRule
	for rows.Next() {
		var (
			rule      domain.HouseRule
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&rule.ID, &rule.HouseID, &rule.Title, &rule.Description, &rule.CreatedBy, &updatedAt); err != nil {
			return nil, err
		}
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}
