package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/roomledger/internal/domain"
)

// LeaderboardRepository implements usecase.LeaderboardRepository.
// Points are append-only rows; standings aggregate the current cycle.
type LeaderboardRepository struct {
	pool *pgxpool.Pool
}

// NewLeaderboardRepository creates a new LeaderboardRepository.
func NewLeaderboardRepository(pool *pgxpool.Pool) *LeaderboardRepository {
	return &LeaderboardRepository{pool: pool}
}

// AddPoints appends a point delta for a member.
func (r *LeaderboardRepository) AddPoints(ctx context.Context, houseID, userID string, points int, reason domain.PointsReason) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO leaderboard_points (house_id, user_id, points, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		houseID, userID, points, string(reason), timeToPgTimestamptz(time.Now().UTC()),
	)

	return err
}

// Standings aggregates the current month's points per member, highest
// first. Ties break on user id so the order is stable.
func (r *LeaderboardRepository) Standings(ctx context.Context, houseID string) ([]*domain.LeaderboardEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, COALESCE(SUM(points), 0)
		 FROM leaderboard_points
		 WHERE house_id = $1 AND created_at >= date_trunc('month', now())
		 GROUP BY user_id
		 ORDER BY 2 DESC, user_id`,
		houseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.LeaderboardEntry
	for rows.Next() {
		entry := &domain.LeaderboardEntry{HouseID: houseID}
		if err := rows.Scan(&entry.UserID, &entry.Points); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
