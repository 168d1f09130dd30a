package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/roomledger/internal/domain"
)

// LeaderboardUseCase handles standings and nudges.
type LeaderboardUseCase struct {
	houseRepo   HouseRepository
	leaderboard LeaderboardRepository
	notifier    Notifier
	logger      zerolog.Logger
}

// NewLeaderboardUseCase creates a new LeaderboardUseCase.
func NewLeaderboardUseCase(
	houseRepo HouseRepository,
	leaderboard LeaderboardRepository,
	notifier Notifier,
	logger zerolog.Logger,
) *LeaderboardUseCase {
	return &LeaderboardUseCase{
		houseRepo:   houseRepo,
		leaderboard: leaderboard,
		notifier:    notifier,
		logger:      logger,
	}
}

// Standings returns the house leaderboard for the current cycle,
// highest points first.
func (uc *LeaderboardUseCase) Standings(ctx context.Context, houseID string) ([]*domain.LeaderboardEntry, error) {
	return uc.leaderboard.Standings(ctx, houseID)
}

// Nudge sends a nudge from one member to another. The nudged member
// loses points and gets a nudge notification.
func (uc *LeaderboardUseCase) Nudge(ctx context.Context, houseID, fromID, toID, message string) error {
	from, err := uc.houseRepo.GetMember(ctx, houseID, fromID)
	if err != nil {
		return err
	}
	if _, err := uc.houseRepo.GetMember(ctx, houseID, toID); err != nil {
		return err
	}

	before, err := uc.leaderboard.Standings(ctx, houseID)
	if err != nil {
		return err
	}

	if err := uc.leaderboard.AddPoints(ctx, houseID, toID, domain.PointsNudged, domain.ReasonNudged); err != nil {
		return err
	}

	if _, err := uc.notifier.Emit(ctx, toID, domain.NotificationNudge, domain.NotificationPayload{
		MemberName: from.Name,
		Message:    message,
	}); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", toID).Msg("failed to emit nudge notification")
	}

	uc.announceLeadChange(ctx, houseID, before)

	return nil
}

// announceLeadChange notifies the house when the top of the
// leaderboard changes hands.
func (uc *LeaderboardUseCase) announceLeadChange(ctx context.Context, houseID string, before []*domain.LeaderboardEntry) {
	after, err := uc.leaderboard.Standings(ctx, houseID)
	if err != nil || len(after) == 0 {
		return
	}

	if len(before) > 0 && before[0].UserID == after[0].UserID {
		return
	}

	leader, err := uc.houseRepo.GetMember(ctx, houseID, after[0].UserID)
	if err != nil {
		return
	}

	members, err := uc.houseRepo.ListMembers(ctx, houseID)
	if err != nil {
		return
	}

	for _, m := range members {
		if _, err := uc.notifier.Emit(ctx, m.ID, domain.NotificationLeaderboard, domain.NotificationPayload{
			MemberName: leader.Name,
			Points:     after[0].Points,
		}); err != nil {
			uc.logger.Warn().Err(err).Str("member_id", m.ID).Msg("failed to emit leaderboard notification")
		}
	}
}
