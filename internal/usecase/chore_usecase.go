package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/roomledger/internal/domain"
)

// ChoreUseCase handles household chores and their leaderboard effects.
type ChoreUseCase struct {
	houseRepo   HouseRepository
	choreRepo   ChoreRepository
	leaderboard LeaderboardRepository
	notifier    Notifier
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewChoreUseCase creates a new ChoreUseCase.
func NewChoreUseCase(
	houseRepo HouseRepository,
	choreRepo ChoreRepository,
	leaderboard LeaderboardRepository,
	notifier Notifier,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ChoreUseCase {
	return &ChoreUseCase{
		houseRepo:   houseRepo,
		choreRepo:   choreRepo,
		leaderboard: leaderboard,
		notifier:    notifier,
		idGen:       idGen,
		logger:      logger,
	}
}

// CreateChoreInput represents a new chore.
type CreateChoreInput struct {
	HouseID     string
	Title       string
	Description string
	AssignedTo  string
	CreatedBy   string
	DueDate     time.Time
}

// CreateChore creates a chore and notifies the assignee.
func (uc *ChoreUseCase) CreateChore(ctx context.Context, input CreateChoreInput) (*domain.Chore, error) {
	assignee, err := uc.houseRepo.GetMember(ctx, input.HouseID, input.AssignedTo)
	if err != nil {
		return nil, err
	}

	chore := &domain.Chore{
		ID:          uc.idGen.Generate(),
		HouseID:     input.HouseID,
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
		DueDate:     input.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := uc.choreRepo.Create(ctx, chore); err != nil {
		return nil, err
	}

	if _, err := uc.notifier.Emit(ctx, input.AssignedTo, domain.NotificationChore, domain.NotificationPayload{
		Title:      chore.Title,
		MemberName: assignee.Name,
	}); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", input.AssignedTo).Msg("failed to emit chore notification")
	}

	return chore, nil
}

// CompleteChore marks a chore done and awards points to the assignee.
func (uc *ChoreUseCase) CompleteChore(ctx context.Context, choreID string) (*domain.Chore, error) {
	chore, err := uc.choreRepo.GetByID(ctx, choreID)
	if err != nil {
		return nil, err
	}

	if chore.Completed {
		return chore, nil
	}

	now := time.Now().UTC()
	if err := uc.choreRepo.MarkCompleted(ctx, choreID, now); err != nil {
		return nil, err
	}

	chore.Completed = true
	chore.CompletedAt = &now

	if err := uc.leaderboard.AddPoints(ctx, chore.HouseID, chore.AssignedTo, domain.PointsChoreDone, domain.ReasonChoreDone); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", chore.AssignedTo).Msg("failed to award chore points")
	}

	return chore, nil
}

// ListChores lists a house's chores.
func (uc *ChoreUseCase) ListChores(ctx context.Context, houseID string, includeCompleted bool) ([]*domain.Chore, error) {
	return uc.choreRepo.ListByHouse(ctx, houseID, includeCompleted)
}

// SweepOverdue penalizes every open chore past its due date.
func (uc *ChoreUseCase) SweepOverdue(ctx context.Context, houseID string) (int, error) {
	chores, err := uc.choreRepo.ListByHouse(ctx, houseID, false)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	penalized := 0
	for _, c := range chores {
		if !c.Overdue(now) {
			continue
		}

		if err := uc.leaderboard.AddPoints(ctx, houseID, c.AssignedTo, domain.PointsChoreOverdue, domain.ReasonChoreOverdue); err != nil {
			uc.logger.Warn().Err(err).Str("chore_id", c.ID).Msg("failed to apply overdue penalty")
			continue
		}
		penalized++
	}

	return penalized, nil
}
