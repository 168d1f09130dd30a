package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
	"github.com/iho/roomledger/internal/usecase/mocks"
)

type choreEnv struct {
	uc          *usecase.ChoreUseCase
	houseRepo   *mocks.MockHouseRepository
	choreRepo   *mocks.MockChoreRepository
	leaderboard *mocks.MockLeaderboardRepository
	notifier    *mocks.MockNotifier
}

func newChoreEnv(t *testing.T) *choreEnv {
	t.Helper()

	env := &choreEnv{
		houseRepo:   mocks.NewMockHouseRepository(),
		choreRepo:   mocks.NewMockChoreRepository(),
		leaderboard: mocks.NewMockLeaderboardRepository(),
		notifier:    mocks.NewMockNotifier(),
	}
	env.uc = usecase.NewChoreUseCase(
		env.houseRepo,
		env.choreRepo,
		env.leaderboard,
		env.notifier,
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
	)

	seedHouse(t, env.houseRepo, "house-1", "alice", "bob")

	return env
}

func TestCreateChore_NotifiesAssignee(t *testing.T) {
	t.Parallel()

	env := newChoreEnv(t)

	chore, err := env.uc.CreateChore(context.Background(), usecase.CreateChoreInput{
		HouseID:    "house-1",
		Title:      "Take out trash",
		AssignedTo: "bob",
		CreatedBy:  "alice",
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob", chore.AssignedTo)

	require.Len(t, env.notifier.Emitted, 1)
	assert.Equal(t, "bob", env.notifier.Emitted[0].UserID)
	assert.Equal(t, domain.NotificationChore, env.notifier.Emitted[0].Type)
}

func TestCreateChore_UnknownAssignee(t *testing.T) {
	t.Parallel()

	env := newChoreEnv(t)

	_, err := env.uc.CreateChore(context.Background(), usecase.CreateChoreInput{
		HouseID:    "house-1",
		Title:      "Take out trash",
		AssignedTo: "mallory",
		CreatedBy:  "alice",
	})
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestCompleteChore_AwardsPointsOnce(t *testing.T) {
	t.Parallel()

	env := newChoreEnv(t)
	ctx := context.Background()

	chore, err := env.uc.CreateChore(ctx, usecase.CreateChoreInput{
		HouseID:    "house-1",
		Title:      "Dishes",
		AssignedTo: "bob",
		CreatedBy:  "alice",
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	done, err := env.uc.CompleteChore(ctx, chore.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	// Completing again must not double-award.
	_, err = env.uc.CompleteChore(ctx, chore.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.PointsChoreDone, env.leaderboard.Points("house-1", "bob"))
}

func TestCompleteChore_NotFound(t *testing.T) {
	t.Parallel()

	env := newChoreEnv(t)

	_, err := env.uc.CompleteChore(context.Background(), "no-such-chore")
	require.ErrorIs(t, err, domain.ErrChoreNotFound)
}

func TestSweepOverdue(t *testing.T) {
	t.Parallel()

	env := newChoreEnv(t)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	overdue, err := env.uc.CreateChore(ctx, usecase.CreateChoreInput{
		HouseID: "house-1", Title: "Vacuum", AssignedTo: "bob", CreatedBy: "alice", DueDate: past,
	})
	require.NoError(t, err)
	_ = overdue

	_, err = env.uc.CreateChore(ctx, usecase.CreateChoreInput{
		HouseID: "house-1", Title: "Mop", AssignedTo: "alice", CreatedBy: "alice", DueDate: future,
	})
	require.NoError(t, err)

	doneLate, err := env.uc.CreateChore(ctx, usecase.CreateChoreInput{
		HouseID: "house-1", Title: "Dust", AssignedTo: "alice", CreatedBy: "alice", DueDate: past,
	})
	require.NoError(t, err)
	_, err = env.uc.CompleteChore(ctx, doneLate.ID)
	require.NoError(t, err)

	penalized, err := env.uc.SweepOverdue(ctx, "house-1")
	require.NoError(t, err)
	assert.Equal(t, 1, penalized)
	assert.Equal(t, domain.PointsChoreOverdue, env.leaderboard.Points("house-1", "bob"))
}
