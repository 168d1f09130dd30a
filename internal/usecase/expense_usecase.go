package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/roomledger/internal/domain"
)

// ExpenseUseCase handles accepting raw transactions into the ledger.
type ExpenseUseCase struct {
	txManager   TransactionManager
	houseRepo   HouseRepository
	expenseRepo ExpenseRepository
	leaderboard LeaderboardRepository
	notifier    Notifier
	cache       Cache
	idGen       IDGenerator
	logger      zerolog.Logger
}

// NewExpenseUseCase creates a new ExpenseUseCase.
func NewExpenseUseCase(
	txManager TransactionManager,
	houseRepo HouseRepository,
	expenseRepo ExpenseRepository,
	leaderboard LeaderboardRepository,
	notifier Notifier,
	cache Cache,
	idGen IDGenerator,
	logger zerolog.Logger,
) *ExpenseUseCase {
	return &ExpenseUseCase{
		txManager:   txManager,
		houseRepo:   houseRepo,
		expenseRepo: expenseRepo,
		leaderboard: leaderboard,
		notifier:    notifier,
		cache:       cache,
		idGen:       idGen,
		logger:      logger,
	}
}

// AcceptEntriesInput represents a batch of transactions to accept.
// Raw entries come from untrusted sources and are normalized before
// acceptance; Entries carry fixed-precision amounts from internal
// callers and skip raw coercion.
type AcceptEntriesInput struct {
	HouseID      string
	PayerID      string
	Participants []string
	Raw          []domain.RawTransaction
	Entries      []domain.NormalizedTransaction
	ReceiptURL   string
}

// AcceptedBatch is the result of accepting a batch of raw transactions.
type AcceptedBatch struct {
	BatchID  string
	Expenses []*domain.Expense
	Splits   []*domain.Split
	Warnings []string
}

// AcceptEntries validates and normalizes raw transactions, builds one
// expense plus equal splits per accepted transaction, stamps all of
// them with a single batch id, and persists the batch atomically.
// Either the whole batch is accepted or none of it.
func (uc *ExpenseUseCase) AcceptEntries(ctx context.Context, input AcceptEntriesInput) (*AcceptedBatch, error) {
	if len(input.Raw)+len(input.Entries) == 0 {
		return &AcceptedBatch{}, nil
	}

	if len(input.Participants) == 0 {
		return nil, domain.ErrEmptyParticipants
	}

	members, err := uc.houseRepo.ListMembers(ctx, input.HouseID)
	if err != nil {
		return nil, err
	}

	known := make(map[string]*domain.Member, len(members))
	for _, m := range members {
		known[m.ID] = m
	}

	if known[input.PayerID] == nil {
		return nil, fmt.Errorf("%w: payer %s", domain.ErrMemberNotFound, input.PayerID)
	}
	for _, p := range input.Participants {
		if known[p] == nil {
			return nil, fmt.Errorf("%w: participant %s", domain.ErrMemberNotFound, p)
		}
	}

	now := time.Now().UTC()
	batchID := uc.idGen.Generate()

	entries := make([]domain.NormalizedTransaction, 0, len(input.Raw)+len(input.Entries))
	for _, raw := range input.Raw {
		entries = append(entries, raw.Normalize(now))
	}
	entries = append(entries, input.Entries...)

	batch := &AcceptedBatch{BatchID: batchID}
	for i, n := range entries {
		if n.Warning != "" {
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("transaction %d: %s", i+1, n.Warning))
		}

		if n.Amount.IsZero() {
			// Clamped amount: surfaced above, excluded from the ledger
			// so the amount > 0 invariant holds.
			batch.Warnings = append(batch.Warnings, fmt.Sprintf("transaction %d: excluded from ledger", i+1))
			continue
		}

		expense := &domain.Expense{
			ID:          uc.idGen.Generate(),
			HouseID:     input.HouseID,
			BatchID:     batchID,
			PayerID:     input.PayerID,
			Amount:      n.Amount,
			Description: n.Description,
			Category:    n.Category,
			Date:        n.Date,
			Confidence:  n.Confidence,
			ReceiptURL:  input.ReceiptURL,
			CreatedAt:   now,
		}

		if err := expense.Validate(); err != nil {
			return nil, err
		}

		shares, err := domain.EqualSplits(expense.Amount, input.Participants)
		if err != nil {
			return nil, err
		}

		for j, memberID := range input.Participants {
			batch.Splits = append(batch.Splits, &domain.Split{
				ID:        uc.idGen.Generate(),
				ExpenseID: expense.ID,
				MemberID:  memberID,
				Owed:      shares[j],
			})
		}

		batch.Expenses = append(batch.Expenses, expense)
	}

	if len(batch.Expenses) == 0 {
		return batch, nil
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.expenseRepo.CreateBatch(ctx, tx, batch.Expenses, batch.Splits); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, balanceCacheKey(input.HouseID)); err != nil {
		uc.logger.Warn().Err(err).Str("house_id", input.HouseID).Msg("failed to invalidate balance snapshot")
	}

	uc.afterAccept(ctx, input, known, batch)

	return batch, nil
}

// afterAccept awards points and notifies participants. Failures here
// must not undo an already committed batch.
func (uc *ExpenseUseCase) afterAccept(ctx context.Context, input AcceptEntriesInput, known map[string]*domain.Member, batch *AcceptedBatch) {
	payer := known[input.PayerID]

	if err := uc.leaderboard.AddPoints(ctx, input.HouseID, input.PayerID, domain.PointsExpenseAdded, domain.ReasonExpenseAdded); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", input.PayerID).Msg("failed to award expense points")
	}

	for _, e := range batch.Expenses {
		for _, memberID := range input.Participants {
			if memberID == input.PayerID {
				continue
			}

			_, err := uc.notifier.Emit(ctx, memberID, domain.NotificationExpense, domain.NotificationPayload{
				Amount:      "$" + e.Amount.StringFixed(2),
				Description: e.Description,
				MemberName:  payer.Name,
				Count:       len(input.Participants),
			})
			if err != nil {
				uc.logger.Warn().Err(err).Str("member_id", memberID).Msg("failed to emit expense notification")
			}
		}
	}
}

// ListByBatch returns the expenses created together in one batch.
func (uc *ExpenseUseCase) ListByBatch(ctx context.Context, houseID, batchID string) ([]*domain.Expense, error) {
	return uc.expenseRepo.ListByBatch(ctx, houseID, batchID)
}

func balanceCacheKey(houseID string) string {
	return "balances:" + houseID
}
