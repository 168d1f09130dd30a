package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
)

const balanceSnapshotTTL = 30 * time.Second

// BalanceUseCase derives balances from the ledger. Computation is pure;
// the Redis snapshot is display-only and always recomputable.
type BalanceUseCase struct {
	houseRepo   HouseRepository
	expenseRepo ExpenseRepository
	cache       Cache
	logger      zerolog.Logger
}

// NewBalanceUseCase creates a new BalanceUseCase.
func NewBalanceUseCase(houseRepo HouseRepository, expenseRepo ExpenseRepository, cache Cache, logger zerolog.Logger) *BalanceUseCase {
	return &BalanceUseCase{
		houseRepo:   houseRepo,
		expenseRepo: expenseRepo,
		cache:       cache,
		logger:      logger,
	}
}

// HouseBalances returns every member's net balance. Positive means
// others owe the member.
func (uc *BalanceUseCase) HouseBalances(ctx context.Context, houseID string) (map[string]decimal.Decimal, error) {
	if cached, err := uc.cache.Get(ctx, balanceCacheKey(houseID)); err == nil && cached != "" {
		var snapshot map[string]decimal.Decimal
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return snapshot, nil
		}
	}

	expenses, splits, err := uc.expenseRepo.GetLedger(ctx, houseID)
	if err != nil {
		return nil, err
	}

	balances := domain.ComputeBalances(expenses, splits)

	if encoded, err := json.Marshal(balances); err == nil {
		if err := uc.cache.Set(ctx, balanceCacheKey(houseID), string(encoded), balanceSnapshotTTL); err != nil {
			uc.logger.Debug().Err(err).Str("house_id", houseID).Msg("failed to cache balance snapshot")
		}
	}

	return balances, nil
}

// Pairwise returns the net balance between two members. Positive means
// b owes a. Always computed fresh from the ledger.
func (uc *BalanceUseCase) Pairwise(ctx context.Context, houseID, a, b string) (decimal.Decimal, error) {
	expenses, splits, err := uc.expenseRepo.GetLedger(ctx, houseID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.ComputePairwise(expenses, splits, a, b), nil
}

// MaxAffordable returns how many units of a good the balance owed from
// payer to payee can buy.
func (uc *BalanceUseCase) MaxAffordable(ctx context.Context, houseID, payerID, payeeID string, good domain.GoodType) (int64, error) {
	house, err := uc.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		return 0, err
	}

	unitValue, err := house.UnitValue(good)
	if err != nil {
		return 0, err
	}

	owed, err := uc.Pairwise(ctx, houseID, payeeID, payerID)
	if err != nil {
		return 0, err
	}

	return domain.MaxAffordableQuantity(owed, unitValue), nil
}

// ConsistencyReport is the result of a ledger zero-sum check.
type ConsistencyReport struct {
	Consistent bool            `json:"consistent"`
	Total      decimal.Decimal `json:"total"`
	Members    int             `json:"members"`
}

// CheckConsistency verifies that house balances sum to zero.
func (uc *BalanceUseCase) CheckConsistency(ctx context.Context, houseID string) (*ConsistencyReport, error) {
	expenses, splits, err := uc.expenseRepo.GetLedger(ctx, houseID)
	if err != nil {
		return nil, err
	}

	balances := domain.ComputeBalances(expenses, splits)

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b)
	}

	return &ConsistencyReport{
		Consistent: total.IsZero(),
		Total:      total,
		Members:    len(balances),
	}, nil
}
