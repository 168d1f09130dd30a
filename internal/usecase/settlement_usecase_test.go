package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
	"github.com/iho/roomledger/internal/usecase/mocks"
)

type settlementEnv struct {
	uc             *usecase.SettlementUseCase
	txManager      *mocks.MockTransactionManager
	houseRepo      *mocks.MockHouseRepository
	expenseRepo    *mocks.MockExpenseRepository
	settlementRepo *mocks.MockSettlementRepository
	notifier       *mocks.MockNotifier
	cache          *mocks.MockCache
}

func newSettlementEnv(t *testing.T) *settlementEnv {
	t.Helper()

	env := &settlementEnv{
		txManager:      mocks.NewMockTransactionManager(),
		houseRepo:      mocks.NewMockHouseRepository(),
		expenseRepo:    mocks.NewMockExpenseRepository(),
		settlementRepo: mocks.NewMockSettlementRepository(),
		notifier:       mocks.NewMockNotifier(),
		cache:          mocks.NewMockCache(),
	}
	env.uc = usecase.NewSettlementUseCase(
		env.txManager,
		env.houseRepo,
		env.expenseRepo,
		env.settlementRepo,
		env.notifier,
		env.cache,
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
	)

	seedHouse(t, env.houseRepo, "house-1", "alice", "bob", "carol")

	return env
}

// seedExpense records an expense paid by payer with the given owed
// shares, oldest entries carrying the earliest dates.
func (env *settlementEnv) seedExpense(t *testing.T, id, payerID string, amount string, date time.Time, owed map[string]string) {
	t.Helper()

	expense := &domain.Expense{
		ID:        id,
		HouseID:   "house-1",
		BatchID:   "batch-" + id,
		PayerID:   payerID,
		Amount:    decimal.RequireFromString(amount),
		Category:  domain.CategoryGroceries,
		Date:      date,
		CreatedAt: date,
	}

	var splits []*domain.Split
	for memberID, share := range owed {
		splits = append(splits, &domain.Split{
			ID:        id + "/" + memberID,
			ExpenseID: id,
			MemberID:  memberID,
			Owed:      decimal.RequireFromString(share),
		})
	}

	require.NoError(t, env.expenseRepo.CreateBatch(context.Background(), nil, []*domain.Expense{expense}, splits))
}

func (env *settlementEnv) pairwise(t *testing.T, a, b string) decimal.Decimal {
	t.Helper()

	expenses, splits, err := env.expenseRepo.GetLedger(context.Background(), "house-1")
	require.NoError(t, err)
	return domain.ComputePairwise(expenses, splits, a, b)
}

func TestSettle_ExactAmountClearsBalance(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "45.50", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "15.16", "bob": "15.17", "carol": "15.17",
	})

	owed := env.pairwise(t, "alice", "bob")
	require.True(t, owed.Equal(decimal.RequireFromString("15.17")))

	s, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1",
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("15.17"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementCash, s.Kind)

	assert.True(t, env.pairwise(t, "alice", "bob").IsZero())
	assert.True(t, env.pairwise(t, "alice", "carol").Equal(decimal.RequireFromString("15.17")))
	assert.Contains(t, env.cache.Deleted, "balances:house-1")
}

func TestSettle_OverpaymentRejectedAndBalanceUnchanged(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "20.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "10.00", "bob": "10.00",
	})

	_, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1",
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("15.00"),
	})
	require.ErrorIs(t, err, domain.ErrOverpayment)

	assert.True(t, env.pairwise(t, "alice", "bob").Equal(decimal.RequireFromString("10.00")))

	settlements, err := env.settlementRepo.ListByHouse(context.Background(), "house-1", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, settlements)
	assert.Empty(t, env.notifier.Emitted)
}

func TestSettle_PartialConsumesOldestFirst(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "20.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "10.00", "bob": "10.00",
	})
	env.seedExpense(t, "e2", "alice", "10.00", time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "5.00", "bob": "5.00",
	})

	_, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1",
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("12.00"),
	})
	require.NoError(t, err)

	_, splits, err := env.expenseRepo.GetLedger(context.Background(), "house-1")
	require.NoError(t, err)

	settled := make(map[string]decimal.Decimal)
	for _, s := range splits {
		if s.MemberID == "bob" {
			settled[s.ExpenseID] = s.SettledAmount
		}
	}

	assert.True(t, settled["e1"].Equal(decimal.RequireFromString("10.00")), "oldest split settled first, got %s", settled["e1"])
	assert.True(t, settled["e2"].Equal(decimal.RequireFromString("2.00")), "remainder applied to next, got %s", settled["e2"])
	assert.True(t, env.pairwise(t, "alice", "bob").Equal(decimal.RequireFromString("3.00")))
}

func TestSettle_OvercreditFlipsBalance(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "20.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "10.00", "bob": "10.00",
	})

	_, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID:         "house-1",
		PayerID:         "bob",
		PayeeID:         "alice",
		Amount:          decimal.RequireFromString("15.00"),
		AllowOvercredit: true,
	})
	require.NoError(t, err)

	// The 5.00 excess is booked as a credit, so alice now owes bob.
	assert.True(t, env.pairwise(t, "bob", "alice").Equal(decimal.RequireFromString("5.00")))
	assert.True(t, env.pairwise(t, "alice", "bob").Equal(decimal.RequireFromString("-5.00")))
}

func TestSettle_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   usecase.SettleInput
		wantErr error
	}{
		{
			name: "same payer and payee",
			input: usecase.SettleInput{
				HouseID: "house-1", PayerID: "bob", PayeeID: "bob",
				Amount: decimal.RequireFromString("5.00"),
			},
			wantErr: domain.ErrSamePayerPayee,
		},
		{
			name: "zero amount",
			input: usecase.SettleInput{
				HouseID: "house-1", PayerID: "bob", PayeeID: "alice",
				Amount: decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			input: usecase.SettleInput{
				HouseID: "house-1", PayerID: "bob", PayeeID: "alice",
				Amount: decimal.RequireFromString("-3.00"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newSettlementEnv(t)

			_, err := env.uc.Settle(context.Background(), tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, env.txManager.Begun)
		})
	}
}

func TestSettle_UnknownMember(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)

	_, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1",
		PayerID: "mallory",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("5.00"),
	})
	require.ErrorIs(t, err, domain.ErrMemberNotFound)
}

func TestConvertInKind_BeersAgainstBalance(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "100.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "50.00", "bob": "50.00",
	})

	s, err := env.uc.ConvertInKind(context.Background(), usecase.ConvertInKindInput{
		HouseID:  "house-1",
		PayerID:  "bob",
		PayeeID:  "alice",
		Good:     domain.GoodBeer,
		Quantity: 6,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SettlementInKind, s.Kind)
	assert.True(t, s.Amount.Equal(decimal.RequireFromString("36.00")))
	assert.True(t, s.UnitValue.Equal(decimal.RequireFromString("6.00")))

	assert.True(t, env.pairwise(t, "alice", "bob").Equal(decimal.RequireFromString("14.00")))
}

func TestConvertInKind_QuantityBeyondBalanceRejected(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "100.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "50.00", "bob": "50.00",
	})

	// 9 beers at 6.00 would be 54.00 against a 50.00 balance.
	_, err := env.uc.ConvertInKind(context.Background(), usecase.ConvertInKindInput{
		HouseID:  "house-1",
		PayerID:  "bob",
		PayeeID:  "alice",
		Good:     domain.GoodBeer,
		Quantity: 9,
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	assert.True(t, env.pairwise(t, "alice", "bob").Equal(decimal.RequireFromString("50.00")))
}

func TestConvertInKind_UnknownGood(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)

	_, err := env.uc.ConvertInKind(context.Background(), usecase.ConvertInKindInput{
		HouseID:  "house-1",
		PayerID:  "bob",
		PayeeID:  "alice",
		Good:     domain.GoodType("wine"),
		Quantity: 1,
	})
	require.ErrorIs(t, err, domain.ErrUnknownGood)
}

func TestConvertInKind_MatchesEquivalentCashSettlement(t *testing.T) {
	t.Parallel()

	seed := func(env *settlementEnv) {
		env.seedExpense(t, "e1", "alice", "100.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
			"alice": "50.00", "bob": "50.00",
		})
	}

	inKind := newSettlementEnv(t)
	seed(inKind)
	_, err := inKind.uc.ConvertInKind(context.Background(), usecase.ConvertInKindInput{
		HouseID: "house-1", PayerID: "bob", PayeeID: "alice",
		Good: domain.GoodBeer, Quantity: 6,
	})
	require.NoError(t, err)

	cash := newSettlementEnv(t)
	seed(cash)
	_, err = cash.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1", PayerID: "bob", PayeeID: "alice",
		Amount: decimal.RequireFromString("36.00"),
	})
	require.NoError(t, err)

	assert.True(t, inKind.pairwise(t, "alice", "bob").Equal(cash.pairwise(t, "alice", "bob")))
}

func TestSettle_NotifiesBothParties(t *testing.T) {
	t.Parallel()

	env := newSettlementEnv(t)
	env.seedExpense(t, "e1", "alice", "20.00", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), map[string]string{
		"alice": "10.00", "bob": "10.00",
	})

	_, err := env.uc.Settle(context.Background(), usecase.SettleInput{
		HouseID: "house-1",
		PayerID: "bob",
		PayeeID: "alice",
		Amount:  decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	require.Len(t, env.notifier.Emitted, 2)

	recipients := map[string]string{}
	for _, n := range env.notifier.Emitted {
		require.Equal(t, domain.NotificationPayment, n.Type)
		recipients[n.UserID] = n.Message
	}
	assert.Equal(t, "$10.00 settled with bob", recipients["alice"])
	assert.Equal(t, "$10.00 settled with alice", recipients["bob"])
}
