package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
)

// SettlementUseCase validates and applies cash and in-kind settlements.
//
// The owed balance is recomputed inside the same transaction that
// mutates the splits, with the house row locked, so two concurrent
// settlements against the same balance cannot both pass validation
// against a stale snapshot.
type SettlementUseCase struct {
	txManager      TransactionManager
	houseRepo      HouseRepository
	expenseRepo    ExpenseRepository
	settlementRepo SettlementRepository
	notifier       Notifier
	cache          Cache
	idGen          IDGenerator
	logger         zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	houseRepo HouseRepository,
	expenseRepo ExpenseRepository,
	settlementRepo SettlementRepository,
	notifier Notifier,
	cache Cache,
	idGen IDGenerator,
	logger zerolog.Logger,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:      txManager,
		houseRepo:      houseRepo,
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		notifier:       notifier,
		cache:          cache,
		idGen:          idGen,
		logger:         logger,
	}
}

// SettleInput represents a cash settlement request.
type SettleInput struct {
	HouseID  string
	PayerID  string
	PayeeID  string
	Amount   decimal.Decimal
	ProofURL string
	// AllowOvercredit accepts an amount above the owed balance and
	// books the excess as a credit toward future balances. Default is
	// to reject overpayment.
	AllowOvercredit bool
}

// Settle applies a cash settlement from payer to payee, consuming
// outstanding splits oldest-first and partially settling the last one
// touched when the amount does not cover it exactly.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*domain.Settlement, error) {
	settlement := &domain.Settlement{
		ID:        uc.idGen.Generate(),
		HouseID:   input.HouseID,
		PayerID:   input.PayerID,
		PayeeID:   input.PayeeID,
		Amount:    input.Amount,
		Kind:      domain.SettlementCash,
		ProofURL:  input.ProofURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	return uc.apply(ctx, settlement, input.AllowOvercredit)
}

// ConvertInKindInput represents an in-kind conversion request.
type ConvertInKindInput struct {
	HouseID  string
	PayerID  string
	PayeeID  string
	Good     domain.GoodType
	Quantity int64
}

// ConvertInKind settles an owed balance with units of a fixed-value
// good instead of cash. The monetary equivalent is applied exactly like
// a cash settlement of that derived amount.
func (uc *SettlementUseCase) ConvertInKind(ctx context.Context, input ConvertInKindInput) (*domain.Settlement, error) {
	if input.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	house, err := uc.houseRepo.GetByID(ctx, input.HouseID)
	if err != nil {
		return nil, err
	}

	unitValue, err := house.UnitValue(input.Good)
	if err != nil {
		return nil, err
	}
	if unitValue.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s has no configured value", domain.ErrUnknownGood, input.Good)
	}

	settlement := &domain.Settlement{
		ID:        uc.idGen.Generate(),
		HouseID:   input.HouseID,
		PayerID:   input.PayerID,
		PayeeID:   input.PayeeID,
		Amount:    unitValue.Mul(decimal.NewFromInt(input.Quantity)),
		Kind:      domain.SettlementInKind,
		Good:      input.Good,
		Quantity:  input.Quantity,
		UnitValue: unitValue,
		CreatedAt: time.Now().UTC(),
	}

	if err := settlement.Validate(); err != nil {
		return nil, err
	}

	return uc.apply(ctx, settlement, false)
}

// apply runs the settlement inside one transaction: lock the house,
// recompute the owed balance, consume splits FIFO, record the
// settlement.
func (uc *SettlementUseCase) apply(ctx context.Context, settlement *domain.Settlement, allowOvercredit bool) (*domain.Settlement, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.houseRepo.GetByIDForUpdate(ctx, tx, settlement.HouseID); err != nil {
		return nil, err
	}

	payer, err := uc.houseRepo.GetMember(ctx, settlement.HouseID, settlement.PayerID)
	if err != nil {
		return nil, err
	}
	payee, err := uc.houseRepo.GetMember(ctx, settlement.HouseID, settlement.PayeeID)
	if err != nil {
		return nil, err
	}

	expenses, splits, err := uc.expenseRepo.GetLedgerForUpdate(ctx, tx, settlement.HouseID)
	if err != nil {
		return nil, err
	}

	owed := domain.ComputePairwise(expenses, splits, settlement.PayeeID, settlement.PayerID)

	if settlement.Kind == domain.SettlementInKind {
		if _, err := domain.ValidateConversion(owed, settlement.UnitValue, settlement.Quantity); err != nil {
			return nil, err
		}
	} else if settlement.Amount.GreaterThan(owed) && !allowOvercredit {
		return nil, fmt.Errorf("%w: %s owed, %s requested",
			domain.ErrOverpayment, owed.StringFixed(2), settlement.Amount.StringFixed(2))
	}

	excess, err := uc.consumeSplits(ctx, tx, settlement, expenses, splits)
	if err != nil {
		return nil, err
	}

	if excess.IsPositive() {
		if err := uc.bookOvercredit(ctx, tx, settlement, excess); err != nil {
			return nil, err
		}
	}

	if err := uc.settlementRepo.Create(ctx, tx, settlement); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if err := uc.cache.Delete(ctx, balanceCacheKey(settlement.HouseID)); err != nil {
		uc.logger.Warn().Err(err).Str("house_id", settlement.HouseID).Msg("failed to invalidate balance snapshot")
	}

	uc.notifyPayment(ctx, settlement, payer, payee)

	return settlement, nil
}

// consumeSplits marks outstanding splits between the pair settled,
// oldest expense first, and returns whatever part of the settlement
// amount was left over.
func (uc *SettlementUseCase) consumeSplits(
	ctx context.Context,
	tx Transaction,
	settlement *domain.Settlement,
	expenses []*domain.Expense,
	splits []*domain.Split,
) (decimal.Decimal, error) {
	byID := make(map[string]*domain.Expense, len(expenses))
	for _, e := range expenses {
		byID[e.ID] = e
	}

	var outstanding []*domain.Split
	for _, s := range splits {
		e := byID[s.ExpenseID]
		if e == nil || e.PayerID != settlement.PayeeID || s.MemberID != settlement.PayerID {
			continue
		}
		if s.Outstanding().IsPositive() {
			outstanding = append(outstanding, s)
		}
	}

	sort.Slice(outstanding, func(i, j int) bool {
		ei, ej := byID[outstanding[i].ExpenseID], byID[outstanding[j].ExpenseID]
		if !ei.Date.Equal(ej.Date) {
			return ei.Date.Before(ej.Date)
		}
		if !ei.CreatedAt.Equal(ej.CreatedAt) {
			return ei.CreatedAt.Before(ej.CreatedAt)
		}
		return outstanding[i].ID < outstanding[j].ID
	})

	remaining := settlement.Amount
	for _, s := range outstanding {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		applied := decimal.Min(remaining, s.Outstanding())
		newSettled := s.SettledAmount.Add(applied)

		if err := uc.expenseRepo.UpdateSplitSettled(ctx, tx, s.ID, newSettled); err != nil {
			return decimal.Zero, err
		}

		s.SettledAmount = newSettled
		remaining = remaining.Sub(applied)
	}

	return remaining, nil
}

// bookOvercredit records the excess of an over-paid settlement as an
// offsetting expense paid by the settlement payer with the payee as
// sole participant, flipping the direction of the balance.
func (uc *SettlementUseCase) bookOvercredit(ctx context.Context, tx Transaction, settlement *domain.Settlement, excess decimal.Decimal) error {
	now := time.Now().UTC()

	credit := &domain.Expense{
		ID:          uc.idGen.Generate(),
		HouseID:     settlement.HouseID,
		BatchID:     uc.idGen.Generate(),
		PayerID:     settlement.PayerID,
		Amount:      excess,
		Description: "Settlement overpayment credit",
		Category:    domain.CategoryMiscellaneous,
		Date:        now,
		CreatedAt:   now,
	}

	split := &domain.Split{
		ID:        uc.idGen.Generate(),
		ExpenseID: credit.ID,
		MemberID:  settlement.PayeeID,
		Owed:      excess,
	}

	return uc.expenseRepo.CreateBatch(ctx, tx, []*domain.Expense{credit}, []*domain.Split{split})
}

func (uc *SettlementUseCase) notifyPayment(ctx context.Context, settlement *domain.Settlement, payer, payee *domain.Member) {
	amount := "$" + settlement.Amount.StringFixed(2)

	if _, err := uc.notifier.Emit(ctx, settlement.PayeeID, domain.NotificationPayment, domain.NotificationPayload{
		Amount:     amount,
		MemberName: payer.Name,
	}); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", settlement.PayeeID).Msg("failed to emit payment notification")
	}

	if _, err := uc.notifier.Emit(ctx, settlement.PayerID, domain.NotificationPayment, domain.NotificationPayload{
		Amount:     amount,
		MemberName: payee.Name,
	}); err != nil {
		uc.logger.Warn().Err(err).Str("member_id", settlement.PayerID).Msg("failed to emit payment notification")
	}
}

// GetSettlement retrieves a settlement by ID.
func (uc *SettlementUseCase) GetSettlement(ctx context.Context, id string) (*domain.Settlement, error) {
	return uc.settlementRepo.GetByID(ctx, id)
}

// ListSettlements lists settlements for a house.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return uc.settlementRepo.ListByHouse(ctx, houseID, limit, offset)
}
