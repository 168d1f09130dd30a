package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementKind distinguishes cash settlements from in-kind conversions.
type SettlementKind string

const (
	SettlementCash   SettlementKind = "cash"
	SettlementInKind SettlementKind = "in_kind"
)

// Settlement records that one member paid another, fully or partially
// resolving an owed balance.
type Settlement struct {
	ID        string
	HouseID   string
	PayerID   string
	PayeeID   string
	Amount    decimal.Decimal
	Kind      SettlementKind
	Good      GoodType
	Quantity  int64
	UnitValue decimal.Decimal
	ProofURL  string
	CreatedAt time.Time
}

// Validate checks settlement invariants.
func (s *Settlement) Validate() error {
	if s.PayerID == s.PayeeID {
		return ErrSamePayerPayee
	}
	if s.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// MaxAffordableQuantity returns how many units of a good the given
// balance can buy: floor(balance / unitValue).
func MaxAffordableQuantity(balance, unitValue decimal.Decimal) int64 {
	if unitValue.LessThanOrEqual(decimal.Zero) || balance.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	return balance.Div(unitValue).Floor().IntPart()
}

// ValidateConversion checks an in-kind conversion request against the
// balance being settled. The monetary equivalent quantity*unitValue
// must not exceed the balance.
func ValidateConversion(balance, unitValue decimal.Decimal, quantity int64) (decimal.Decimal, error) {
	if unitValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrUnknownGood
	}
	if quantity <= 0 || quantity > MaxAffordableQuantity(balance, unitValue) {
		return decimal.Zero, ErrInvalidQuantity
	}
	return unitValue.Mul(decimal.NewFromInt(quantity)), nil
}
