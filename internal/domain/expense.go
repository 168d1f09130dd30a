package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a shared expense.
type Category string

const (
	CategoryRent          Category = "Rent"
	CategoryGroceries     Category = "Groceries"
	CategoryUtilities     Category = "Utilities"
	CategoryInternet      Category = "Internet"
	CategoryFun           Category = "Fun/Entertainment"
	CategoryHousehold     Category = "Household Items"
	CategoryMiscellaneous Category = "Miscellaneous"
)

var validCategories = map[Category]bool{
	CategoryRent:          true,
	CategoryGroceries:     true,
	CategoryUtilities:     true,
	CategoryInternet:      true,
	CategoryFun:           true,
	CategoryHousehold:     true,
	CategoryMiscellaneous: true,
}

// NormalizeCategory maps free-form category text onto the known set.
// Anything unrecognized becomes Miscellaneous.
func NormalizeCategory(s string) Category {
	c := Category(s)
	if validCategories[c] {
		return c
	}
	return CategoryMiscellaneous
}

// Expense represents money spent by one member on behalf of the house.
// Amounts are immutable once accepted; corrections require a new
// offsetting expense.
type Expense struct {
	ID          string
	HouseID     string
	BatchID     string
	PayerID     string
	Amount      decimal.Decimal
	Description string
	Category    Category
	Date        time.Time
	Confidence  *decimal.Decimal
	ReceiptURL  string
	CreatedAt   time.Time
}

// Validate checks expense invariants.
func (e *Expense) Validate() error {
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// Split is one participant's apportioned share of an expense.
// SettledAmount tracks partial settlement; a split is fully settled
// when SettledAmount equals Owed.
type Split struct {
	ID            string
	ExpenseID     string
	MemberID      string
	Owed          decimal.Decimal
	SettledAmount decimal.Decimal
}

// Outstanding returns the unsettled portion of the split.
func (s *Split) Outstanding() decimal.Decimal {
	return s.Owed.Sub(s.SettledAmount)
}

// Settled reports whether the split is fully settled.
func (s *Split) Settled() bool {
	return s.SettledAmount.GreaterThanOrEqual(s.Owed)
}

// EqualSplits divides an expense amount equally among participants.
// Every share starts at the per-head amount floored to currency
// precision; the leftover cents go one apiece to the earliest
// participants. Shares sum exactly to the expense amount, never go
// negative, and never differ by more than one cent.
func EqualSplits(amount decimal.Decimal, participants []string) ([]decimal.Decimal, error) {
	if len(participants) == 0 {
		return nil, ErrEmptyParticipants
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	n := decimal.NewFromInt(int64(len(participants)))
	base := amount.Div(n).RoundDown(2)

	shares := make([]decimal.Decimal, len(participants))
	for i := range shares {
		shares[i] = base
	}

	cent := decimal.New(1, -2)
	leftover := amount.Sub(base.Mul(n))
	for i := 0; leftover.GreaterThanOrEqual(cent); i++ {
		shares[i] = shares[i].Add(cent)
		leftover = leftover.Sub(cent)
	}
	if leftover.IsPositive() {
		// Sub-cent residue from an amount finer than currency precision.
		shares[0] = shares[0].Add(leftover)
	}

	return shares, nil
}
