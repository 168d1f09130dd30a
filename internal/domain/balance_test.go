package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func fixtureLedger() ([]*Expense, []*Split) {
	// A paid 45.50 split equally among A, B, C.
	expenses := []*Expense{
		{ID: "e1", PayerID: "A", Amount: decimal.RequireFromString("45.50")},
	}
	splits := []*Split{
		{ID: "s1", ExpenseID: "e1", MemberID: "A", Owed: decimal.RequireFromString("15.16")},
		{ID: "s2", ExpenseID: "e1", MemberID: "B", Owed: decimal.RequireFromString("15.17")},
		{ID: "s3", ExpenseID: "e1", MemberID: "C", Owed: decimal.RequireFromString("15.17")},
	}
	return expenses, splits
}

func TestComputeBalances_Scenario(t *testing.T) {
	t.Parallel()

	expenses, splits := fixtureLedger()
	balances := ComputeBalances(expenses, splits)

	want := map[string]string{"A": "30.34", "B": "-15.17", "C": "-15.17"}
	for member, w := range want {
		if !balances[member].Equal(decimal.RequireFromString(w)) {
			t.Errorf("balance[%s] = %s, want %s", member, balances[member], w)
		}
	}
}

func TestComputeBalances_ZeroSum(t *testing.T) {
	t.Parallel()

	expenses := []*Expense{
		{ID: "e1", PayerID: "A", Amount: decimal.RequireFromString("45.50")},
		{ID: "e2", PayerID: "B", Amount: decimal.RequireFromString("99.99")},
		{ID: "e3", PayerID: "C", Amount: decimal.RequireFromString("0.03")},
	}

	var splits []*Split
	for _, e := range expenses {
		shares, err := EqualSplits(e.Amount, []string{"A", "B", "C", "D"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, member := range []string{"A", "B", "C", "D"} {
			splits = append(splits, &Split{
				ID:        e.ID + member,
				ExpenseID: e.ID,
				MemberID:  member,
				Owed:      shares[i],
			})
		}
	}

	balances := ComputeBalances(expenses, splits)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}

	if !sum.IsZero() {
		t.Errorf("balances sum to %s, want 0", sum)
	}
}

func TestComputeBalances_OrderIndependent(t *testing.T) {
	t.Parallel()

	expenses, splits := fixtureLedger()

	forward := ComputeBalances(expenses, splits)

	reversed := make([]*Split, len(splits))
	for i, s := range splits {
		reversed[len(splits)-1-i] = s
	}
	backward := ComputeBalances(expenses, reversed)

	for member, b := range forward {
		if !backward[member].Equal(b) {
			t.Errorf("balance[%s] differs by insertion order: %s vs %s", member, b, backward[member])
		}
	}
}

func TestComputeBalances_ExcludesSettledPortion(t *testing.T) {
	t.Parallel()

	expenses, splits := fixtureLedger()

	// B has settled 5.17 of their 15.17 share.
	splits[1].SettledAmount = decimal.RequireFromString("5.17")

	balances := ComputeBalances(expenses, splits)

	if !balances["B"].Equal(decimal.RequireFromString("-10")) {
		t.Errorf("balance[B] = %s, want -10", balances["B"])
	}

	if !balances["A"].Equal(decimal.RequireFromString("25.17")) {
		t.Errorf("balance[A] = %s, want 25.17", balances["A"])
	}

	// Fully settled splits contribute nothing.
	splits[1].SettledAmount = splits[1].Owed
	splits[2].SettledAmount = splits[2].Owed

	balances = ComputeBalances(expenses, splits)
	for member, b := range balances {
		if !b.IsZero() {
			t.Errorf("balance[%s] = %s, want 0 after full settlement", member, b)
		}
	}
}

func TestComputePairwise(t *testing.T) {
	t.Parallel()

	expenses, splits := fixtureLedger()

	// Positive means the second argument's counterpart owes: Pairwise(A, B) > 0 means B owes A.
	if got := ComputePairwise(expenses, splits, "A", "B"); !got.Equal(decimal.RequireFromString("15.17")) {
		t.Errorf("pairwise(A,B) = %s, want 15.17", got)
	}

	if got := ComputePairwise(expenses, splits, "B", "A"); !got.Equal(decimal.RequireFromString("-15.17")) {
		t.Errorf("pairwise(B,A) = %s, want -15.17", got)
	}

	if got := ComputePairwise(expenses, splits, "B", "C"); !got.IsZero() {
		t.Errorf("pairwise(B,C) = %s, want 0", got)
	}
}

func TestComputePairwise_SettlementMonotonicity(t *testing.T) {
	t.Parallel()

	expenses, splits := fixtureLedger()

	before := ComputePairwise(expenses, splits, "A", "B")

	// Settle 10.00 of B's debt to A.
	splits[1].SettledAmount = decimal.NewFromInt(10)

	after := ComputePairwise(expenses, splits, "A", "B")
	if !before.Sub(after).Equal(decimal.NewFromInt(10)) {
		t.Errorf("pairwise(A,B) moved from %s to %s, want decrease of exactly 10", before, after)
	}

	// Untouched pair is unchanged.
	if got := ComputePairwise(expenses, splits, "A", "C"); !got.Equal(decimal.RequireFromString("15.17")) {
		t.Errorf("pairwise(A,C) = %s, want 15.17", got)
	}
}
