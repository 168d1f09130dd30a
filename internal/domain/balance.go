package domain

import "github.com/shopspring/decimal"

// ComputeBalances derives the net balance of every member touched by
// the given expenses and splits. Positive means others owe the member,
// negative means the member owes others. Only the outstanding portion
// of each split counts; fully settled splits contribute nothing.
//
// The result depends only on the set of inputs, not their order, and
// the function has no side effects, so it is safe to call concurrently.
func ComputeBalances(expenses []*Expense, splits []*Split) map[string]decimal.Decimal {
	payers := make(map[string]string, len(expenses))
	for _, e := range expenses {
		payers[e.ID] = e.PayerID
	}

	balances := make(map[string]decimal.Decimal)
	for _, s := range splits {
		payer, ok := payers[s.ExpenseID]
		if !ok || s.MemberID == payer {
			continue
		}

		outstanding := s.Outstanding()
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		balances[s.MemberID] = balances[s.MemberID].Sub(outstanding)
		balances[payer] = balances[payer].Add(outstanding)
	}

	return balances
}

// ComputePairwise derives the net balance between two members.
// Positive means b owes a, negative means a owes b.
func ComputePairwise(expenses []*Expense, splits []*Split, a, b string) decimal.Decimal {
	payers := make(map[string]string, len(expenses))
	for _, e := range expenses {
		payers[e.ID] = e.PayerID
	}

	net := decimal.Zero
	for _, s := range splits {
		payer, ok := payers[s.ExpenseID]
		if !ok {
			continue
		}

		outstanding := s.Outstanding()
		if outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		switch {
		case payer == a && s.MemberID == b:
			net = net.Add(outstanding)
		case payer == b && s.MemberID == a:
			net = net.Sub(outstanding)
		}
	}

	return net
}
