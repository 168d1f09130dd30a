package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// RawTransaction is an untrusted transaction record, whether typed by
// hand or produced by the AI parser. Every field is validated before an
// Expense is built from it.
type RawTransaction struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// NormalizedTransaction is a RawTransaction after validation. A
// non-positive or non-finite amount is clamped to zero and flagged with
// a warning rather than silently dropped; callers decide whether to
// keep it.
type NormalizedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    Category
	Confidence  *decimal.Decimal
	Warning     string
}

const rawDateLayout = "2006-01-02"

// Normalize validates a raw transaction, coercing out-of-range fields
// to documented defaults and surfacing what was fixed.
func (r RawTransaction) Normalize(now time.Time) NormalizedTransaction {
	n := NormalizedTransaction{
		Description: r.Description,
		Category:    NormalizeCategory(r.Category),
	}

	if n.Description == "" {
		n.Description = "Untitled expense"
		n.Warning = appendWarning(n.Warning, "missing description")
	}

	var amount decimal.Decimal
	if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) || r.Amount > 1e12 || r.Amount < -1e12 {
		// NaN, Inf or absurd magnitude from the parser.
		amount = decimal.Zero
	} else {
		amount = decimal.NewFromFloat(r.Amount).Round(2)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		n.Amount = decimal.Zero
		n.Warning = appendWarning(n.Warning, fmt.Sprintf("non-positive amount %v clamped to 0", r.Amount))
	} else {
		n.Amount = amount
	}

	date, err := time.Parse(rawDateLayout, r.Date)
	if err != nil {
		n.Date = now.Truncate(24 * time.Hour)
		n.Warning = appendWarning(n.Warning, fmt.Sprintf("unparseable date %q, using today", r.Date))
	} else {
		n.Date = date
	}

	if r.Confidence != nil {
		c := decimal.NewFromFloat(*r.Confidence)
		if c.IsNegative() || c.GreaterThan(decimal.NewFromInt(1)) {
			n.Warning = appendWarning(n.Warning, "confidence out of range, dropped")
		} else {
			n.Confidence = &c
		}
	}

	return n
}

func appendWarning(existing, added string) string {
	if existing == "" {
		return added
	}
	return existing + "; " + added
}
