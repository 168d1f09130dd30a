package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSettlement_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payer   string
		payee   string
		amount  decimal.Decimal
		wantErr error
	}{
		{"valid", "A", "B", decimal.NewFromInt(10), nil},
		{"same payer and payee", "A", "A", decimal.NewFromInt(10), ErrSamePayerPayee},
		{"zero amount", "A", "B", decimal.Zero, ErrInvalidAmount},
		{"negative amount", "A", "B", decimal.NewFromInt(-3), ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Settlement{PayerID: tt.payer, PayeeID: tt.payee, Amount: tt.amount}
			err := s.Validate()

			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMaxAffordableQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		balance   string
		unitValue string
		want      int64
	}{
		{"50.00", "6.00", 8},
		{"14.00", "6.00", 2},
		{"5.99", "6.00", 0},
		{"6.00", "6.00", 1},
		{"0", "6.00", 0},
		{"-10", "6.00", 0},
		{"50", "0", 0},
	}

	for _, tt := range tests {
		got := MaxAffordableQuantity(decimal.RequireFromString(tt.balance), decimal.RequireFromString(tt.unitValue))
		if got != tt.want {
			t.Errorf("MaxAffordableQuantity(%s, %s) = %d, want %d", tt.balance, tt.unitValue, got, tt.want)
		}
	}
}

func TestValidateConversion(t *testing.T) {
	t.Parallel()

	balance := decimal.RequireFromString("50.00")
	beer := decimal.RequireFromString("6.00")

	t.Run("six beers from a 50.00 balance", func(t *testing.T) {
		value, err := ValidateConversion(balance, beer, 6)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !value.Equal(decimal.RequireFromString("36.00")) {
			t.Errorf("value = %s, want 36.00", value)
		}
	})

	t.Run("max affordable exactly", func(t *testing.T) {
		value, err := ValidateConversion(balance, beer, 8)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !value.Equal(decimal.RequireFromString("48.00")) {
			t.Errorf("value = %s, want 48.00", value)
		}
	})

	t.Run("over max affordable", func(t *testing.T) {
		if _, err := ValidateConversion(balance, beer, 9); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		if _, err := ValidateConversion(balance, beer, 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
		if _, err := ValidateConversion(balance, beer, -1); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("bad unit value", func(t *testing.T) {
		if _, err := ValidateConversion(balance, decimal.Zero, 1); !errors.Is(err, ErrUnknownGood) {
			t.Errorf("expected ErrUnknownGood, got %v", err)
		}
	})
}

func TestHouse_UnitValue(t *testing.T) {
	t.Parallel()

	h := &House{
		BeerValue:   decimal.RequireFromString("6.00"),
		PizzaValue:  decimal.RequireFromString("15.00"),
		CoffeeValue: decimal.RequireFromString("4.50"),
	}

	for good, want := range map[GoodType]string{
		GoodBeer:   "6.00",
		GoodPizza:  "15.00",
		GoodCoffee: "4.50",
	} {
		v, err := h.UnitValue(good)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", good, err)
		}
		if !v.Equal(decimal.RequireFromString(want)) {
			t.Errorf("unit value for %s = %s, want %s", good, v, want)
		}
	}

	if _, err := h.UnitValue("wine"); !errors.Is(err, ErrUnknownGood) {
		t.Errorf("expected ErrUnknownGood, got %v", err)
	}
}
