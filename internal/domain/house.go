package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// House represents a shared household. Settings feed the in-kind
// settlement flow and currency display.
type House struct {
	ID             string
	Name           string
	Currency       string
	CommissionerID string
	BeerValue      decimal.Decimal
	PizzaValue     decimal.Decimal
	CoffeeValue    decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// GoodType is a fixed-value good a balance can be converted into.
type GoodType string

const (
	GoodBeer   GoodType = "beer"
	GoodPizza  GoodType = "pizza"
	GoodCoffee GoodType = "coffee"
)

// UnitValue returns the configured value of one unit of the good.
func (h *House) UnitValue(good GoodType) (decimal.Decimal, error) {
	switch good {
	case GoodBeer:
		return h.BeerValue, nil
	case GoodPizza:
		return h.PizzaValue, nil
	case GoodCoffee:
		return h.CoffeeValue, nil
	default:
		return decimal.Zero, ErrUnknownGood
	}
}

// Member identifies a house occupant. Immutable once created.
type Member struct {
	ID       string
	HouseID  string
	Name     string
	Role     Role
	JoinedAt time.Time
}

// Role is a member's role within the house.
type Role string

const (
	RoleMember       Role = "member"
	RoleCommissioner Role = "commissioner"
)
