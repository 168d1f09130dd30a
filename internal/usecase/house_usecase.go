package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
)

// HouseUseCase handles houses, membership and house rules.
type HouseUseCase struct {
	houseRepo HouseRepository
	ruleRepo  RuleRepository
	idGen     IDGenerator
}

// NewHouseUseCase creates a new HouseUseCase.
func NewHouseUseCase(houseRepo HouseRepository, ruleRepo RuleRepository, idGen IDGenerator) *HouseUseCase {
	return &HouseUseCase{houseRepo: houseRepo, ruleRepo: ruleRepo, idGen: idGen}
}

// CreateHouseInput represents input for creating a house.
type CreateHouseInput struct {
	Name             string
	Currency         string
	CommissionerID   string
	CommissionerName string
	BeerValue        decimal.Decimal
	PizzaValue       decimal.Decimal
	CoffeeValue      decimal.Decimal
}

// CreateHouse creates a house with its first member as commissioner.
func (uc *HouseUseCase) CreateHouse(ctx context.Context, input CreateHouseInput) (*domain.House, error) {
	now := time.Now().UTC()

	house := &domain.House{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Currency:       input.Currency,
		CommissionerID: input.CommissionerID,
		BeerValue:      input.BeerValue,
		PizzaValue:     input.PizzaValue,
		CoffeeValue:    input.CoffeeValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if house.Currency == "" {
		house.Currency = "CAD"
	}

	commissioner := &domain.Member{
		ID:       input.CommissionerID,
		HouseID:  house.ID,
		Name:     input.CommissionerName,
		Role:     domain.RoleCommissioner,
		JoinedAt: now,
	}

	if err := uc.houseRepo.Create(ctx, house, commissioner); err != nil {
		return nil, err
	}

	return house, nil
}

// GetHouse retrieves a house by ID.
func (uc *HouseUseCase) GetHouse(ctx context.Context, id string) (*domain.House, error) {
	return uc.houseRepo.GetByID(ctx, id)
}

// UpdateSettingsInput represents house setting changes.
type UpdateSettingsInput struct {
	HouseID     string
	ActorID     string
	Currency    string
	BeerValue   decimal.Decimal
	PizzaValue  decimal.Decimal
	CoffeeValue decimal.Decimal
}

// UpdateSettings changes house settings. Commissioner only.
func (uc *HouseUseCase) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.House, error) {
	house, err := uc.houseRepo.GetByID(ctx, input.HouseID)
	if err != nil {
		return nil, err
	}

	if house.CommissionerID != input.ActorID {
		return nil, domain.ErrNotCommissioner
	}

	if input.Currency != "" {
		house.Currency = input.Currency
	}
	if input.BeerValue.IsPositive() {
		house.BeerValue = input.BeerValue
	}
	if input.PizzaValue.IsPositive() {
		house.PizzaValue = input.PizzaValue
	}
	if input.CoffeeValue.IsPositive() {
		house.CoffeeValue = input.CoffeeValue
	}
	house.UpdatedAt = time.Now().UTC()

	if err := uc.houseRepo.UpdateSettings(ctx, house); err != nil {
		return nil, err
	}

	return house, nil
}

// AddMember adds a member to a house.
func (uc *HouseUseCase) AddMember(ctx context.Context, houseID, memberID, name string) (*domain.Member, error) {
	if _, err := uc.houseRepo.GetByID(ctx, houseID); err != nil {
		return nil, err
	}

	member := &domain.Member{
		ID:       memberID,
		HouseID:  houseID,
		Name:     name,
		Role:     domain.RoleMember,
		JoinedAt: time.Now().UTC(),
	}

	if err := uc.houseRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// GetMember retrieves one house member.
func (uc *HouseUseCase) GetMember(ctx context.Context, houseID, memberID string) (*domain.Member, error) {
	return uc.houseRepo.GetMember(ctx, houseID, memberID)
}

// ListMembers lists the house roster.
func (uc *HouseUseCase) ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error) {
	return uc.houseRepo.ListMembers(ctx, houseID)
}

// CreateRuleInput represents a new house rule.
type CreateRuleInput struct {
	HouseID     string
	ActorID     string
	Title       string
	Description string
}

// CreateRule adds a house rule. Commissioner only.
func (uc *HouseUseCase) CreateRule(ctx context.Context, input CreateRuleInput) (*domain.HouseRule, error) {
	if err := uc.requireCommissioner(ctx, input.HouseID, input.ActorID); err != nil {
		return nil, err
	}

	rule := &domain.HouseRule{
		ID:          uc.idGen.Generate(),
		HouseID:     input.HouseID,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   input.ActorID,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return rule, nil
}

// UpdateRule changes a house rule. Commissioner only.
func (uc *HouseUseCase) UpdateRule(ctx context.Context, houseID, actorID string, rule *domain.HouseRule) error {
	if err := uc.requireCommissioner(ctx, houseID, actorID); err != nil {
		return err
	}

	rule.UpdatedAt = time.Now().UTC()

	return uc.ruleRepo.Update(ctx, rule)
}

// DeleteRule removes a house rule. Commissioner only.
func (uc *HouseUseCase) DeleteRule(ctx context.Context, houseID, actorID, ruleID string) error {
	if err := uc.requireCommissioner(ctx, houseID, actorID); err != nil {
		return err
	}

	return uc.ruleRepo.Delete(ctx, ruleID)
}

// ListRules lists a house's rules.
func (uc *HouseUseCase) ListRules(ctx context.Context, houseID string) ([]*domain.HouseRule, error) {
	return uc.ruleRepo.ListByHouse(ctx, houseID)
}

func (uc *HouseUseCase) requireCommissioner(ctx context.Context, houseID, actorID string) error {
	house, err := uc.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		return err
	}

	if house.CommissionerID != actorID {
		return domain.ErrNotCommissioner
	}

	return nil
}
