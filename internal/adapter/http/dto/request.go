package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

var validate = validator.New()

// Validate runs struct tag validation on a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// CreateHouseRequest represents a request to create a house.
type CreateHouseRequest struct {
	Name             string          `json:"name" validate:"required"`
	Currency         string          `json:"currency"`
	CommissionerID   string          `json:"commissioner_id" validate:"required"`
	CommissionerName string          `json:"commissioner_name" validate:"required"`
	BeerValue        decimal.Decimal `json:"beer_value"`
	PizzaValue       decimal.Decimal `json:"pizza_value"`
	CoffeeValue      decimal.Decimal `json:"coffee_value"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateHouseRequest) ToUseCaseInput() usecase.CreateHouseInput {
	return usecase.CreateHouseInput{
		Name:             r.Name,
		Currency:         r.Currency,
		CommissionerID:   r.CommissionerID,
		CommissionerName: r.CommissionerName,
		BeerValue:        r.BeerValue,
		PizzaValue:       r.PizzaValue,
		CoffeeValue:      r.CoffeeValue,
	}
}

// UpdateSettingsRequest represents a request to change house settings.
type UpdateSettingsRequest struct {
	ActorID     string          `json:"actor_id" validate:"required"`
	Currency    string          `json:"currency"`
	BeerValue   decimal.Decimal `json:"beer_value"`
	PizzaValue  decimal.Decimal `json:"pizza_value"`
	CoffeeValue decimal.Decimal `json:"coffee_value"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSettingsRequest) ToUseCaseInput(houseID string) usecase.UpdateSettingsInput {
	return usecase.UpdateSettingsInput{
		HouseID:     houseID,
		ActorID:     r.ActorID,
		Currency:    r.Currency,
		BeerValue:   r.BeerValue,
		PizzaValue:  r.PizzaValue,
		CoffeeValue: r.CoffeeValue,
	}
}

// AddMemberRequest represents a request to add a house member.
type AddMemberRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

// TransactionItem represents a single raw transaction in a batch.
type TransactionItem struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    string   `json:"category,omitempty"`
	Confidence  *float64 `json:"confidence,omitempty"`
}

// AcceptEntriesRequest represents a batch of transactions to accept
// into the ledger.
type AcceptEntriesRequest struct {
	PayerID      string            `json:"payer_id" validate:"required"`
	Participants []string          `json:"participants" validate:"required,min=1"`
	Transactions []TransactionItem `json:"transactions" validate:"required,min=1"`
	ReceiptURL   string            `json:"receipt_url,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AcceptEntriesRequest) ToUseCaseInput(houseID string) usecase.AcceptEntriesInput {
	raw := make([]domain.RawTransaction, len(r.Transactions))
	for i, t := range r.Transactions {
		raw[i] = domain.RawTransaction{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Confidence:  t.Confidence,
		}
	}
	return usecase.AcceptEntriesInput{
		HouseID:      houseID,
		PayerID:      r.PayerID,
		Participants: r.Participants,
		Raw:          raw,
		ReceiptURL:   r.ReceiptURL,
	}
}

// SettleRequest represents a cash settlement.
type SettleRequest struct {
	PayerID         string          `json:"payer_id" validate:"required"`
	PayeeID         string          `json:"payee_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	ProofURL        string          `json:"proof_url,omitempty"`
	AllowOvercredit bool            `json:"allow_overcredit"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleRequest) ToUseCaseInput(houseID string) usecase.SettleInput {
	return usecase.SettleInput{
		HouseID:         houseID,
		PayerID:         r.PayerID,
		PayeeID:         r.PayeeID,
		Amount:          r.Amount,
		ProofURL:        r.ProofURL,
		AllowOvercredit: r.AllowOvercredit,
	}
}

// ConvertInKindRequest represents an in-kind conversion.
type ConvertInKindRequest struct {
	PayerID  string `json:"payer_id" validate:"required"`
	PayeeID  string `json:"payee_id" validate:"required"`
	Good     string `json:"good" validate:"required,oneof=beer pizza coffee"`
	Quantity int64  `json:"quantity" validate:"required,gt=0"`
}

// ToUseCaseInput converts to use case input.
func (r *ConvertInKindRequest) ToUseCaseInput(houseID string) usecase.ConvertInKindInput {
	return usecase.ConvertInKindInput{
		HouseID:  houseID,
		PayerID:  r.PayerID,
		PayeeID:  r.PayeeID,
		Good:     domain.GoodType(r.Good),
		Quantity: r.Quantity,
	}
}

// CreateChoreRequest represents a new chore.
type CreateChoreRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	AssignedTo  string    `json:"assigned_to" validate:"required"`
	CreatedBy   string    `json:"created_by" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateChoreRequest) ToUseCaseInput(houseID string) usecase.CreateChoreInput {
	return usecase.CreateChoreInput{
		HouseID:     houseID,
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		CreatedBy:   r.CreatedBy,
		DueDate:     r.DueDate,
	}
}

// CreateEventRequest represents a new event.
type CreateEventRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date" validate:"required"`
	CreatedBy   string          `json:"created_by" validate:"required"`
	Cost        decimal.Decimal `json:"cost"`
	Invitees    []string        `json:"invitees" validate:"required,min=1"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEventRequest) ToUseCaseInput(houseID string) usecase.CreateEventInput {
	return usecase.CreateEventInput{
		HouseID:     houseID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		CreatedBy:   r.CreatedBy,
		Cost:        r.Cost,
		Invitees:    r.Invitees,
	}
}

// RSVPRequest represents an RSVP to an event.
type RSVPRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending accepted declined"`
}

// NudgeRequest represents a nudge between members.
type NudgeRequest struct {
	FromID  string `json:"from_id" validate:"required"`
	ToID    string `json:"to_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CreateRuleRequest represents a new house rule.
type CreateRuleRequest struct {
	ActorID     string `json:"actor_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRuleRequest) ToUseCaseInput(houseID string) usecase.CreateRuleInput {
	return usecase.CreateRuleInput{
		HouseID:     houseID,
		ActorID:     r.ActorID,
		Title:       r.Title,
		Description: r.Description,
	}
}

// UpdateRuleRequest represents a change to a house rule.
type UpdateRuleRequest struct {
	ActorID     string `json:"actor_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// ParseTextRequest represents free text to parse into transactions.
type ParseTextRequest struct {
	Text string `json:"text" validate:"required"`
}

// TokenRequest represents a request for an API token.
type TokenRequest struct {
	HouseID string `json:"house_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}
