package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// HouseResponse represents a house in API responses.
type HouseResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	CommissionerID string          `json:"commissioner_id"`
	BeerValue      decimal.Decimal `json:"beer_value"`
	PizzaValue     decimal.Decimal `json:"pizza_value"`
	CoffeeValue    decimal.Decimal `json:"coffee_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// HouseFromDomain converts a domain house to a response.
func HouseFromDomain(h *domain.House) *HouseResponse {
	return &HouseResponse{
		ID:             h.ID,
		Name:           h.Name,
		Currency:       h.Currency,
		CommissionerID: h.CommissionerID,
		BeerValue:      h.BeerValue,
		PizzaValue:     h.PizzaValue,
		CoffeeValue:    h.CoffeeValue,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

// MemberResponse represents a house member in API responses.
type MemberResponse struct {
	ID       string      `json:"id"`
	HouseID  string      `json:"house_id"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
	JoinedAt time.Time   `json:"joined_at"`
}

// MemberFromDomain converts a domain member to a response.
func MemberFromDomain(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		HouseID:  m.HouseID,
		Name:     m.Name,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
	}
}

// MembersFromDomain converts domain members to responses.
func MembersFromDomain(members []*domain.Member) []*MemberResponse {
	result := make([]*MemberResponse, len(members))
	for i, m := range members {
		result[i] = MemberFromDomain(m)
	}
	return result
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID          string           `json:"id"`
	HouseID     string           `json:"house_id"`
	BatchID     string           `json:"batch_id"`
	PayerID     string           `json:"payer_id"`
	Amount      decimal.Decimal  `json:"amount"`
	Description string           `json:"description"`
	Category    domain.Category  `json:"category"`
	Date        time.Time        `json:"date"`
	Confidence  *decimal.Decimal `json:"confidence,omitempty"`
	ReceiptURL  string           `json:"receipt_url,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		HouseID:     e.HouseID,
		BatchID:     e.BatchID,
		PayerID:     e.PayerID,
		Amount:      e.Amount,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Confidence:  e.Confidence,
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
	}
}

// ExpensesFromDomain converts domain expenses to responses.
func ExpensesFromDomain(expenses []*domain.Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ExpenseFromDomain(e)
	}
	return result
}

// SplitResponse represents a split in API responses.
type SplitResponse struct {
	ID            string          `json:"id"`
	ExpenseID     string          `json:"expense_id"`
	MemberID      string          `json:"member_id"`
	Owed          decimal.Decimal `json:"owed"`
	SettledAmount decimal.Decimal `json:"settled_amount"`
}

// SplitsFromDomain converts domain splits to responses.
func SplitsFromDomain(splits []*domain.Split) []*SplitResponse {
	result := make([]*SplitResponse, len(splits))
	for i, s := range splits {
		result[i] = &SplitResponse{
			ID:            s.ID,
			ExpenseID:     s.ExpenseID,
			MemberID:      s.MemberID,
			Owed:          s.Owed,
			SettledAmount: s.SettledAmount,
		}
	}
	return result
}

// BatchResponse represents an accepted batch in API responses.
type BatchResponse struct {
	BatchID  string             `json:"batch_id"`
	Expenses []*ExpenseResponse `json:"expenses"`
	Splits   []*SplitResponse   `json:"splits"`
	Warnings []string           `json:"warnings,omitempty"`
}

// BatchFromUseCase converts an accepted batch to a response.
func BatchFromUseCase(b *usecase.AcceptedBatch) *BatchResponse {
	return &BatchResponse{
		BatchID:  b.BatchID,
		Expenses: ExpensesFromDomain(b.Expenses),
		Splits:   SplitsFromDomain(b.Splits),
		Warnings: b.Warnings,
	}
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID        string                `json:"id"`
	HouseID   string                `json:"house_id"`
	PayerID   string                `json:"payer_id"`
	PayeeID   string                `json:"payee_id"`
	Amount    decimal.Decimal       `json:"amount"`
	Kind      domain.SettlementKind `json:"kind"`
	Good      domain.GoodType       `json:"good,omitempty"`
	Quantity  int64                 `json:"quantity,omitempty"`
	UnitValue decimal.Decimal       `json:"unit_value,omitempty"`
	ProofURL  string                `json:"proof_url,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:        s.ID,
		HouseID:   s.HouseID,
		PayerID:   s.PayerID,
		PayeeID:   s.PayeeID,
		Amount:    s.Amount,
		Kind:      s.Kind,
		Good:      s.Good,
		Quantity:  s.Quantity,
		UnitValue: s.UnitValue,
		ProofURL:  s.ProofURL,
		CreatedAt: s.CreatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// BalancesResponse represents house balances in API responses.
type BalancesResponse struct {
	HouseID  string                     `json:"house_id"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// PairwiseResponse represents a pairwise balance. A positive amount
// means B owes A.
type PairwiseResponse struct {
	MemberA string          `json:"member_a"`
	MemberB string          `json:"member_b"`
	Amount  decimal.Decimal `json:"amount"`
}

// MaxAffordableResponse represents an affordability query result.
type MaxAffordableResponse struct {
	Good     domain.GoodType `json:"good"`
	Quantity int64           `json:"quantity"`
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"created_at"`
}

// NotificationFromDomain converts a domain notification to a response.
func NotificationFromDomain(n *domain.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationsFromDomain converts domain notifications to responses.
func NotificationsFromDomain(notifications []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = NotificationFromDomain(n)
	}
	return result
}

// ChoreResponse represents a chore in API responses.
type ChoreResponse struct {
	ID          string     `json:"id"`
	HouseID     string     `json:"house_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assigned_to"`
	CreatedBy   string     `json:"created_by"`
	DueDate     time.Time  `json:"due_date"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ChoreFromDomain converts a domain chore to a response.
func ChoreFromDomain(c *domain.Chore) *ChoreResponse {
	return &ChoreResponse{
		ID:          c.ID,
		HouseID:     c.HouseID,
		Title:       c.Title,
		Description: c.Description,
		AssignedTo:  c.AssignedTo,
		CreatedBy:   c.CreatedBy,
		DueDate:     c.DueDate,
		Completed:   c.Completed,
		CompletedAt: c.CompletedAt,
		CreatedAt:   c.CreatedAt,
	}
}

// ChoresFromDomain converts domain chores to responses.
func ChoresFromDomain(chores []*domain.Chore) []*ChoreResponse {
	result := make([]*ChoreResponse, len(chores))
	for i, c := range chores {
		result[i] = ChoreFromDomain(c)
	}
	return result
}

// EventResponse represents an event in API responses.
type EventResponse struct {
	ID          string          `json:"id"`
	HouseID     string          `json:"house_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedBy   string          `json:"created_by"`
	Cost        decimal.Decimal `json:"cost"`
	Billed      bool            `json:"billed"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EventFromDomain converts a domain event to a response.
func EventFromDomain(e *domain.Event) *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		HouseID:     e.HouseID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		CreatedBy:   e.CreatedBy,
		Cost:        e.Cost,
		Billed:      e.Billed,
		CreatedAt:   e.CreatedAt,
	}
}

// EventsFromDomain converts domain events to responses.
func EventsFromDomain(events []*domain.Event) []*EventResponse {
	result := make([]*EventResponse, len(events))
	for i, e := range events {
		result[i] = EventFromDomain(e)
	}
	return result
}

// LeaderboardEntryResponse represents a leaderboard standing.
type LeaderboardEntryResponse struct {
	UserID string `json:"user_id"`
	Points int    `json:"points"`
}

// StandingsFromDomain converts leaderboard entries to responses.
func StandingsFromDomain(entries []*domain.LeaderboardEntry) []*LeaderboardEntryResponse {
	result := make([]*LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &LeaderboardEntryResponse{
			UserID: e.UserID,
			Points: e.Points,
		}
	}
	return result
}

// RuleResponse represents a house rule in API responses.
type RuleResponse struct {
	ID          string    `json:"id"`
	HouseID     string    `json:"house_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RuleFromDomain converts a domain rule to a response.
func RuleFromDomain(r *domain.HouseRule) *RuleResponse {
	return &RuleResponse{
		ID:          r.ID,
		HouseID:     r.HouseID,
		Title:       r.Title,
		Description: r.Description,
		CreatedBy:   r.CreatedBy,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RulesFromDomain converts domain rules to responses.
func RulesFromDomain(rules []*domain.HouseRule) []*RuleResponse {
	result := make([]*RuleResponse, len(rules))
	for i, r := range rules {
		result[i] = RuleFromDomain(r)
	}
	return result
}

// ParsedTransactionsResponse represents parser output. Transactions
// are unvalidated until accepted into the ledger.
type ParsedTransactionsResponse struct {
	Transactions []domain.RawTransaction `json:"transactions"`
}

// TokenResponse represents an issued API token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
