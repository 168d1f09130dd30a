package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
)

// HouseRepository defines data access for houses and their members.
type HouseRepository interface {
	Create(ctx context.Context, house *domain.House, commissioner *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.House, error)
	// GetByIDForUpdate locks the house row for the duration of the
	// transaction, serializing settlement application per house.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.House, error)
	UpdateSettings(ctx context.Context, house *domain.House) error
	AddMember(ctx context.Context, member *domain.Member) error
	GetMember(ctx context.Context, houseID, memberID string) (*domain.Member, error)
	ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error)
}

// ExpenseRepository defines data access for expenses and splits.
type ExpenseRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, expenses []*domain.Expense, splits []*domain.Split) error
	GetLedger(ctx context.Context, houseID string) ([]*domain.Expense, []*domain.Split, error)
	// GetLedgerForUpdate reads the ledger inside a transaction so a
	// settlement validates against the balance it will mutate.
	GetLedgerForUpdate(ctx context.Context, tx Transaction, houseID string) ([]*domain.Expense, []*domain.Split, error)
	UpdateSplitSettled(ctx context.Context, tx Transaction, splitID string, settledAmount decimal.Decimal) error
	ListByBatch(ctx context.Context, houseID, batchID string) ([]*domain.Expense, error)
}

// SettlementRepository defines data access for settlements.
type SettlementRepository interface {
	Create(ctx context.Context, tx Transaction, settlement *domain.Settlement) error
	GetByID(ctx context.Context, id string) (*domain.Settlement, error)
	ListByHouse(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error)
}

// NotificationRepository defines the per-user notification store.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, notificationID string) error
	ClearRead(ctx context.Context, userID string) error
	ClearAll(ctx context.Context, userID string) error
}

// ChoreRepository defines data access for chores.
type ChoreRepository interface {
	Create(ctx context.Context, chore *domain.Chore) error
	GetByID(ctx context.Context, id string) (*domain.Chore, error)
	ListByHouse(ctx context.Context, houseID string, includeCompleted bool) ([]*domain.Chore, error)
	MarkCompleted(ctx context.Context, id string, completedAt time.Time) error
}

// EventRepository defines data access for events and RSVPs.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event, attendees []*domain.EventAttendee) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListByHouse(ctx context.Context, houseID string) ([]*domain.Event, error)
	ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error)
	SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) error
	ClaimBilling(ctx context.Context, eventID string) (bool, error)
	ReleaseBilling(ctx context.Context, eventID string) error
}

// LeaderboardRepository defines data access for leaderboard points.
type LeaderboardRepository interface {
	AddPoints(ctx context.Context, houseID, userID string, points int, reason domain.PointsReason) error
	Standings(ctx context.Context, houseID string) ([]*domain.LeaderboardEntry, error)
}

// RuleRepository defines data access for house rules.
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.HouseRule) error
	Update(ctx context.Context, rule *domain.HouseRule) error
	Delete(ctx context.Context, id string) error
	ListByHouse(ctx context.Context, houseID string) ([]*domain.HouseRule, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique, time-sortable IDs. Batch ids come from
// here too: uniqueness must hold under concurrent callers.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for balance snapshots. Snapshots
// are display copies only and may go stale; writes invalidate them.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// TransactionParser turns free text or a receipt photo into raw
// transaction records. Its output is untrusted and goes through full
// validation before anything reaches the ledger.
type TransactionParser interface {
	ParseText(ctx context.Context, text string) ([]domain.RawTransaction, error)
	ParseImage(ctx context.Context, imageJPEG []byte) ([]domain.RawTransaction, error)
}

// Notifier emits user-facing notifications for domain events.
type Notifier interface {
	Emit(ctx context.Context, userID string, t domain.NotificationType, p domain.NotificationPayload) (*domain.Notification, error)
}
