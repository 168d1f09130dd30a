package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/roomledger/internal/domain"
	"github.com/iho/roomledger/internal/usecase"
)

// MockHouseRepository is a mock implementation of HouseRepository.
type MockHouseRepository struct {
	mu      sync.RWMutex
	houses  map[string]*domain.House
	members map[string]*domain.Member

	GetByIDFunc          func(ctx context.Context, id string) (*domain.House, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.House, error)
	ListMembersFunc      func(ctx context.Context, houseID string) ([]*domain.Member, error)
	GetMemberFunc        func(ctx context.Context, houseID, memberID string) (*domain.Member, error)
}

func NewMockHouseRepository() *MockHouseRepository {
	return &MockHouseRepository{
		houses:  make(map[string]*domain.House),
		members: make(map[string]*domain.Member),
	}
}

func (m *MockHouseRepository) Create(ctx context.Context, house *domain.House, commissioner *domain.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.houses[house.ID] = house
	m.members[memberKey(commissioner.HouseID, commissioner.ID)] = commissioner
	return nil
}

func (m *MockHouseRepository) GetByID(ctx context.Context, id string) (*domain.House, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h, ok := m.houses[id]; ok {
		return h, nil
	}
	return nil, domain.ErrHouseNotFound
}

func (m *MockHouseRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.House, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockHouseRepository) UpdateSettings(ctx context.Context, house *domain.House) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.houses[house.ID] = house
	return nil
}

func (m *MockHouseRepository) AddMember(ctx context.Context, member *domain.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[memberKey(member.HouseID, member.ID)] = member
	return nil
}

func (m *MockHouseRepository) GetMember(ctx context.Context, houseID, memberID string) (*domain.Member, error) {
	if m.GetMemberFunc != nil {
		return m.GetMemberFunc(ctx, houseID, memberID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mem, ok := m.members[memberKey(houseID, memberID)]; ok {
		return mem, nil
	}
	return nil, domain.ErrMemberNotFound
}

func (m *MockHouseRepository) ListMembers(ctx context.Context, houseID string) ([]*domain.Member, error) {
	if m.ListMembersFunc != nil {
		return m.ListMembersFunc(ctx, houseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var members []*domain.Member
	for _, mem := range m.members {
		if mem.HouseID == houseID {
			members = append(members, mem)
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func memberKey(houseID, memberID string) string {
	return houseID + "/" + memberID
}

// MockExpenseRepository is an in-memory mock of ExpenseRepository.
type MockExpenseRepository struct {
	mu       sync.RWMutex
	expenses map[string]*domain.Expense
	splits   map[string]*domain.Split

	CreateBatchFunc        func(ctx context.Context, tx usecase.Transaction, expenses []*domain.Expense, splits []*domain.Split) error
	GetLedgerFunc          func(ctx context.Context, houseID string) ([]*domain.Expense, []*domain.Split, error)
	UpdateSplitSettledFunc func(ctx context.Context, tx usecase.Transaction, splitID string, settledAmount decimal.Decimal) error
}

func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		expenses: make(map[string]*domain.Expense),
		splits:   make(map[string]*domain.Split),
	}
}

func (m *MockExpenseRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, expenses []*domain.Expense, splits []*domain.Split) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, expenses, splits)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range expenses {
		m.expenses[e.ID] = e
	}
	for _, s := range splits {
		m.splits[s.ID] = s
	}
	return nil
}

func (m *MockExpenseRepository) GetLedger(ctx context.Context, houseID string) ([]*domain.Expense, []*domain.Split, error) {
	if m.GetLedgerFunc != nil {
		return m.GetLedgerFunc(ctx, houseID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	var splits []*domain.Split
	for _, e := range m.expenses {
		if e.HouseID != houseID {
			continue
		}
		expenses = append(expenses, e)
		for _, s := range m.splits {
			if s.ExpenseID == e.ID {
				splits = append(splits, s)
			}
		}
	}
	return expenses, splits, nil
}

func (m *MockExpenseRepository) GetLedgerForUpdate(ctx context.Context, tx usecase.Transaction, houseID string) ([]*domain.Expense, []*domain.Split, error) {
	return m.GetLedger(ctx, houseID)
}

func (m *MockExpenseRepository) UpdateSplitSettled(ctx context.Context, tx usecase.Transaction, splitID string, settledAmount decimal.Decimal) error {
	if m.UpdateSplitSettledFunc != nil {
		return m.UpdateSplitSettledFunc(ctx, tx, splitID, settledAmount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.splits[splitID]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	s.SettledAmount = settledAmount
	return nil
}

func (m *MockExpenseRepository) ListByBatch(ctx context.Context, houseID, batchID string) ([]*domain.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var expenses []*domain.Expense
	for _, e := range m.expenses {
		if e.HouseID == houseID && e.BatchID == batchID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

// MockSettlementRepository is an in-memory mock of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements map[string]*domain.Settlement

	CreateFunc func(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{settlements: make(map[string]*domain.Settlement)}
}

func (m *MockSettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settlements[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSettlementNotFound
}

func (m *MockSettlementRepository) ListByHouse(ctx context.Context, houseID string, limit, offset int) ([]*domain.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settlements []*domain.Settlement
	for _, s := range m.settlements {
		if s.HouseID == houseID {
			settlements = append(settlements, s)
		}
	}
	return settlements, nil
}

// MockNotificationRepository is an in-memory mock of NotificationRepository.
type MockNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification

	CreateFunc func(ctx context.Context, n *domain.Notification) error
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, n)
	return nil
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *MockNotificationRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.notifications {
		if n.ID == notificationID && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (m *MockNotificationRepository) ClearRead(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && n.Read {
			continue
		}
		kept = append(kept, n)
	}
	m.notifications = kept
	return nil
}

func (m *MockNotificationRepository) ClearAll(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	m.notifications = kept
	return nil
}

// MockLeaderboardRepository is an in-memory mock of LeaderboardRepository.
type MockLeaderboardRepository struct {
	mu     sync.RWMutex
	points map[string]int

	AddPointsFunc func(ctx context.Context, houseID, userID string, points int, reason domain.PointsReason) error
}

func NewMockLeaderboardRepository() *MockLeaderboardRepository {
	return &MockLeaderboardRepository{points: make(map[string]int)}
}

func (m *MockLeaderboardRepository) AddPoints(ctx context.Context, houseID, userID string, points int, reason domain.PointsReason) error {
	if m.AddPointsFunc != nil {
		return m.AddPointsFunc(ctx, houseID, userID, points, reason)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points[memberKey(houseID, userID)] += points
	return nil
}

func (m *MockLeaderboardRepository) Standings(ctx context.Context, houseID string) ([]*domain.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LeaderboardEntry
	for key, points := range m.points {
		entries = append(entries, &domain.LeaderboardEntry{
			HouseID: houseID,
			UserID:  key[len(houseID)+1:],
			Points:  points,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries, nil
}

// Points returns the recorded points for a member, for assertions.
func (m *MockLeaderboardRepository) Points(houseID, userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.points[memberKey(houseID, userID)]
}

// MockChoreRepository is an in-memory mock of ChoreRepository.
type MockChoreRepository struct {
	mu     sync.RWMutex
	chores map[string]*domain.Chore
}

func NewMockChoreRepository() *MockChoreRepository {
	return &MockChoreRepository{chores: make(map[string]*domain.Chore)}
}

func (m *MockChoreRepository) Create(ctx context.Context, chore *domain.Chore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chores[chore.ID] = chore
	return nil
}

func (m *MockChoreRepository) GetByID(ctx context.Context, id string) (*domain.Chore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.chores[id]; ok {
		return c, nil
	}
	return nil, domain.ErrChoreNotFound
}

func (m *MockChoreRepository) ListByHouse(ctx context.Context, houseID string, includeCompleted bool) ([]*domain.Chore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var chores []*domain.Chore
	for _, c := range m.chores {
		if c.HouseID != houseID {
			continue
		}
		if c.Completed && !includeCompleted {
			continue
		}
		chores = append(chores, c)
	}
	return chores, nil
}

func (m *MockChoreRepository) MarkCompleted(ctx context.Context, id string, completedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chores[id]
	if !ok {
		return domain.ErrChoreNotFound
	}
	c.Completed = true
	c.CompletedAt = &completedAt
	return nil
}

// MockEventRepository is an in-memory mock of EventRepository.
type MockEventRepository struct {
	mu        sync.RWMutex
	events    map[string]*domain.Event
	attendees map[string][]*domain.EventAttendee
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{
		events:    make(map[string]*domain.Event),
		attendees: make(map[string][]*domain.EventAttendee),
	}
}

func (m *MockEventRepository) Create(ctx context.Context, event *domain.Event, attendees []*domain.EventAttendee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	m.attendees[event.ID] = attendees
	return nil
}

func (m *MockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEventNotFound
}

func (m *MockEventRepository) ListByHouse(ctx context.Context, houseID string) ([]*domain.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.Event
	for _, e := range m.events {
		if e.HouseID == houseID {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *MockEventRepository) ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.attendees[eventID], nil
}

func (m *MockEventRepository) SetRSVP(ctx context.Context, eventID, userID string, status domain.RSVPStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendees[eventID] {
		if a.UserID == userID {
			a.Status = status
			return nil
		}
	}
	return domain.ErrEventNotFound
}

func (m *MockEventRepository) ClaimBilling(ctx context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[eventID]
	if !ok {
		return false, domain.ErrEventNotFound
	}
	if e.Billed {
		return false, nil
	}
	e.Billed = true
	return true, nil
}

func (m *MockEventRepository) ReleaseBilling(ctx context.Context, eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.events[eventID]; ok {
		e.Billed = false
	}
	return nil
}

// MockRuleRepository is an in-memory mock of RuleRepository.
type MockRuleRepository struct {
	mu    sync.RWMutex
	rules map[string]*domain.HouseRule
}

func NewMockRuleRepository() *MockRuleRepository {
	return &MockRuleRepository{rules: make(map[string]*domain.HouseRule)}
}

func (m *MockRuleRepository) Create(ctx context.Context, rule *domain.HouseRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[rule.ID] = rule
	return nil
}

func (m *MockRuleRepository) Update(ctx context.Context, rule *domain.HouseRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[rule.ID]; !ok {
		return domain.ErrRuleNotFound
	}
	m.rules[rule.ID] = rule
	return nil
}

func (m *MockRuleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rules[id]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(m.rules, id)
	return nil
}

func (m *MockRuleRepository) ListByHouse(ctx context.Context, houseID string) ([]*domain.HouseRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var rules []*domain.HouseRule
	for _, r := range m.rules {
		if r.HouseID == houseID {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu    sync.Mutex
	Begun []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator generates sequential IDs.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%04d", m.next)
}

// MockCache is an in-memory mock of Cache.
type MockCache struct {
	mu      sync.RWMutex
	values  map[string]string
	Deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}

// MockNotifier records emitted notifications.
type MockNotifier struct {
	EmitFunc func(ctx context.Context, userID string, t domain.NotificationType, p domain.NotificationPayload) (*domain.Notification, error)

	mu      sync.Mutex
	Emitted []*domain.Notification
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) Emit(ctx context.Context, userID string, t domain.NotificationType, p domain.NotificationPayload) (*domain.Notification, error) {
	if m.EmitFunc != nil {
		return m.EmitFunc(ctx, userID, t, p)
	}
	title, message, err := domain.RenderNotification(t, p)
	if err != nil {
		return nil, err
	}
	n := &domain.Notification{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Emitted = append(m.Emitted, n)
	return n, nil
}

// MockParser is a mock implementation of TransactionParser.
type MockParser struct {
	ParseTextFunc  func(ctx context.Context, text string) ([]domain.RawTransaction, error)
	ParseImageFunc func(ctx context.Context, imageJPEG []byte) ([]domain.RawTransaction, error)
}

func NewMockParser() *MockParser {
	return &MockParser{}
}

func (m *MockParser) ParseText(ctx context.Context, text string) ([]domain.RawTransaction, error) {
	if m.ParseTextFunc != nil {
		return m.ParseTextFunc(ctx, text)
	}
	return nil, nil
}

func (m *MockParser) ParseImage(ctx context.Context, imageJPEG []byte) ([]domain.RawTransaction, error) {
	if m.ParseImageFunc != nil {
		return m.ParseImageFunc(ctx, imageJPEG)
	}
	return nil, nil
}
