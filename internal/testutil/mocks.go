package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/budgetbook/budgetbook-backend/internal/domain"
	"github.com/dafibh/budgetbook/budgetbook-backend/internal/websocket"
)

// Store is an in-memory database shared by the mock repositories.
// It enforces the same integrity rules as the schema: unique usernames,
// category protection and entry cascade on budget delete.
type Store struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*domain.User
	categories map[int64]*domain.Category
	budgets    map[int64]*domain.Budget
	entries    map[int64]*domain.BudgetEntry
}

// NewStore creates an empty Store
func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*domain.User),
		categories: make(map[int64]*domain.Category),
		budgets:    make(map[int64]*domain.Budget),
		entries:    make(map[int64]*domain.BudgetEntry),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// UserCount returns the number of stored users
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// EntryCount returns the number of stored entries
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// EntriesOf returns the ids of the entries stored under budgetID
func (s *Store) EntriesOf(budgetID int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for _, e := range s.entries {
		if e.BudgetID == budgetID {
			ids = append(ids, e.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Users returns a domain.UserRepository backed by the store
func (s *Store) Users() *MockUserRepository { return &MockUserRepository{store: s} }

// Categories returns a domain.CategoryRepository backed by the store
func (s *Store) Categories() *MockCategoryRepository { return &MockCategoryRepository{store: s} }

// Budgets returns a domain.BudgetRepository backed by the store
func (s *Store) Budgets() *MockBudgetRepository { return &MockBudgetRepository{store: s} }

// Entries returns a domain.BudgetEntryRepository backed by the store
func (s *Store) Entries() *MockBudgetEntryRepository { return &MockBudgetEntryRepository{store: s} }

func paginate[T any](items []T, page domain.PageRequest) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	store *Store
}

// Create stores a user, rejecting taken usernames
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, u := range m.store.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	stored := *user
	stored.ID = m.store.id()
	stored.CreatedAt = time.Now().UTC()
	m.store.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if u, ok := m.store.users[id]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByUsername retrieves a user by username
func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	for _, u := range m.store.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	store *Store
}

// Create stores a category
func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	stored := *category
	stored.ID = m.store.id()
	stored.CreatedAt = time.Now().UTC()
	m.store.categories[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *MockCategoryRepository) visible(scope domain.Scope, id int64) (*domain.Category, bool) {
	c, ok := m.store.categories[id]
	if !ok || !scope.Permits(c.UserID) {
		return nil, false
	}
	return c, true
}

// GetByID retrieves a category visible under scope
func (m *MockCategoryRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	c, ok := m.visible(scope, id)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	out := *c
	return &out, nil
}

func (m *MockCategoryRepository) matching(scope domain.Scope) []*domain.Category {
	var result []*domain.Category
	for _, c := range m.store.categories {
		if scope.Permits(c.UserID) {
			out := *c
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// List returns one page of categories ordered by name
func (m *MockCategoryRepository) List(ctx context.Context, scope domain.Scope, page domain.PageRequest) ([]*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return paginate(m.matching(scope), page), nil
}

// Count returns the number of categories visible under scope
func (m *MockCategoryRepository) Count(ctx context.Context, scope domain.Scope) (int64, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return int64(len(m.matching(scope))), nil
}

// Update renames a category visible under scope
func (m *MockCategoryRepository) Update(ctx context.Context, scope domain.Scope, category *domain.Category) (*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	c, ok := m.visible(scope, category.ID)
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	c.Name = category.Name
	out := *c
	return &out, nil
}

// Delete removes a category unless a budget references it
func (m *MockCategoryRepository) Delete(ctx context.Context, scope domain.Scope, id int64) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.visible(scope, id); !ok {
		return domain.ErrCategoryNotFound
	}
	for _, b := range m.store.budgets {
		if b.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	delete(m.store.categories, id)
	return nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	store *Store
}

func (m *MockBudgetRepository) withCategory(b *domain.Budget) *domain.Budget {
	out := *b
	out.Entries = nil
	if c, ok := m.store.categories[b.CategoryID]; ok {
		out.CategoryName = c.Name
	}
	return &out
}

// Create stores a budget; the category must exist
func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) (*domain.Budget, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.categories[budget.CategoryID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	stored := *budget
	stored.ID = m.store.id()
	stored.Entries = nil
	stored.CreatedAt = time.Now().UTC()
	m.store.budgets[stored.ID] = &stored
	return m.withCategory(&stored), nil
}

func (m *MockBudgetRepository) visible(scope domain.Scope, id int64) (*domain.Budget, bool) {
	b, ok := m.store.budgets[id]
	if !ok || !scope.Permits(b.UserID) {
		return nil, false
	}
	return b, true
}

// GetByID retrieves a budget visible under scope
func (m *MockBudgetRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.Budget, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	b, ok := m.visible(scope, id)
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	return m.withCategory(b), nil
}

func (m *MockBudgetRepository) matching(scope domain.Scope, filter domain.BudgetFilter) []*domain.Budget {
	var result []*domain.Budget
	for _, b := range m.store.budgets {
		if !scope.Permits(b.UserID) {
			continue
		}
		out := m.withCategory(b)
		if filter.Matches(out.CategoryName) {
			result = append(result, out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// List returns one page of budgets ordered by name
func (m *MockBudgetRepository) List(ctx context.Context, scope domain.Scope, filter domain.BudgetFilter, page domain.PageRequest) ([]*domain.Budget, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return paginate(m.matching(scope, filter), page), nil
}

// Count returns the number of budgets matching scope and filter
func (m *MockBudgetRepository) Count(ctx context.Context, scope domain.Scope, filter domain.BudgetFilter) (int64, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return int64(len(m.matching(scope, filter))), nil
}

// Update changes name and category of a budget visible under scope
func (m *MockBudgetRepository) Update(ctx context.Context, scope domain.Scope, budget *domain.Budget) (*domain.Budget, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	b, ok := m.visible(scope, budget.ID)
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	if _, ok := m.store.categories[budget.CategoryID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	b.Name = budget.Name
	b.CategoryID = budget.CategoryID
	return m.withCategory(b), nil
}

// Delete removes a budget and cascades to its entries
func (m *MockBudgetRepository) Delete(ctx context.Context, scope domain.Scope, id int64) (int64, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.visible(scope, id); !ok {
		return 0, domain.ErrBudgetNotFound
	}
	var removed int64
	for entryID, e := range m.store.entries {
		if e.BudgetID == id {
			delete(m.store.entries, entryID)
			removed++
		}
	}
	delete(m.store.budgets, id)
	return removed, nil
}

// MockBudgetEntryRepository is a mock implementation of domain.BudgetEntryRepository
type MockBudgetEntryRepository struct {
	store *Store
}

func (m *MockBudgetEntryRepository) visible(scope domain.Scope, id int64) (*domain.BudgetEntry, bool) {
	e, ok := m.store.entries[id]
	if !ok {
		return nil, false
	}
	b, ok := m.store.budgets[e.BudgetID]
	if !ok || !scope.Permits(b.UserID) {
		return nil, false
	}
	return e, true
}

// Create stores an entry; the budget must exist
func (m *MockBudgetEntryRepository) Create(ctx context.Context, entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.store.budgets[entry.BudgetID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	stored := *entry
	stored.ID = m.store.id()
	stored.CreatedAt = time.Now().UTC()
	m.store.entries[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByID retrieves an entry whose budget is visible under scope
func (m *MockBudgetEntryRepository) GetByID(ctx context.Context, scope domain.Scope, id int64) (*domain.BudgetEntry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	e, ok := m.visible(scope, id)
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	out := *e
	return &out, nil
}

// Update rewrites an entry whose budget is visible under scope
func (m *MockBudgetEntryRepository) Update(ctx context.Context, scope domain.Scope, entry *domain.BudgetEntry) (*domain.BudgetEntry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	e, ok := m.visible(scope, entry.ID)
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	if _, ok := m.store.budgets[entry.BudgetID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	e.Name = entry.Name
	e.Value = entry.Value
	e.Type = entry.Type
	e.BudgetID = entry.BudgetID
	out := *e
	return &out, nil
}

// Delete removes an entry whose budget is visible under scope
func (m *MockBudgetEntryRepository) Delete(ctx context.Context, scope domain.Scope, id int64) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	if _, ok := m.visible(scope, id); !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.store.entries, id)
	return nil
}

// ListByBudgets returns the entries of the given budgets ordered by budget and id
func (m *MockBudgetEntryRepository) ListByBudgets(ctx context.Context, budgetIDs []int64) ([]*domain.BudgetEntry, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	wanted := make(map[int64]bool, len(budgetIDs))
	for _, id := range budgetIDs {
		wanted[id] = true
	}
	result := []*domain.BudgetEntry{}
	for _, e := range m.store.entries {
		if wanted[e.BudgetID] {
			out := *e
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].BudgetID != result[j].BudgetID {
			return result[i].BudgetID < result[j].BudgetID
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one recorded Publish call
type PublishedEvent struct {
	UserID int64
	Event  websocket.Event
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID int64, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{UserID: userID, Event: event})
}

// Types returns the recorded event types in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}
