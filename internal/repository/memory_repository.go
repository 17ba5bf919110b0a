package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/spec-kit/ticket-console/internal/domain"
)

// NewMemoryStore returns repositories kept in process memory. Used when no
// Postgres DSN is configured and by tests.
func NewMemoryStore() *Store {
	return &Store{
		Users:      &memoryUsers{byID: map[int]Account{}},
		Categories: &memoryCategories{byID: map[int]domain.IssueCategory{}},
		Tickets:    &memoryTickets{},
	}
}

type memoryUsers struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]Account
}

func (r *memoryUsers) Create(_ context.Context, account *Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Email, account.Email) {
			return ErrDuplicate
		}
	}
	r.nextID++
	account.ID = r.nextID
	r.byID[account.ID] = *account
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id int) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.byID {
		if strings.EqualFold(account.Email, email) {
			found := account
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0, len(r.byID))
	for _, account := range r.byID {
		users = append(users, account.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type memoryCategories struct {
	mu     sync.RWMutex
	nextID int
	byID   map[int]domain.IssueCategory
}

func (r *memoryCategories) nameTaken(name string, exceptID int) bool {
	for id, existing := range r.byID {
		if id != exceptID && existing.Name == name {
			return true
		}
	}
	return false
}

func (r *memoryCategories) Create(_ context.Context, category *domain.IssueCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTaken(category.Name, 0) {
		return ErrDuplicate
	}
	r.nextID++
	category.ID = r.nextID
	r.byID[category.ID] = *category
	return nil
}

func (r *memoryCategories) Update(_ context.Context, category *domain.IssueCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[category.ID]; !ok {
		return ErrNotFound
	}
	if r.nameTaken(category.Name, category.ID) {
		return ErrDuplicate
	}
	r.byID[category.ID] = *category
	return nil
}

func (r *memoryCategories) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memoryCategories) GetByID(_ context.Context, id int) (*domain.IssueCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

func (r *memoryCategories) GetByName(_ context.Context, name string) (*domain.IssueCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, category := range r.byID {
		if category.Name == name {
			found := category
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryCategories) List(_ context.Context) ([]domain.IssueCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	categories := make([]domain.IssueCategory, 0, len(r.byID))
	for _, category := range r.byID {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

type memoryTickets struct {
	mu      sync.RWMutex
	tickets []domain.Ticket
}

func (r *memoryTickets) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = len(r.tickets) + 1
	r.tickets = append(r.tickets, *ticket)
	return nil
}

func (r *memoryTickets) ListByCreator(_ context.Context, userID int) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tickets := []domain.Ticket{}
	for _, ticket := range r.tickets {
		if ticket.CreatedBy == userID {
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}
