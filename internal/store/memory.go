package store

import (
	"context"
	"sync"

	"finance_tracker/internal/domain"
)

// Memory keeps users and transactions in process. It backs the "memory"
// storage driver used for local development and tests; data is lost on exit.
type Memory struct {
	mu     sync.RWMutex
	users  []domain.User
	txs    []domain.Transaction
	nextID uint
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Users returns the user side of the store.
func (m *Memory) Users() UserStore { return memoryUsers{m} }

// Transactions returns the transaction side of the store.
func (m *Memory) Transactions() TransactionStore { return memoryTransactions{m} }

func (m *Memory) id() uint {
	m.nextID++
	return m.nextID
}

type memoryUsers struct{ m *Memory }

func (s memoryUsers) Create(_ context.Context, user *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	user.ID = s.m.id()
	s.m.users = append(s.m.users, *user)
	return nil
}

func (s memoryUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s memoryUsers) Save(_ context.Context, user *domain.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for i := range s.m.users {
		if s.m.users[i].ID == user.ID {
			s.m.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (s memoryUsers) List(_ context.Context) ([]domain.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	users := make([]domain.User, len(s.m.users))
	copy(users, s.m.users)
	return users, nil
}

type memoryTransactions struct{ m *Memory }

func (s memoryTransactions) Create(_ context.Context, tx *domain.Transaction) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	tx.ID = s.m.id()
	stored := *tx
	stored.Owner = nil
	s.m.txs = append(s.m.txs, stored)
	return nil
}

func (s memoryTransactions) List(_ context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	txs := []domain.Transaction{}
	for _, tx := range s.m.txs {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.Type != nil && tx.TransactionType != *filter.Type {
			continue
		}
		for _, u := range s.m.users {
			if u.ID == tx.UserID {
				tx.Owner = &domain.User{ID: u.ID, Username: u.Username}
				break
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
