// Package store persists users and transactions.
package store

import (
	"context"
	"errors"

	"finance_tracker/internal/domain"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateEmail is returned when a user is created with an email already in use.
var ErrDuplicateEmail = errors.New("email already registered")

// UserStore defines persistence operations on users.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

// TransactionFilter narrows a listing. A nil Type matches both income and expense.
type TransactionFilter struct {
	UserID uint
	Type   *bool
}

// TransactionStore defines persistence operations on transactions.
type TransactionStore interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	// List returns the matching transactions in insertion order with Owner
	// populated with the owner's id and username.
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
}
