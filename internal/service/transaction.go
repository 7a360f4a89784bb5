package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"finance_tracker/internal/domain"
	"finance_tracker/internal/store"
	"finance_tracker/internal/utils"
)

var (
	// ErrOwnerMissing is returned when the resolved owner disappears before the insert.
	ErrOwnerMissing = errors.New("transaction owner not found")
	// ErrInvalidTypeFlag is returned when the transactionType query value is not a boolean.
	ErrInvalidTypeFlag = errors.New("invalid transactionType")
)

// NewTransaction is the caller-supplied part of a transaction.
type NewTransaction struct {
	CategoryName      string
	CategoryImageLink string
	TransactionType   bool
	Amount            float64
	Date              string
}

// Listing is the result of a transaction query: the resolved owner and the
// matching transactions, each with Owner populated.
type Listing struct {
	Owner        *domain.User
	Transactions []domain.Transaction
}

// TransactionService records and lists transactions of authenticated users.
type TransactionService struct {
	users store.UserStore
	txs   store.TransactionStore
	cache *utils.Cache
}

// NewTransactionService creates a TransactionService. cache may be nil.
func NewTransactionService(users store.UserStore, txs store.TransactionStore, cache *utils.Cache) *TransactionService {
	return &TransactionService{users: users, txs: txs, cache: cache}
}

// Add stores a transaction owned by the user with email.
func (s *TransactionService) Add(ctx context.Context, email string, in NewTransaction) (*domain.Transaction, error) {
	user, err := s.owner(ctx, email)
	if err != nil {
		return nil, err
	}

	// Re-check the owner id right before the insert
	if _, err := s.users.FindByID(ctx, user.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOwnerMissing
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	tx := &domain.Transaction{
		UserID:            user.ID,
		CategoryName:      in.CategoryName,
		CategoryImageLink: in.CategoryImageLink,
		TransactionType:   in.TransactionType,
		Amount:            in.Amount,
		Date:              in.Date,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := s.cache.Delete(ctx, listingKeys(user.ID)...); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Warn("Failed to invalidate transaction listings")
	}
	return tx, nil
}

// ListAll returns every transaction of the user with email.
func (s *TransactionService) ListAll(ctx context.Context, email string) (*Listing, error) {
	return s.list(ctx, email, nil)
}

// ListIncome returns the user's transactions whose type equals the JSON
// boolean in rawType. A JSON null matches nothing.
func (s *TransactionService) ListIncome(ctx context.Context, email, rawType string) (*Listing, error) {
	user, err := s.owner(ctx, email)
	if err != nil {
		return nil, err
	}
	flag, err := ParseTypeFlag(rawType)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		// Every stored transaction has a type, so a null filter matches none
		return &Listing{Owner: user, Transactions: []domain.Transaction{}}, nil
	}
	return s.listFor(ctx, user, flag)
}

// ListExpense returns the user's expense transactions. The transactionType
// query value is not consulted.
func (s *TransactionService) ListExpense(ctx context.Context, email string) (*Listing, error) {
	expense := domain.Expense
	return s.list(ctx, email, &expense)
}

func (s *TransactionService) list(ctx context.Context, email string, txType *bool) (*Listing, error) {
	user, err := s.owner(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.listFor(ctx, user, txType)
}

func (s *TransactionService) listFor(ctx context.Context, user *domain.User, txType *bool) (*Listing, error) {
	key := listingKey(user.ID, txType)

	var cached []domain.Transaction
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Listing cache read failed")
	}
	if err == nil && found {
		return &Listing{Owner: user, Transactions: cached}, nil
	}

	txs, err := s.txs.List(ctx, store.TransactionFilter{UserID: user.ID, Type: txType})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	_ = s.cache.Set(ctx, key, txs) // Best effort, a failed write is just a miss next time
	return &Listing{Owner: user, Transactions: txs}, nil
}

func (s *TransactionService) owner(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ParseTypeFlag decodes the transactionType query value as JSON and casts it
// to a boolean. Accepted: true, false, 1, 0 and the quoted strings
// "true", "false", "1", "0", "yes", "no". A JSON null yields a nil flag.
func ParseTypeFlag(raw string) (*bool, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTypeFlag, err)
	}
	yes, no := true, false
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return &t, nil
	case float64:
		switch t {
		case 1:
			return &yes, nil
		case 0:
			return &no, nil
		}
	case string:
		switch t {
		case "true", "1", "yes":
			return &yes, nil
		case "false", "0", "no":
			return &no, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot cast %s to boolean", ErrInvalidTypeFlag, strconv.Quote(raw))
}

func listingKey(userID uint, txType *bool) string {
	kind := "all"
	if txType != nil {
		kind = "expense"
		if *txType {
			kind = "income"
		}
	}
	return "txlist:user:" + strconv.FormatUint(uint64(userID), 10) + ":" + kind
}

func listingKeys(userID uint) []string {
	income, expense := domain.Income, domain.Expense
	return []string{
		listingKey(userID, nil),
		listingKey(userID, &income),
		listingKey(userID, &expense),
	}
}
