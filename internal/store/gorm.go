package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"finance_tracker/internal/domain"
)

type gormUserStore struct {
	db *gorm.DB
}

// NewGormUserStore builds a GORM-backed user store.
func NewGormUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) Create(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *gormUserStore) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *gormUserStore) Save(ctx context.Context, user *domain.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

func (s *gormUserStore) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type gormTransactionStore struct {
	db *gorm.DB
}

// NewGormTransactionStore builds a GORM-backed transaction store.
func NewGormTransactionStore(db *gorm.DB) TransactionStore {
	return &gormTransactionStore{db: db}
}

func (s *gormTransactionStore) Create(ctx context.Context, tx *domain.Transaction) error {
	return s.db.WithContext(ctx).Omit("Owner").Create(tx).Error
}

func (s *gormTransactionStore) List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error) {
	query := s.db.WithContext(ctx).
		Preload("Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username") // Only what the listing exposes
		}).
		Where("user_id = ?", filter.UserID)
	if filter.Type != nil {
		query = query.Where("transaction_type = ?", *filter.Type)
	}
	txs := []domain.Transaction{}
	if err := query.Order("id").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
