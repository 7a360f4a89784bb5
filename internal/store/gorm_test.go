package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance_tracker/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One connection, so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Transaction{}))
	return db
}

func TestGormUsers_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewGormUserStore(setupTestDB(t))

	u := seedUser(t, users, "ada", "ada@example.com")
	assert.NotZero(t, u.ID)

	byEmail, err := users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, *u, *byEmail)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", byID.Username)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.FindByID(ctx, u.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormUsers_DuplicateEmail(t *testing.T) {
	users := NewGormUserStore(setupTestDB(t))
	seedUser(t, users, "ada", "ada@example.com")

	err := users.Create(context.Background(), &domain.User{Username: "ada2", Email: "ada@example.com", Password: "hash", IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGormUsers_SavePersistsInactive(t *testing.T) {
	ctx := context.Background()
	users := NewGormUserStore(setupTestDB(t))
	u := seedUser(t, users, "ada", "ada@example.com")

	u.IsActive = false
	require.NoError(t, users.Save(ctx, u))

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	stored.IsActive = true
	stored.Password = "new-hash"
	require.NoError(t, users.Save(ctx, stored))

	again, err := users.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, again.IsActive)
	assert.Equal(t, "new-hash", again.Password)
}

func TestGormUsers_List(t *testing.T) {
	ctx := context.Background()
	users := NewGormUserStore(setupTestDB(t))

	empty, err := users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seedUser(t, users, "ada", "ada@example.com")
	seedUser(t, users, "bob", "bob@example.com")

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ada", all[0].Username)
	assert.Equal(t, "bob", all[1].Username)
}

func TestGormTransactions_ListFiltersAndPopulatesOwner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewGormUserStore(db)
	txs := NewGormTransactionStore(db)

	ada := seedUser(t, users, "ada", "ada@example.com")
	bob := seedUser(t, users, "bob", "bob@example.com")

	for _, tx := range []*domain.Transaction{
		{UserID: ada.ID, CategoryName: "salary", CategoryImageLink: "img", TransactionType: domain.Income, Amount: 1000, Date: "2024-01-01"},
		{UserID: ada.ID, CategoryName: "food", CategoryImageLink: "img", TransactionType: domain.Expense, Amount: 42, Date: "2024-01-02"},
		{UserID: bob.ID, CategoryName: "rent", CategoryImageLink: "img", TransactionType: domain.Expense, Amount: 500, Date: "2024-01-03"},
	} {
		require.NoError(t, txs.Create(ctx, tx))
		assert.NotZero(t, tx.ID)
	}

	all, err := txs.List(ctx, TransactionFilter{UserID: ada.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "salary", all[0].CategoryName)
	assert.Equal(t, "food", all[1].CategoryName)

	expense := domain.Expense
	expenses, err := txs.List(ctx, TransactionFilter{UserID: ada.ID, Type: &expense})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, 42.0, expenses[0].Amount)

	// Only the id and username of the owner are loaded
	require.NotNil(t, expenses[0].Owner)
	assert.Equal(t, domain.User{ID: ada.ID, Username: "ada"}, *expenses[0].Owner)

	none, err := txs.List(ctx, TransactionFilter{UserID: ada.ID + bob.ID + 100})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGormTransactions_CreateIgnoresOwner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := NewGormUserStore(db)
	txs := NewGormTransactionStore(db)
	ada := seedUser(t, users, "ada", "ada@example.com")

	tx := &domain.Transaction{
		UserID: ada.ID, Owner: &domain.User{ID: ada.ID, Username: "renamed"},
		CategoryName: "food", CategoryImageLink: "img", Amount: 1, Date: "d",
	}
	require.NoError(t, txs.Create(ctx, tx))

	stored, err := users.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", stored.Username)
}
