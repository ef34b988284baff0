package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"usercenter/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// These tests run against a real Postgres when USERCENTER_TEST_DSN is set,
// e.g. "host=localhost user=postgres password=postgres dbname=usercenter_test sslmode=disable".
func openTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()
	dsn := os.Getenv("USERCENTER_TEST_DSN")
	if dsn == "" {
		t.Skip("USERCENTER_TEST_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { CloseDB(db) })
	return NewStore(db), db
}

// testUser seeds an account under a user id unlikely to collide with other
// runs and removes its rows afterwards.
func testUser(t *testing.T, store Store, db *gorm.DB, balance int64) uint {
	t.Helper()
	userID := uint(time.Now().UnixNano()%1_000_000_000) + 1_000_000_000
	t.Cleanup(func() {
		db.Where("user_id = ?", userID).Delete(&models.WithdrawalRequest{})
		db.Where("user_id = ?", userID).Delete(&models.Account{})
	})

	require.NoError(t, store.Accounts().Create(context.Background(), &models.Account{
		UserID:             userID,
		Balance:            decimal.NewFromInt(balance),
		VerificationStatus: models.VerificationPassed,
		PayoutAccount:      "pg@example.com",
	}))
	return userID
}

func TestGormStore_LockAndDebit(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()
	userID := testUser(t, store, db, 500)

	err := store.ExecuteInTransaction(ctx, TxOptions{LockTimeout: time.Second}, func(tx Store) error {
		balance, err := tx.Accounts().LockAndDebit(ctx, userID, decimal.NewFromInt(150))
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(350).Equal(balance), "got %s", balance)

		_, err = tx.Accounts().LockAndDebit(ctx, userID, decimal.NewFromInt(400))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
		return nil
	})
	require.NoError(t, err)

	balance, err := store.Accounts().ReadBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(350).Equal(balance), "got %s", balance)

	status, err := store.Accounts().ReadVerificationStatus(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPassed, status)

	_, err = store.Accounts().ReadVerificationStatus(ctx, userID+1)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGormStore_RollbackRestoresBalance(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()
	userID := testUser(t, store, db, 500)
	failure := errors.New("insert failed")

	err := store.ExecuteInTransaction(ctx, TxOptions{}, func(tx Store) error {
		if _, err := tx.Accounts().LockAndDebit(ctx, userID, decimal.NewFromInt(150)); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	balance, err := store.Accounts().ReadBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(balance), "got %s", balance)
}

func TestGormStore_LockTimeout(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()
	userID := testUser(t, store, db, 500)

	locked := make(chan struct{})
	done := make(chan struct{})
	holder := make(chan error, 1)
	go func() {
		holder <- store.ExecuteInTransaction(ctx, TxOptions{}, func(tx Store) error {
			if _, err := tx.Accounts().LockAccount(ctx, userID); err != nil {
				close(locked)
				return err
			}
			close(locked)
			<-done
			return nil
		})
	}()
	<-locked

	start := time.Now()
	err := store.ExecuteInTransaction(ctx, TxOptions{LockTimeout: 100 * time.Millisecond}, func(tx Store) error {
		_, err := tx.Accounts().LockAndDebit(ctx, userID, decimal.NewFromInt(150))
		return err
	})
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)

	close(done)
	require.NoError(t, <-holder)

	balance, err := store.Accounts().ReadBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(balance), "got %s", balance)
}

func TestGormStore_OnePendingPerUser(t *testing.T) {
	store, db := openTestStore(t)
	ctx := context.Background()
	userID := testUser(t, store, db, 500)

	pending := func() *models.WithdrawalRequest {
		return &models.WithdrawalRequest{UserID: userID, Amount: decimal.NewFromInt(150), PayoutAccount: "pg@example.com"}
	}

	require.NoError(t, store.Withdrawals().Insert(ctx, pending()))
	exists, err := store.Withdrawals().ExistsPending(ctx, userID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = store.Withdrawals().Insert(ctx, pending())
	assert.ErrorIs(t, err, ErrDuplicatePending)

	reviewed := pending()
	reviewed.Status = models.WithdrawalApproved
	require.NoError(t, store.Withdrawals().Insert(ctx, reviewed))

	items, total, err := store.Withdrawals().ListByUser(ctx, userID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, items, 2)
}
