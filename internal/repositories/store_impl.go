package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type gormStore struct {
	db          *gorm.DB
	accounts    AccountRepository
	withdrawals WithdrawalRepository
}

// NewStore returns the Postgres-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:          db,
		accounts:    NewAccountRepository(db),
		withdrawals: NewWithdrawalRepository(db),
	}
}

func (s *gormStore) Accounts() AccountRepository {
	return s.accounts
}

func (s *gormStore) Withdrawals() WithdrawalRepository {
	return s.withdrawals
}

func (s *gormStore) ExecuteInTransaction(ctx context.Context, opts TxOptions, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.LockTimeout > 0 {
			stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", opts.LockTimeout.Milliseconds())
			if err := tx.Exec(stmt).Error; err != nil {
				return translateError("set lock timeout", err)
			}
		}
		return fn(NewStore(tx))
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
