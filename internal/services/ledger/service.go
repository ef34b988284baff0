// Package ledger reads and debits user balances.
package ledger

import (
	"context"
	"errors"
	"log"

	domainerrors "usercenter/internal/errors"
	"usercenter/internal/repositories"

	"github.com/shopspring/decimal"
)

// Service defines the balance ledger
type Service interface {
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)

	// Debit subtracts amount from the balance through scope, which must be
	// bound to the caller's transaction for the row lock to hold until
	// commit. It returns the new balance.
	Debit(ctx context.Context, scope repositories.Store, userID uint, amount decimal.Decimal) (decimal.Decimal, error)

	// Invalidate retires every cached read of userID, the balance and the
	// withdrawal history pages alike.
	Invalidate(ctx context.Context, userID uint)
}

type service struct {
	store repositories.Store
	cache repositories.CacheRepository
}

// NewService creates a new ledger service
func NewService(store repositories.Store, cache repositories.CacheRepository) Service {
	if store == nil {
		panic("store is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		store: store,
		cache: cache,
	}
}

func (s *service) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	// The generation is read before the store so that a withdrawal committing
	// in between retires whatever this call writes back.
	generation, cacheErr := s.cache.Generation(ctx, userID)
	if cacheErr != nil {
		log.Printf("Balance cache read failed for user %d: %v", userID, cacheErr)
	} else if balance, found, err := s.cache.GetBalance(ctx, userID, generation); err != nil {
		log.Printf("Balance cache read failed for user %d: %v", userID, err)
	} else if found {
		return balance, nil
	}

	balance, err := s.store.Accounts().ReadBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return decimal.Zero, domainerrors.ErrAccountNotFound
		}
		log.Printf("Failed to read balance for user %d: %v", userID, err)
		return decimal.Zero, domainerrors.ErrStorageFailure
	}

	if cacheErr == nil {
		if err := s.cache.SetBalance(ctx, userID, generation, balance); err != nil {
			log.Printf("Balance cache write failed for user %d: %v", userID, err)
		}
	}
	return balance, nil
}

func (s *service) Debit(ctx context.Context, scope repositories.Store, userID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domainerrors.ErrInvalidAmount
	}
	if scope == nil {
		scope = s.store
	}

	balance, err := scope.Accounts().LockAndDebit(ctx, userID, amount)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvalidAmount):
			return decimal.Zero, domainerrors.ErrInvalidAmount
		case errors.Is(err, repositories.ErrInsufficientBalance):
			return decimal.Zero, domainerrors.ErrInsufficientFunds
		case errors.Is(err, repositories.ErrAccountNotFound):
			// No account means a zero balance.
			return decimal.Zero, domainerrors.ErrInsufficientFunds
		case errors.Is(err, repositories.ErrLockTimeout):
			return decimal.Zero, domainerrors.ErrBusy
		}
		log.Printf("Failed to debit user %d: %v", userID, err)
		return decimal.Zero, domainerrors.ErrStorageFailure
	}
	return balance, nil
}

func (s *service) Invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Printf("Failed to invalidate cache for user %d: %v", userID, err)
	}
}
