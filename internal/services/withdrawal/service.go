// Package withdrawal records withdrawal requests and lists a user's history.
package withdrawal

import (
	"context"
	"errors"
	"log"

	domainerrors "usercenter/internal/errors"
	"usercenter/internal/models"
	"usercenter/internal/repositories"
	"usercenter/internal/utils/pagination"

	"github.com/google/uuid"
)

// Service defines the withdrawal request registry
type Service interface {
	// HasPendingRequest and Create run through scope so they share the
	// caller's transaction and row lock.
	HasPendingRequest(ctx context.Context, scope repositories.Store, userID uint) (bool, error)
	Create(ctx context.Context, scope repositories.Store, request *models.WithdrawalRequest) (uuid.UUID, error)

	// List returns one page of the user's requests, newest first. page and
	// pageSize below one fall back to 1 and 10.
	List(ctx context.Context, userID uint, page, pageSize int) (*models.WithdrawalPage, error)
}

type service struct {
	store repositories.Store
	cache repositories.CacheRepository
}

// NewService creates a new withdrawal registry
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

func (s *service) scope(scope repositories.Store) repositories.Store {
	if scope == nil {
		return s.store
	}
	return scope
}

func (s *service) HasPendingRequest(ctx context.Context, scope repositories.Store, userID uint) (bool, error) {
	pending, err := s.scope(scope).Withdrawals().ExistsPending(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrLockTimeout) {
			return false, domainerrors.ErrBusy
		}
		log.Printf("Failed to check pending withdrawal for user %d: %v", userID, err)
		return false, domainerrors.ErrStorageFailure
	}
	return pending, nil
}

func (s *service) Create(ctx context.Context, scope repositories.Store, request *models.WithdrawalRequest) (uuid.UUID, error) {
	if request == nil {
		return uuid.Nil, domainerrors.ErrValidation
	}
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	request.Status = models.WithdrawalPending

	if err := s.scope(scope).Withdrawals().Insert(ctx, request); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicatePending):
			return uuid.Nil, domainerrors.ErrDuplicatePending
		case errors.Is(err, repositories.ErrLockTimeout):
			return uuid.Nil, domainerrors.ErrBusy
		}
		log.Printf("Failed to create withdrawal for user %d: %v", request.UserID, err)
		return uuid.Nil, domainerrors.ErrStorageFailure
	}
	return request.ID, nil
}

func (s *service) List(ctx context.Context, userID uint, page, pageSize int) (*models.WithdrawalPage, error) {
	p := pagination.New(page, pageSize)

	// Try cache first
	generation, cacheErr := s.cache.Generation(ctx, userID)
	if cacheErr != nil {
		log.Printf("Withdrawal cache read failed for user %d: %v", userID, cacheErr)
	} else if cached, found, err := s.cache.GetWithdrawalPage(ctx, userID, generation, p.Page, p.PageSize); err != nil {
		log.Printf("Withdrawal cache read failed for user %d: %v", userID, err)
	} else if found {
		return cached, nil
	}

	items, total, err := s.store.Withdrawals().ListByUser(ctx, userID, p.Offset, p.PageSize)
	if err != nil {
		log.Printf("Failed to list withdrawals for user %d: %v", userID, err)
		return nil, domainerrors.ErrStorageFailure
	}
	if items == nil {
		items = []models.WithdrawalRequest{}
	}

	result := &models.WithdrawalPage{
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
	}
	if cacheErr == nil {
		if err := s.cache.SetWithdrawalPage(ctx, userID, generation, result); err != nil {
			log.Printf("Withdrawal cache write failed for user %d: %v", userID, err)
		}
	}
	return result, nil
}
