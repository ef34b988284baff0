package settlement

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	domainerrors "usercenter/internal/errors"
	"usercenter/internal/models"
	"usercenter/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// minRowLockWait keeps a nearly spent budget from turning into "no limit"
// on the database side.
const minRowLockWait = 10 * time.Millisecond

type service struct {
	store    repositories.Store
	verifier Verifier
	ledger   Ledger
	registry Registry
	locker   *UserLocker
	config   Config
	metrics  MetricsCollector
	now      func() time.Time
}

// NewService creates a new settlement coordinator
func NewService(
	store repositories.Store,
	verifier Verifier,
	ledger Ledger,
	registry Registry,
	config Config,
	metrics MetricsCollector,
) Service {
	if store == nil {
		panic("store is required")
	}
	if verifier == nil {
		panic("verifier is required")
	}
	if ledger == nil {
		panic("ledger is required")
	}
	if registry == nil {
		panic("registry is required")
	}

	// Set default configuration values if not provided
	if config.MinWithdrawal.IsZero() {
		config.MinWithdrawal = decimal.NewFromInt(DefaultMinWithdrawal)
	}
	if config.LockTimeout <= 0 {
		config.LockTimeout = DefaultLockTimeout
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		store:    store,
		verifier: verifier,
		ledger:   ledger,
		registry: registry,
		locker:   NewUserLocker(),
		config:   config,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (s *service) Withdraw(ctx context.Context, userID uint, input string) (uuid.UUID, error) {
	start := s.now()
	defer func() {
		s.metrics.RecordOperationDuration(OperationWithdraw, s.now().Sub(start))
	}()

	amount, err := ParseAmount(input, s.config.MinWithdrawal)
	if err != nil {
		return uuid.Nil, s.reject(userID, err)
	}

	release, err := s.locker.Acquire(ctx, userID, s.config.LockTimeout)
	if err != nil {
		return uuid.Nil, s.reject(userID, err)
	}
	defer release()

	rowLockWait := s.config.LockTimeout - s.now().Sub(start)
	if rowLockWait < minRowLockWait {
		rowLockWait = minRowLockWait
	}

	// The transaction outlives a cancelled caller; it always ends in commit
	// or rollback.
	txCtx := context.WithoutCancel(ctx)

	var requestID uuid.UUID
	err = s.store.ExecuteInTransaction(txCtx, repositories.TxOptions{LockTimeout: rowLockWait}, func(tx repositories.Store) error {
		status, err := s.verifier.Verify(txCtx, tx, userID)
		if err != nil {
			return err
		}
		if status != models.VerificationPassed {
			return domainerrors.ErrNotVerified
		}

		// A passed profile is frozen, so reading it unlocked is stable.
		cert, err := s.verifier.Profile(txCtx, tx, userID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(cert.PayoutAccount) == "" {
			return domainerrors.ErrPayoutAccountMissing
		}

		pending, err := s.registry.HasPendingRequest(txCtx, tx, userID)
		if err != nil {
			return err
		}
		if pending {
			return domainerrors.ErrDuplicatePending
		}

		if _, err := s.ledger.Debit(txCtx, tx, userID, amount); err != nil {
			return err
		}

		requestID, err = s.registry.Create(txCtx, tx, &models.WithdrawalRequest{
			UserID:        userID,
			Amount:        amount,
			PayoutName:    cert.PayoutName,
			PayoutAccount: cert.PayoutAccount,
			Status:        models.WithdrawalPending,
			CreatedAt:     s.now(),
		})
		return err
	})
	if err != nil {
		return uuid.Nil, s.reject(userID, err)
	}

	s.ledger.Invalidate(txCtx, userID)

	s.metrics.RecordSettlement(userID, amount)
	log.Printf("Withdrawal %s settled for user %d: amount %s", requestID, userID, amount.StringFixed(AmountScale))
	return requestID, nil
}

func (s *service) ListWithdrawals(ctx context.Context, userID uint, page, pageSize int) (*models.WithdrawalPage, error) {
	return s.registry.List(ctx, userID, page, pageSize)
}

// reject reduces err to exactly one DomainError and records it.
func (s *service) reject(userID uint, err error) error {
	de := normalize(userID, err)
	s.metrics.RecordRejection(OperationWithdraw, de.Code)
	log.Printf("Withdrawal rejected for user %d: %s", userID, de.Code)
	return de
}

func normalize(userID uint, err error) *domainerrors.DomainError {
	if de, ok := domainerrors.As(err); ok {
		return de
	}
	switch {
	case errors.Is(err, repositories.ErrLockTimeout),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return domainerrors.ErrBusy
	case errors.Is(err, repositories.ErrDuplicatePending):
		return domainerrors.ErrDuplicatePending
	case errors.Is(err, repositories.ErrInsufficientBalance):
		return domainerrors.ErrInsufficientFunds
	}
	log.Printf("Withdrawal for user %d failed: %v", userID, err)
	return domainerrors.ErrStorageFailure
}
