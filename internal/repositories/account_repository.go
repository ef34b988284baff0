package repositories

import (
	"context"

	"usercenter/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepository defines the account operations the ledger and the
// verification gate rely on.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error

	// GetAccount reads the account without locking it.
	GetAccount(ctx context.Context, userID uint) (*models.Account, error)
	ReadBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	ReadVerificationStatus(ctx context.Context, userID uint) (models.VerificationStatus, error)

	// LockAccount reads the account holding an exclusive row lock until the
	// surrounding transaction ends. Outside a transaction it is a plain read.
	LockAccount(ctx context.Context, userID uint) (*models.Account, error)

	// LockAndDebit locks the account row, re-reads the balance and subtracts
	// amount from it. It returns the new balance, ErrInvalidAmount for a
	// non-positive amount or ErrInsufficientBalance when amount exceeds the
	// balance.
	LockAndDebit(ctx context.Context, userID uint, amount decimal.Decimal) (decimal.Decimal, error)

	// SaveCertification stores the submitted profile and status.
	SaveCertification(ctx context.Context, userID uint, cert models.Certification) error
}
