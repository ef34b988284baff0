package repositories

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrDuplicatePending    = errors.New("pending withdrawal already exists")
	ErrLockTimeout         = errors.New("lock timeout")
)

// TxOptions tunes a transaction opened by ExecuteInTransaction.
type TxOptions struct {
	// LockTimeout bounds how long a row lock taken inside the transaction
	// may wait. Zero means the driver default.
	LockTimeout time.Duration
}

// Store is the persistence boundary of the user center. A Store handed to the
// ExecuteInTransaction callback is bound to that transaction: every read and
// write made through it commits or rolls back together.
type Store interface {
	Accounts() AccountRepository
	Withdrawals() WithdrawalRepository

	// ExecuteInTransaction runs fn in a single transaction. A non-nil error
	// from fn rolls the transaction back and is returned unchanged.
	ExecuteInTransaction(ctx context.Context, opts TxOptions, fn func(tx Store) error) error

	Ping(ctx context.Context) error
}
