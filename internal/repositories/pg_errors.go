package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pendingIndexName = "idx_withdrawal_requests_one_pending"

// translateError maps driver errors onto the repository sentinels. Errors it
// does not recognise are wrapped with op for the log.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAccountNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.LockNotAvailable, pgerrcode.QueryCanceled:
			return ErrLockTimeout
		case pgerrcode.UniqueViolation:
			if pgErr.ConstraintName == pendingIndexName {
				return ErrDuplicatePending
			}
			return ErrAccountExists
		case pgerrcode.CheckViolation:
			return ErrInsufficientBalance
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
