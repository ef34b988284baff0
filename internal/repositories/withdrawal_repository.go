package repositories

import (
	"context"

	"usercenter/internal/models"
)

// WithdrawalRepository stores withdrawal requests.
type WithdrawalRepository interface {
	ExistsPending(ctx context.Context, userID uint) (bool, error)

	// Insert stores a new request. It returns ErrDuplicatePending when the
	// user already has a pending request.
	Insert(ctx context.Context, request *models.WithdrawalRequest) error

	// ListByUser returns the user's requests newest first plus the total count.
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]models.WithdrawalRequest, int64, error)
}
