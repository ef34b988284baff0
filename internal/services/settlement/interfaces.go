package settlement

import (
	"context"

	"usercenter/internal/models"
	"usercenter/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service defines the settlement coordinator
type Service interface {
	// Withdraw debits amount from the user's balance and records a pending
	// withdrawal request, returning its id.
	Withdraw(ctx context.Context, userID uint, amount string) (uuid.UUID, error)

	ListWithdrawals(ctx context.Context, userID uint, page, pageSize int) (*models.WithdrawalPage, error)
}

// Verifier gates withdrawals on the identity verification status and
// supplies the payout profile.
type Verifier interface {
	Verify(ctx context.Context, scope repositories.Store, userID uint) (models.VerificationStatus, error)
	Profile(ctx context.Context, scope repositories.Store, userID uint) (models.Certification, error)
}

// Ledger debits balances. Invalidate retires all of the user's cached reads.
type Ledger interface {
	Debit(ctx context.Context, scope repositories.Store, userID uint, amount decimal.Decimal) (decimal.Decimal, error)
	Invalidate(ctx context.Context, userID uint)
}

// Registry stores and lists withdrawal requests.
type Registry interface {
	HasPendingRequest(ctx context.Context, scope repositories.Store, userID uint) (bool, error)
	Create(ctx context.Context, scope repositories.Store, request *models.WithdrawalRequest) (uuid.UUID, error)
	List(ctx context.Context, userID uint, page, pageSize int) (*models.WithdrawalPage, error)
}
