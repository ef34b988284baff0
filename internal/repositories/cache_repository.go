package repositories

import (
	"context"
	"time"

	"usercenter/internal/models"

	"github.com/shopspring/decimal"
)

// CacheRepository is the read cache in front of balances and withdrawal
// history. A miss is reported as found == false with a nil error.
//
// Entries are stored under the user's current generation. Readers fetch the
// generation before reading the store and write back under that value, so a
// write racing an InvalidateUser lands under a retired generation and is
// never served.
type CacheRepository interface {
	Generation(ctx context.Context, userID uint) (int64, error)

	GetBalance(ctx context.Context, userID uint, generation int64) (decimal.Decimal, bool, error)
	SetBalance(ctx context.Context, userID uint, generation int64, balance decimal.Decimal) error

	GetWithdrawalPage(ctx context.Context, userID uint, generation int64, page, pageSize int) (*models.WithdrawalPage, bool, error)
	SetWithdrawalPage(ctx context.Context, userID uint, generation int64, result *models.WithdrawalPage) error

	// InvalidateUser advances the user's generation, retiring every cached
	// entry of the user at once.
	InvalidateUser(ctx context.Context, userID uint) error

	Ping(ctx context.Context) error
}

// Cache expiration defaults. History pages carry review status that changes
// outside this service, so they expire sooner.
const (
	DefaultExpiration        = 5 * time.Minute
	DefaultHistoryExpiration = 30 * time.Second
)
